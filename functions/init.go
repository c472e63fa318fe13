package functions

// 初始化所有内置函数
func init() {
	registerBuiltinFunctions()
}
