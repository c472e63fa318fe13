package functions

// registerBuiltinFunctions registers the engine primitives the function
// parsers lower into. The implementations live in functions_*.go.
func registerBuiltinFunctions() {
	// Math functions
	_ = Register(NewPlusFunction())
	_ = Register(NewMinusFunction())
	_ = Register(NewMultiplyFunction())
	_ = Register(NewModuloFunction())

	// Comparison functions
	_ = Register(NewEqualsFunction())
	_ = Register(NewNotEqualsFunction())
	_ = Register(NewLessFunction())
	_ = Register(NewLessOrEqualsFunction())
	_ = Register(NewGreaterFunction())
	_ = Register(NewGreaterOrEqualsFunction())

	// Null functions
	_ = Register(NewIsNullFunction())
	_ = Register(NewIsNotNullFunction())
	_ = Register(NewAssumeNotNullFunction())

	// Conditional functions
	_ = Register(NewIfFunction())
	_ = Register(NewMultiIfFunction())

	// Array functions
	_ = Register(NewRangeFunction())
	_ = Register(NewArrayDistinctSparkFunction())

	// Conversion functions
	_ = Register(NewCastFunction())
}
