/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package sqldag 将跨引擎逻辑计划中的标量函数调用编译为执行引擎可以运行的原语DAG。

一个序列化的函数调用（函数名 + 参数表达式）经由处理器注册表找到对应的处理器，
处理器把调用展开为 range、plus、if、multiIf 等引擎原语组成的有向无环图。
相同的节点在同一个 Builder 内只会创建一次。

# 核心特性

• 显式注册 - 处理器在启动时显式注册，没有 init 副作用
• 节点共享 - Builder 内按结构去重，同一常量或子表达式只有一个节点
• 空值语义 - 根据静态类型决定结果是否可空，无可空输入时不生成任何空值保护节点
• 参考求值 - 基于 Apache Arrow 的逐节点求值器，用于验证生成的DAG

# 入门示例

	package main

	import (
		"fmt"

		"github.com/rulego/sqldag"
		"github.com/rulego/sqldag/types"
	)

	func main() {
		c := sqldag.New()
		schema, _ := types.ParseSchema("start:Int32,end:Int32")

		res, err := c.CompileText("sequence(start, end)", schema)
		if err != nil {
			panic(err)
		}
		fmt.Println(res.Explain())

		out, _ := c.Evaluate(res, [][]interface{}{{1, 5}, {5, 1}})
		fmt.Println(out[0]) // [[1 2 3 4 5] [5 4 3 2 1]]
	}

# 序列化计划

除文本表达式外，也可以使用 YAML/JSON 格式的计划:

	extensions:
	  - anchor: 1
	    name: "sequence:i32_i32"
	schema:
	  - {name: start, type: Int32}
	  - {name: end, type: "Nullable(Int32)"}
	expressions:
	  - scalar_function:
	      function_reference: 1
	      output_type: "Nullable(Array(Int64))"
	      arguments:
	        - selection: {field: 0}
	        - selection: {field: 1}

使用 plan.Decode 读取后交给 Compiler.Compile 编译。

# 错误处理

编译错误均为 *types.CompileError，可以用 errors.Is 判断类别:

	_, err := c.CompileText("sequence(start)", schema)
	if errors.Is(err, types.ErrArityMismatch) {
		// 参数个数错误
	}

失败的表达式不会在 Builder 中留下任何节点。

# 自定义处理器

	r := parser.NewRegistry()
	_ = parser.RegisterBuiltins(r)
	_ = r.Register("plus_one", parser.NewMappedFactory("plus_one", "plus", 2))
	r.Freeze()
	c := sqldag.New(sqldag.WithRegistry(r))
*/
package sqldag
