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
Package functions provides the catalog of engine primitives that function
handlers lower calls into.

A primitive is a fixed operation the execution engine knows how to type and
run. Handlers never execute anything themselves: they look primitives up by
name, and the DAG builder asks the catalog for each node's result type.

# Core Features

• Primitive Registry - Case sensitive names, duplicate registration rejected
• Type Resolution - ResolveReturnType checks arity, then derives the result type
• Default Nulls - Most primitives return NULL for any NULL argument
• Row Execution - Execute runs one row for the reference evaluator

# Primitives

	TypeMath        - plus, minus, multiply, modulo
	TypeComparison  - equals, notEquals, less, lessOrEquals, greater, greaterOrEquals
	TypeNull        - isNull, isNotNull, assumeNotNull
	TypeConditional - if, multiIf
	TypeArray       - range, arrayDistinctSpark
	TypeConversion  - _CAST

# Typing Rules

	plus(Int32, Int32)            -> Int64   two times the widest operand, at most 64 bits
	minus(UInt8, UInt8)           -> Int16   always signed
	modulo(Int64, Int32)          -> Int32   width of the divisor
	range(Int64, Int64, Int64)    -> Array(Int64)
	if(Bool, Array(Int64), Nullable(Array(Int64))) -> Nullable(Array(Int64))

A default-null primitive sees only non-nullable argument types in ReturnType;
ResolveReturnType wraps the result in Nullable when any argument is nullable.
if and multiIf treat a NULL condition as false.

# Values

Values flowing through primitives use one Go representation per kind: int64
for every integer width, float64, bool, string, []interface{} for arrays and
nil for NULL. CoerceValue normalises literals, CastValue implements _CAST.

# Custom Primitives

	type Abs struct{ *functions.BaseFunction }

	func (f *Abs) ReturnType(args []types.DataType) (types.DataType, error) { return args[0], nil }
	func (f *Abs) Execute(ctx *functions.FunctionContext, args []interface{}) (interface{}, error) {
		if v := args[0].(int64); v < 0 {
			return -v, nil
		}
		return args[0], nil
	}

	r := functions.NewFunctionRegistry()
	_ = r.Register(&Abs{functions.NewBaseFunction("abs", functions.TypeMath, "|x|", 1, 1, true)})
	b := dag.NewBuilder(dag.WithCatalog(r))
*/
package functions
