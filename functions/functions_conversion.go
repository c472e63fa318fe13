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

package functions

import (
	"github.com/rulego/sqldag/types"
)

// CastFunctionName is the primitive emitted by type conversions.
const CastFunctionName = "_CAST"

// CastFunction _CAST(value, 'TypeName'). The target type is carried by the
// node itself, so the type can only be resolved through CanConvert.
type CastFunction struct {
	*BaseFunction
}

func NewCastFunction() *CastFunction {
	return &CastFunction{
		BaseFunction: NewBaseFunction(CastFunctionName, TypeConversion, "Convert value to the target type", 2, 2, false),
	}
}

func (f *CastFunction) ReturnType(args []types.DataType) (types.DataType, error) {
	return nil, types.NewTypeMismatch(f.GetName(), "target type is not known from argument types alone")
}

func (f *CastFunction) Execute(ctx *FunctionContext, args []interface{}) (interface{}, error) {
	return CastValue(args[0], ctx.ResultType)
}

// CanConvert reports whether values of from can be converted to to.
//
//   - identical types
//   - T to Nullable(U) and Nullable(T) to Nullable(U) when T converts to U
//   - any number to any number
//   - Array(T) to Array(U) when T converts to U
//
// A nullable type never converts to a non-nullable one.
func CanConvert(from, to types.DataType) bool {
	if types.Equal(from, to) {
		return true
	}
	if types.IsNullable(from) && !types.IsNullable(to) {
		return false
	}
	from, to = types.RemoveNullable(from), types.RemoveNullable(to)
	if types.Equal(from, to) {
		return true
	}
	if types.IsNumeric(from) && types.IsNumeric(to) {
		return true
	}
	fromElem, ok1 := types.ElemOf(from)
	toElem, ok2 := types.ElemOf(to)
	if ok1 && ok2 {
		return CanConvert(fromElem, toElem)
	}
	return false
}
