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
	"cmp"
	"fmt"

	"github.com/rulego/sqldag/types"
)

// CompareFunction implements the six comparison primitives.
type CompareFunction struct {
	*BaseFunction
	accept func(c int) bool
}

func newCompareFunction(name, description string, accept func(c int) bool) *CompareFunction {
	return &CompareFunction{
		BaseFunction: NewBaseFunction(name, TypeComparison, description, 2, 2, true),
		accept:       accept,
	}
}

func NewEqualsFunction() *CompareFunction {
	return newCompareFunction("equals", "a = b", func(c int) bool { return c == 0 })
}

func NewNotEqualsFunction() *CompareFunction {
	return newCompareFunction("notEquals", "a != b", func(c int) bool { return c != 0 })
}

func NewLessFunction() *CompareFunction {
	return newCompareFunction("less", "a < b", func(c int) bool { return c < 0 })
}

func NewLessOrEqualsFunction() *CompareFunction {
	return newCompareFunction("lessOrEquals", "a <= b", func(c int) bool { return c <= 0 })
}

func NewGreaterFunction() *CompareFunction {
	return newCompareFunction("greater", "a > b", func(c int) bool { return c > 0 })
}

func NewGreaterOrEqualsFunction() *CompareFunction {
	return newCompareFunction("greaterOrEquals", "a >= b", func(c int) bool { return c >= 0 })
}

func (f *CompareFunction) ReturnType(args []types.DataType) (types.DataType, error) {
	a, b := args[0], args[1]
	if !(types.IsNumeric(a) && types.IsNumeric(b)) && !types.Equal(a, b) {
		return nil, types.NewTypeMismatch(f.GetName(), "cannot compare %s with %s", a.Name(), b.Name())
	}
	if _, ok := types.ElemOf(a); ok {
		return nil, types.NewTypeMismatch(f.GetName(), "cannot compare arrays")
	}
	return types.NewScalar(types.Bool), nil
}

func (f *CompareFunction) Execute(ctx *FunctionContext, args []interface{}) (interface{}, error) {
	c, err := compareValues(args[0], args[1])
	if err != nil {
		return nil, err
	}
	return f.accept(c), nil
}

func compareValues(a, b interface{}) (int, error) {
	switch x := a.(type) {
	case int64:
		if y, ok := b.(int64); ok {
			return cmp.Compare(x, y), nil
		}
		return cmp.Compare(float64(x), toFloat(b)), nil
	case float64:
		return cmp.Compare(x, toFloat(b)), nil
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y), nil
		}
	case bool:
		if y, ok := b.(bool); ok {
			return cmp.Compare(boolRank(x), boolRank(y)), nil
		}
	}
	return 0, fmt.Errorf("cannot compare %T with %T", a, b)
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
