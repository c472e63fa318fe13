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
	"fmt"

	"github.com/rulego/sqldag/types"
)

// IfFunction returns then when cond is true, otherwise else.
// A NULL condition counts as false.
type IfFunction struct {
	*BaseFunction
}

func NewIfFunction() *IfFunction {
	return &IfFunction{
		BaseFunction: NewBaseFunction("if", TypeConditional, "if(cond, then, else)", 3, 3, false),
	}
}

func (f *IfFunction) ReturnType(args []types.DataType) (types.DataType, error) {
	if err := requireCondition(f.GetName(), args[0]); err != nil {
		return nil, err
	}
	rt, err := types.LeastSupertype(args[1], args[2])
	if err != nil {
		return nil, types.NewTypeMismatch(f.GetName(), "branches have no common type: %s, %s", args[1].Name(), args[2].Name())
	}
	return rt, nil
}

func (f *IfFunction) Execute(ctx *FunctionContext, args []interface{}) (interface{}, error) {
	if isTrue(args[0]) {
		return CastValue(args[1], ctx.ResultType)
	}
	return CastValue(args[2], ctx.ResultType)
}

// MultiIfFunction multiIf(c1, v1, c2, v2, ..., else), first true condition wins.
type MultiIfFunction struct {
	*BaseFunction
}

func NewMultiIfFunction() *MultiIfFunction {
	return &MultiIfFunction{
		BaseFunction: NewBaseFunction("multiIf", TypeConditional, "multiIf(c1, v1, ..., else)", 3, -1, false),
	}
}

func (f *MultiIfFunction) ValidateArgCount(argCount int) error {
	if err := f.BaseFunction.ValidateArgCount(argCount); err != nil {
		return err
	}
	if argCount%2 == 0 {
		return &types.CompileError{
			Kind:     types.ErrorKindArityMismatch,
			Function: f.GetName(),
			Message:  fmt.Sprintf("requires an odd number of arguments, got %d", argCount),
		}
	}
	return nil
}

func (f *MultiIfFunction) ReturnType(args []types.DataType) (types.DataType, error) {
	branches := make([]types.DataType, 0, len(args)/2+1)
	for i := 0; i+1 < len(args); i += 2 {
		if err := requireCondition(f.GetName(), args[i]); err != nil {
			return nil, err
		}
		branches = append(branches, args[i+1])
	}
	branches = append(branches, args[len(args)-1])
	rt, err := types.LeastSupertype(branches...)
	if err != nil {
		return nil, types.NewTypeMismatch(f.GetName(), "branches have no common type")
	}
	return rt, nil
}

func (f *MultiIfFunction) Execute(ctx *FunctionContext, args []interface{}) (interface{}, error) {
	for i := 0; i+1 < len(args); i += 2 {
		if isTrue(args[i]) {
			return CastValue(args[i+1], ctx.ResultType)
		}
	}
	return CastValue(args[len(args)-1], ctx.ResultType)
}

func requireCondition(name string, t types.DataType) error {
	if k, ok := types.KindOf(t); ok && (k == types.Bool || types.IsInteger(t)) {
		return nil
	}
	return types.NewTypeMismatch(name, "illegal type %s of condition", t.Name())
}

func isTrue(v interface{}) bool {
	switch x := v.(type) {
	case bool:
		return x
	case int64:
		return x != 0
	default:
		return false
	}
}
