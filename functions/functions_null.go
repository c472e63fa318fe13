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

// IsNullFunction checks if value is NULL
type IsNullFunction struct {
	*BaseFunction
	negate bool
}

func NewIsNullFunction() *IsNullFunction {
	return &IsNullFunction{
		BaseFunction: NewBaseFunction("isNull", TypeNull, "Check if value is NULL", 1, 1, false),
	}
}

func NewIsNotNullFunction() *IsNullFunction {
	return &IsNullFunction{
		BaseFunction: NewBaseFunction("isNotNull", TypeNull, "Check if value is not NULL", 1, 1, false),
		negate:       true,
	}
}

func (f *IsNullFunction) ReturnType(args []types.DataType) (types.DataType, error) {
	return types.NewScalar(types.Bool), nil
}

func (f *IsNullFunction) Execute(ctx *FunctionContext, args []interface{}) (interface{}, error) {
	return (args[0] == nil) != f.negate, nil
}

// AssumeNotNullFunction strips the Nullable wrapper. A null input yields the
// default value of the inner type; callers must guard those rows themselves.
type AssumeNotNullFunction struct {
	*BaseFunction
}

func NewAssumeNotNullFunction() *AssumeNotNullFunction {
	return &AssumeNotNullFunction{
		BaseFunction: NewBaseFunction("assumeNotNull", TypeNull, "Treat value as non-nullable", 1, 1, false),
	}
}

func (f *AssumeNotNullFunction) ReturnType(args []types.DataType) (types.DataType, error) {
	return types.RemoveNullable(args[0]), nil
}

func (f *AssumeNotNullFunction) Execute(ctx *FunctionContext, args []interface{}) (interface{}, error) {
	if args[0] == nil {
		return ZeroValue(ctx.ResultType), nil
	}
	return args[0], nil
}
