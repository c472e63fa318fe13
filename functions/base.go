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

// BaseFunction 基础函数实现，提供通用功能
type BaseFunction struct {
	name         string
	fnType       FunctionType
	description  string
	minArgs      int
	maxArgs      int // -1 表示无限制
	defaultNulls bool
}

// NewBaseFunction 创建基础函数
func NewBaseFunction(name string, fnType FunctionType, description string, minArgs, maxArgs int, defaultNulls bool) *BaseFunction {
	return &BaseFunction{
		name:         name,
		fnType:       fnType,
		description:  description,
		minArgs:      minArgs,
		maxArgs:      maxArgs,
		defaultNulls: defaultNulls,
	}
}

func (bf *BaseFunction) GetName() string {
	return bf.name
}

func (bf *BaseFunction) GetType() FunctionType {
	return bf.fnType
}

func (bf *BaseFunction) GetDescription() string {
	return bf.description
}

func (bf *BaseFunction) UseDefaultNulls() bool {
	return bf.defaultNulls
}

// ValidateArgCount 验证参数数量
func (bf *BaseFunction) ValidateArgCount(argCount int) error {
	if argCount < bf.minArgs || (bf.maxArgs != -1 && argCount > bf.maxArgs) {
		return types.NewArityMismatch(bf.name, bf.minArgs, bf.maxArgs, argCount)
	}
	return nil
}
