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
	"sort"
	"sync"

	"github.com/rulego/sqldag/types"
)

// FunctionType 函数类型枚举
type FunctionType string

const (
	// 算术函数
	TypeMath FunctionType = "math"
	// 比较函数
	TypeComparison FunctionType = "comparison"
	// 空值函数
	TypeNull FunctionType = "null"
	// 条件函数
	TypeConditional FunctionType = "conditional"
	// 数组函数
	TypeArray FunctionType = "array"
	// 转换函数
	TypeConversion FunctionType = "conversion"
)

// FunctionContext carries per-node information into Execute.
type FunctionContext struct {
	// ResultType is the resolved result type of the node being evaluated
	ResultType types.DataType
	// MaxRangeElements limits range output, 0 means DefaultMaxRangeElements
	MaxRangeElements int
}

// Function is an engine primitive: a fixed operation the execution engine
// knows how to type and run. Names are case sensitive, as in the engine.
type Function interface {
	// GetName 获取函数名称
	GetName() string
	// GetType 获取函数类型
	GetType() FunctionType
	// GetDescription 获取函数描述
	GetDescription() string
	// ValidateArgCount 验证参数数量
	ValidateArgCount(argCount int) error
	// UseDefaultNulls reports whether a null argument makes the result null
	// without running Execute. ReturnType then only sees non-nullable types.
	UseDefaultNulls() bool
	// ReturnType resolves the result type from argument types
	ReturnType(args []types.DataType) (types.DataType, error)
	// Execute evaluates one row
	Execute(ctx *FunctionContext, args []interface{}) (interface{}, error)
}

// FunctionRegistry 函数注册器
type FunctionRegistry struct {
	mu         sync.RWMutex
	functions  map[string]Function
	categories map[FunctionType][]Function
}

// 全局函数注册器实例
var globalRegistry = NewFunctionRegistry()

// NewFunctionRegistry 创建新的函数注册器
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions:  make(map[string]Function),
		categories: make(map[FunctionType][]Function),
	}
}

// Register 注册函数
func (r *FunctionRegistry) Register(fn Function) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := fn.GetName()
	if name == "" {
		return fmt.Errorf("function name must not be empty")
	}
	// 检查函数是否已存在
	if _, exists := r.functions[name]; exists {
		return fmt.Errorf("function %s already registered", name)
	}

	r.functions[name] = fn
	r.categories[fn.GetType()] = append(r.categories[fn.GetType()], fn)
	return nil
}

// Get 获取函数
func (r *FunctionRegistry) Get(name string) (Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, exists := r.functions[name]
	return fn, exists
}

// GetByType 按类型获取函数列表
func (r *FunctionRegistry) GetByType(fnType FunctionType) []Function {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.categories[fnType]
}

// Names returns all registered names in sorted order.
func (r *FunctionRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveReturnType validates arity and resolves the result type of fn
// applied to args, applying the default null rules.
func (r *FunctionRegistry) ResolveReturnType(name string, args []types.DataType) (types.DataType, error) {
	fn, ok := r.Get(name)
	if !ok {
		return nil, types.NewUnsupportedFunction(name)
	}
	return ResolveReturnType(fn, args)
}

// ResolveReturnType validates arity and resolves fn's result type.
// For default-null functions the result is nullable iff any argument is.
func ResolveReturnType(fn Function, args []types.DataType) (types.DataType, error) {
	if err := fn.ValidateArgCount(len(args)); err != nil {
		return nil, err
	}
	if !fn.UseDefaultNulls() {
		return fn.ReturnType(args)
	}

	nullable := false
	bare := make([]types.DataType, len(args))
	for i, arg := range args {
		if types.IsNullable(arg) {
			nullable = true
		}
		bare[i] = types.RemoveNullable(arg)
	}
	rt, err := fn.ReturnType(bare)
	if err != nil {
		return nil, err
	}
	if nullable {
		rt = types.MakeNullable(rt)
	}
	return rt, nil
}

// Execute runs fn on one row. A default-null function returns nil as soon as
// one argument is nil.
func Execute(fn Function, ctx *FunctionContext, args []interface{}) (interface{}, error) {
	if fn.UseDefaultNulls() {
		for _, arg := range args {
			if arg == nil {
				return nil, nil
			}
		}
	}
	return fn.Execute(ctx, args)
}

// 全局函数注册和获取方法
func Register(fn Function) error {
	return globalRegistry.Register(fn)
}

func Get(name string) (Function, bool) {
	return globalRegistry.Get(name)
}

func GetByType(fnType FunctionType) []Function {
	return globalRegistry.GetByType(fnType)
}

// Default returns the engine primitive catalog.
func Default() *FunctionRegistry {
	return globalRegistry
}
