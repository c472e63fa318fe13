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

package parser

import (
	"fmt"

	"github.com/rulego/sqldag/dag"
	"github.com/rulego/sqldag/plan"
	"github.com/rulego/sqldag/types"
)

// Context translates nested argument expressions. The planner implements it.
type Context interface {
	ParseArgument(e *plan.Expression, b *dag.Builder) (*dag.Node, error)
}

// FunctionParser lowers one serialized function call into builder nodes and
// returns the node holding the call's result.
type FunctionParser interface {
	GetName() string
	Parse(call *plan.ScalarFunction, b *dag.Builder) (*dag.Node, error)
}

// Factory builds a handler bound to a translation context.
type Factory func(ctx Context) FunctionParser

// BaseParser holds what every handler shares: its name, the accepted
// argument count and the translation context.
type BaseParser struct {
	name    string
	minArgs int
	maxArgs int // -1 表示无限制
	ctx     Context
}

// NewBaseParser 创建基础解析器
func NewBaseParser(name string, minArgs, maxArgs int, ctx Context) *BaseParser {
	return &BaseParser{name: name, minArgs: minArgs, maxArgs: maxArgs, ctx: ctx}
}

func (p *BaseParser) GetName() string {
	return p.name
}

func (p *BaseParser) Context() Context {
	return p.ctx
}

// ValidateArgCount 验证参数数量
func (p *BaseParser) ValidateArgCount(argCount int) error {
	if argCount < p.minArgs || (p.maxArgs != -1 && argCount > p.maxArgs) {
		return types.NewArityMismatch(p.name, p.minArgs, p.maxArgs, argCount)
	}
	return nil
}

// ParseArguments checks the argument count, then translates every argument
// in order. A wrong count fails before any node is added.
func (p *BaseParser) ParseArguments(call *plan.ScalarFunction, b *dag.Builder) ([]*dag.Node, error) {
	if err := p.ValidateArgCount(len(call.Arguments)); err != nil {
		return nil, err
	}
	if p.ctx == nil {
		return nil, fmt.Errorf("function %s: no translation context", p.name)
	}
	args := make([]*dag.Node, len(call.Arguments))
	for i := range call.Arguments {
		n, err := p.ctx.ParseArgument(&call.Arguments[i], b)
		if err != nil {
			return nil, err
		}
		args[i] = n
	}
	return args, nil
}

// ToFunctionNode applies the engine primitive fn to args.
func (p *BaseParser) ToFunctionNode(b *dag.Builder, fn string, args ...*dag.Node) (*dag.Node, error) {
	return b.AddFunction(fn, args...)
}

// AddConstant adds a literal of type t.
func (p *BaseParser) AddConstant(b *dag.Builder, t types.DataType, v interface{}) (*dag.Node, error) {
	return b.AddConstant(t, v)
}

// ConvertNodeTypeIfNeeded converts n to the call's declared output type.
// Calls without an output type return n unchanged.
func (p *BaseParser) ConvertNodeTypeIfNeeded(call *plan.ScalarFunction, n *dag.Node, b *dag.Builder) (*dag.Node, error) {
	if call.OutputType == "" {
		return n, nil
	}
	t, err := types.Parse(call.OutputType)
	if err != nil {
		return nil, types.NewTypeMismatch(p.name, "invalid output type: %v", err)
	}
	return b.ConvertType(n, t)
}
