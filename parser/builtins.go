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
	"github.com/rulego/sqldag/dag"
	"github.com/rulego/sqldag/plan"
	"github.com/rulego/sqldag/types"
)

// mappedFunctions are handlers that apply a single engine primitive to their
// arguments unchanged.
var mappedFunctions = []struct {
	name      string
	primitive string
	args      int
}{
	{"add", "plus", 2},
	{"subtract", "minus", 2},
	{"multiply", "multiply", 2},
	{"modulus", "modulo", 2},
	{"equal", "equals", 2},
	{"not_equal", "notEquals", 2},
	{"lt", "less", 2},
	{"lte", "lessOrEquals", 2},
	{"gt", "greater", 2},
	{"gte", "greaterOrEquals", 2},
	{"is_null", "isNull", 1},
	{"is_not_null", "isNotNull", 1},
	{"array_distinct", "arrayDistinctSpark", 1},
}

// RegisterBuiltins adds every builtin handler to r.
func RegisterBuiltins(r *Registry) error {
	for _, m := range mappedFunctions {
		if err := r.Register(m.name, NewMappedFactory(m.name, m.primitive, m.args)); err != nil {
			return err
		}
	}
	if err := r.Register("sequence", NewSequenceParser); err != nil {
		return err
	}
	return r.Register("pmod", NewPmodParser)
}

// MappedParser lowers name(args...) to primitive(args...).
type MappedParser struct {
	*BaseParser
	primitive string
}

// NewMappedFactory returns a factory for a one-to-one handler.
func NewMappedFactory(name, primitive string, argCount int) Factory {
	return func(ctx Context) FunctionParser {
		return &MappedParser{
			BaseParser: NewBaseParser(name, argCount, argCount, ctx),
			primitive:  primitive,
		}
	}
}

func (p *MappedParser) Parse(call *plan.ScalarFunction, b *dag.Builder) (*dag.Node, error) {
	args, err := p.ParseArguments(call, b)
	if err != nil {
		return nil, err
	}
	n, err := p.ToFunctionNode(b, p.primitive, args...)
	if err != nil {
		return nil, err
	}
	return p.ConvertNodeTypeIfNeeded(call, n, b)
}

// PmodParser lowers pmod(a, n), the modulo that is never negative for a
// positive n:
//
//	r = a % n
//	if(r < 0, (r + n) % n, r)
type PmodParser struct {
	*BaseParser
}

func NewPmodParser(ctx Context) FunctionParser {
	return &PmodParser{BaseParser: NewBaseParser("pmod", 2, 2, ctx)}
}

func (p *PmodParser) Parse(call *plan.ScalarFunction, b *dag.Builder) (*dag.Node, error) {
	args, err := p.ParseArguments(call, b)
	if err != nil {
		return nil, err
	}
	a, n := args[0], args[1]
	r, err := p.ToFunctionNode(b, "modulo", a, n)
	if err != nil {
		return nil, err
	}
	zero, err := p.AddConstant(b, types.NewScalar(types.Int32), 0)
	if err != nil {
		return nil, err
	}
	negative, err := p.ToFunctionNode(b, "less", r, zero)
	if err != nil {
		return nil, err
	}
	shifted, err := p.ToFunctionNode(b, "plus", r, n)
	if err != nil {
		return nil, err
	}
	wrapped, err := p.ToFunctionNode(b, "modulo", shifted, n)
	if err != nil {
		return nil, err
	}
	result, err := p.ToFunctionNode(b, "if", negative, wrapped, r)
	if err != nil {
		return nil, err
	}
	return p.ConvertNodeTypeIfNeeded(call, result, b)
}
