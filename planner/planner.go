/*
 * Copyright 2024 The RuleGo Authors.
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

// Package planner lowers plan expressions into a dag.Builder.
package planner

import (
	"fmt"

	"github.com/rulego/sqldag/dag"
	"github.com/rulego/sqldag/logger"
	"github.com/rulego/sqldag/parser"
	"github.com/rulego/sqldag/plan"
	"github.com/rulego/sqldag/types"
)

// Planner walks a plan and lowers each expression into a shared builder.
// It is the translation context handed to every function handler.
type Planner struct {
	plan     *plan.Plan
	columns  []types.Column
	registry *parser.Registry
	logger   logger.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithRegistry sets the handler registry, parser.Default() otherwise.
func WithRegistry(r *parser.Registry) Option {
	return func(p *Planner) {
		if r != nil {
			p.registry = r
		}
	}
}

// WithLogger sets the logger, logger.GetDefault() otherwise.
func WithLogger(l logger.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.logger = l
		}
	}
}

// New validates p and returns a planner for it.
func New(p *plan.Plan, opts ...Option) (*Planner, error) {
	if p == nil {
		return nil, fmt.Errorf("plan is nil")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	columns, err := p.Columns()
	if err != nil {
		return nil, err
	}
	pl := &Planner{
		plan:     p,
		columns:  columns,
		registry: parser.Default(),
		logger:   logger.GetDefault(),
	}
	for _, opt := range opts {
		opt(pl)
	}
	return pl, nil
}

// Build lowers every expression of the plan into b and returns their result
// nodes in order. On error the nodes of the failing expression are removed.
func (p *Planner) Build(b *dag.Builder) ([]*dag.Node, error) {
	outputs := make([]*dag.Node, 0, len(p.plan.Expressions))
	for i := range p.plan.Expressions {
		n, err := p.ParseExpression(&p.plan.Expressions[i], b)
		if err != nil {
			return nil, fmt.Errorf("expression %d: %w", i, err)
		}
		outputs = append(outputs, n)
	}
	p.logger.Info("lowered %d expressions into %d nodes", len(outputs), b.Len())
	return outputs, nil
}

// ParseExpression lowers one top-level expression. A failure leaves b as it
// was before the call.
func (p *Planner) ParseExpression(e *plan.Expression, b *dag.Builder) (*dag.Node, error) {
	mark := b.Mark()
	n, err := p.ParseArgument(e, b)
	if err != nil {
		discarded := b.Len() - mark
		b.Rollback(mark)
		p.logger.Warn("lowering failed, discarded %d nodes: %v", discarded, err)
		return nil, err
	}
	return n, nil
}

// ParseArgument implements parser.Context.
func (p *Planner) ParseArgument(e *plan.Expression, b *dag.Builder) (*dag.Node, error) {
	switch {
	case e.Literal != nil:
		return p.parseLiteral(e.Literal, b)
	case e.Selection != nil:
		idx := e.Selection.Field
		if idx < 0 || idx >= len(p.columns) {
			return nil, fmt.Errorf("field %d out of range, schema has %d columns", idx, len(p.columns))
		}
		col := p.columns[idx]
		return b.AddInput(col.Name, col.Type)
	case e.ScalarFunction != nil:
		return p.parseFunction(e.ScalarFunction, b)
	default:
		return nil, fmt.Errorf("empty expression")
	}
}

func (p *Planner) parseLiteral(lit *plan.Literal, b *dag.Builder) (*dag.Node, error) {
	t, err := types.Parse(lit.Type)
	if err != nil {
		return nil, err
	}
	if lit.Null {
		return b.AddConstant(t, nil)
	}
	return b.AddConstant(t, lit.Value)
}

func (p *Planner) parseFunction(call *plan.ScalarFunction, b *dag.Builder) (*dag.Node, error) {
	name, err := p.plan.FunctionName(call.FunctionReference)
	if err != nil {
		return nil, err
	}
	factory, err := p.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	handler := factory(p)
	p.logger.Debug("dispatch %s with %d arguments", handler.GetName(), len(call.Arguments))
	return handler.Parse(call, b)
}
