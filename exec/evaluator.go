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

// Package exec evaluates a lowered DAG against an arrow record, one node at
// a time over the whole batch. Every child of a node is evaluated before the
// node itself, including both branches of if and multiIf.
package exec

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/rulego/sqldag/dag"
	"github.com/rulego/sqldag/functions"
	"github.com/rulego/sqldag/types"
)

// Evaluator runs DAG nodes over record batches.
type Evaluator struct {
	mem              memory.Allocator
	catalog          *functions.FunctionRegistry
	maxRangeElements int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithAllocator sets the allocator for result arrays.
func WithAllocator(mem memory.Allocator) Option {
	return func(e *Evaluator) {
		if mem != nil {
			e.mem = mem
		}
	}
}

// WithCatalog sets the primitive catalog, functions.Default() otherwise.
func WithCatalog(catalog *functions.FunctionRegistry) Option {
	return func(e *Evaluator) {
		if catalog != nil {
			e.catalog = catalog
		}
	}
}

// WithMaxRangeElements limits the size of a single range result.
func WithMaxRangeElements(n int) Option {
	return func(e *Evaluator) {
		e.maxRangeElements = n
	}
}

func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		mem:              memory.DefaultAllocator,
		catalog:          functions.Default(),
		maxRangeElements: types.DefaultMaxRangeElements,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Eval evaluates root over rec and returns the result column. The caller
// releases the returned array.
func (e *Evaluator) Eval(root *dag.Node, rec arrow.Record) (arrow.Array, error) {
	values, err := e.EvalValues(root, rec)
	if err != nil {
		return nil, err
	}
	return buildArray(e.mem, root.Type, values)
}

// EvalValues evaluates root over rec and returns one canonical value per row.
func (e *Evaluator) EvalValues(root *dag.Node, rec arrow.Record) ([]interface{}, error) {
	out, err := e.EvalAll([]*dag.Node{root}, rec)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// EvalAll evaluates several roots over rec. Nodes shared between roots are
// computed once.
func (e *Evaluator) EvalAll(roots []*dag.Node, rec arrow.Record) ([][]interface{}, error) {
	b := &batch{
		eval: e,
		rec:  rec,
		rows: int(rec.NumRows()),
		memo: make(map[*dag.Node][]interface{}),
	}
	out := make([][]interface{}, len(roots))
	for i, root := range roots {
		values, err := b.column(root)
		if err != nil {
			return nil, err
		}
		out[i] = values
	}
	return out, nil
}

type batch struct {
	eval *Evaluator
	rec  arrow.Record
	rows int
	memo map[*dag.Node][]interface{}
}

func (b *batch) column(n *dag.Node) ([]interface{}, error) {
	if values, ok := b.memo[n]; ok {
		return values, nil
	}
	var (
		values []interface{}
		err    error
	)
	switch n.Kind {
	case dag.KindInput:
		values, err = b.input(n)
	case dag.KindConstant:
		values = make([]interface{}, b.rows)
		for i := range values {
			values[i] = n.Value
		}
	default:
		values, err = b.apply(n)
	}
	if err != nil {
		return nil, err
	}
	b.memo[n] = values
	return values, nil
}

func (b *batch) input(n *dag.Node) ([]interface{}, error) {
	idx := b.rec.Schema().FieldIndices(n.Name)
	if len(idx) == 0 {
		return nil, fmt.Errorf("input column %s not found in record", n.Name)
	}
	want, err := ArrowType(n.Type)
	if err != nil {
		return nil, err
	}
	col := b.rec.Column(idx[0])
	if !arrow.TypeEqual(col.DataType(), want) {
		return nil, fmt.Errorf("input column %s has arrow type %s, expected %s", n.Name, col.DataType(), want)
	}
	values := Values(col)
	if !n.IsNullable() {
		for i, v := range values {
			if v == nil {
				return nil, fmt.Errorf("input column %s: NULL in row %d of non-nullable column", n.Name, i)
			}
		}
	}
	return values, nil
}

func (b *batch) apply(n *dag.Node) ([]interface{}, error) {
	fn, ok := b.eval.catalog.Get(n.Function)
	if !ok {
		return nil, types.NewUnsupportedFunction(n.Function)
	}
	children := make([][]interface{}, len(n.Children))
	for i, c := range n.Children {
		values, err := b.column(c)
		if err != nil {
			return nil, err
		}
		children[i] = values
	}

	ctx := &functions.FunctionContext{ResultType: n.Type, MaxRangeElements: b.eval.maxRangeElements}
	values := make([]interface{}, b.rows)
	args := make([]interface{}, len(children))
	for row := 0; row < b.rows; row++ {
		for i := range children {
			args[i] = children[i][row]
		}
		v, err := functions.Execute(fn, ctx, args)
		if err != nil {
			return nil, fmt.Errorf("n%d %s row %d: %w", n.ID, n.Function, row, err)
		}
		values[row] = v
	}
	return values, nil
}
