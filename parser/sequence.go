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

// SequenceParser lowers sequence(start, end[, step]): the integers from start
// to end inclusive, stepping by step. The default step is 1 when start <= end
// and -1 otherwise. The result is NULL when any argument is NULL.
//
// The engine's range excludes its end, so the DAG computes both
//
//	range(start, end + step, step)   when (end - start) % step == 0
//	range(start, end, step)          otherwise
//
// and picks one per row.
type SequenceParser struct {
	*BaseParser
}

func NewSequenceParser(ctx Context) FunctionParser {
	return &SequenceParser{BaseParser: NewBaseParser("sequence", 2, 3, ctx)}
}

func (p *SequenceParser) Parse(call *plan.ScalarFunction, b *dag.Builder) (*dag.Node, error) {
	args, err := p.ParseArguments(call, b)
	if err != nil {
		return nil, err
	}
	start, end := args[0], args[1]

	var step *dag.Node
	if len(args) == 3 {
		step = args[2]
	} else {
		step, err = p.defaultStep(b, start, end)
		if err != nil {
			return nil, err
		}
	}

	startNullable, endNullable, stepNullable := start.IsNullable(), end.IsNullable(), step.IsNullable()

	startNN, err := p.assumeNotNull(b, start)
	if err != nil {
		return nil, err
	}
	endNN, err := p.assumeNotNull(b, end)
	if err != nil {
		return nil, err
	}
	stepNN, err := p.assumeNotNull(b, step)
	if err != nil {
		return nil, err
	}

	// NULL rows of step get 1 so the eagerly evaluated divisor is never a
	// stand-in zero. Those rows are discarded by the null guard below.
	stepForRange := stepNN
	if stepNullable {
		isNullStep, err := p.ToFunctionNode(b, "isNull", step)
		if err != nil {
			return nil, err
		}
		one, err := p.AddConstant(b, types.NewScalar(types.Int32), 1)
		if err != nil {
			return nil, err
		}
		stepForRange, err = p.ToFunctionNode(b, "if", isNullStep, one, stepNN)
		if err != nil {
			return nil, err
		}
	}

	diff, err := p.ToFunctionNode(b, "minus", endNN, startNN)
	if err != nil {
		return nil, err
	}
	remainder, err := p.ToFunctionNode(b, "modulo", diff, stepForRange)
	if err != nil {
		return nil, err
	}
	zero, err := p.AddConstant(b, types.NewScalar(types.Int32), 0)
	if err != nil {
		return nil, err
	}
	inclusive, err := p.ToFunctionNode(b, "equals", remainder, zero)
	if err != nil {
		return nil, err
	}
	pastEnd, err := p.ToFunctionNode(b, "plus", endNN, stepForRange)
	if err != nil {
		return nil, err
	}
	rangeIncl, err := p.ToFunctionNode(b, "range", startNN, pastEnd, stepForRange)
	if err != nil {
		return nil, err
	}
	rangeExcl, err := p.ToFunctionNode(b, "range", startNN, endNN, stepForRange)
	if err != nil {
		return nil, err
	}

	var result *dag.Node
	if !startNullable && !endNullable && !stepNullable {
		result, err = p.ToFunctionNode(b, "if", inclusive, rangeIncl, rangeExcl)
	} else {
		result, err = p.nullGuarded(b, []guard{
			{start, startNullable},
			{end, endNullable},
			{step, stepNullable},
		}, inclusive, rangeIncl, rangeExcl)
	}
	if err != nil {
		return nil, err
	}
	return p.ConvertNodeTypeIfNeeded(call, result, b)
}

// defaultStep is if(start <= end, 1, -1). A NULL comparison picks -1, the row
// is NULL anyway.
func (p *SequenceParser) defaultStep(b *dag.Builder, start, end *dag.Node) (*dag.Node, error) {
	le, err := p.ToFunctionNode(b, "lessOrEquals", start, end)
	if err != nil {
		return nil, err
	}
	i32 := types.NewScalar(types.Int32)
	one, err := p.AddConstant(b, i32, 1)
	if err != nil {
		return nil, err
	}
	minusOne, err := p.AddConstant(b, i32, -1)
	if err != nil {
		return nil, err
	}
	return p.ToFunctionNode(b, "if", le, one, minusOne)
}

func (p *SequenceParser) assumeNotNull(b *dag.Builder, n *dag.Node) (*dag.Node, error) {
	if !n.IsNullable() {
		return n, nil
	}
	return p.ToFunctionNode(b, "assumeNotNull", n)
}

type guard struct {
	arg      *dag.Node
	nullable bool
}

// nullGuarded builds
//
//	multiIf(isNull(start), NULL, isNull(end), NULL, isNull(step), NULL,
//	        inclusive, rangeIncl, rangeExcl)
//
// over Nullable results, leaving out guards for non-nullable arguments.
func (p *SequenceParser) nullGuarded(b *dag.Builder, guards []guard, inclusive, rangeIncl, rangeExcl *dag.Node) (*dag.Node, error) {
	resultType := types.MakeNullable(rangeIncl.Type)
	incl, err := b.ConvertType(rangeIncl, resultType)
	if err != nil {
		return nil, err
	}
	excl, err := b.ConvertType(rangeExcl, resultType)
	if err != nil {
		return nil, err
	}
	null, err := p.AddConstant(b, resultType, nil)
	if err != nil {
		return nil, err
	}

	branches := make([]*dag.Node, 0, 2*len(guards)+3)
	for _, g := range guards {
		if !g.nullable {
			continue
		}
		isNull, err := p.ToFunctionNode(b, "isNull", g.arg)
		if err != nil {
			return nil, err
		}
		branches = append(branches, isNull, null)
	}
	branches = append(branches, inclusive, incl, excl)
	return p.ToFunctionNode(b, "multiIf", branches...)
}
