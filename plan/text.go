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

package plan

import (
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"

	"github.com/rulego/sqldag/types"
)

// binaryFunctions maps infix operators to function names.
var binaryFunctions = map[string]string{
	"+":  "add",
	"-":  "subtract",
	"*":  "multiply",
	"%":  "modulus",
	"==": "equal",
	"!=": "not_equal",
	"<":  "lt",
	"<=": "lte",
	">":  "gt",
	">=": "gte",
}

// ParseText parses one expression such as "sequence(a, b, 3)" into a plan
// over schema. Identifiers name schema columns, calls name functions.
func ParseText(src string, schema []types.Column) (*Plan, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", src, err)
	}
	tp := &textPlan{
		plan:    &Plan{},
		columns: make(map[string]int, len(schema)),
		anchors: make(map[string]uint32),
	}
	for i, c := range schema {
		tp.plan.Schema = append(tp.plan.Schema, Column{Name: c.Name, Type: c.Type.Name()})
		tp.columns[c.Name] = i
	}
	e, err := tp.convert(tree.Node)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", src, err)
	}
	tp.plan.Expressions = []Expression{e}
	return tp.plan, nil
}

type textPlan struct {
	plan    *Plan
	columns map[string]int
	anchors map[string]uint32
}

func (tp *textPlan) anchor(name string) uint32 {
	name = strings.ToLower(name)
	if a, ok := tp.anchors[name]; ok {
		return a
	}
	a := uint32(len(tp.anchors) + 1)
	tp.anchors[name] = a
	tp.plan.Extensions = append(tp.plan.Extensions, Extension{Anchor: a, Name: name})
	return a
}

func (tp *textPlan) call(name string, args ...ast.Node) (Expression, error) {
	sf := &ScalarFunction{FunctionReference: tp.anchor(name)}
	for _, arg := range args {
		e, err := tp.convert(arg)
		if err != nil {
			return Expression{}, err
		}
		sf.Arguments = append(sf.Arguments, e)
	}
	return Expression{ScalarFunction: sf}, nil
}

func (tp *textPlan) convert(node ast.Node) (Expression, error) {
	switch n := node.(type) {
	case *ast.IdentifierNode:
		idx, ok := tp.columns[n.Value]
		if !ok {
			return Expression{}, fmt.Errorf("unknown column %s", n.Value)
		}
		return Expression{Selection: &FieldReference{Field: idx}}, nil
	case *ast.IntegerNode:
		return intLiteral(int64(n.Value)), nil
	case *ast.FloatNode:
		return literal("Float64", n.Value), nil
	case *ast.StringNode:
		return literal("String", n.Value), nil
	case *ast.BoolNode:
		return literal("Bool", n.Value), nil
	case *ast.NilNode:
		return Expression{Literal: &Literal{Type: "Nullable(Int32)", Null: true}}, nil
	case *ast.UnaryNode:
		switch n.Operator {
		case "-":
			switch v := n.Node.(type) {
			case *ast.IntegerNode:
				return intLiteral(-int64(v.Value)), nil
			case *ast.FloatNode:
				return literal("Float64", -v.Value), nil
			}
			// -x is 0 - x
			zero := &ast.IntegerNode{Value: 0}
			return tp.call("subtract", zero, n.Node)
		case "+":
			return tp.convert(n.Node)
		}
		return Expression{}, fmt.Errorf("unsupported unary operator %s", n.Operator)
	case *ast.BinaryNode:
		fn, ok := binaryFunctions[n.Operator]
		if !ok {
			return Expression{}, fmt.Errorf("unsupported operator %s", n.Operator)
		}
		return tp.call(fn, n.Left, n.Right)
	case *ast.CallNode:
		callee, ok := n.Callee.(*ast.IdentifierNode)
		if !ok {
			return Expression{}, fmt.Errorf("unsupported callee %s", n.Callee.String())
		}
		return tp.call(callee.Value, n.Arguments...)
	case *ast.BuiltinNode:
		return tp.call(n.Name, n.Arguments...)
	default:
		return Expression{}, fmt.Errorf("unsupported expression %s", node.String())
	}
}

func intLiteral(v int64) Expression {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return literal("Int64", v)
	}
	return literal("Int32", v)
}

func literal(typeName string, v interface{}) Expression {
	return Expression{Literal: &Literal{Type: typeName, Value: v}}
}
