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

/*
Package parser holds the function handlers and the registry that dispatches
a function name to its handler.

A handler lowers one serialized call into DAG nodes. It translates its
arguments through the Context it was built with, emits primitives on the
shared builder and returns the node holding the call's result:

	type PlusOneParser struct{ *parser.BaseParser }

	func NewPlusOneParser(ctx parser.Context) parser.FunctionParser {
		return &PlusOneParser{parser.NewBaseParser("plus_one", 1, 1, ctx)}
	}

	func (p *PlusOneParser) Parse(call *plan.ScalarFunction, b *dag.Builder) (*dag.Node, error) {
		args, err := p.ParseArguments(call, b)
		if err != nil {
			return nil, err
		}
		one, err := p.AddConstant(b, types.NewScalar(types.Int32), 1)
		if err != nil {
			return nil, err
		}
		n, err := p.ToFunctionNode(b, "plus", args[0], one)
		if err != nil {
			return nil, err
		}
		return p.ConvertNodeTypeIfNeeded(call, n, b)
	}

Handlers are registered explicitly and the registry is frozen before use:

	r := parser.NewRegistry()
	_ = parser.RegisterBuiltins(r)
	r.MustRegister("plus_one", NewPlusOneParser)
	r.Freeze()

Names are matched case-insensitively. Registering a name twice is an error.
*/
package parser
