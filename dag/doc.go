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
Package dag builds the primitive DAG a function call is lowered into.

A Builder owns an append-only list of nodes. Each node is an input column, a
typed constant or the application of an engine primitive to earlier nodes, so
children always have smaller IDs than their parents and the graph is acyclic
by construction.

# Interning

Requesting a node that already exists returns the existing one. Inputs are
keyed by column name, constants by value and type, functions by primitive
name and children:

	b := dag.NewBuilder()
	a, _ := b.AddInput("a", types.MustParse("Int32"))
	one, _ := b.AddConstant(types.MustParse("Int32"), 1)
	x, _ := b.AddFunction("plus", a, one)
	y, _ := b.AddFunction("plus", a, one)
	// x == y, b.Len() == 3

# Types

AddFunction resolves the result type through the primitive catalog, which
applies the default null rules. ConvertType inserts a _CAST node only when
the types differ and the conversion is allowed.

# Rollback

	mark := b.Mark()
	if _, err := lower(b); err != nil {
		b.Rollback(mark) // nodes created after mark are gone
	}

# Printing

Dump writes one line per reachable node, Explain renders a tree:

	n0 = input a :: Int32
	n1 = const 1 :: Int32
	n2 = plus(n0, n1) :: Int64
*/
package dag
