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

package dag

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/rulego/sqldag/functions"
)

// Reachable returns every node reachable from roots, ordered by ID.
func Reachable(roots ...*Node) []*Node {
	seen := make(map[*Node]struct{})
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		for _, c := range n.Children {
			walk(c)
		}
		out = append(out, n)
	}
	for _, r := range roots {
		walk(r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Dump writes one line per node reachable from roots:
//
//	n0 = input start :: Int32
//	n1 = const 1 :: Int32
//	n2 = lessOrEquals(n0, n1) :: Bool
func Dump(w io.Writer, roots ...*Node) error {
	for _, n := range Reachable(roots...) {
		if _, err := fmt.Fprintf(w, "n%d = %s :: %s\n", n.ID, describe(n), n.Type.Name()); err != nil {
			return err
		}
	}
	return nil
}

// DumpString is Dump into a string.
func DumpString(roots ...*Node) string {
	var sb strings.Builder
	_ = Dump(&sb, roots...)
	return sb.String()
}

// Explain renders roots as a tree. A node shared by several parents is
// expanded once, later occurrences only name it.
func Explain(roots ...*Node) string {
	tree := treeprint.New()
	expanded := make(map[*Node]struct{})
	var visit func(parent treeprint.Tree, n *Node)
	visit = func(parent treeprint.Tree, n *Node) {
		text := fmt.Sprintf("n%d %s :: %s", n.ID, label(n), n.Type.Name())
		if len(n.Children) == 0 {
			parent.AddNode(text)
			return
		}
		if _, ok := expanded[n]; ok {
			parent.AddNode(text + " ^")
			return
		}
		expanded[n] = struct{}{}
		branch := parent.AddBranch(text)
		for _, c := range n.Children {
			visit(branch, c)
		}
	}
	for _, r := range roots {
		if r != nil {
			visit(tree, r)
		}
	}
	return tree.String()
}

func describe(n *Node) string {
	switch n.Kind {
	case KindInput:
		return "input " + n.Name
	case KindConstant:
		return "const " + functions.FormatValue(n.Value)
	default:
		ids := make([]string, len(n.Children))
		for i, c := range n.Children {
			ids[i] = fmt.Sprintf("n%d", c.ID)
		}
		return n.Function + "(" + strings.Join(ids, ", ") + ")"
	}
}

func label(n *Node) string {
	switch n.Kind {
	case KindInput:
		return "input " + n.Name
	case KindConstant:
		return "const " + functions.FormatValue(n.Value)
	default:
		return n.Function
	}
}
