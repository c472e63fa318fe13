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
	"strings"

	"github.com/rulego/sqldag/functions"
	"github.com/rulego/sqldag/types"
)

// NodeKind 节点类型
type NodeKind int

const (
	// KindInput references an input column
	KindInput NodeKind = iota
	// KindConstant is a typed literal
	KindConstant
	// KindFunction applies an engine primitive to child nodes
	KindFunction
)

func (k NodeKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindConstant:
		return "const"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Node is one computed or input value in the expression graph.
// Nodes are immutable once returned by a Builder and owned by it.
type Node struct {
	// ID is the creation index inside the owning builder
	ID int
	Kind NodeKind
	Type types.DataType
	// Name is the canonical result name, for display only
	Name     string
	Children []*Node

	// Function is the primitive name for KindFunction nodes
	Function string
	// Value is the canonical literal for KindConstant nodes
	Value interface{}

	key string
}

// IsNullable reports whether the node's result type is Nullable.
func (n *Node) IsNullable() bool {
	return types.IsNullable(n.Type)
}

func (n *Node) String() string {
	return n.Name + " :: " + n.Type.Name()
}

func constantName(t types.DataType, v interface{}) string {
	return functions.FormatValue(v) + "_" + t.Name()
}

func functionName(name string, args []*Node) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.Name)
	}
	sb.WriteByte(')')
	return sb.String()
}
