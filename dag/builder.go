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
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/rulego/sqldag/functions"
	"github.com/rulego/sqldag/types"
)

// Builder is the append-only arena all nodes of one translation live in.
// Identical requests return the same *Node. A Builder is not safe for
// concurrent use.
type Builder struct {
	catalog *functions.FunctionRegistry
	nodes   []*Node
	index   map[uint64][]*Node
	inputs  map[string]*Node
}

// Option configures a Builder.
type Option func(*Builder)

// WithCatalog replaces the engine primitive catalog used to type functions.
func WithCatalog(catalog *functions.FunctionRegistry) Option {
	return func(b *Builder) {
		if catalog != nil {
			b.catalog = catalog
		}
	}
}

// NewBuilder creates an empty builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		catalog: functions.Default(),
		index:   make(map[uint64][]*Node),
		inputs:  make(map[string]*Node),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Catalog returns the primitive catalog the builder types functions with.
func (b *Builder) Catalog() *functions.FunctionRegistry {
	return b.catalog
}

// AddInput references the input column name of type t.
func (b *Builder) AddInput(name string, t types.DataType) (*Node, error) {
	if name == "" {
		return nil, types.NewTypeMismatch("", "input column name must not be empty")
	}
	if t == nil {
		return nil, types.NewTypeMismatch("", "input column %s has no type", name)
	}
	if n, ok := b.inputs[name]; ok {
		if !types.Equal(n.Type, t) {
			return nil, types.NewTypeMismatch("", "input column %s already has type %s, got %s", name, n.Type.Name(), t.Name())
		}
		return n, nil
	}
	n := b.intern(&Node{Kind: KindInput, Type: t, Name: name})
	b.inputs[name] = n
	return n, nil
}

// AddConstant adds a literal of type t. A nil value is the NULL literal and
// requires a nullable type.
func (b *Builder) AddConstant(t types.DataType, value interface{}) (*Node, error) {
	if t == nil {
		return nil, types.NewTypeMismatch("", "constant has no type")
	}
	v, err := functions.CoerceValue(t, value)
	if err != nil {
		return nil, err
	}
	return b.intern(&Node{Kind: KindConstant, Type: t, Name: constantName(t, v), Value: v}), nil
}

// AddFunction applies the engine primitive name to args. The result type is
// resolved by the catalog.
func (b *Builder) AddFunction(name string, args ...*Node) (*Node, error) {
	fn, ok := b.catalog.Get(name)
	if !ok {
		return nil, types.NewUnsupportedFunction(name)
	}
	argTypes := make([]types.DataType, len(args))
	for i, arg := range args {
		if arg == nil {
			return nil, types.NewTypeMismatch(name, "argument %d is nil", i)
		}
		argTypes[i] = arg.Type
	}
	rt, err := functions.ResolveReturnType(fn, argTypes)
	if err != nil {
		return nil, err
	}
	return b.intern(&Node{
		Kind:     KindFunction,
		Type:     rt,
		Name:     functionName(name, args),
		Children: append([]*Node(nil), args...),
		Function: name,
	}), nil
}

// ConvertType returns n itself when it already has type target, otherwise a
// _CAST node producing target.
func (b *Builder) ConvertType(n *Node, target types.DataType) (*Node, error) {
	if n == nil || target == nil {
		return nil, types.NewTypeMismatch(functions.CastFunctionName, "nothing to convert")
	}
	if types.Equal(n.Type, target) {
		return n, nil
	}
	if !functions.CanConvert(n.Type, target) {
		return nil, types.NewTypeMismatch(functions.CastFunctionName, "cannot convert %s to %s", n.Type.Name(), target.Name())
	}
	typeName, err := b.AddConstant(types.NewScalar(types.String), target.Name())
	if err != nil {
		return nil, err
	}
	args := []*Node{n, typeName}
	return b.intern(&Node{
		Kind:     KindFunction,
		Type:     target,
		Name:     fmt.Sprintf("%s(%s, '%s')", functions.CastFunctionName, n.Name, target.Name()),
		Children: args,
		Function: functions.CastFunctionName,
	}), nil
}

// Mark returns a position Rollback can return to.
func (b *Builder) Mark() int {
	return len(b.nodes)
}

// Rollback discards every node created after mark.
func (b *Builder) Rollback(mark int) {
	if mark < 0 || mark >= len(b.nodes) {
		return
	}
	for _, n := range b.nodes[mark:] {
		key := internKey(n.Kind, n.key)
		bucket := b.index[key]
		for i, m := range bucket {
			if m == n {
				bucket = append(bucket[:i], bucket[i+1:]...)
				break
			}
		}
		if len(bucket) == 0 {
			delete(b.index, key)
		} else {
			b.index[key] = bucket
		}
		if n.Kind == KindInput && b.inputs[n.Name] == n {
			delete(b.inputs, n.Name)
		}
		b.nodes[n.ID] = nil
	}
	b.nodes = b.nodes[:mark]
}

// Nodes returns all nodes in creation order.
func (b *Builder) Nodes() []*Node {
	return append([]*Node(nil), b.nodes...)
}

// Len is the number of nodes in the builder.
func (b *Builder) Len() int {
	return len(b.nodes)
}

// Node returns the node with the given ID.
func (b *Builder) Node(id int) (*Node, bool) {
	if id < 0 || id >= len(b.nodes) {
		return nil, false
	}
	return b.nodes[id], true
}

func (b *Builder) intern(n *Node) *Node {
	n.key = identity(n)
	key := internKey(n.Kind, n.key)
	for _, m := range b.index[key] {
		if m.Kind == n.Kind && m.key == n.key {
			return m
		}
	}
	n.ID = len(b.nodes)
	b.nodes = append(b.nodes, n)
	b.index[key] = append(b.index[key], n)
	return n
}

// identity is the structural key of n. Function nodes are keyed by the
// primitive and the IDs of their children, never by display names: an input
// column may carry the same name as a constant.
func identity(n *Node) string {
	if n.Kind != KindFunction {
		return n.Name
	}
	var sb strings.Builder
	sb.WriteString(n.Function)
	for i, c := range n.Children {
		if i == 0 {
			sb.WriteByte('#')
		} else {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(c.ID))
	}
	return sb.String()
}

func internKey(kind NodeKind, key string) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(strconv.Itoa(int(kind)))
	_, _ = d.WriteString("|")
	_, _ = d.WriteString(key)
	return d.Sum64()
}

func (b *Builder) String() string {
	return fmt.Sprintf("Builder(%d nodes)", len(b.nodes))
}
