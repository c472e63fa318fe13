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

package types

import (
	"fmt"
	"strings"
)

// Kind identifies a scalar type.
type Kind int

const (
	Bool Kind = iota
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float32
	Float64
	String
)

var kindNames = map[Kind]string{
	Bool:    "Bool",
	Int8:    "Int8",
	Int16:   "Int16",
	Int32:   "Int32",
	Int64:   "Int64",
	UInt8:   "UInt8",
	UInt16:  "UInt16",
	UInt32:  "UInt32",
	UInt64:  "UInt64",
	Float32: "Float32",
	Float64: "Float64",
	String:  "String",
}

// String returns the engine name of the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// DataType describes the result type of a DAG node.
// Name is canonical: two types are equal if and only if their names are equal.
type DataType interface {
	// Name returns the canonical name, e.g. Nullable(Array(Int64))
	Name() string
	String() string
}

// Scalar is a non-nullable scalar type
type Scalar struct {
	Kind Kind
}

func (s *Scalar) Name() string   { return s.Kind.String() }
func (s *Scalar) String() string { return s.Name() }

// Array is a variable length array of Elem
type Array struct {
	Elem DataType
}

func (a *Array) Name() string   { return "Array(" + a.Elem.Name() + ")" }
func (a *Array) String() string { return a.Name() }

// Nullable wraps Inner with a per-value presence flag.
// Inner is never itself Nullable.
type Nullable struct {
	Inner DataType
}

func (n *Nullable) Name() string   { return "Nullable(" + n.Inner.Name() + ")" }
func (n *Nullable) String() string { return n.Name() }

var scalars = map[Kind]*Scalar{}

func init() {
	for k := range kindNames {
		scalars[k] = &Scalar{Kind: k}
	}
}

// NewScalar returns the shared descriptor for kind k.
func NewScalar(k Kind) DataType {
	if s, ok := scalars[k]; ok {
		return s
	}
	return &Scalar{Kind: k}
}

// NewArray returns Array(elem)
func NewArray(elem DataType) DataType {
	return &Array{Elem: elem}
}

// MakeNullable wraps t in Nullable. It is idempotent.
func MakeNullable(t DataType) DataType {
	if IsNullable(t) {
		return t
	}
	return &Nullable{Inner: t}
}

// RemoveNullable strips one Nullable wrapper if present.
func RemoveNullable(t DataType) DataType {
	if n, ok := t.(*Nullable); ok {
		return n.Inner
	}
	return t
}

// IsNullable reports whether t is Nullable(...)
func IsNullable(t DataType) bool {
	_, ok := t.(*Nullable)
	return ok
}

// Equal compares two types by canonical name.
func Equal(a, b DataType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name() == b.Name()
}

// KindOf returns the scalar kind of t after stripping Nullable.
func KindOf(t DataType) (Kind, bool) {
	if s, ok := RemoveNullable(t).(*Scalar); ok {
		return s.Kind, true
	}
	return 0, false
}

// ElemOf returns the element type of an (optionally nullable) array.
func ElemOf(t DataType) (DataType, bool) {
	if a, ok := RemoveNullable(t).(*Array); ok {
		return a.Elem, true
	}
	return nil, false
}

func IsInteger(t DataType) bool {
	k, ok := KindOf(t)
	return ok && k >= Int8 && k <= UInt64
}

func IsSigned(t DataType) bool {
	k, ok := KindOf(t)
	return ok && ((k >= Int8 && k <= Int64) || k == Float32 || k == Float64)
}

func IsFloat(t DataType) bool {
	k, ok := KindOf(t)
	return ok && (k == Float32 || k == Float64)
}

func IsNumeric(t DataType) bool {
	return IsInteger(t) || IsFloat(t)
}

// SizeOf returns the width in bytes of a numeric kind, 0 otherwise.
func SizeOf(k Kind) int {
	switch k {
	case Int8, UInt8, Bool:
		return 1
	case Int16, UInt16:
		return 2
	case Int32, UInt32, Float32:
		return 4
	case Int64, UInt64, Float64:
		return 8
	default:
		return 0
	}
}

// IntegerOf returns the integer kind of the given width and signedness.
func IntegerOf(size int, signed bool) (Kind, bool) {
	switch {
	case size <= 1:
		return pick(signed, Int8, UInt8), true
	case size <= 2:
		return pick(signed, Int16, UInt16), true
	case size <= 4:
		return pick(signed, Int32, UInt32), true
	case size <= 8:
		return pick(signed, Int64, UInt64), true
	}
	return 0, false
}

func pick(signed bool, s, u Kind) Kind {
	if signed {
		return s
	}
	return u
}

// Parse parses a canonical type name back into a DataType.
func Parse(name string) (DataType, error) {
	s := strings.TrimSpace(name)
	switch {
	case strings.HasPrefix(s, "Nullable(") && strings.HasSuffix(s, ")"):
		inner, err := Parse(s[len("Nullable(") : len(s)-1])
		if err != nil {
			return nil, err
		}
		if IsNullable(inner) {
			return nil, fmt.Errorf("nested Nullable in type %q", name)
		}
		return MakeNullable(inner), nil
	case strings.HasPrefix(s, "Array(") && strings.HasSuffix(s, ")"):
		elem, err := Parse(s[len("Array(") : len(s)-1])
		if err != nil {
			return nil, err
		}
		return NewArray(elem), nil
	}
	for k, n := range kindNames {
		if n == s {
			return NewScalar(k), nil
		}
	}
	return nil, fmt.Errorf("unknown type %q", name)
}

// MustParse is like Parse but panics on error. Intended for tests and tables.
func MustParse(name string) DataType {
	t, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return t
}

var shortNames = map[string]Kind{
	"bool": Bool,
	"i8":   Int8,
	"i16":  Int16,
	"i32":  Int32,
	"i64":  Int64,
	"u8":   UInt8,
	"u16":  UInt16,
	"u32":  UInt32,
	"u64":  UInt64,
	"fp32": Float32,
	"fp64": Float64,
	"str":  String,
}

// ParseShortName maps a Substrait signature short name (i32, fp64, str, ...)
// to a scalar type.
func ParseShortName(short string) (DataType, error) {
	if k, ok := shortNames[strings.ToLower(strings.TrimSpace(short))]; ok {
		return NewScalar(k), nil
	}
	return nil, fmt.Errorf("unknown signature type %q", short)
}
