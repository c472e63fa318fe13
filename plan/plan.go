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

// Package plan decodes serialized scalar function calls.
package plan

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rulego/sqldag/types"
)

// Plan is a serialized list of scalar expressions over one input schema.
type Plan struct {
	Extensions  []Extension  `yaml:"extensions" json:"extensions"`
	Schema      []Column     `yaml:"schema" json:"schema"`
	Expressions []Expression `yaml:"expressions" json:"expressions"`
}

// Extension declares a function anchor. Name is a function spec such as
// "sequence:i32_i32".
type Extension struct {
	Anchor uint32 `yaml:"anchor" json:"anchor"`
	Name   string `yaml:"name" json:"name"`
}

// Column is one input column, Type is a type name like "Nullable(Int32)".
type Column struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// Expression holds exactly one of its fields.
type Expression struct {
	Literal        *Literal        `yaml:"literal,omitempty" json:"literal,omitempty"`
	Selection      *FieldReference `yaml:"selection,omitempty" json:"selection,omitempty"`
	ScalarFunction *ScalarFunction `yaml:"scalar_function,omitempty" json:"scalar_function,omitempty"`
}

// Literal is a typed constant. Null marks the NULL literal of a nullable type.
type Literal struct {
	Type  string      `yaml:"type" json:"type"`
	Value interface{} `yaml:"value,omitempty" json:"value,omitempty"`
	Null  bool        `yaml:"null,omitempty" json:"null,omitempty"`
}

// FieldReference selects an input column by position.
type FieldReference struct {
	Field int `yaml:"field" json:"field"`
}

// ScalarFunction is a call to the function declared under FunctionReference.
// OutputType may be empty when the caller does not prescribe a result type.
type ScalarFunction struct {
	FunctionReference uint32       `yaml:"function_reference" json:"function_reference"`
	Arguments         []Expression `yaml:"arguments" json:"arguments"`
	OutputType        string       `yaml:"output_type,omitempty" json:"output_type,omitempty"`
}

// Decode reads a YAML or JSON plan and validates it.
func Decode(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var p Plan
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode plan: empty document")
		}
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(data []byte) (*Plan, error) {
	return Decode(bytes.NewReader(data))
}

// Encode writes p as YAML.
func Encode(w io.Writer, p *Plan) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks anchors, column types and the shape of every expression.
func (p *Plan) Validate() error {
	anchors := make(map[uint32]bool, len(p.Extensions))
	for _, ext := range p.Extensions {
		if anchors[ext.Anchor] {
			return fmt.Errorf("duplicate function anchor %d", ext.Anchor)
		}
		if FunctionName(ext.Name) == "" {
			return fmt.Errorf("function anchor %d has no name", ext.Anchor)
		}
		anchors[ext.Anchor] = true
	}
	if _, err := p.Columns(); err != nil {
		return err
	}
	for i := range p.Expressions {
		if err := p.validateExpression(&p.Expressions[i]); err != nil {
			return fmt.Errorf("expression %d: %w", i, err)
		}
	}
	return nil
}

func (p *Plan) validateExpression(e *Expression) error {
	set := 0
	if e.Literal != nil {
		set++
	}
	if e.Selection != nil {
		set++
	}
	if e.ScalarFunction != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("expression must hold exactly one of literal, selection, scalar_function")
	}
	switch {
	case e.Literal != nil:
		t, err := types.Parse(e.Literal.Type)
		if err != nil {
			return err
		}
		if e.Literal.Null && !types.IsNullable(t) {
			return types.NewTypeMismatch("", "NULL literal of non-nullable type %s", t.Name())
		}
	case e.Selection != nil:
		if e.Selection.Field < 0 || e.Selection.Field >= len(p.Schema) {
			return fmt.Errorf("field %d out of range, schema has %d columns", e.Selection.Field, len(p.Schema))
		}
	default:
		sf := e.ScalarFunction
		if _, err := p.FunctionName(sf.FunctionReference); err != nil {
			return err
		}
		if sf.OutputType != "" {
			if _, err := types.Parse(sf.OutputType); err != nil {
				return err
			}
		}
		for i := range sf.Arguments {
			if err := p.validateExpression(&sf.Arguments[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Columns returns the parsed input schema.
func (p *Plan) Columns() ([]types.Column, error) {
	cols := make([]types.Column, len(p.Schema))
	for i, c := range p.Schema {
		t, err := types.Parse(c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.Name, err)
		}
		cols[i] = types.Column{Name: c.Name, Type: t}
	}
	return cols, nil
}

// FunctionName returns the bare, lower-case function name declared under
// anchor.
func (p *Plan) FunctionName(anchor uint32) (string, error) {
	for _, ext := range p.Extensions {
		if ext.Anchor == anchor {
			return FunctionName(ext.Name), nil
		}
	}
	return "", fmt.Errorf("unknown function reference %d", anchor)
}

// FunctionName strips the signature from a compound function spec:
// "sequence:i32_i32" becomes "sequence".
func FunctionName(spec string) string {
	name, _, _ := strings.Cut(spec, ":")
	return strings.ToLower(strings.TrimSpace(name))
}

// SignatureTypes parses the argument types of a compound function spec.
// A spec without signature yields no types.
func SignatureTypes(spec string) ([]types.DataType, error) {
	_, sig, ok := strings.Cut(spec, ":")
	if !ok || sig == "" {
		return nil, nil
	}
	parts := strings.Split(sig, "_")
	out := make([]types.DataType, 0, len(parts))
	for _, part := range parts {
		t, err := types.ParseShortName(part)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", spec, err)
		}
		out = append(out, t)
	}
	return out, nil
}
