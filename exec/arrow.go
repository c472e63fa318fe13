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

package exec

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/rulego/sqldag/functions"
	"github.com/rulego/sqldag/types"
)

// ArrowType maps a data type to its arrow type. Nullability is carried by
// the field, not the type.
func ArrowType(t types.DataType) (arrow.DataType, error) {
	bare := types.RemoveNullable(t)
	if elem, ok := types.ElemOf(bare); ok {
		et, err := ArrowType(elem)
		if err != nil {
			return nil, err
		}
		return arrow.ListOf(et), nil
	}
	k, _ := types.KindOf(bare)
	switch k {
	case types.Bool:
		return arrow.FixedWidthTypes.Boolean, nil
	case types.Int8:
		return arrow.PrimitiveTypes.Int8, nil
	case types.Int16:
		return arrow.PrimitiveTypes.Int16, nil
	case types.Int32:
		return arrow.PrimitiveTypes.Int32, nil
	case types.Int64:
		return arrow.PrimitiveTypes.Int64, nil
	case types.UInt8:
		return arrow.PrimitiveTypes.Uint8, nil
	case types.UInt16:
		return arrow.PrimitiveTypes.Uint16, nil
	case types.UInt32:
		return arrow.PrimitiveTypes.Uint32, nil
	case types.UInt64:
		return arrow.PrimitiveTypes.Uint64, nil
	case types.Float32:
		return arrow.PrimitiveTypes.Float32, nil
	case types.Float64:
		return arrow.PrimitiveTypes.Float64, nil
	case types.String:
		return arrow.BinaryTypes.String, nil
	}
	return nil, fmt.Errorf("no arrow type for %s", t.Name())
}

// Field returns the arrow field for a named column.
func Field(name string, t types.DataType) (arrow.Field, error) {
	at, err := ArrowType(t)
	if err != nil {
		return arrow.Field{}, err
	}
	return arrow.Field{Name: name, Type: at, Nullable: types.IsNullable(t)}, nil
}

// NewRecord builds a record with one row per entry of rows. Values are
// coerced to the column types.
func NewRecord(mem memory.Allocator, columns []types.Column, rows [][]interface{}) (arrow.Record, error) {
	fields := make([]arrow.Field, len(columns))
	for i, c := range columns {
		f, err := Field(c.Name, c.Type)
		if err != nil {
			return nil, err
		}
		fields[i] = f
	}
	schema := arrow.NewSchema(fields, nil)

	builders := make([]array.Builder, len(columns))
	for i, f := range fields {
		builders[i] = array.NewBuilder(mem, f.Type)
	}
	defer func() {
		for _, b := range builders {
			b.Release()
		}
	}()

	for r, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, schema has %d columns", r, len(row), len(columns))
		}
		for i, c := range columns {
			v, err := functions.CoerceValue(c.Type, row[i])
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", r, c.Name, err)
			}
			if err := appendValue(builders[i], v); err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", r, c.Name, err)
			}
		}
	}

	cols := make([]arrow.Array, len(builders))
	for i, b := range builders {
		cols[i] = b.NewArray()
	}
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()
	return array.NewRecord(schema, cols, int64(len(rows))), nil
}

// buildArray turns canonical values into an arrow array of type t.
func buildArray(mem memory.Allocator, t types.DataType, values []interface{}) (arrow.Array, error) {
	at, err := ArrowType(t)
	if err != nil {
		return nil, err
	}
	b := array.NewBuilder(mem, at)
	defer b.Release()
	for _, v := range values {
		if err := appendValue(b, v); err != nil {
			return nil, err
		}
	}
	return b.NewArray(), nil
}

func appendValue(b array.Builder, v interface{}) error {
	if v == nil {
		b.AppendNull()
		return nil
	}
	switch bb := b.(type) {
	case *array.BooleanBuilder:
		x, ok := v.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", v)
		}
		bb.Append(x)
	case *array.Int8Builder:
		bb.Append(int8(v.(int64)))
	case *array.Int16Builder:
		bb.Append(int16(v.(int64)))
	case *array.Int32Builder:
		bb.Append(int32(v.(int64)))
	case *array.Int64Builder:
		bb.Append(v.(int64))
	case *array.Uint8Builder:
		bb.Append(uint8(v.(int64)))
	case *array.Uint16Builder:
		bb.Append(uint16(v.(int64)))
	case *array.Uint32Builder:
		bb.Append(uint32(v.(int64)))
	case *array.Uint64Builder:
		bb.Append(uint64(v.(int64)))
	case *array.Float32Builder:
		bb.Append(float32(v.(float64)))
	case *array.Float64Builder:
		bb.Append(v.(float64))
	case *array.StringBuilder:
		x, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		bb.Append(x)
	case *array.ListBuilder:
		items, ok := v.([]interface{})
		if !ok {
			return fmt.Errorf("expected array, got %T", v)
		}
		bb.Append(true)
		vb := bb.ValueBuilder()
		for _, item := range items {
			if err := appendValue(vb, item); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported builder %T", b)
	}
	return nil
}

// valueAt reads row i of arr as a canonical value.
func valueAt(arr arrow.Array, i int) interface{} {
	if arr.IsNull(i) {
		return nil
	}
	switch a := arr.(type) {
	case *array.Boolean:
		return a.Value(i)
	case *array.Int8:
		return int64(a.Value(i))
	case *array.Int16:
		return int64(a.Value(i))
	case *array.Int32:
		return int64(a.Value(i))
	case *array.Int64:
		return a.Value(i)
	case *array.Uint8:
		return int64(a.Value(i))
	case *array.Uint16:
		return int64(a.Value(i))
	case *array.Uint32:
		return int64(a.Value(i))
	case *array.Uint64:
		return int64(a.Value(i))
	case *array.Float32:
		return float64(a.Value(i))
	case *array.Float64:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	case *array.List:
		start, end := a.ValueOffsets(i)
		values := a.ListValues()
		out := make([]interface{}, 0, end-start)
		for j := start; j < end; j++ {
			out = append(out, valueAt(values, int(j)))
		}
		return out
	default:
		return nil
	}
}

// Values reads every row of arr as canonical values.
func Values(arr arrow.Array) []interface{} {
	out := make([]interface{}, arr.Len())
	for i := range out {
		out[i] = valueAt(arr, i)
	}
	return out
}
