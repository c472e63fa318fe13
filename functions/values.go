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

package functions

import (
	"fmt"
	"math"

	"github.com/spf13/cast"

	"github.com/rulego/sqldag/types"
)

// Values flowing through primitives use one Go representation per kind:
// integers int64, floats float64, Bool bool, String string, arrays []interface{},
// null nil.

var intBounds = map[types.Kind][2]int64{
	types.Int8:   {math.MinInt8, math.MaxInt8},
	types.Int16:  {math.MinInt16, math.MaxInt16},
	types.Int32:  {math.MinInt32, math.MaxInt32},
	types.Int64:  {math.MinInt64, math.MaxInt64},
	types.UInt8:  {0, math.MaxUint8},
	types.UInt16: {0, math.MaxUint16},
	types.UInt32: {0, math.MaxUint32},
	types.UInt64: {0, math.MaxInt64},
}

// CoerceValue converts a literal to the canonical representation of t.
// Out of range or non-integral values are rejected rather than wrapped.
func CoerceValue(t types.DataType, v interface{}) (interface{}, error) {
	if v == nil {
		if !types.IsNullable(t) {
			return nil, types.NewTypeMismatch("", "NULL is not a value of non-nullable type %s", t.Name())
		}
		return nil, nil
	}
	bare := types.RemoveNullable(t)
	if elem, ok := types.ElemOf(bare); ok {
		items, err := cast.ToSliceE(v)
		if err != nil {
			return nil, types.NewTypeMismatch("", "value %v is not an array", v)
		}
		out := make([]interface{}, len(items))
		for i, item := range items {
			if out[i], err = CoerceValue(elem, item); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	k, _ := types.KindOf(bare)
	switch {
	case types.IsInteger(bare):
		if f, ok := v.(float64); ok && f != math.Trunc(f) {
			return nil, types.NewTypeMismatch("", "value %v is not an integer", v)
		}
		n, err := cast.ToInt64E(v)
		if err != nil {
			return nil, types.NewTypeMismatch("", "value %v is not an integer", v)
		}
		if b := intBounds[k]; n < b[0] || n > b[1] {
			return nil, types.NewTypeMismatch("", "value %d out of range for %s", n, bare.Name())
		}
		return n, nil
	case types.IsFloat(bare):
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, types.NewTypeMismatch("", "value %v is not a number", v)
		}
		return f, nil
	case k == types.Bool:
		b, err := cast.ToBoolE(v)
		if err != nil {
			return nil, types.NewTypeMismatch("", "value %v is not a boolean", v)
		}
		return b, nil
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, types.NewTypeMismatch("", "value %v is not a string", v)
		}
		return s, nil
	}
}

// CastValue converts an already canonical value to t, wrapping integers to
// the target width the way the engine's CAST does.
func CastValue(v interface{}, t types.DataType) (interface{}, error) {
	if v == nil {
		if types.IsNullable(t) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot cast NULL to %s", t.Name())
	}
	bare := types.RemoveNullable(t)
	if elem, ok := types.ElemOf(bare); ok {
		items, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("cannot cast %T to %s", v, t.Name())
		}
		out := make([]interface{}, len(items))
		for i, item := range items {
			var err error
			if out[i], err = CastValue(item, elem); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	k, _ := types.KindOf(bare)
	switch {
	case types.IsInteger(bare):
		n, err := cast.ToInt64E(v)
		if err != nil {
			return nil, fmt.Errorf("cannot cast %v to %s: %w", v, bare.Name(), err)
		}
		return wrapInt(n, k), nil
	case types.IsFloat(bare):
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, fmt.Errorf("cannot cast %v to %s: %w", v, bare.Name(), err)
		}
		if k == types.Float32 {
			return float64(float32(f)), nil
		}
		return f, nil
	case k == types.Bool:
		return cast.ToBoolE(v)
	default:
		return cast.ToStringE(v)
	}
}

func wrapInt(n int64, k types.Kind) int64 {
	switch k {
	case types.Int8:
		return int64(int8(n))
	case types.Int16:
		return int64(int16(n))
	case types.Int32:
		return int64(int32(n))
	case types.UInt8:
		return int64(uint8(n))
	case types.UInt16:
		return int64(uint16(n))
	case types.UInt32:
		return int64(uint32(n))
	default:
		return n
	}
}

// ZeroValue is the default value of t, which assumeNotNull yields for a null.
func ZeroValue(t types.DataType) interface{} {
	bare := types.RemoveNullable(t)
	if _, ok := types.ElemOf(bare); ok {
		return []interface{}{}
	}
	k, _ := types.KindOf(bare)
	switch {
	case types.IsInteger(bare):
		return int64(0)
	case types.IsFloat(bare):
		return float64(0)
	case k == types.Bool:
		return false
	default:
		return ""
	}
}

// FormatValue renders a canonical value the way literal names are written.
func FormatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + x + "'"
	case []interface{}:
		s := "["
		for i, item := range x {
			if i > 0 {
				s += ", "
			}
			s += FormatValue(item)
		}
		return s + "]"
	default:
		return cast.ToString(x)
	}
}
