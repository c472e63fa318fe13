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
	"errors"
	"fmt"

	"github.com/rulego/sqldag/types"
)

// ErrZeroStep is returned by range for a zero step.
var ErrZeroStep = errors.New("range step can't be zero")

// RangeFunction range(end), range(start, end), range(start, end, step).
// The progression is half-open: end itself is never included. A negative
// step walks downwards.
type RangeFunction struct {
	*BaseFunction
}

func NewRangeFunction() *RangeFunction {
	return &RangeFunction{
		BaseFunction: NewBaseFunction("range", TypeArray, "Half-open integer progression", 1, 3, true),
	}
}

func (f *RangeFunction) ReturnType(args []types.DataType) (types.DataType, error) {
	if err := requireInteger(f.GetName(), args...); err != nil {
		return nil, err
	}
	elem, err := types.LeastSupertype(args...)
	if err != nil {
		return nil, types.NewTypeMismatch(f.GetName(), "arguments have no common integer type")
	}
	return types.NewArray(elem), nil
}

func (f *RangeFunction) Execute(ctx *FunctionContext, args []interface{}) (interface{}, error) {
	var start, end, step int64 = 0, 0, 1
	switch len(args) {
	case 1:
		end = toInt(args[0])
	case 2:
		start, end = toInt(args[0]), toInt(args[1])
	default:
		start, end, step = toInt(args[0]), toInt(args[1]), toInt(args[2])
	}
	if step == 0 {
		return nil, ErrZeroStep
	}

	count := rangeCount(start, end, step)
	limit := ctx.MaxRangeElements
	if limit <= 0 {
		limit = types.DefaultMaxRangeElements
	}
	if count > uint64(limit) {
		return nil, fmt.Errorf("range would produce %d elements, limit is %d", count, limit)
	}

	out := make([]interface{}, 0, count)
	for i, v := uint64(0), start; i < count; i, v = i+1, v+step {
		out = append(out, v)
	}
	return out, nil
}

// rangeCount is the number of elements of [start, end) by step. The span is
// taken in uint64 so the full int64 domain cannot overflow it.
func rangeCount(start, end, step int64) uint64 {
	var span, stride uint64
	switch {
	case step > 0 && end > start:
		span, stride = uint64(end)-uint64(start), uint64(step)
	case step < 0 && end < start:
		span, stride = uint64(start)-uint64(end), uint64(-(step+1))+1
	default:
		return 0
	}
	return (span-1)/stride + 1
}

// ArrayDistinctSparkFunction removes duplicate elements keeping first
// occurrences in order. The first NULL element is kept, later ones dropped.
type ArrayDistinctSparkFunction struct {
	*BaseFunction
}

func NewArrayDistinctSparkFunction() *ArrayDistinctSparkFunction {
	return &ArrayDistinctSparkFunction{
		BaseFunction: NewBaseFunction("arrayDistinctSpark", TypeArray, "Distinct array elements, first NULL kept", 1, 1, true),
	}
}

func (f *ArrayDistinctSparkFunction) ReturnType(args []types.DataType) (types.DataType, error) {
	if _, ok := types.ElemOf(args[0]); !ok {
		return nil, types.NewTypeMismatch(f.GetName(), "argument must be array but it has type %s", args[0].Name())
	}
	return args[0], nil
}

func (f *ArrayDistinctSparkFunction) Execute(ctx *FunctionContext, args []interface{}) (interface{}, error) {
	items, ok := args[0].([]interface{})
	if !ok {
		return nil, fmt.Errorf("argument must be array, got %T", args[0])
	}
	seen := make(map[string]struct{}, len(items))
	seenNull := false
	out := make([]interface{}, 0, len(items))
	for _, item := range items {
		if item == nil {
			if !seenNull {
				seenNull = true
				out = append(out, nil)
			}
			continue
		}
		key := fmt.Sprintf("%T:%s", item, FormatValue(item))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out, nil
}
