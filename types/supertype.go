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
	"strings"
)

// LeastSupertype returns the narrowest type every input can be converted to
// without loss. The result is nullable if any input is nullable.
//
// Integers of mixed signedness widen to a signed integer large enough for the
// unsigned operand; UInt64 mixed with a signed integer has no supertype.
// Integers mixed with floats give Float64.
func LeastSupertype(ts ...DataType) (DataType, error) {
	if len(ts) == 0 {
		return nil, NewTypeMismatch("", "no types to unify")
	}
	nullable := false
	bare := make([]DataType, len(ts))
	for i, t := range ts {
		if IsNullable(t) {
			nullable = true
		}
		bare[i] = RemoveNullable(t)
	}
	res, err := supertypeOf(bare)
	if err != nil {
		return nil, err
	}
	if nullable {
		return MakeNullable(res), nil
	}
	return res, nil
}

func supertypeOf(ts []DataType) (DataType, error) {
	first := ts[0]
	same := true
	for _, t := range ts[1:] {
		if !Equal(first, t) {
			same = false
			break
		}
	}
	if same {
		return first, nil
	}

	if _, ok := first.(*Array); ok {
		elems := make([]DataType, len(ts))
		for i, t := range ts {
			a, ok := t.(*Array)
			if !ok {
				return nil, mismatch(ts)
			}
			elems[i] = a.Elem
		}
		elem, err := LeastSupertype(elems...)
		if err != nil {
			return nil, err
		}
		return NewArray(elem), nil
	}

	for _, t := range ts {
		if !IsNumeric(t) {
			return nil, mismatch(ts)
		}
	}
	return numericSupertype(ts)
}

func numericSupertype(ts []DataType) (DataType, error) {
	var (
		anyFloat    bool
		maxSigned   int
		maxUnsigned int
		unsigned64  bool
		signedSeen  bool
	)
	for _, t := range ts {
		k, _ := KindOf(t)
		switch {
		case IsFloat(t):
			anyFloat = true
		case IsSigned(t):
			signedSeen = true
			if s := SizeOf(k); s > maxSigned {
				maxSigned = s
			}
		default:
			if k == UInt64 {
				unsigned64 = true
			}
			if s := SizeOf(k); s > maxUnsigned {
				maxUnsigned = s
			}
		}
	}
	if anyFloat {
		return NewScalar(Float64), nil
	}
	if !signedSeen {
		k, _ := IntegerOf(maxUnsigned, false)
		return NewScalar(k), nil
	}
	if unsigned64 {
		return nil, mismatch(ts)
	}
	size := maxSigned
	if maxUnsigned >= size {
		size = maxUnsigned * 2
	}
	k, ok := IntegerOf(size, true)
	if !ok {
		return nil, mismatch(ts)
	}
	return NewScalar(k), nil
}

func mismatch(ts []DataType) error {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.Name()
	}
	return NewTypeMismatch("", "no supertype for types %s", strings.Join(names, ", "))
}
