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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/sqldag/types"
)

func TestComparisonFunctions(t *testing.T) {
	tests := []struct {
		name     string
		funcName string
		argTypes []string
		args     []interface{}
		expected interface{}
	}{
		{"equals", "equals", []string{"Int32", "Int32"}, []interface{}{int64(0), int64(0)}, true},
		{"equals mixed", "equals", []string{"Int32", "Float64"}, []interface{}{int64(1), 1.0}, true},
		{"notEquals", "notEquals", []string{"Int32", "Int32"}, []interface{}{int64(1), int64(2)}, true},
		{"less", "less", []string{"Int64", "Int32"}, []interface{}{int64(-1), int64(0)}, true},
		{"lessOrEquals", "lessOrEquals", []string{"Int64", "Int64"}, []interface{}{int64(3), int64(3)}, true},
		{"greater", "greater", []string{"Float64", "Int64"}, []interface{}{2.5, int64(3)}, false},
		{"greaterOrEquals strings", "greaterOrEquals", []string{"String", "String"}, []interface{}{"b", "a"}, true},
		{"equals bool", "equals", []string{"Bool", "Bool"}, []interface{}{true, false}, false},
		{"null operand", "equals", []string{"Nullable(Int32)", "Int32"}, []interface{}{nil, int64(0)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := call(t, tt.funcName, tt.argTypes, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestComparisonReturnTypes(t *testing.T) {
	rt, err := Default().ResolveReturnType("equals", parseTypes(t, "Int64", "Int32"))
	require.NoError(t, err)
	assert.Equal(t, "Bool", rt.Name())

	rt, err = Default().ResolveReturnType("less", parseTypes(t, "Nullable(Int32)", "Int32"))
	require.NoError(t, err)
	assert.Equal(t, "Nullable(Bool)", rt.Name())

	for _, bad := range [][]string{{"String", "Int32"}, {"Array(Int32)", "Array(Int32)"}} {
		_, err := Default().ResolveReturnType("equals", parseTypes(t, bad...))
		assert.True(t, errors.Is(err, types.ErrTypeMismatch), "%v", bad)
	}
}

func TestNullFunctions(t *testing.T) {
	got, err := call(t, "isNull", []string{"Nullable(Int32)"}, int64(1))
	require.NoError(t, err)
	assert.Equal(t, false, got)

	got, err = call(t, "isNotNull", []string{"Nullable(Int32)"}, nil)
	require.NoError(t, err)
	assert.Equal(t, false, got)

	got, err = call(t, "assumeNotNull", []string{"Nullable(Int32)"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)

	got, err = call(t, "assumeNotNull", []string{"Nullable(Array(Int64))"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{}, got)

	got, err = call(t, "assumeNotNull", []string{"Nullable(Int32)"}, int64(7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), got)

	rt, err := Default().ResolveReturnType("assumeNotNull", parseTypes(t, "Nullable(Int32)"))
	require.NoError(t, err)
	assert.Equal(t, "Int32", rt.Name())
	rt, err = Default().ResolveReturnType("isNull", parseTypes(t, "Int32"))
	require.NoError(t, err)
	assert.Equal(t, "Bool", rt.Name())
}
