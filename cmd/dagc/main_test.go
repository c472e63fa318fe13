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

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/sqldag/types"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCommandPresence(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"explain", "eval", "functions"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "tree", format.DefValue)
}

func TestExplainList(t *testing.T) {
	out, err := run(t, "explain", "a + b", "--schema", "a:Int32,b:Int32", "--format", "list", "--log-level", "off")
	require.NoError(t, err)
	assert.Equal(t, "n0 = input a :: Int32\nn1 = input b :: Int32\nn2 = plus(n0, n1) :: Int64\n", out)
}

func TestExplainTree(t *testing.T) {
	out, err := run(t, "explain", "sequence(a, b)", "--schema", "a:Int32,b:Nullable(Int32)")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "multiIf"), out)
	assert.True(t, strings.Contains(out, ":: Nullable(Array(Int64))"), out)
}

func TestExplainPlanFile(t *testing.T) {
	path := writeFile(t, "plan.yaml", `
extensions: [{anchor: 1, name: "sequence:i32_i32"}]
schema: [{name: start, type: Int32}, {name: end, type: Int32}]
expressions:
  - scalar_function:
      function_reference: 1
      arguments: [{selection: {field: 0}}, {selection: {field: 1}}]
`)
	out, err := run(t, "explain", "--plan", path, "--format", "list")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "n0 = input start :: Int32\n"), out)
	assert.True(t, strings.Contains(out, "range("), out)

	_, err = run(t, "explain", "a", "--plan", path)
	assert.Error(t, err)
}

func TestEval(t *testing.T) {
	out, err := run(t, "eval", "sequence(a, b)",
		"--schema", "a:Int32,b:Nullable(Int32)",
		"--rows", "[[1, 5], [3, null], [5, 1]]")
	require.NoError(t, err)
	assert.Equal(t, "[1, 2, 3, 4, 5]\nNULL\n[5, 4, 3, 2, 1]\n", out)
}

func TestEvalTable(t *testing.T) {
	out, err := run(t, "eval", "a + b", "--schema", "a:Int32,b:Int32", "--rows", "[[1, 2]]", "--table")
	require.NoError(t, err)
	want := "" +
		"+------+------+------+\n" +
		"| a    | b    | out0 |\n" +
		"+------+------+------+\n" +
		"| 1    | 2    | 3    |\n" +
		"+------+------+------+\n" +
		"(1 rows)\n"
	assert.Equal(t, want, out)
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"arity", []string{"eval", "sequence(a)", "--schema", "a:Int32"}, types.ErrArityMismatch},
		{"unsupported", []string{"eval", "nope(a)", "--schema", "a:Int32"}, types.ErrUnsupportedFunction},
		{"bad rows", []string{"eval", "a", "--schema", "a:Int32", "--rows", "[[1"}, nil},
		{"bad schema", []string{"explain", "a", "--schema", "a"}, nil},
		{"bad format", []string{"explain", "a", "--schema", "a:Int32", "--format", "dot"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			if tt.want != nil {
				assert.True(t, errors.Is(err, tt.want), "got %v", err)
			}
		})
	}
}

func TestFunctions(t *testing.T) {
	out, err := run(t, "functions")
	require.NoError(t, err)
	names := strings.Fields(out)
	assert.Contains(t, names, "sequence")
	assert.Contains(t, names, "pmod")
	assert.NotContains(t, names, "multiIf")

	out, err = run(t, "functions", "--primitives")
	require.NoError(t, err)
	assert.Contains(t, strings.Fields(out), "multiIf")
}

func TestEnvironment(t *testing.T) {
	t.Setenv("DAGC_SCHEMA", "a:Int32,b:Int32")
	t.Setenv("DAGC_FORMAT", "list")
	t.Setenv("DAGC_MAX_RANGE_ELEMENTS", "3")

	out, err := run(t, "explain", "a + b")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "n2 = plus(n0, n1) :: Int64\n"), out)

	_, err = run(t, "eval", "sequence(a, b)", "--rows", "[[1, 10]]")
	assert.Error(t, err)

	// flags win over the environment
	out, err = run(t, "explain", "a + b", "--format", "tree")
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(out, "n0 ="), out)
}

func TestConfigFile(t *testing.T) {
	path := writeFile(t, "dagc.yaml", "format: list\nschema: \"x:Int64\"\nlog-level: \"off\"\n")

	out, err := run(t, "explain", "x", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "n0 = input x :: Int64\n", out)

	_, err = run(t, "explain", "x", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
