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

// ErrorKind 编译错误类型
type ErrorKind int

const (
	// ErrorKindArityMismatch wrong number of arguments for a function
	ErrorKindArityMismatch ErrorKind = iota + 1
	// ErrorKindUnsupportedFunction no handler or primitive for a name
	ErrorKindUnsupportedFunction
	// ErrorKindTypeMismatch incompatible types in a conversion or application
	ErrorKindTypeMismatch
)

// String returns the upper-case tag used in error messages
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindArityMismatch:
		return "ARITY_MISMATCH"
	case ErrorKindUnsupportedFunction:
		return "UNSUPPORTED_FUNCTION"
	case ErrorKindTypeMismatch:
		return "TYPE_MISMATCH"
	default:
		return "UNKNOWN_ERROR"
	}
}

// CompileError is raised while lowering a plan into a DAG. All kinds are
// deterministic: the same plan always fails the same way.
type CompileError struct {
	Kind     ErrorKind
	Function string
	Message  string
}

// Error 实现 error 接口
func (e *CompileError) Error() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("[%s]", e.Kind))
	if e.Function != "" {
		builder.WriteString(fmt.Sprintf(" function %s:", e.Function))
	}
	if e.Message != "" {
		builder.WriteString(" ")
		builder.WriteString(e.Message)
	}
	return builder.String()
}

// Is matches any CompileError of the same kind, so callers can write
// errors.Is(err, types.ErrArityMismatch).
func (e *CompileError) Is(target error) bool {
	t, ok := target.(*CompileError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Function == "" || t.Function == e.Function)
}

var (
	ErrArityMismatch       = &CompileError{Kind: ErrorKindArityMismatch}
	ErrUnsupportedFunction = &CompileError{Kind: ErrorKindUnsupportedFunction}
	ErrTypeMismatch        = &CompileError{Kind: ErrorKindTypeMismatch}
)

// NewArityMismatch reports a call to fn with got arguments where
// [minArgs, maxArgs] are accepted. maxArgs < 0 means unbounded.
func NewArityMismatch(fn string, minArgs, maxArgs, got int) *CompileError {
	var expected string
	switch {
	case maxArgs < 0:
		expected = fmt.Sprintf("at least %d", minArgs)
	case minArgs == maxArgs:
		expected = fmt.Sprintf("%d", minArgs)
	case maxArgs == minArgs+1:
		expected = fmt.Sprintf("%d or %d", minArgs, maxArgs)
	default:
		expected = fmt.Sprintf("%d to %d", minArgs, maxArgs)
	}
	return &CompileError{
		Kind:     ErrorKindArityMismatch,
		Function: fn,
		Message:  fmt.Sprintf("requires %s arguments, got %d", expected, got),
	}
}

func NewUnsupportedFunction(fn string) *CompileError {
	return &CompileError{
		Kind:     ErrorKindUnsupportedFunction,
		Function: fn,
		Message:  "not supported",
	}
}

func NewTypeMismatch(fn string, format string, args ...interface{}) *CompileError {
	return &CompileError{
		Kind:     ErrorKindTypeMismatch,
		Function: fn,
		Message:  fmt.Sprintf(format, args...),
	}
}
