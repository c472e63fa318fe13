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

/*
Package types provides the type descriptors, error taxonomy and configuration
shared by every layer of the compiler.

# Core Features

• Data Types - Scalar kinds, Array(T) and Nullable(T) with canonical names
• Type Rules - LeastSupertype for branches and range arguments
• Compile Errors - ArityMismatch, UnsupportedFunction, TypeMismatch
• Configuration - Config for the CLI and the facade

# Data Types

Every DAG node carries a DataType. Names are canonical, so two types are equal
exactly when their names are equal, and Parse is the inverse of Name:

	t, _ := types.Parse("Nullable(Array(Int64))")
	types.IsNullable(t)                  // true
	types.RemoveNullable(t).Name()       // Array(Int64)
	types.MakeNullable(t) == t           // true, MakeNullable is idempotent

Nullable never nests. Substrait signature short names (i32, fp64, str, ...)
map to scalar types through ParseShortName.

# Supertypes

	types.LeastSupertype(types.MustParse("Int32"), types.MustParse("Nullable(Int64)"))
	// Nullable(Int64)

Mixed signedness widens to a signed integer large enough for the unsigned
operand. UInt64 mixed with a signed integer has no supertype.

# Errors

All compile failures are *CompileError. Match them by kind:

	if errors.Is(err, types.ErrArityMismatch) {
		...
	}
*/
package types
