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
	"math"

	"github.com/rulego/sqldag/types"
)

// ErrDivisionByZero is returned by modulo for a zero divisor.
var ErrDivisionByZero = errors.New("division by zero")

type arithmeticOp int

const (
	opPlus arithmeticOp = iota
	opMinus
	opMultiply
)

// ArithmeticFunction implements plus, minus and multiply.
//
// Integer results are one size wider than the widest operand (capped at
// 64 bits) and signed if either operand is signed; minus is always signed.
// Any float operand gives Float64.
type ArithmeticFunction struct {
	*BaseFunction
	op arithmeticOp
}

func NewPlusFunction() *ArithmeticFunction {
	return &ArithmeticFunction{
		BaseFunction: NewBaseFunction("plus", TypeMath, "a + b", 2, 2, true),
		op:           opPlus,
	}
}

func NewMinusFunction() *ArithmeticFunction {
	return &ArithmeticFunction{
		BaseFunction: NewBaseFunction("minus", TypeMath, "a - b", 2, 2, true),
		op:           opMinus,
	}
}

func NewMultiplyFunction() *ArithmeticFunction {
	return &ArithmeticFunction{
		BaseFunction: NewBaseFunction("multiply", TypeMath, "a * b", 2, 2, true),
		op:           opMultiply,
	}
}

func (f *ArithmeticFunction) ReturnType(args []types.DataType) (types.DataType, error) {
	if err := requireNumeric(f.GetName(), args...); err != nil {
		return nil, err
	}
	if types.IsFloat(args[0]) || types.IsFloat(args[1]) {
		return types.NewScalar(types.Float64), nil
	}
	ka, _ := types.KindOf(args[0])
	kb, _ := types.KindOf(args[1])
	size := max(types.SizeOf(ka), types.SizeOf(kb)) * 2
	if size > 8 {
		size = 8
	}
	signed := f.op == opMinus || types.IsSigned(args[0]) || types.IsSigned(args[1])
	k, _ := types.IntegerOf(size, signed)
	return types.NewScalar(k), nil
}

func (f *ArithmeticFunction) Execute(ctx *FunctionContext, args []interface{}) (interface{}, error) {
	if types.IsFloat(ctx.ResultType) {
		a, b := toFloat(args[0]), toFloat(args[1])
		switch f.op {
		case opPlus:
			return a + b, nil
		case opMinus:
			return a - b, nil
		default:
			return a * b, nil
		}
	}
	a, b := toInt(args[0]), toInt(args[1])
	switch f.op {
	case opPlus:
		return a + b, nil
	case opMinus:
		return a - b, nil
	default:
		return a * b, nil
	}
}

// ModuloFunction implements modulo. The remainder takes the sign of the
// dividend; the integer result type has the width of the divisor.
type ModuloFunction struct {
	*BaseFunction
}

func NewModuloFunction() *ModuloFunction {
	return &ModuloFunction{
		BaseFunction: NewBaseFunction("modulo", TypeMath, "a % b, sign of a", 2, 2, true),
	}
}

func (f *ModuloFunction) ReturnType(args []types.DataType) (types.DataType, error) {
	if err := requireNumeric(f.GetName(), args...); err != nil {
		return nil, err
	}
	if types.IsFloat(args[0]) || types.IsFloat(args[1]) {
		return types.NewScalar(types.Float64), nil
	}
	kb, _ := types.KindOf(args[1])
	k, _ := types.IntegerOf(types.SizeOf(kb), types.IsSigned(args[0]) || types.IsSigned(args[1]))
	return types.NewScalar(k), nil
}

func (f *ModuloFunction) Execute(ctx *FunctionContext, args []interface{}) (interface{}, error) {
	if types.IsFloat(ctx.ResultType) {
		b := toFloat(args[1])
		if b == 0 {
			return nil, ErrDivisionByZero
		}
		return math.Mod(toFloat(args[0]), b), nil
	}
	b := toInt(args[1])
	if b == 0 {
		return nil, ErrDivisionByZero
	}
	k, _ := types.KindOf(ctx.ResultType)
	return wrapInt(toInt(args[0])%b, k), nil
}

func requireNumeric(name string, args ...types.DataType) error {
	for _, arg := range args {
		if !types.IsNumeric(arg) {
			return types.NewTypeMismatch(name, "illegal type %s of argument, expected a number", arg.Name())
		}
	}
	return nil
}

func requireInteger(name string, args ...types.DataType) error {
	for _, arg := range args {
		if !types.IsInteger(arg) {
			return types.NewTypeMismatch(name, "illegal type %s of argument, expected an integer", arg.Name())
		}
	}
	return nil
}

func toInt(v interface{}) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case float64:
		return int64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	default:
		panic(fmt.Sprintf("invalid operation: int(%T)", v))
	}
}

func toFloat(v interface{}) float64 {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case float64:
		return x
	default:
		panic(fmt.Sprintf("invalid operation: float(%T)", v))
	}
}
