// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hwy

import "fmt"

// Op names a pure, fixed-arity, lane-wise kernel. It is the capability tag
// passed to Apply, Masked and MaskedZero to select which kernel runs.
type Op int

const (
	// OpAdd computes a + b.
	OpAdd Op = iota
	// OpSub computes a - b.
	OpSub
	// OpMul computes a * b.
	OpMul
	// OpDiv computes a / b (floats only).
	OpDiv
	// OpMin computes min(a, b).
	OpMin
	// OpMax computes max(a, b).
	OpMax
	// OpNeg computes -a.
	OpNeg
	// OpAbs computes |a|.
	OpAbs
	// OpSqrt computes sqrt(a) (floats only).
	OpSqrt
	// OpMulAdd computes a*b + c (floats only).
	OpMulAdd
	// OpMulSub computes a*b - c (floats only).
	OpMulSub
	// OpNegMulAdd computes c - a*b (floats only).
	OpNegMulAdd
	// OpNegMulSub computes -(a*b) - c (floats only).
	OpNegMulSub

	numOps
)

type opInfo struct {
	name      string
	arity     int
	floatOnly bool
}

var opTable = [numOps]opInfo{
	OpAdd:       {"add", 2, false},
	OpSub:       {"sub", 2, false},
	OpMul:       {"mul", 2, false},
	OpDiv:       {"div", 2, true},
	OpMin:       {"min", 2, false},
	OpMax:       {"max", 2, false},
	OpNeg:       {"neg", 1, false},
	OpAbs:       {"abs", 1, false},
	OpSqrt:      {"sqrt", 1, true},
	OpMulAdd:    {"muladd", 3, true},
	OpMulSub:    {"mulsub", 3, true},
	OpNegMulAdd: {"negmuladd", 3, true},
	OpNegMulSub: {"negmulsub", 3, true},
}

func (op Op) known() bool {
	return op >= 0 && op < numOps
}

// String returns the kernel's name, e.g. "negmuladd".
func (op Op) String() string {
	if !op.known() {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opTable[op].name
}

// Arity returns the number of operand registers the kernel takes,
// or 0 for an unknown Op.
func (op Op) Arity() int {
	if !op.known() {
		return 0
	}
	return opTable[op].arity
}

// FloatOnly reports whether the kernel is only defined for Floats lanes.
func (op Op) FloatOnly() bool {
	return op.known() && opTable[op].floatOnly
}

// Apply runs the kernel op over the operand registers.
//
// It returns ErrShapeMismatch if op is unknown, if op is float-only and T is
// an integer type, if the number of operands differs from op.Arity(), or if
// the operands disagree on lane count or hold no lanes.
func Apply[T Lanes](op Op, operands ...Vec[T]) (Vec[T], error) {
	if err := checkKernel(op, operands); err != nil {
		return Vec[T]{}, err
	}
	return runKernel(op, operands), nil
}

// checkKernel validates a kernel call before any lane is computed.
func checkKernel[T Lanes](op Op, operands []Vec[T]) error {
	if !op.known() {
		return fmt.Errorf("unknown kernel %v: %w", op, ErrShapeMismatch)
	}
	if op.FloatOnly() && !isFloat[T]() {
		var zero T
		return fmt.Errorf("kernel %v is not defined for %T lanes: %w", op, zero, ErrShapeMismatch)
	}
	if len(operands) != op.Arity() {
		return fmt.Errorf("kernel %v takes %d operands, got %d: %w", op, op.Arity(), len(operands), ErrShapeMismatch)
	}
	n := operands[0].NumLanes()
	if n == 0 {
		return fmt.Errorf("kernel %v given 0-lane operands: %w", op, ErrShapeMismatch)
	}
	for i, v := range operands[1:] {
		if err := checkLen(fmt.Sprintf("%v operand %d", op, i+1), v.NumLanes(), n); err != nil {
			return err
		}
	}
	return nil
}

// runKernel computes op lane by lane. The call must already have passed
// checkKernel.
func runKernel[T Lanes](op Op, operands []Vec[T]) Vec[T] {
	switch op {
	case OpAdd:
		return lanewise2(operands, addLane[T])
	case OpSub:
		return lanewise2(operands, subLane[T])
	case OpMul:
		return lanewise2(operands, mulLane[T])
	case OpDiv:
		return lanewise2(operands, divLane[T])
	case OpMin:
		return lanewise2(operands, minLane[T])
	case OpMax:
		return lanewise2(operands, maxLane[T])
	case OpNeg:
		return lanewise1(operands, negLane[T])
	case OpAbs:
		if isFloat[T]() {
			return lanewise1(operands, absFloatLane[T])
		}
		return lanewise1(operands, absIntLane[T])
	case OpSqrt:
		return lanewise1(operands, sqrtLane[T])
	case OpMulAdd:
		return lanewise3(operands, mulAddLane[T])
	case OpMulSub:
		return lanewise3(operands, mulSubLane[T])
	case OpNegMulAdd:
		return lanewise3(operands, negMulAddLane[T])
	case OpNegMulSub:
		return lanewise3(operands, negMulSubLane[T])
	}
	panic("hwy: runKernel called with unchecked op " + op.String())
}

func lanewise1[T Lanes](ops []Vec[T], f func(a T) T) Vec[T] {
	a := ops[0].data
	result := make([]T, len(a))
	for i := range result {
		result[i] = f(a[i])
	}
	return Vec[T]{data: result}
}

func lanewise2[T Lanes](ops []Vec[T], f func(a, b T) T) Vec[T] {
	a, b := ops[0].data, ops[1].data
	result := make([]T, len(a))
	for i := range result {
		result[i] = f(a[i], b[i])
	}
	return Vec[T]{data: result}
}

func lanewise3[T Lanes](ops []Vec[T], f func(a, b, c T) T) Vec[T] {
	a, b, c := ops[0].data, ops[1].data, ops[2].data
	result := make([]T, len(a))
	for i := range result {
		result[i] = f(a[i], b[i], c[i])
	}
	return Vec[T]{data: result}
}
