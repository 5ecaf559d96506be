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

import (
	"fmt"
	"math"
	"reflect"
)

// This file provides the pure Go (scalar) register constructors and the
// lane-wise arithmetic every kernel is defined by. Native instruction
// selection happens below this layer; whatever realizes a kernel must
// produce the same value per lane as these functions.

// Load creates a vector from exactly MaxLanes[T]() values.
func Load[T Lanes](src []T) (Vec[T], error) {
	return LoadTag(ScalableTag[T]{}, src)
}

// LoadTag creates a vector from exactly LanesFor[T](tag) values.
func LoadTag[T Lanes](tag Tag, src []T) (Vec[T], error) {
	n, err := tagLanes[T](tag)
	if err != nil {
		return Vec[T]{}, err
	}
	if err := checkLen("load source", len(src), n); err != nil {
		return Vec[T]{}, err
	}
	data := make([]T, n)
	copy(data, src)
	return Vec[T]{data: data}, nil
}

// Set creates a vector with all lanes set to the same value.
func Set[T Lanes](value T) Vec[T] {
	return Vec[T]{data: splat(MaxLanes[T](), value)}
}

// SetTag creates a vector of the tag's width with all lanes set to value.
func SetTag[T Lanes](tag Tag, value T) (Vec[T], error) {
	n, err := tagLanes[T](tag)
	if err != nil {
		return Vec[T]{}, err
	}
	return Vec[T]{data: splat(n, value)}, nil
}

// Zero creates a vector with all lanes set to zero.
func Zero[T Lanes]() Vec[T] {
	return Vec[T]{data: make([]T, MaxLanes[T]())}
}

// ZeroTag creates a zero vector of the tag's width.
func ZeroTag[T Lanes](tag Tag) (Vec[T], error) {
	n, err := tagLanes[T](tag)
	if err != nil {
		return Vec[T]{}, err
	}
	return Vec[T]{data: make([]T, n)}, nil
}

// Iota returns a vector with lane i set to i.
func Iota[T Lanes]() Vec[T] {
	n := MaxLanes[T]()
	data := make([]T, n)
	for i := range data {
		data[i] = T(i)
	}
	return Vec[T]{data: data}
}

// MaskFromBits creates a mask from exactly MaxLanes[T]() booleans.
func MaskFromBits[T Lanes](bits []bool) (Mask[T], error) {
	return MaskFromBitsTag[T](ScalableTag[T]{}, bits)
}

// MaskFromBitsTag creates a mask from exactly LanesFor[T](tag) booleans.
func MaskFromBitsTag[T Lanes](tag Tag, bits []bool) (Mask[T], error) {
	n, err := tagLanes[T](tag)
	if err != nil {
		return Mask[T]{}, err
	}
	if err := checkLen("mask source", len(bits), n); err != nil {
		return Mask[T]{}, err
	}
	out := make([]bool, n)
	copy(out, bits)
	return Mask[T]{bits: out}, nil
}

func tagLanes[T Lanes](tag Tag) (int, error) {
	n := LanesFor[T](tag)
	if n <= 0 {
		var zero T
		return 0, fmt.Errorf("tag %s (%d bytes) holds no %T lanes: %w", tag.Name(), tag.Width(), zero, ErrShapeMismatch)
	}
	return n, nil
}

func splat[T Lanes](n int, value T) []T {
	data := make([]T, n)
	for i := range data {
		data[i] = value
	}
	return data
}

// isFloat reports whether T is a floating-point lane type.
func isFloat[T Lanes]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// Add performs element-wise addition.
func Add[T Lanes](a, b Vec[T]) (Vec[T], error) {
	return Apply(OpAdd, a, b)
}

// Sub performs element-wise subtraction: a - b.
func Sub[T Lanes](a, b Vec[T]) (Vec[T], error) {
	return Apply(OpSub, a, b)
}

// Mul performs element-wise multiplication.
func Mul[T Lanes](a, b Vec[T]) (Vec[T], error) {
	return Apply(OpMul, a, b)
}

// Div performs element-wise division.
func Div[T Floats](a, b Vec[T]) (Vec[T], error) {
	return Apply(OpDiv, a, b)
}

// Min returns the element-wise minimum. A NaN in either lane yields NaN.
func Min[T Lanes](a, b Vec[T]) (Vec[T], error) {
	return Apply(OpMin, a, b)
}

// Max returns the element-wise maximum. A NaN in either lane yields NaN.
func Max[T Lanes](a, b Vec[T]) (Vec[T], error) {
	return Apply(OpMax, a, b)
}

// Neg negates each lane. Unsigned lanes wrap.
func Neg[T Lanes](v Vec[T]) (Vec[T], error) {
	return Apply(OpNeg, v)
}

// Abs returns the absolute value of each lane.
func Abs[T Lanes](v Vec[T]) (Vec[T], error) {
	return Apply(OpAbs, v)
}

// Sqrt returns the square root of each lane.
func Sqrt[T Floats](v Vec[T]) (Vec[T], error) {
	return Apply(OpSqrt, v)
}

// MulAdd performs fused multiply-add: a*b + c.
func MulAdd[T Floats](a, b, c Vec[T]) (Vec[T], error) {
	return Apply(OpMulAdd, a, b, c)
}

// MulSub performs fused multiply-subtract: a*b - c.
func MulSub[T Floats](a, b, c Vec[T]) (Vec[T], error) {
	return Apply(OpMulSub, a, b, c)
}

// NegMulAdd performs fused negated multiply-add: c - a*b.
//
// For float64 the product and the subtraction are rounded once, as a native
// FNMADD (x86) or FMLS (ARM) does. float32 lanes are computed fused in
// float64 and then rounded to float32, so they are rounded twice and may
// differ from a native float32 FNMADD by one ulp when the float64 result
// lands exactly halfway between two float32 values. For inputs whose
// product is exact in T every form equals computing c - a*b in two steps.
func NegMulAdd[T Floats](a, b, c Vec[T]) (Vec[T], error) {
	return Apply(OpNegMulAdd, a, b, c)
}

// NegMulSub performs fused negated multiply-subtract: -(a*b) - c.
func NegMulSub[T Floats](a, b, c Vec[T]) (Vec[T], error) {
	return Apply(OpNegMulSub, a, b, c)
}

// Lane-wise scalar definitions. Float-only helpers are reached only after
// Apply has checked isFloat[T].

func addLane[T Lanes](a, b T) T { return a + b }
func subLane[T Lanes](a, b T) T { return a - b }
func mulLane[T Lanes](a, b T) T { return a * b }
func divLane[T Lanes](a, b T) T { return a / b }
func minLane[T Lanes](a, b T) T { return min(a, b) }
func maxLane[T Lanes](a, b T) T { return max(a, b) }
func negLane[T Lanes](a T) T { return -a }

// absFloatLane uses math.Abs, which clears the sign of -0 and NaN.
func absFloatLane[T Lanes](a T) T {
	return T(math.Abs(float64(a)))
}

func absIntLane[T Lanes](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

func sqrtLane[T Lanes](a T) T {
	return T(math.Sqrt(float64(a)))
}

// The fused helpers promote to float64 and round once through math.FMA.
// float32 results are then rounded again on conversion back to T.

func mulAddLane[T Lanes](a, b, c T) T {
	return T(math.FMA(float64(a), float64(b), float64(c)))
}

func mulSubLane[T Lanes](a, b, c T) T {
	return T(math.FMA(float64(a), float64(b), -float64(c)))
}

func negMulAddLane[T Lanes](a, b, c T) T {
	return T(math.FMA(-float64(a), float64(b), float64(c)))
}

func negMulSubLane[T Lanes](a, b, c T) T {
	return T(math.FMA(-float64(a), float64(b), -float64(c)))
}
