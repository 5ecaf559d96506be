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

// IfThenElse performs conditional selection: lane i is yes[i] where
// mask[i] is set and no[i] otherwise. All three must hold the same,
// non-zero, number of lanes.
//
// This is the only place mask semantics are defined. Masked and MaskedZero
// route through it, so a native blend (VBLENDMPS, BSL) belongs here.
func IfThenElse[T Lanes](mask Mask[T], yes, no Vec[T]) (Vec[T], error) {
	n := mask.NumLanes()
	if n == 0 {
		return Vec[T]{}, fmt.Errorf("select given a 0-lane mask: %w", ErrShapeMismatch)
	}
	if err := checkLen("select true operand", yes.NumLanes(), n); err != nil {
		return Vec[T]{}, err
	}
	if err := checkLen("select false operand", no.NumLanes(), n); err != nil {
		return Vec[T]{}, err
	}
	return selectLanes(mask, yes, no), nil
}

func selectLanes[T Lanes](mask Mask[T], yes, no Vec[T]) Vec[T] {
	result := make([]T, len(mask.bits))
	for i, bit := range mask.bits {
		if bit {
			result[i] = yes.data[i]
		} else {
			result[i] = no.data[i]
		}
	}
	return Vec[T]{data: result}
}

// IfThenElseZero returns a where mask is true, zero otherwise.
// Equivalent to IfThenElse(mask, a, zero).
func IfThenElseZero[T Lanes](mask Mask[T], a Vec[T]) (Vec[T], error) {
	return IfThenElse(mask, a, zeroLike(a))
}

// Masked applies the kernel op to operands and keeps the result only in
// lanes where mask is set; every other lane is taken from fallback.
//
// The full kernel is computed and then blended, so the result does not
// depend on any native masked instruction form. Errors are those of Apply,
// plus ErrShapeMismatch when mask or fallback disagree with the operands'
// lane count.
func Masked[T Lanes](op Op, fallback Vec[T], mask Mask[T], operands ...Vec[T]) (Vec[T], error) {
	if err := checkKernel(op, operands); err != nil {
		return Vec[T]{}, err
	}
	n := operands[0].NumLanes()
	if err := checkLen("mask", mask.NumLanes(), n); err != nil {
		return Vec[T]{}, err
	}
	if err := checkLen("fallback", fallback.NumLanes(), n); err != nil {
		return Vec[T]{}, err
	}
	return IfThenElse(mask, runKernel(op, operands), fallback)
}

// MaskedZero applies the kernel op to operands and keeps the result only in
// lanes where mask is set; every other lane is zero.
//
// It is Masked with a zero fallback of the operands' width.
func MaskedZero[T Lanes](op Op, mask Mask[T], operands ...Vec[T]) (Vec[T], error) {
	if err := checkKernel(op, operands); err != nil {
		return Vec[T]{}, err
	}
	return Masked(op, zeroLike(operands[0]), mask, operands...)
}

func zeroLike[T Lanes](v Vec[T]) Vec[T] {
	return Vec[T]{data: make([]T, v.NumLanes())}
}
