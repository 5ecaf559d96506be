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

// Package hwytest provides input generators, independent scalar references
// and lane comparisons for testing code built on hwy.
package hwytest

import (
	"math"
	"math/rand/v2"
	"testing"

	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ajroetker/go-highway-masked/hwy"
)

// ShuffledIota returns start, start+1, ..., start+n-1 permuted by a PRNG
// seeded with seed. The same seed always yields the same order.
func ShuffledIota[T hwy.Lanes](n int, start T, seed uint64) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = start + T(i)
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))
	rng.Shuffle(n, func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// HalfMask returns n booleans, the first n/2 true and the rest false,
// permuted by a PRNG seeded with seed.
func HalfMask(n int, seed uint64) []bool {
	out := make([]bool, n)
	for i := range n / 2 {
		out[i] = true
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))
	rng.Shuffle(n, func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// NegMulAddReference computes c[i] - a[i]*b[i] as a separate multiply and
// subtract. It equals hwy.NegMulAdd on every lane whose product is exact,
// which holds for the small integer-valued inputs ShuffledIota produces.
// float64 products come from algo-vecmath so the reference shares no code
// with the kernel under test.
func NegMulAddReference[T hwy.Floats](a, b, c []T) []T {
	n := len(c)
	prod := make([]T, n)
	if a64, ok := any(a).([]float64); ok {
		vecmath.MulBlock(any(prod).([]float64), a64[:n], any(b).([]float64)[:n])
	} else {
		for i := range n {
			prod[i] = a[i] * b[i]
		}
	}
	out := make([]T, n)
	for i := range n {
		out[i] = c[i] - prod[i]
	}
	return out
}

// Select returns yes[i] where bits[i] is set and no[i] elsewhere.
func Select[T hwy.Lanes](bits []bool, yes, no []T) []T {
	out := make([]T, len(bits))
	for i, bit := range bits {
		if bit {
			out[i] = yes[i]
		} else {
			out[i] = no[i]
		}
	}
	return out
}

// Diff returns a human-readable difference between want and the lanes of
// got, or "" when they match. NaN lanes compare equal to NaN.
func Diff[T hwy.Lanes](want []T, got hwy.Vec[T]) string {
	return cmp.Diff(want, got.Data(), cmpopts.EquateNaNs())
}

// SameBits reports whether x and y have identical representations, which
// distinguishes -0 from +0 and compares NaNs by payload.
func SameBits[T hwy.Lanes](x, y T) bool {
	switch xv := any(x).(type) {
	case float32:
		return math.Float32bits(xv) == math.Float32bits(any(y).(float32))
	case float64:
		return math.Float64bits(xv) == math.Float64bits(any(y).(float64))
	default:
		return x == y
	}
}

// Load builds a register of the runtime width from vals and fails tb on error.
func Load[T hwy.Lanes](tb testing.TB, vals []T) hwy.Vec[T] {
	tb.Helper()
	v, err := hwy.Load(vals)
	if err != nil {
		tb.Fatalf("hwy.Load: %v", err)
	}
	return v
}

// Mask builds a mask of the runtime width from bits and fails tb on error.
func Mask[T hwy.Lanes](tb testing.TB, bits []bool) hwy.Mask[T] {
	tb.Helper()
	m, err := hwy.MaskFromBits[T](bits)
	if err != nil {
		tb.Fatalf("hwy.MaskFromBits: %v", err)
	}
	return m
}
