// Package hwy provides portable SIMD register values and the masking layer
// that lifts any lane-wise kernel into masked and zero-masked variants.
//
// It follows the Highway C++ library's design philosophy: write once,
// run everywhere. A kernel is named by an Op and applied to registers whose
// lane count is fixed by the configured vector width; Masked and MaskedZero
// then select, lane by lane, between the kernel result and a fallback.
//
// Basic usage:
//
//	import "github.com/ajroetker/go-highway-masked/hwy"
//
//	a, _ := hwy.Load(data1)
//	b, _ := hwy.Load(data2)
//	c, _ := hwy.Load(data3)
//	m, _ := hwy.MaskFromBits[float32](active)
//
//	// c - a*b where m is set, 0 elsewhere
//	r, err := hwy.MaskedZero(hwy.OpNegMulAdd, m, a, b, c)
package hwy

import "fmt"

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored in SIMD lanes.
type Lanes interface {
	Floats | Integers
}

// Vec is a portable vector register holding a fixed number of lanes.
//
// A Vec is immutable once built. Copies may share storage, but no operation
// writes into an existing Vec, so values behave as if passed by copy.
//
// Vec instances should not be created directly; use Load, Set, or Zero instead.
type Vec[T Lanes] struct {
	data []T
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return len(v.data)
}

// Lane returns the value held in lane i.
func (v Vec[T]) Lane(i int) (T, error) {
	if i < 0 || i >= len(v.data) {
		var zero T
		return zero, fmt.Errorf("lane %d of %d-lane vector: %w", i, len(v.data), ErrIndexOutOfRange)
	}
	return v.data[i], nil
}

// Data returns a copy of the vector's lanes.
// This is primarily for testing and should not be used in performance-critical code.
func (v Vec[T]) Data() []T {
	out := make([]T, len(v.data))
	copy(out, v.data)
	return out
}

// Store writes the vector's lanes to dst and returns the number written,
// which is min(len(dst), NumLanes()).
func (v Vec[T]) Store(dst []T) int {
	return copy(dst, v.data)
}

// Mask selects lanes of a Vec[T] of the same width.
// It is consumed by IfThenElse, Masked and MaskedZero.
//
// A Mask is keyed by element type so that a mask built for float32 lanes
// cannot be combined with float64 registers; width disagreements between
// tags are rejected at run time.
type Mask[T Lanes] struct {
	// bits[i] is true if lane i is active.
	bits []bool
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int {
	return len(m.bits)
}

// Lane reports whether lane i is active.
func (m Mask[T]) Lane(i int) (bool, error) {
	if i < 0 || i >= len(m.bits) {
		return false, fmt.Errorf("lane %d of %d-lane mask: %w", i, len(m.bits), ErrIndexOutOfRange)
	}
	return m.bits[i], nil
}

// AllTrue returns true if all lanes in the mask are active.
func (m Mask[T]) AllTrue() bool {
	for _, bit := range m.bits {
		if !bit {
			return false
		}
	}
	return true
}

// AnyTrue returns true if at least one lane in the mask is active.
func (m Mask[T]) AnyTrue() bool {
	for _, bit := range m.bits {
		if bit {
			return true
		}
	}
	return false
}

// CountTrue returns the number of active lanes in the mask.
func (m Mask[T]) CountTrue() int {
	count := 0
	for _, bit := range m.bits {
		if bit {
			count++
		}
	}
	return count
}
