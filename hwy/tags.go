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

// Tag names a register width. LoadTag, SetTag, ZeroTag and MaskFromBitsTag
// take a Tag to fix how many lanes the value they build holds; values built
// under different tags cannot be combined.
type Tag interface {
	// Width returns the width in bytes (16 for 128-bit, 32 for 256-bit, etc.)
	Width() int

	// Name returns a human-readable name for this tag ("sse2", "128bit", etc.)
	Name() string
}

// ScalableTag is the width detected at startup, the one Load, Set, Zero and
// MaskFromBits use.
//
// Usage:
//
//	tag := hwy.ScalableTag[float32]{}
//	v, err := hwy.LoadTag(tag, data[:tag.MaxLanes()])
type ScalableTag[T Lanes] struct{}

// Width returns the current runtime SIMD width in bytes.
func (ScalableTag[T]) Width() int {
	return currentWidth
}

// Name returns the current runtime SIMD target name.
func (ScalableTag[T]) Name() string {
	return currentLevel.String()
}

// MaxLanes returns the number of T lanes at the runtime width.
func (ScalableTag[T]) MaxLanes() int {
	return MaxLanes[T]()
}

// FixedTag128 is a 128-bit register (SSE, NEON) on every target.
// Tests and examples use it to get the same lane count everywhere.
type FixedTag128[T Lanes] struct{}

// Width returns 16 bytes (128 bits).
func (FixedTag128[T]) Width() int {
	return 16
}

// Name returns "128bit".
func (FixedTag128[T]) Name() string {
	return "128bit"
}

// MaxLanes returns the number of T values that fit in 128 bits.
func (FixedTag128[T]) MaxLanes() int {
	return lanesForWidth[T](16)
}

// FixedTag256 is a 256-bit register (AVX2) on every target.
type FixedTag256[T Lanes] struct{}

// Width returns 32 bytes (256 bits).
func (FixedTag256[T]) Width() int {
	return 32
}

// Name returns "256bit".
func (FixedTag256[T]) Name() string {
	return "256bit"
}

// MaxLanes returns the number of T values that fit in 256 bits.
func (FixedTag256[T]) MaxLanes() int {
	return lanesForWidth[T](32)
}

// FixedTag512 is a 512-bit register (AVX-512) on every target.
type FixedTag512[T Lanes] struct{}

// Width returns 64 bytes (512 bits).
func (FixedTag512[T]) Width() int {
	return 64
}

// Name returns "512bit".
func (FixedTag512[T]) Name() string {
	return "512bit"
}

// MaxLanes returns the number of T values that fit in 512 bits.
func (FixedTag512[T]) MaxLanes() int {
	return lanesForWidth[T](64)
}

// LanesFor returns the number of T lanes in a register of the tag's width.
func LanesFor[T Lanes](tag Tag) int {
	return lanesForWidth[T](tag.Width())
}
