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
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch reports a lane count or element type that disagrees
	// with what an operation requires: wrong-length construction input,
	// mask/register width disagreement, or a kernel called with the wrong
	// number or type of operands.
	ErrShapeMismatch = errors.New("hwy: shape mismatch")

	// ErrIndexOutOfRange reports a lane index outside [0, NumLanes).
	ErrIndexOutOfRange = errors.New("hwy: lane index out of range")
)

func checkLen(what string, got, want int) error {
	if got != want {
		return fmt.Errorf("%s has %d lanes, want %d: %w", what, got, want, ErrShapeMismatch)
	}
	return nil
}
