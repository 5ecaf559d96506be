// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package block applies hwy kernels and masked kernels to whole slices.
//
// Slices are walked one register at a time. The remainder that does not
// fill a register is loaded into a zero-padded register and only its live
// lanes are stored, so inputs of any length are accepted. A *Pool spreads
// long inputs over persistent workers; a nil *Pool runs on the caller.
// dst may be the same slice as any source.
//
//	// dst[i] = c[i] - a[i]*b[i] where active[i], fallback[i] elsewhere
//	err := block.Masked(nil, hwy.OpNegMulAdd, dst, fallback, active, a, b, c)
package block

import (
	"fmt"

	"github.com/ajroetker/go-highway-masked/hwy"
)

// Apply sets dst[i] = op(srcs[0][i], srcs[1][i], ...).
func Apply[T hwy.Lanes](p *Pool, op hwy.Op, dst []T, srcs ...[]T) error {
	return run(p, &job[T]{mode: modeApply, op: op, dst: dst, srcs: srcs})
}

// Masked sets dst[i] to op(srcs...)[i] where active[i] is true and to
// fallback[i] elsewhere.
func Masked[T hwy.Lanes](p *Pool, op hwy.Op, dst, fallback []T, active []bool, srcs ...[]T) error {
	return run(p, &job[T]{mode: modeMasked, op: op, dst: dst, fallback: fallback, active: active, srcs: srcs})
}

// MaskedZero sets dst[i] to op(srcs...)[i] where active[i] is true and to
// zero elsewhere.
func MaskedZero[T hwy.Lanes](p *Pool, op hwy.Op, dst []T, active []bool, srcs ...[]T) error {
	return run(p, &job[T]{mode: modeMaskedZero, op: op, dst: dst, active: active, srcs: srcs})
}

// NegMulAdd sets dst[i] = c[i] - a[i]*b[i].
func NegMulAdd[T hwy.Floats](p *Pool, dst, a, b, c []T) error {
	return Apply(p, hwy.OpNegMulAdd, dst, a, b, c)
}

type mode int

const (
	modeApply mode = iota
	modeMasked
	modeMaskedZero
)

// job is one block call; fallback is read only in modeMasked and active
// only in the masked modes.
type job[T hwy.Lanes] struct {
	mode     mode
	op       hwy.Op
	dst      []T
	fallback []T
	active   []bool
	srcs     [][]T
}

// validate checks the whole call before dst is touched.
func (j *job[T]) validate() error {
	// Let the kernel layer check the op, its element type and its arity.
	probe := make([]hwy.Vec[T], len(j.srcs))
	for i := range probe {
		probe[i] = hwy.Zero[T]()
	}
	if _, err := hwy.Apply(j.op, probe...); err != nil {
		return fmt.Errorf("block: %w", err)
	}

	n := len(j.dst)
	for i, src := range j.srcs {
		if err := checkLen(fmt.Sprintf("source %d", i), len(src), n); err != nil {
			return err
		}
	}
	if j.mode != modeApply {
		if err := checkLen("active", len(j.active), n); err != nil {
			return err
		}
	}
	if j.mode == modeMasked {
		if err := checkLen("fallback", len(j.fallback), n); err != nil {
			return err
		}
	}
	return nil
}

func checkLen(what string, got, want int) error {
	if got != want {
		return fmt.Errorf("block: %s has %d elements, dst has %d: %w", what, got, want, hwy.ErrShapeMismatch)
	}
	return nil
}

func run[T hwy.Lanes](p *Pool, j *job[T]) error {
	if err := j.validate(); err != nil {
		return err
	}
	lanes := hwy.MaxLanes[T]()
	return p.parallelFor(len(j.dst), lanes, func(start, end int) error {
		return hwy.ProcessWithTail[T](end-start,
			func(offset int) error {
				return j.step(start+offset, lanes)
			},
			func(offset, count int) error {
				return j.step(start+offset, count)
			},
		)
	})
}

// step computes the register at dst[off:off+count], count <= MaxLanes[T]().
func (j *job[T]) step(off, count int) error {
	lanes := hwy.MaxLanes[T]()
	operands := make([]hwy.Vec[T], len(j.srcs))
	for i, src := range j.srcs {
		v, err := hwy.Load(padded(src[off:off+count], lanes))
		if err != nil {
			return err
		}
		operands[i] = v
	}

	var (
		r   hwy.Vec[T]
		err error
	)
	switch {
	case j.mode == modeMaskedZero:
		m, merr := hwy.MaskFromBits[T](padded(j.active[off:off+count], lanes))
		if merr != nil {
			return merr
		}
		r, err = hwy.MaskedZero(j.op, m, operands...)
	case j.mode == modeMasked:
		m, merr := hwy.MaskFromBits[T](padded(j.active[off:off+count], lanes))
		if merr != nil {
			return merr
		}
		fb, ferr := hwy.Load(padded(j.fallback[off:off+count], lanes))
		if ferr != nil {
			return ferr
		}
		r, err = hwy.Masked(j.op, fb, m, operands...)
	case count < lanes:
		// Keep the padding lanes at zero rather than running the kernel on them.
		r, err = hwy.MaskedZero(j.op, hwy.TailMask[T](count), operands...)
	default:
		r, err = hwy.Apply(j.op, operands...)
	}
	if err != nil {
		return err
	}
	r.Store(j.dst[off : off+count])
	return nil
}

// padded returns s extended with zero values to n elements.
func padded[E any](s []E, n int) []E {
	if len(s) == n {
		return s
	}
	out := make([]E, n)
	copy(out, s)
	return out
}
