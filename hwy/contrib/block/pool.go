// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package block

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// minChunk is the smallest number of elements handed to one worker.
// Shorter inputs run on the calling goroutine.
const minChunk = 4096

// Pool is a persistent worker pool for block kernels. Workers are spawned
// once by NewPool and reused by every call that receives the pool, until
// Close.
//
// Usage:
//
//	pool := block.NewPool(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	err := block.NegMulAdd(pool, dst, a, b, c)
//
// A nil *Pool is valid and runs everything on the calling goroutine.
// Close must not be called while a kernel is running on the pool.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// NewPool creates a pool with numWorkers persistent workers.
// If numWorkers <= 0, uses GOMAXPROCS.
func NewPool(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool, or 1 for a nil pool.
func (p *Pool) NumWorkers() int {
	if p == nil {
		return 1
	}
	return p.numWorkers
}

// Close shuts down the pool. Calling Close multiple times is safe.
// Kernels given a closed pool run sequentially. Closing a nil pool is a no-op.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// parallelFor calls fn over [0, n) split into contiguous chunks whose
// boundaries are multiples of align, so that only the last chunk can end in
// a partial vector. It blocks until every chunk returns and reports the
// first error.
func (p *Pool) parallelFor(n, align int, fn func(start, end int) error) error {
	if n <= 0 {
		return nil
	}

	workers := min(p.NumWorkers(), (n+minChunk-1)/minChunk)
	if workers <= 1 || p.closed.Load() {
		return fn(0, n)
	}

	chunk := (n + workers - 1) / workers
	chunk = (chunk + align - 1) / align * align

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		p.workC <- workItem{
			fn: func() {
				if err := fn(start, end); err != nil {
					errOnce.Do(func() { firstErr = err })
				}
			},
			barrier: &wg,
		}
	}
	wg.Wait()
	return firstErr
}
