// SPDX-License-Identifier: MIT

// Package pool provides a type-safe, statistics-tracking wrapper
// around sync.Pool for the scratch buffers that PMA rebalances and
// grows allocate on every structural change.
package pool

import (
	"sync"
	"sync/atomic"
)

// Slices is a pool of reusable slices of T, specialized for the
// scratch buffers used by compaction/redistribution passes.
type Slices[T any] struct {
	sync.Pool

	// TODO: remove it once the code is stable.
	totalAllocated atomic.Int64
	currentLive    atomic.Int64
}

// NewSlices creates a pool whose Get returns slices with the given
// initial capacity.
func NewSlices[T any](capacity int) *Slices[T] {
	p := &Slices[T]{}
	p.New = func() any {
		p.totalAllocated.Add(1) // TODO: remove it once the code is stable.
		s := make([]T, 0, capacity)
		return &s
	}
	return p
}

// Get retrieves a zero-length slice from the pool, or allocates one
// if none is available. If p is nil a fresh slice is returned without
// tracking, so callers may use a nil *Slices as "pooling disabled".
func (p *Slices[T]) Get() *[]T {
	if p == nil {
		s := make([]T, 0)
		return &s
	}
	p.currentLive.Add(1) // TODO: remove it once the code is stable.
	return p.Pool.Get().(*[]T)
}

// Put clears and returns a slice to the pool for reuse.
func (p *Slices[T]) Put(s *[]T) {
	if p == nil {
		return
	}
	p.currentLive.Add(-1) // TODO: remove it once the code is stable.
	*s = (*s)[:0]
	p.Pool.Put(s)
}

// Stats returns the number of currently checked-out slices and the
// total number ever allocated by this pool.
//
// TODO: remove it once the code is stable.
func (p *Slices[T]) Stats() (live int64, total int64) {
	if p == nil {
		return 0, 0
	}
	return p.currentLive.Load(), p.totalAllocated.Load()
}
