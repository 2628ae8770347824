// SPDX-License-Identifier: MIT

// Package pma implements the packed memory array: a gapped sorted
// array that keeps every element within a constant factor of its
// ideal position, rebalancing by redistributing whole windows rather
// than shifting one slot at a time.
package pma

import (
	"math/bits"

	"github.com/gaissmai/pdict/internal/pool"
)

// Leaf is one slot of the array. Empty slots carry the zero value of
// V and are skipped by Scan/search.
type Leaf[K, V any] struct {
	Key   K
	Value V
	Empty bool
}

// Compare orders two keys; it follows the usual negative/zero/positive
// convention.
type Compare[K any] func(a, b K) int

// PMA is the packed memory array proper, mirroring struct pma in
// types.h. Segment is the physical window size used for density
// bookkeeping; NumSegments * Segment == len(Leaves).
type PMA[K, V any] struct {
	Leaves      []Leaf[K, V]
	Segment     int
	NumSegments int
	Count       int

	// SegMinDensity/SegMaxDensity are the density bounds at the segment
	// (leaf) level and RootMinDensity/RootMaxDensity those at the root
	// level, in 8.8 fixed point (see rebalance.go); targetDensity
	// interpolates the max bound linearly across the log2(NumSegments)+1
	// window levels.
	SegMinDensity  int
	SegMaxDensity  int
	RootMinDensity int
	RootMaxDensity int

	Cmp Compare[K]

	scratch *pool.Slices[Leaf[K, V]]
}

// hyperceil/ilog2 mirror internal/veb's but are kept local so this
// package has no import-time coupling to internal/veb; the PMA is
// usable standalone (the dictionary facade wires the two together).
func hyperceil(f int) int {
	if f <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(f-1))
}

func ilog2(f int) int {
	if f <= 0 {
		return 0
	}
	return bits.Len(uint(f)) - 1
}

// sizeFor computes (nsegs, segsize, size) for an array of at least
// capacity slots (at least 8), mirroring pma_reallocate's sizing
// formula.
func sizeFor(capacity int) (nsegs, segsize, size int) {
	if capacity < 8 {
		capacity = 8
	}
	roundUpSize := hyperceil(capacity)
	segsize = ilog2(roundUpSize)
	if segsize < 1 {
		segsize = 1
	}
	nsegs = hyperceil((roundUpSize + segsize - 1) / segsize)
	if nsegs < 1 {
		nsegs = 1
	}
	size = nsegs * segsize
	return
}

// New allocates a PMA with room for at least capacity elements,
// mirroring pma_new.
func New[K, V any](capacity int, cmp Compare[K]) *PMA[K, V] {
	nsegs, segsize, size := sizeFor(capacity)

	leaves := make([]Leaf[K, V], size)
	for i := range leaves {
		leaves[i].Empty = true
	}

	return &PMA[K, V]{
		Leaves:         leaves,
		Segment:        segsize,
		NumSegments:    nsegs,
		Cmp:            cmp,
		SegMaxDensity:  0xE6, // 0.9 in 8.8
		SegMinDensity:  0x1A, // 0.1 in 8.8
		RootMaxDensity: 0xB3, // 0.7 in 8.8
		RootMinDensity: 0x33, // 0.2 in 8.8
		scratch:        pool.NewSlices[Leaf[K, V]](segsize * 2),
	}
}

// windowLevels returns the number of distinct window sizes from a
// single segment up to the whole array, i.e. log2(NumSegments)+1, mirroring the loop bound
// used by rebalance_insert/pma_insert_at to climb segment->...->root.
func (p *PMA[K, V]) windowLevels() int {
	return ilog2(p.NumSegments) + 1
}

// InsertOutcome distinguishes "updated an existing key" from the
// InsertAt outcomes so the dictionary facade knows whether the index
// needs a new leaf offset recorded at all.
type InsertOutcome int

const (
	Updated InsertOutcome = iota
	Placed
	PlacedAfterRebalance
	PlacedAfterGrow
)

// Insert finds key's sorted position and either overwrites an existing
// entry in place or opens a gap for a new one, climbing density levels
// (or growing the whole array) as needed, mirroring pma_insert.
//
// When the climb ends in a grow, the key is placed into the grown array
// and the outcome is PlacedAfterGrow; every slot computed before the
// call is stale after a grow.
func (p *PMA[K, V]) Insert(key K, value V) (slot int, outcome InsertOutcome) {
	if len(p.Leaves) == 0 {
		p.Grow()
	}
	slot, outcome = p.insertScoped(0, len(p.Leaves)-1, key, value)
	if outcome == PlacedAfterGrow {
		slot, _ = p.insertScoped(0, len(p.Leaves)-1, key, value)
	}
	return slot, outcome
}

// InsertScoped behaves like Insert but restricts the search for key's
// position to [lo, hi] — the segment an overlaid index has already
// located — rather than the whole array, mirroring pma_insert's use
// of veb_tree_find before pma_bin_search/pma_insert_at. The climb that
// follows a missed density target still widens outward window-by-window
// exactly as InsertAt always does; only the initial search is scoped.
// Unlike Insert, InsertScoped does not place the key when the climb
// ends in a grow: it returns slot -1 with PlacedAfterGrow and the
// caller inserts again.
func (p *PMA[K, V]) InsertScoped(lo, hi int, key K, value V) (slot int, outcome InsertOutcome) {
	if len(p.Leaves) == 0 {
		p.Grow()
		lo, hi = 0, len(p.Leaves)-1
	}
	return p.insertScoped(lo, hi, key, value)
}

func (p *PMA[K, V]) insertScoped(lo, hi int, key K, value V) (slot int, outcome InsertOutcome) {
	found, exists := p.softSearchIn(lo, hi, key)
	if exists {
		p.Leaves[found].Value = value
		return found, Updated
	}

	target := found + 1
	if target < lo {
		target = lo
	}
	if target >= len(p.Leaves) {
		target = len(p.Leaves) - 1
	}

	slot, result := p.InsertAt(target, key, value)
	switch result {
	case Inserted:
		return slot, Placed
	case Rebalanced:
		return slot, PlacedAfterRebalance
	default:
		return -1, PlacedAfterGrow
	}
}
