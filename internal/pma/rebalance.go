// SPDX-License-Identifier: MIT

package pma

import "github.com/gaissmai/pdict/internal/pool"

// density returns the occupation of a window in 8.8 fixed point,
// mirroring `density` in pma.c.
func density(occupied, length int) int {
	if length == 0 {
		return 0
	}
	return (occupied << 8) / length
}

// targetDensity returns the maximum allowed 8.8 fixed-point density
// for a window of the given level (0 == single segment, windowLevels-1
// == whole array), linearly interpolated between SegMaxDensity and
// RootMaxDensity, mirroring `target_density`.
func (p *PMA[K, V]) targetDensity(level int) int {
	levels := p.windowLevels()
	if levels <= 1 {
		return p.SegMaxDensity
	}
	slope := p.SegMaxDensity - p.RootMaxDensity
	frac := (level << 8) / (levels - 1)
	return p.SegMaxDensity - (slope*frac)>>8
}

// windowBounds returns the [start, end) slot range of the window at
// the given level that contains slot.
func (p *PMA[K, V]) windowBounds(slot, level int) (start, end int) {
	windowSize := p.Segment << level
	start = (slot / windowSize) * windowSize
	end = start + windowSize
	if end > len(p.Leaves) {
		end = len(p.Leaves)
	}
	return
}

// occupiedIn counts non-empty leaves in [start, end).
func (p *PMA[K, V]) occupiedIn(start, end int) int {
	n := 0
	for i := start; i < end; i++ {
		if !p.Leaves[i].Empty {
			n++
		}
	}
	return n
}

// Grow doubles the PMA's capacity and redistributes all elements
// evenly across the new array, mirroring pma_grow.
func (p *PMA[K, V]) Grow() {
	_, segsize, size := sizeFor(len(p.Leaves) * 2)

	old := p.Leaves
	oldScratch := p.scratch
	compactedPtr := oldScratch.Get()
	compacted := *compactedPtr
	for i := range old {
		if !old[i].Empty {
			compacted = append(compacted, old[i])
		}
	}

	newLeaves := make([]Leaf[K, V], size)
	for i := range newLeaves {
		newLeaves[i].Empty = true
	}

	if len(compacted) > 0 {
		redistribute(newLeaves, compacted)
	}

	*compactedPtr = compacted
	oldScratch.Put(compactedPtr)

	p.Leaves = newLeaves
	p.Segment = segsize
	p.NumSegments = size / segsize
	p.scratch = pool.NewSlices[Leaf[K, V]](segsize * 2)
}

// redistribute spreads src evenly across dst, mirroring the spacing
// computation shared by pma_grow and rebalance_insert's full-array
// case.
func redistribute[K, V any](dst []Leaf[K, V], src []Leaf[K, V]) {
	length := len(dst)
	occupation := len(src)
	if occupation == 0 {
		return
	}
	stride := ((length - occupation) << 8) / occupation

	idx := occupation - 1
	slotFloat := int64(length-1)<<8 - int64(stride)
	step := int64(1<<8) + int64(stride)
	for idx >= 0 {
		slot := int(slotFloat >> 8)
		if slot < 0 {
			slot = 0
		}
		dst[slot] = src[idx]
		idx--
		slotFloat -= step
	}
}

// InsertResult reports what InsertAt had to do, so the index above the
// PMA knows whether previously computed leaf offsets are now stale.
type InsertResult int

const (
	Inserted InsertResult = iota
	Rebalanced
	Grown
)

// InsertAt places (key, value) at slot if that slot is empty (insertScoped
// passes the slot just after the soft-binary-search predecessor);
// otherwise it widens the window around slot, climbing density levels
// until one is at or below target, and redistributes that window with
// the key spliced in. If no level qualifies it grows the whole array
// and returns Grown without placing the key, mirroring pma_insert_at.
func (p *PMA[K, V]) InsertAt(slot int, key K, value V) (int, InsertResult) {
	if p.Leaves[slot].Empty {
		p.Leaves[slot] = Leaf[K, V]{Key: key, Value: value}
		p.Count++
		return slot, Inserted
	}

	levels := p.windowLevels()
	for level := 0; level < levels; level++ {
		start, end := p.windowBounds(slot, level)
		occ := p.occupiedIn(start, end) + 1
		if density(occ, end-start) <= p.targetDensity(level) {
			p.insertIntoWindow(start, end, key, value)
			p.Count++
			return slot, Rebalanced
		}
	}

	p.Grow()
	return -1, Grown
}

// insertIntoWindow compacts [start,end), splices in the new (key,
// value) at its sorted position, and redistributes the window evenly.
func (p *PMA[K, V]) insertIntoWindow(start, end int, key K, value V) {
	compactedPtr := p.scratch.Get()
	defer p.scratch.Put(compactedPtr)
	compacted := *compactedPtr

	inserted := false
	for i := start; i < end; i++ {
		if p.Leaves[i].Empty {
			continue
		}
		if !inserted && p.Cmp(key, p.Leaves[i].Key) < 0 {
			compacted = append(compacted, Leaf[K, V]{Key: key, Value: value})
			inserted = true
		}
		compacted = append(compacted, p.Leaves[i])
	}
	if !inserted {
		compacted = append(compacted, Leaf[K, V]{Key: key, Value: value})
	}

	for i := start; i < end; i++ {
		p.Leaves[i] = Leaf[K, V]{Empty: true}
	}

	redistribute(p.Leaves[start:end], compacted)
	*compactedPtr = compacted
}
