// SPDX-License-Identifier: MIT

// Package pdict implements a cache-oblivious, locality-preserving
// dynamic dictionary: a packed memory array holding sorted (key,
// value) pairs, overlaid by a van Emde Boas laid-out binary index
// tree that resolves a key to the candidate segment of the array it
// falls in with O(log_B N) block transfers for any block size B.
package pdict

import (
	"github.com/gaissmai/pdict/internal/pma"
	"github.com/gaissmai/pdict/internal/veb"
)

// noCopy marks Dictionary as non-copyable to `go vet`'s -copylocks
// family of checks. The dictionary is not safe for concurrent use at
// all — this is an assertion about move semantics, not a lock.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Dictionary is the facade combining a packed memory array of (K, V)
// pairs with a van Emde Boas index over its segment boundaries.
type Dictionary[K Key, V any] struct {
	_ noCopy

	store *pma.PMA[K, V]
	index *veb.Tree[K]

	frozen bool
	closed bool
}

// New creates an empty dictionary whose packed array has at least
// capacity slots; the array grows once an insert pushes it past its
// root density bound, which can happen before capacity elements are
// stored.
func New[K Key, V any](capacity int) (*Dictionary[K, V], error) {
	if capacity < 0 {
		return nil, ErrInvalidCapacity
	}

	store := pma.New[K, V](capacity, compareKeys[K])

	d := &Dictionary[K, V]{store: store}
	d.resyncIndex()
	return d, nil
}

// Len returns the number of (key, value) pairs currently stored.
func (d *Dictionary[K, V]) Len() int {
	return d.store.Count
}

// resyncIndex rebuilds the vEB index from the PMA's current segment
// layout: a fixed-shape tree with exactly store.NumSegments leaves, one
// per segment, scan each segment for its minimum key and write it into
// the matching leaf (or mark the leaf empty), then recompute every
// interior separator bottom-up, mirroring rebuild_index/
// veb_tree_recompute_index.
//
// This is a full O(segments) rebuild after every structural PMA event
// (insert, rebalance, grow) rather than an incremental patch of the
// affected segments only; the original's own rebuild_index is called
// the same way, unconditionally, after every pma_insert, with a TODO
// left in place for a windowed version — left as a documented
// simplification here too (see DESIGN.md). Correctness is unaffected —
// the index is a pure derived cache over the PMA's segment boundaries,
// queried by FindLeaf, never the system of record.
func (d *Dictionary[K, V]) resyncIndex() {
	index := veb.NewIndex[K](d.store.NumSegments)

	for seg := 0; seg < d.store.NumSegments; seg++ {
		start, end := d.segmentBounds(seg)

		minKey, ok := minimumIn(d.store.Leaves, start, end)
		if ok {
			index.SetLeaf(seg, minKey)
		} else {
			index.MarkLeafEmpty(seg)
		}
	}

	index.RebuildInterior()
	d.index = index
}

// segmentBounds returns the [start, end) slot range of segment seg in
// d.store.Leaves.
func (d *Dictionary[K, V]) segmentBounds(seg int) (start, end int) {
	start = seg * d.store.Segment
	end = start + d.store.Segment
	if end > len(d.store.Leaves) {
		end = len(d.store.Leaves)
	}
	return
}

// minimumIn returns the key of the first non-empty leaf in [start, end).
func minimumIn[K Key, V any](leaves []pma.Leaf[K, V], start, end int) (K, bool) {
	for i := start; i < end; i++ {
		if !leaves[i].Empty {
			return leaves[i].Key, true
		}
	}
	var zero K
	return zero, false
}

// Insert adds key with value value, overwriting any existing entry
// under an equal key.
func (d *Dictionary[K, V]) Insert(key K, value V) error {
	if d.closed {
		return ErrClosed
	}
	if d.frozen {
		return ErrFrozen
	}

	leaf := d.index.FindLeaf(key, compareKeys[K])
	start, end := d.segmentBounds(leaf.LeafOfs)

	_, outcome := d.store.InsertScoped(start, end-1, key, value)
	if outcome == pma.PlacedAfterGrow {
		// The PMA already reallocated and redistributed its own
		// leaves, so the segment bounds just computed are stale;
		// fall back to a whole-array insert for this one call.
		_, outcome = d.store.Insert(key, value)
	}

	if outcome != pma.Updated {
		d.resyncIndex()
	}

	return nil
}

// Search looks up the value stored under key.
func (d *Dictionary[K, V]) Search(key K) (V, error) {
	if d.closed {
		var zero V
		return zero, ErrClosed
	}

	leaf := d.index.FindLeaf(key, compareKeys[K])
	start, end := d.segmentBounds(leaf.LeafOfs)

	value, ok := d.store.SearchIn(start, end-1, key)
	if !ok {
		var zero V
		return zero, ErrKeyNotFound
	}
	return value, nil
}

// Predecessor returns the pair with the largest key <= key.
func (d *Dictionary[K, V]) Predecessor(key K) (K, V, error) {
	if d.closed {
		var zk K
		var zv V
		return zk, zv, ErrClosed
	}

	leaf := d.index.FindLeaf(key, compareKeys[K])
	start, end := d.segmentBounds(leaf.LeafOfs)

	k, v, ok := d.store.PredecessorIn(start, end-1, key)
	if !ok {
		var zk K
		var zv V
		return zk, zv, ErrKeyNotFound
	}
	return k, v, nil
}

// Pointerize freezes the index, materializing Left/Right slice
// indices so that code walking Dictionary.index directly can chase
// children without recomputing vEB positions; Search and Predecessor
// still locate segments through FindLeaf. Insert returns ErrFrozen
// after this call: pointerized indices are incompatible with the index
// growing further.
func (d *Dictionary[K, V]) Pointerize() {
	d.index.Pointerize()
	d.frozen = true
}

// Scan calls fn for every (key, value) pair in ascending key order,
// stopping early if fn returns false.
func (d *Dictionary[K, V]) Scan(fn func(key K, value V) bool) {
	d.store.Scan(fn)
}

// Close marks the dictionary unusable: Insert, Search and Predecessor
// return ErrClosed afterwards. A dictionary holds no file or mapping,
// so there is nothing to flush or unmap.
func (d *Dictionary[K, V]) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return nil
}
