// SPDX-License-Identifier: MIT

package pma

// softSearch performs a binary search over the entire leaf region that
// tolerates empty slots, for callers (tests, and anyone exercising the
// PMA standalone without an overlaid index) that have no segment to
// scope the search to. Dictionary's lookups go through softSearchIn
// instead, bounded to the one segment its vEB index located.
func (p *PMA[K, V]) softSearch(key K) (slot int, found bool) {
	return p.softSearchIn(0, len(p.Leaves)-1, key)
}

// softSearchIn performs a binary search within [lo, hi] that tolerates
// empty slots: when the midpoint is empty it scans outward in both
// directions for the nearest occupied slot and continues the search
// from there, mirroring pma_bin_search's min_i/max_i bounds (there
// driven by the segment veb_tree_find_leaf locates, here passed in
// explicitly by the caller). It returns the slot of an exact match, or
// the slot immediately before where key would be inserted within
// [lo, hi] (the predecessor slot), and whether an exact match was
// found.
func (p *PMA[K, V]) softSearchIn(lo, hi int, key K) (slot int, found bool) {
	if hi < lo || hi < 0 || lo >= len(p.Leaves) {
		return lo - 1, false
	}

	origLo := lo

	for lo <= hi {
		mid := lo + (hi-lo)/2

		probe := p.findOccupied(mid, lo, hi)
		if probe == -1 {
			break
		}

		c := p.Cmp(key, p.Leaves[probe].Key)
		switch {
		case c == 0:
			return probe, true
		case c < 0:
			hi = probe - 1
		default:
			lo = probe + 1
		}
	}

	return p.predecessorSlot(lo-1, origLo), false
}

// findOccupied scans outward from mid, alternating left and right,
// for the nearest non-empty slot within [lo, hi].
func (p *PMA[K, V]) findOccupied(mid, lo, hi int) int {
	if !p.Leaves[mid].Empty {
		return mid
	}
	for off := 1; mid-off >= lo || mid+off <= hi; off++ {
		if mid-off >= lo && !p.Leaves[mid-off].Empty {
			return mid - off
		}
		if mid+off <= hi && !p.Leaves[mid+off].Empty {
			return mid + off
		}
	}
	return -1
}

// predecessorSlot returns the nearest occupied slot in [limit, from],
// scanning backward from from, or limit-1 if none exists in that
// range. limit lets softSearchIn stop at a window's own start instead
// of wandering into a neighboring segment that happens to be occupied.
func (p *PMA[K, V]) predecessorSlot(from, limit int) int {
	for i := from; i >= limit; i-- {
		if !p.Leaves[i].Empty {
			return i
		}
	}
	return limit - 1
}

// Search returns the value stored under key, mirroring pma_search.
func (p *PMA[K, V]) Search(key K) (value V, ok bool) {
	slot, found := p.softSearch(key)
	if !found {
		var zero V
		return zero, false
	}
	return p.Leaves[slot].Value, true
}

// Predecessor returns the largest key <= key along with its value,
// mirroring pma_predecessor.
func (p *PMA[K, V]) Predecessor(key K) (K, V, bool) {
	slot, found := p.softSearch(key)
	if found {
		return p.Leaves[slot].Key, p.Leaves[slot].Value, true
	}
	if slot == -1 {
		var zk K
		var zv V
		return zk, zv, false
	}
	return p.Leaves[slot].Key, p.Leaves[slot].Value, true
}

// InsertionSlot returns an exact match's own slot, or the predecessor
// slot of key (insertScoped then calls InsertAt with the slot after
// it), mirroring pma_insert's use of pma_bin_search before
// pma_insert_at.
func (p *PMA[K, V]) InsertionSlot(key K) (slot int, exists bool) {
	return p.softSearch(key)
}

// SearchIn returns the value stored under key, restricting the search
// to [lo, hi] — the window an overlaid index has already identified as
// the one segment that could hold key, mirroring pma_search's call
// into pma_bin_search with min_i/max_i set from veb_tree_find.
func (p *PMA[K, V]) SearchIn(lo, hi int, key K) (value V, ok bool) {
	slot, found := p.softSearchIn(lo, hi, key)
	if !found {
		var zero V
		return zero, false
	}
	return p.Leaves[slot].Value, true
}

// PredecessorIn returns the largest key <= key within [lo, hi], along
// with its value, mirroring pma_predecessor's segment-scoped
// pma_bin_search call.
func (p *PMA[K, V]) PredecessorIn(lo, hi int, key K) (K, V, bool) {
	slot, found := p.softSearchIn(lo, hi, key)
	if found {
		return p.Leaves[slot].Key, p.Leaves[slot].Value, true
	}
	if slot < lo {
		var zk K
		var zv V
		return zk, zv, false
	}
	return p.Leaves[slot].Key, p.Leaves[slot].Value, true
}

// InsertionSlotIn is InsertionSlot restricted to [lo, hi].
func (p *PMA[K, V]) InsertionSlotIn(lo, hi int, key K) (slot int, exists bool) {
	return p.softSearchIn(lo, hi, key)
}

// Scan calls fn for every occupied leaf in ascending key order.
func (p *PMA[K, V]) Scan(fn func(key K, value V) bool) {
	for i := range p.Leaves {
		if p.Leaves[i].Empty {
			continue
		}
		if !fn(p.Leaves[i].Key, p.Leaves[i].Value) {
			return
		}
	}
}

// Min returns the smallest occupied key, if any.
func (p *PMA[K, V]) Min() (key K, value V, ok bool) {
	for i := range p.Leaves {
		if !p.Leaves[i].Empty {
			return p.Leaves[i].Key, p.Leaves[i].Value, true
		}
	}
	var zk K
	var zv V
	return zk, zv, false
}
