// SPDX-License-Identifier: MIT

package veb

// NewIndex allocates a fixed-shape vEB index with exactly nsegs
// leaves, one per PMA segment. Unlike New (which sizes a tree with
// slack for the dynamic single-key Insert/Rebalance machinery in
// rebalance.go), NewIndex's leaf level never changes shape except by
// allocating a new, larger index outright — mirroring how
// pma_reallocate calls veb_tree_new(p->nsegs) and then populates it
// with rebuild_index rather than a sequence of veb_tree_insert calls.
func NewIndex[K any](nsegs int) *Tree[K] {
	if nsegs < 1 {
		nsegs = 1
	}
	height := ILog2(nsegs) + 1
	if height < 1 {
		height = 1
	}
	nodes := treeSize(height)

	elements := make([]Node[K], nodes)
	for i := range elements {
		elements[i].Empty = true
		elements[i].LeafOfs = -1
		elements[i].Left = -1
		elements[i].Right = -1
	}

	return &Tree[K]{
		Height:     height,
		Elements:   elements,
		Scratch:    make([]Node[K], nodes),
		LevelInfo:  ComputeLevelInfo(height),
		MinDensity: 0x8000,  // 0.5 in 16.16
		MaxDensity: 0x10000, // 1.0 in 16.16
	}
}

// NumLeaves returns the number of leaf-level slots in an index built
// by NewIndex: 2^(Height-1), one per PMA segment.
func (t *Tree[K]) NumLeaves() int {
	return 1 << (t.Height - 1)
}

// LeafBFS returns the BFS number of the leaf-level node covering
// segment seg, mirroring rebuild_index's `p->nsegs + i`.
func (t *Tree[K]) LeafBFS(seg int) int {
	return t.NumLeaves() + seg
}

// isLeafBFS reports whether bfs names a node at the leaf level.
func (t *Tree[K]) isLeafBFS(bfs int) bool {
	return bfs >= t.NumLeaves()
}

// SetLeaf records minKey as segment seg's minimum, mirroring
// veb_tree_set_node_key + veb_tree_link_leaf applied to the leaf bfs
// address. Call once per non-empty segment before RebuildInterior.
func (t *Tree[K]) SetLeaf(seg int, minKey K) {
	n := t.NodeAt(t.LeafBFS(seg))
	n.Key = minKey
	n.Empty = false
	n.LeafOfs = seg
}

// MarkLeafEmpty records that segment seg currently holds no keys. The
// leaf node still carries LeafOfs so FindLeaf can report which segment
// a query landed on even when that segment is momentarily empty.
func (t *Tree[K]) MarkLeafEmpty(seg int) {
	n := t.NodeAt(t.LeafBFS(seg))
	var zero K
	n.Key = zero
	n.Empty = true
	n.LeafOfs = seg
}

// recomputeSeparators is the post-order pass that assigns every
// interior node its separator key — the leftmost real key of its
// right subtree, per this index's leftmost-key-of-right-subtree
// invariant — and reports the leftmost real key anywhere in the
// subtree rooted at bfs (used by the caller one level up), mirroring
// the upward loop in rebuild_index/veb_tree_recompute_index.
func (t *Tree[K]) recomputeSeparators(bfs int) (K, bool) {
	if t.isLeafBFS(bfs) {
		n := t.NodeAt(bfs)
		if n.Empty {
			var zero K
			return zero, false
		}
		return n.Key, true
	}

	leftKey, leftOK := t.recomputeSeparators(BFSLeft(bfs))
	rightKey, rightOK := t.recomputeSeparators(BFSRight(bfs))

	n := t.NodeAt(bfs)
	n.LeafOfs = -1
	if rightOK {
		n.Key = rightKey
		n.Empty = false
	} else {
		var zero K
		n.Key = zero
		n.Empty = true
	}

	if leftOK {
		return leftKey, true
	}
	return rightKey, rightOK
}

// RebuildInterior recomputes every interior separator from the
// leaves' current contents. Call after every leaf has been set via
// SetLeaf/MarkLeafEmpty, mirroring rebuild_index's second loop.
func (t *Tree[K]) RebuildInterior() {
	if t.Height <= 1 {
		return
	}
	t.recomputeSeparators(1)
}

// FindLeaf walks the index from the root to the leaf-level node
// covering key: at each interior node, a key less than the separator
// descends left, a key at or above it descends right (an empty
// interior node — one whose right subtree holds no real key — always
// descends left, since there is nothing to its right worth visiting),
// mirroring veb_tree_find_leaf with the equal-key edge case corrected:
// the separator is by construction the right subtree's own minimum,
// so a key equal to it must land in that right subtree, not the left
// one.
func (t *Tree[K]) FindLeaf(key K, cmp Compare[K]) *Node[K] {
	bfs := 1
	for !t.isLeafBFS(bfs) {
		n := t.NodeAt(bfs)
		if n.Empty || cmp(key, n.Key) < 0 {
			bfs = BFSLeft(bfs)
		} else {
			bfs = BFSRight(bfs)
		}
	}
	return t.NodeAt(bfs)
}
