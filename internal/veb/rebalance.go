// SPDX-License-Identifier: MIT

package veb

// Compare is supplied by callers to order keys without requiring an
// interface method set on K itself; cmp(a,b) follows the usual
// negative/zero/positive convention.
type Compare[K any] func(a, b K) int

// treeOccupation returns the number of non-empty nodes in the subtree
// rooted at bfsRoot, mirroring tree_occupation.
func (t *Tree[K]) treeOccupation(bfsRoot int) int {
	if !t.NodeValid(bfsRoot) {
		return 0
	}
	return 1 + t.treeOccupation(BFSLeft(bfsRoot)) + t.treeOccupation(BFSRight(bfsRoot))
}

// serialize walks the subtree rooted at bfsRoot in order, splicing
// insertKey into its sorted position, and clears every visited node
// (they are about to be redistributed by Distribute). It returns the
// number of keys written into t.Scratch starting at offset 0,
// mirroring `serialize` in veb_small_height.c.
func (t *Tree[K]) serialize(bfsRoot int, insertKey K, leafOfs int, cmp Compare[K]) int {
	count := 0
	inserted := false

	bfs := t.BFSFirst(bfsRoot)
	var toClear []int

	for bfs != -1 {
		n := t.NodeAt(bfs)

		if !inserted && cmp(insertKey, n.Key) < 0 {
			t.Scratch[count] = Node[K]{Key: insertKey, LeafOfs: leafOfs, Left: -1, Right: -1}
			count++
			inserted = true
		}

		toClear = append(toClear, bfs)
		t.Scratch[count] = Node[K]{Key: n.Key, LeafOfs: n.LeafOfs, Left: -1, Right: -1}
		count++

		bfs = t.BFSNext(bfs, bfsRoot)
	}

	if !inserted {
		t.Scratch[count] = Node[K]{Key: insertKey, LeafOfs: leafOfs, Left: -1, Right: -1}
		count++
	}

	for _, b := range toClear {
		n := t.NodeAt(b)
		n.Empty = true
		n.LeafOfs = -1
	}

	return count
}

// Distribute places scratch[ofs:ofs+count] into the subtree rooted at
// bfsRoot, median-first then recursing on the halves, mirroring
// veb_tree_distribute. This keeps the subtree balanced and every
// in-order walk sorted.
func (t *Tree[K]) Distribute(bfsRoot int, ofs, count int) {
	if count <= 0 {
		return
	}

	item := count / 2
	leftCount := item
	rightCount := count - item - 1

	*t.NodeAt(bfsRoot) = t.Scratch[ofs+item]

	if leftCount > 0 {
		t.Distribute(BFSLeft(bfsRoot), ofs, leftCount)
	}
	if rightCount > 0 {
		t.Distribute(BFSRight(bfsRoot), ofs+item+1, rightCount)
	}
}

// RebalanceResult tells the caller of Insert/Rebalance whether the
// tree had to grow, since growth invalidates every BFS
// position computed before the call.
type RebalanceResult int

const (
	Rebalanced RebalanceResult = iota
	Grown
)

// Rebalance is called when Insert's walk lands on an occupied node at
// the tree's deepest level (bfsNum): that single node is its own
// full, 1-node subtree, so climb ancestors — each one level taller —
// until one is found whose occupation (including the new key) is at
// or below TargetDensity for its height, serialize that ancestor's
// subtree (splicing in insertKey), and redistribute it evenly. If the
// climb reaches the root and even the whole tree is too dense, the
// tree is grown instead and the caller must retry the whole insert,
// mirroring veb_tree_rebalance/veb_tree_insert.
func (t *Tree[K]) Rebalance(bfsNum int, insertKey K, leafOfs int, cmp Compare[K]) RebalanceResult {
	ancestor := bfsNum
	height := 1

	for {
		occupation := t.treeOccupation(ancestor) + 1
		if Density(occupation, height) <= t.TargetDensity(height) {
			break
		}
		if ancestor == 1 {
			t.Grow()
			return Grown
		}
		ancestor = BFSParent(ancestor)
		height++
	}

	count := t.serialize(ancestor, insertKey, leafOfs, cmp)
	t.Distribute(ancestor, 0, count)
	t.Count++

	return Rebalanced
}

// Grow doubles the tree's height, remapping every previously valid
// node through the new, larger level_info table, mirroring
// veb_tree_grow. Elements/Scratch/LevelInfo are all reallocated; any
// BFS-derived slice index computed before Grow is stale afterwards.
func (t *Tree[K]) Grow() {
	oldHeight := t.Height
	newHeight := oldHeight + 1
	newSize := treeSize(newHeight)

	newElements := make([]Node[K], newSize)
	for i := range newElements {
		newElements[i].Empty = true
		newElements[i].LeafOfs = -1
		newElements[i].Left = -1
		newElements[i].Right = -1
	}

	newLevelInfo := ComputeLevelInfo(newHeight)

	oldSize := treeSize(oldHeight)
	for bfs := 1; bfs <= oldSize; bfs++ {
		oldSlot := Position(t.LevelInfo, bfs) - 1
		if t.Elements[oldSlot].Empty {
			continue
		}
		newSlot := Position(newLevelInfo, bfs) - 1
		newElements[newSlot] = t.Elements[oldSlot]
	}

	t.Elements = newElements
	t.Scratch = make([]Node[K], newSize)
	t.LevelInfo = newLevelInfo
	t.Height = newHeight
}

// Insert walks the tree from the root comparing insertKey to each
// node's Key. It writes into the first empty node it meets (or a node
// whose key already equals insertKey) and returns Rebalanced. If no
// empty node is found along the path, it rebalances (which may grow
// the tree, in which case the caller must retry), mirroring
// veb_tree_insert.
func (t *Tree[K]) Insert(insertKey K, leafOfs int, cmp Compare[K]) RebalanceResult {
	bfs := 1
	for d := 0; d < t.Height; d++ {
		n := t.NodeAt(bfs)

		if n.Empty {
			n.Key = insertKey
			n.Empty = false
			n.LeafOfs = leafOfs
			t.Count++
			return Rebalanced
		}

		c := cmp(insertKey, n.Key)
		if c == 0 {
			n.LeafOfs = leafOfs
			return Rebalanced
		}

		if c < 0 {
			bfs = BFSLeft(bfs)
		} else {
			bfs = BFSRight(bfs)
		}
	}

	return t.Rebalance(BFSParent(bfs), insertKey, leafOfs, cmp)
}

// Search walks the tree from the root looking for an exact key match
// and returns the matching node, or nil if the walk falls off the
// tree's height without finding it, mirroring veb_tree_search.
func (t *Tree[K]) Search(key K, cmp Compare[K]) *Node[K] {
	bfs := 1
	for d := 0; d < t.Height; d++ {
		if !t.NodeValid(bfs) {
			return nil
		}
		n := t.NodeAt(bfs)
		c := cmp(key, n.Key)
		if c == 0 {
			return n
		}
		if c < 0 {
			bfs = BFSLeft(bfs)
		} else {
			bfs = BFSRight(bfs)
		}
	}
	return nil
}
