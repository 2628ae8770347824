// SPDX-License-Identifier: MIT

// Package veb implements the BFS-to-vEB address arithmetic and the
// van Emde Boas laid-out binary index tree used by the dictionary
// facade to navigate the packed memory array.
package veb

import "math/bits"

// Hyperceil returns the smallest power of two >= f, for f > 1.
// Hyperceil(1) and Hyperceil(0) both return 1.
func Hyperceil(f int) int {
	if f <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(f-1))
}

// Hyperfloor returns the largest power of two <= f, for f > 0.
func Hyperfloor(f int) int {
	if f <= 0 {
		return 0
	}
	return 1 << (bits.Len(uint(f)) - 1)
}

// ILog2 returns floor(log2(f)) for f > 0, the depth of bfs number f
// in a breadth-first numbered complete binary tree rooted at 1.
func ILog2(f int) int {
	return bits.Len(uint(f)) - 1
}

// IsPowerOfTwo reports whether f is a power of two.
func IsPowerOfTwo(f int) bool {
	return f > 0 && f&(f-1) == 0
}

// LevelInfo is one entry of the per-depth table used to compute
// bfs-to-vEB positions in O(H) instead of O(H log H).
//
// For a node at depth d, SubtreeDepth names the depth of the nearest
// enclosing recursive split's ancestor root, TopSize is the node count
// of that split's top tree, and BottomSize is the node count of one
// of its bottom subtrees. See Position.
type LevelInfo struct {
	SubtreeDepth int
	TopSize      int
	BottomSize   int
}

// ComputeLevelInfo builds the level_info table for a complete binary
// tree of the given height, mirroring the recursive split performed by
// BFSToVEB so that Position can replay it without recursion.
func ComputeLevelInfo(height int) []LevelInfo {
	li := make([]LevelInfo, height+1)
	computeLevels(li, 0, height)
	li[0] = LevelInfo{}
	return li
}

func computeLevels(li []LevelInfo, top, height int) {
	if height <= 1 {
		return
	}

	bottomHeight := Hyperceil((height + 1) / 2)
	topHeight := height - bottomHeight

	li[top+topHeight] = LevelInfo{
		SubtreeDepth: top,
		TopSize:      treeSize(topHeight),
		BottomSize:   treeSize(bottomHeight),
	}

	computeLevels(li, top, topHeight)
	computeLevels(li, top+topHeight, bottomHeight)
}

func treeSize(height int) int {
	return (1 << height) - 1
}

// Position maps a 1-indexed BFS number to its 1-indexed physical slot
// in the vEB layout, using the tabulated level_info instead of
// recursing on every call. li must have been built by ComputeLevelInfo
// for the tree height this bfs number belongs to.
//
// pos[0] is seeded to 1 (the position of the whole tree's own root in
// any recursive sub-layout) and each level folds in the top tree's
// size plus the bottom subtree's share, exactly mirroring
// veb_small_height.c's bfs_to_veb_lu.
func Position(li []LevelInfo, bfsNum int) int {
	if bfsNum <= 0 {
		return bfsNum
	}

	level := ILog2(bfsNum)

	pos := make([]int, level+1)
	pos[0] = 1

	for d := 1; d <= level; d++ {
		i := bfsNum >> (level - d)
		l := li[d]
		pos[d] = pos[l.SubtreeDepth] + l.TopSize + (i&l.TopSize)*l.BottomSize
	}

	return pos[level]
}

// BFSToVEB computes the vEB position of bfsNumber directly via the
// recursive split definition (§4.1). It is used only to validate
// ComputeLevelInfo/Position in tests and to bootstrap a level_info
// table's correctness; hot paths always go through Position.
//
// Replacing the subtree-root bits with the implicit new root (1) is
// done by clearing every bit at or above subtreeDepth and OR-ing in a
// single bit there: the source tree's variant mask, built from
// numSubtrees instead of subtreeDepth, overflows for top heights
// beyond a handful of bits, so this resolves that open question (see
// DESIGN.md) rather than reproducing the bug.
func BFSToVEB(bfsNumber, height int) int {
	if height <= 2 {
		return bfsNumber
	}

	depth := ILog2(bfsNumber)

	bottomHeight := Hyperceil((height + 1) / 2)
	topHeight := height - bottomHeight

	if depth < topHeight {
		return BFSToVEB(bfsNumber, topHeight)
	}

	subtreeDepth := depth - topHeight
	subtreeRoot := bfsNumber >> subtreeDepth

	numSubtrees := 1 << topHeight

	bfsNumber = (1 << subtreeDepth) | (bfsNumber & ((1 << subtreeDepth) - 1))

	subtreeSize := treeSize(bottomHeight)
	topTreeSize := treeSize(topHeight)

	priorLength := topTreeSize + (subtreeRoot&(numSubtrees-1))*subtreeSize

	return priorLength + BFSToVEB(bfsNumber, bottomHeight)
}
