// SPDX-License-Identifier: MIT

package veb

// Density returns the occupation of a subtree of the given height in
// 16.16 fixed point, mirroring the `density` helper in
// veb_small_height.c.
func Density(occupation, height int) int {
	nodes := treeSize(height)
	if nodes == 0 {
		return 0
	}
	return (occupation << 16) / nodes
}

// TargetDensity returns the maximum allowed 16.16 fixed-point density
// for a subtree of the given height within a tree of total height
// t.Height, linearly interpolated between MaxDensity (leaves) and
// MinDensity (root), mirroring `target_density`.
func (t *Tree[K]) TargetDensity(height int) int {
	slope := t.MaxDensity - t.MinDensity
	frac := (height << 16) / t.Height
	return t.MaxDensity - (slope*frac)>>16
}
