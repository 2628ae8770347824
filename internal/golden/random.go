// SPDX-License-Identifier: MIT

// Package golden provides slow, obviously-correct reference
// structures and random key generators used to differentially test
// the PMA/vEB dictionary against a brute-force oracle.
package golden

import "math/rand/v2"

// RandomInt32 returns a uniformly random int32 in [0, n).
func RandomInt32(prng *rand.Rand, n int32) int32 {
	return prng.Int32N(n)
}

// RandomUniqueInt32s returns n distinct int32 values in [0, spread),
// shuffled, suitable for driving a sequence of Insert calls without
// the golden oracle needing to deduplicate.
func RandomUniqueInt32s(prng *rand.Rand, n int, spread int32) []int32 {
	set := make(map[int32]struct{}, n)
	out := make([]int32, 0, n)

	for len(out) < n {
		v := RandomInt32(prng, spread)
		if _, ok := set[v]; ok {
			continue
		}
		set[v] = struct{}{}
		out = append(out, v)
	}

	prng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	return out
}

// RandomObjectTriple returns a random (id, type, offset) triple drawn
// from small ranges, so collisions and btrfs-style "same object,
// different offset" runs show up often in generated test data.
func RandomObjectTriple(prng *rand.Rand) (id uint64, typ uint8, offset uint64) {
	id = uint64(prng.IntN(64))
	typ = uint8(prng.IntN(4))
	offset = uint64(prng.IntN(1 << 20))
	return
}
