// SPDX-License-Identifier: MIT

package pdict

import (
	"fmt"
	"io"
	"strings"
)

// String returns the same output as Fprint, useful in tests and
// interactive debugging (%v / %s formatting).
func (d *Dictionary[K, V]) String() string {
	w := new(strings.Builder)
	if err := d.Fprint(w); err != nil {
		panic(err)
	}
	return w.String()
}

// Fprint writes a one-line-per-segment rendering of the packed memory
// array to w: each segment is shown as a run of '*' (occupied) and
// '.' (empty) slots, followed by its occupied count. Useful during
// development to see how gaps are distributed across a segment after
// an insert or rebalance.
//
//	Output (a 16-slot array of 4 segments):
//
//	segment  0 [4]: *.*. (2)
//	segment  1 [4]: **.* (3)
//	segment  2 [4]: .... (0)
//	segment  3 [4]: *.*. (2)
func (d *Dictionary[K, V]) Fprint(w io.Writer) error {
	store := d.store
	segLen := len(store.Leaves) / store.NumSegments
	if segLen == 0 {
		segLen = len(store.Leaves)
	}

	for seg := 0; seg < store.NumSegments; seg++ {
		start := seg * segLen
		end := start + segLen
		if end > len(store.Leaves) {
			end = len(store.Leaves)
		}

		var row strings.Builder
		occupied := 0
		for i := start; i < end; i++ {
			if store.Leaves[i].Empty {
				row.WriteByte('.')
			} else {
				row.WriteByte('*')
				occupied++
			}
		}

		if _, err := fmt.Fprintf(w, "segment %2d [%d]: %s (%d)\n", seg, end-start, row.String(), occupied); err != nil {
			return err
		}
	}

	return nil
}
