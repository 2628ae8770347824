// SPDX-License-Identifier: MIT

package pdict

import (
	"fmt"
	"io"
	"strings"

	"github.com/gaissmai/pdict/internal/veb"
)

// DumpIndex writes a depth-indented, pre-order dump of the vEB index
// tree to w: one line per occupied node reachable from the root
// through occupied nodes (nodes below an empty node are not visited),
// showing its BFS number, key, and the PMA segment it points at (-1
// for interior nodes). Useful during development to see how the
// tree's shape tracks the array's segment boundaries.
//
//	Output (4 segments with minima 10, 20, 30, 40):
//
//	[1] key=30 seg=-1
//	.[2] key=20 seg=-1
//	..[4] key=10 seg=0
//	..[5] key=20 seg=1
//	.[3] key=40 seg=-1
//	..[6] key=30 seg=2
//	..[7] key=40 seg=3
func (d *Dictionary[K, V]) DumpIndex(w io.Writer) error {
	return dumpIndexRec(w, d.index, 1, 0)
}

func dumpIndexRec[K Key](w io.Writer, idx *veb.Tree[K], bfs, depth int) error {
	if !idx.NodeValid(bfs) {
		return nil
	}
	n := idx.NodeAt(bfs)

	prefix := strings.Repeat(".", depth)
	if _, err := fmt.Fprintf(w, "%s[%d] key=%v seg=%d\n", prefix, bfs, n.Key, n.LeafOfs); err != nil {
		return err
	}

	if err := dumpIndexRec(w, idx, 2*bfs, depth+1); err != nil {
		return err
	}
	return dumpIndexRec(w, idx, 2*bfs+1, depth+1)
}
