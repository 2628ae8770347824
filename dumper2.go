// SPDX-License-Identifier: MIT

package pdict

import (
	"fmt"
	"io"

	"github.com/gaissmai/pdict/internal/veb"
)

// DumpDot writes the vEB index tree as a Graphviz dot graph to w, one
// node per occupied index entry reachable from the root through
// occupied entries (nodes below an empty entry are not visited) and
// one edge per parent/child BFS relationship. Graph nodes are named by
// BFS number; their physical vEB slots are not shown. Piping the
// output through `dot -Tpng` renders the logical tree during
// development.
func (d *Dictionary[K, V]) DumpDot(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph veb {"); err != nil {
		return err
	}
	if err := dumpDotRec(w, d.index, 1); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

func dumpDotRec[K Key](w io.Writer, idx *veb.Tree[K], bfs int) error {
	if !idx.NodeValid(bfs) {
		return nil
	}
	n := idx.NodeAt(bfs)

	if _, err := fmt.Fprintf(w, "  n%d [label=\"%v\\nseg=%d\"];\n", bfs, n.Key, n.LeafOfs); err != nil {
		return err
	}

	for _, child := range [2]int{2 * bfs, 2*bfs + 1} {
		if idx.NodeValid(child) {
			if _, err := fmt.Fprintf(w, "  n%d -> n%d;\n", bfs, child); err != nil {
				return err
			}
			if err := dumpDotRec(w, idx, child); err != nil {
				return err
			}
		}
	}

	return nil
}
