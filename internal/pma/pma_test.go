// SPDX-License-Identifier: MIT

package pma

import (
	"cmp"
	"math/rand/v2"
	"testing"
)

func intCmp(a, b int) int { return cmp.Compare(a, b) }

func TestSizeFor(t *testing.T) {
	t.Parallel()

	for _, capacity := range []int{1, 2, 8, 9, 16, 100, 1000} {
		nsegs, segsize, size := sizeFor(capacity)
		if nsegs < 1 || segsize < 1 {
			t.Fatalf("sizeFor(%d) = nsegs=%d segsize=%d, want both >= 1", capacity, nsegs, segsize)
		}
		if size != nsegs*segsize {
			t.Errorf("sizeFor(%d): size=%d != nsegs*segsize=%d", capacity, size, nsegs*segsize)
		}
		if size < capacity {
			t.Errorf("sizeFor(%d): size=%d smaller than requested capacity", capacity, size)
		}
	}
}

func TestInsertSearch(t *testing.T) {
	t.Parallel()

	p := New[int, string](16, intCmp)

	keys := []int{50, 20, 80, 10, 30, 70, 90, 5, 15, 25, 1, 100}
	for _, k := range keys {
		p.Insert(k, "v")
	}

	for _, k := range keys {
		if _, ok := p.Search(k); !ok {
			t.Errorf("Search(%d) not found after insert", k)
		}
	}

	if _, ok := p.Search(999); ok {
		t.Errorf("Search(999) found, want not found")
	}

	if p.Count != len(keys) {
		t.Errorf("Count = %d, want %d", p.Count, len(keys))
	}
}

func TestInsertUpdatesExisting(t *testing.T) {
	t.Parallel()

	p := New[int, string](8, intCmp)
	p.Insert(5, "first")
	p.Insert(5, "second")

	v, ok := p.Search(5)
	if !ok || v != "second" {
		t.Errorf("Search(5) = %q, %v, want %q, true", v, ok, "second")
	}
	if p.Count != 1 {
		t.Errorf("Count = %d, want 1 (update, not insert)", p.Count)
	}
}

func TestPredecessor(t *testing.T) {
	t.Parallel()

	p := New[int, int](16, intCmp)
	for _, k := range []int{10, 20, 30, 40, 50} {
		p.Insert(k, k*10)
	}

	cases := []struct {
		query   int
		wantKey int
		wantOK  bool
	}{
		{5, 0, false},
		{10, 10, true},
		{15, 10, true},
		{30, 30, true},
		{45, 40, true},
		{100, 50, true},
	}

	for _, c := range cases {
		k, v, ok := p.Predecessor(c.query)
		if ok != c.wantOK {
			t.Errorf("Predecessor(%d) ok = %v, want %v", c.query, ok, c.wantOK)
			continue
		}
		if ok && (k != c.wantKey || v != c.wantKey*10) {
			t.Errorf("Predecessor(%d) = (%d,%d), want (%d,%d)", c.query, k, v, c.wantKey, c.wantKey*10)
		}
	}
}

func TestInsertScopedRestrictsSearchWindow(t *testing.T) {
	t.Parallel()

	p := New[int, int](32, intCmp)
	for _, k := range []int{10, 20, 30, 40, 50, 60, 70, 80} {
		p.Insert(k, k)
	}

	// Carve the array into two halves and insert a key with the search
	// scoped to the right half even though the left half also has gaps;
	// the key must land in the right half, and a search scoped to the
	// left half must not find it.
	mid := len(p.Leaves) / 2

	slot, outcome := p.InsertScoped(mid, len(p.Leaves)-1, 65, 650)
	if outcome == PlacedAfterGrow {
		t.Fatal("InsertScoped grew on a mostly-empty array")
	}
	if slot < mid {
		t.Errorf("InsertScoped placed key at slot %d, want >= %d (right window)", slot, mid)
	}

	v, ok := p.SearchIn(mid, len(p.Leaves)-1, 65)
	if !ok || v != 650 {
		t.Errorf("SearchIn(right window, 65) = %d, %v, want 650, true", v, ok)
	}

	if _, ok := p.SearchIn(0, mid-1, 65); ok {
		t.Error("SearchIn(left window, 65) found a key inserted into the right window")
	}
}

func TestPredecessorInBoundedToWindow(t *testing.T) {
	t.Parallel()

	p := New[int, int](16, intCmp)
	for _, k := range []int{10, 20, 30, 40} {
		p.Insert(k, k*10)
	}

	// Find where 20 actually landed and scope a window to exactly its
	// segment; a query below everything in that segment must report
	// "not found" rather than reaching into a neighboring segment.
	seg := p.Segment
	var segStart int
	for i, leaf := range p.Leaves {
		if !leaf.Empty && leaf.Key == 20 {
			segStart = (i / seg) * seg
			break
		}
	}
	segEnd := segStart + seg - 1

	if _, _, ok := p.PredecessorIn(segStart, segEnd, -1); ok {
		t.Error("PredecessorIn found a predecessor for a key smaller than the whole window")
	}
}

func TestGrowPreservesContents(t *testing.T) {
	t.Parallel()

	p := New[int, int](8, intCmp)

	prng := rand.New(rand.NewPCG(1, 1))
	const n = 500
	seen := map[int]bool{}
	keys := make([]int, 0, n)
	for len(keys) < n {
		k := prng.IntN(100_000)
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}

	for _, k := range keys {
		p.Insert(k, k*2)
	}

	if p.Count != n {
		t.Fatalf("Count = %d, want %d", p.Count, n)
	}

	for _, k := range keys {
		v, ok := p.Search(k)
		if !ok {
			t.Errorf("Search(%d) not found after many inserts/grows", k)
			continue
		}
		if v != k*2 {
			t.Errorf("Search(%d) = %d, want %d", k, v, k*2)
		}
	}

	if len(p.Leaves) < n {
		t.Errorf("len(Leaves) = %d, want >= %d", len(p.Leaves), n)
	}
}

func TestScanAscending(t *testing.T) {
	t.Parallel()

	p := New[int, int](16, intCmp)
	keys := []int{50, 20, 80, 10, 30, 70, 90}
	for _, k := range keys {
		p.Insert(k, k)
	}

	var got []int
	p.Scan(func(k, v int) bool {
		got = append(got, k)
		return true
	})

	want := []int{10, 20, 30, 50, 70, 80, 90}
	if len(got) != len(want) {
		t.Fatalf("Scan order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Scan[%d] = %d, want %d (got=%v)", i, got[i], want[i], got)
		}
	}
}

func TestScanStopsEarly(t *testing.T) {
	t.Parallel()

	p := New[int, int](16, intCmp)
	for _, k := range []int{1, 2, 3, 4, 5} {
		p.Insert(k, k)
	}

	count := 0
	p.Scan(func(k, v int) bool {
		count++
		return count < 2
	})

	if count != 2 {
		t.Errorf("Scan visited %d entries, want exactly 2 (stopped early)", count)
	}
}
