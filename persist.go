// SPDX-License-Identifier: MIT

package pdict

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Save writes a JSON snapshot (see jsonify.go) of the dictionary to
// path, truncating any existing file. The format is a plain
// Snapshot[K,V]; it is not the PMA's internal layout, so reloading via
// Load rebuilds fresh PMA/vEB structures from the sorted entries
// rather than mapping the live array in place.
func (d *Dictionary[K, V]) Save(path string) error {
	buf, err := d.MarshalJSON()
	if err != nil {
		return fmt.Errorf("pdict: marshal snapshot: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("pdict: open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(buf); err != nil {
		return fmt.Errorf("pdict: write %s: %w", path, err)
	}

	return nil
}

// Load opens path, memory-maps it read-only with mmap-go (so the
// kernel pages in the snapshot lazily rather than the process reading
// it all up front), decodes the Snapshot, and replays its entries
// into a freshly built Dictionary sized for the decoded count.
//
// The mapping is unmapped before Load returns — it exists only to
// avoid a full buffered read of a potentially large snapshot file,
// not to back the live dictionary's storage.
func Load[K Key, V any](path string) (*Dictionary[K, V], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pdict: open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("pdict: stat %s: %w", path, err)
	}
	if fi.Size() == 0 {
		return New[K, V](0)
	}

	region, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("pdict: mmap %s: %w", path, err)
	}
	defer region.Unmap()

	var snap Snapshot[K, V]
	if err := json.Unmarshal(region, &snap); err != nil {
		return nil, fmt.Errorf("pdict: decode snapshot %s: %w", path, err)
	}

	d, err := New[K, V](snap.Count)
	if err != nil {
		return nil, err
	}
	for _, e := range snap.Entries {
		if err := d.Insert(e.Key, e.Value); err != nil {
			return nil, fmt.Errorf("pdict: replay %v: %w", e.Key, err)
		}
	}

	return d, nil
}
