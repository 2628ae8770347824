// SPDX-License-Identifier: MIT

package pdict

import "fmt"

// Sentinel errors returned by Dictionary methods. Wrap with %w and
// compare with errors.Is.
var (
	// ErrInvalidCapacity is returned by New when the requested initial
	// capacity is negative.
	ErrInvalidCapacity = fmt.Errorf("pdict: invalid initial capacity")

	// ErrKeyNotFound is returned by Search/Predecessor when no element
	// satisfies the query.
	ErrKeyNotFound = fmt.Errorf("pdict: key not found")

	// ErrFrozen is returned by Insert once the dictionary has been
	// Pointerized: the index's slice-index shortcuts are incompatible
	// with further growth (see internal/veb.Tree.Pointerize).
	ErrFrozen = fmt.Errorf("pdict: dictionary is frozen, no further inserts allowed")

	// ErrClosed is returned by Insert, Search and Predecessor after
	// Close has been called.
	ErrClosed = fmt.Errorf("pdict: dictionary is closed")
)

// DensityError reports that a rebalance or grow step observed a
// density outside the configured [min,max] bounds — a programming
// error in the density table rather than a data-dependent condition,
// since Rebalance/Grow are supposed to restore bounds before
// returning.
type DensityError struct {
	Level     int
	Occupied  int
	Length    int
	MaxTarget int
}

func (e *DensityError) Error() string {
	return fmt.Sprintf("pdict: density out of bounds at level %d: %d/%d exceeds target %d",
		e.Level, e.Occupied, e.Length, e.MaxTarget)
}
