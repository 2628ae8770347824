// SPDX-License-Identifier: MIT

package pdict

import "testing"

func TestInt32KeyCompare(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b Int32Key
		want int
	}{
		{1, 2, -1},
		{2, 1, 1},
		{5, 5, 0},
		{-1, 0, -1},
	}

	for _, c := range cases {
		if got := c.a.Compare(c.b); got != c.want {
			t.Errorf("%d.Compare(%d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestObjectKeyCompare(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b ObjectKey
		want int
	}{
		{ObjectKey{1, 0, 0}, ObjectKey{2, 0, 0}, -1},
		{ObjectKey{2, 0, 0}, ObjectKey{1, 0, 0}, 1},
		{ObjectKey{1, 0, 0}, ObjectKey{1, 1, 0}, -1},
		{ObjectKey{1, 1, 5}, ObjectKey{1, 1, 10}, -1},
		{ObjectKey{1, 1, 10}, ObjectKey{1, 1, 10}, 0},
		{ObjectKey{1, 1, 10}, ObjectKey{1, 0, 999}, 1},
	}

	for _, c := range cases {
		if got := c.a.Compare(c.b); got != c.want {
			t.Errorf("%+v.Compare(%+v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
