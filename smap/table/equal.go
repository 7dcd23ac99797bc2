package table

import (
	"cmp"
	"slices"
)

// Equal reports whether x and y hold the same rows, whatever their
// orientations. Neither table flips. Rows sharing a composite key (KeepAll)
// are compared in the order they were passed to Build.
func Equal[A, B cmp.Ordered, V any](x, y *Table[A, B, V], eq func(V, V) bool) bool {
	if x.Len() != y.Len() {
		return false
	}
	xs, ys := sortedEntries(x), sortedEntries(y)
	for i := range xs {
		if cmp.Compare(xs[i].KeyA, ys[i].KeyA) != 0 ||
			cmp.Compare(xs[i].KeyB, ys[i].KeyB) != 0 ||
			!eq(xs[i].Value, ys[i].Value) {
			return false
		}
	}
	return true
}

// EqualComparable is Equal with == on values.
func EqualComparable[A, B cmp.Ordered, V comparable](x, y *Table[A, B, V]) bool {
	return Equal(x, y, func(a, b V) bool { return a == b })
}

func sortedEntries[A, B cmp.Ordered, V any](t *Table[A, B, V]) []Entry[A, B, V] {
	out := t.Entries()
	if t.orientation == AOuter {
		// already (KeyA, KeyB) ordered
		return out
	}
	slices.SortStableFunc(out, func(x, y Entry[A, B, V]) int {
		if c := cmp.Compare(x.KeyA, y.KeyA); c != 0 {
			return c
		}
		return cmp.Compare(x.KeyB, y.KeyB)
	})
	return out
}
