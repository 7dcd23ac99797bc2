package table

import (
	"cmp"
	"slices"

	roaring "github.com/RoaringBitmap/roaring"
)

type filterKind uint8

const (
	filterAll filterKind = iota
	filterEquals
	filterGreaterThan
	filterGreaterOrEqual
	filterLessThan
	filterLessOrEqual
	filterBetween
	filterIn
)

// Filter selects a set of keys along one dimension. Build one with All,
// Equals, GreaterThan, GreaterOrEqual, LessThan, LessOrEqual, Between or In.
type Filter[K cmp.Ordered] struct {
	kind filterKind
	lo   K
	hi   K
	keys []K
}

func All[K cmp.Ordered]() Filter[K] { return Filter[K]{kind: filterAll} }

func Equals[K cmp.Ordered](k K) Filter[K] { return Filter[K]{kind: filterEquals, lo: k} }

func GreaterThan[K cmp.Ordered](k K) Filter[K] { return Filter[K]{kind: filterGreaterThan, lo: k} }

func GreaterOrEqual[K cmp.Ordered](k K) Filter[K] {
	return Filter[K]{kind: filterGreaterOrEqual, lo: k}
}

func LessThan[K cmp.Ordered](k K) Filter[K] { return Filter[K]{kind: filterLessThan, hi: k} }

func LessOrEqual[K cmp.Ordered](k K) Filter[K] { return Filter[K]{kind: filterLessOrEqual, hi: k} }

// Between matches lo <= k <= hi.
func Between[K cmp.Ordered](lo, hi K) Filter[K] {
	return Filter[K]{kind: filterBetween, lo: lo, hi: hi}
}

// In matches any of keys. Repeated keys match once.
func In[K cmp.Ordered](keys ...K) Filter[K] {
	return Filter[K]{kind: filterIn, keys: slices.Clone(keys)}
}

// Match reports whether k passes the filter.
func (f Filter[K]) Match(k K) bool {
	switch f.kind {
	case filterAll:
		return true
	case filterEquals:
		return cmp.Compare(k, f.lo) == 0
	case filterGreaterThan:
		return cmp.Compare(k, f.lo) > 0
	case filterGreaterOrEqual:
		return cmp.Compare(k, f.lo) >= 0
	case filterLessThan:
		return cmp.Compare(k, f.hi) < 0
	case filterLessOrEqual:
		return cmp.Compare(k, f.hi) <= 0
	case filterBetween:
		return cmp.Compare(k, f.lo) >= 0 && cmp.Compare(k, f.hi) <= 0
	case filterIn:
		return slices.ContainsFunc(f.keys, func(x K) bool { return cmp.Compare(x, k) == 0 })
	}
	return false
}

// lowerBound is the first ordinal whose key is >= k (strict: > k).
func lowerBound[K cmp.Ordered](keys []K, k K, strict bool) int {
	i, found := slices.BinarySearch(keys, k)
	if found && strict {
		i++
	}
	return i
}

// bounds resolves a contiguous filter to outer ordinals [lo, hi).
func (f Filter[K]) bounds(keys []K) (int, int) {
	n := len(keys)
	var lo, hi int
	switch f.kind {
	case filterAll:
		return 0, n
	case filterEquals:
		lo = lowerBound(keys, f.lo, false)
		hi = lowerBound(keys, f.lo, true)
	case filterGreaterThan:
		lo, hi = lowerBound(keys, f.lo, true), n
	case filterGreaterOrEqual:
		lo, hi = lowerBound(keys, f.lo, false), n
	case filterLessThan:
		lo, hi = 0, lowerBound(keys, f.hi, false)
	case filterLessOrEqual:
		lo, hi = 0, lowerBound(keys, f.hi, true)
	case filterBetween:
		lo, hi = lowerBound(keys, f.lo, false), lowerBound(keys, f.hi, true)
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// ordinals resolves an In filter to the set of matching outer ordinals.
func (f Filter[K]) ordinals(keys []K) *roaring.Bitmap {
	bm := roaring.New()
	for _, k := range f.keys {
		if i, found := slices.BinarySearch(keys, k); found {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// filterLayout emits the rows of every outer key that passes f, in outer key
// order.
func filterLayout[O, I cmp.Ordered, V any](l *layout[O, I, V], f Filter[O], emit func(O, I, V)) {
	if f.kind != filterIn {
		lo, hi := f.bounds(l.outerKeys)
		l.ordinalRows(lo, hi, emit)
		return
	}
	it := f.ordinals(l.outerKeys).Iterator()
	for it.HasNext() {
		i := int(it.Next())
		l.ordinalRows(i, i+1, emit)
	}
}

// FilterOnA returns the rows whose KeyA passes f, flipping the table to
// AOuter first if needed. Rows come out ordered by (KeyA, KeyB).
func (t *Table[A, B, V]) FilterOnA(f Filter[A]) []Entry[A, B, V] {
	t.orient(AOuter)
	out := []Entry[A, B, V]{}
	filterLayout(&t.byA, f, func(a A, b B, v V) {
		out = append(out, Entry[A, B, V]{KeyA: a, KeyB: b, Value: v})
	})
	t.stats.recordSlice(len(out) > 0)
	return out
}

// FilterOnB returns the rows whose KeyB passes f, flipping the table to
// BOuter first if needed. Rows come out ordered by (KeyB, KeyA).
func (t *Table[A, B, V]) FilterOnB(f Filter[B]) []Entry[A, B, V] {
	t.orient(BOuter)
	out := []Entry[A, B, V]{}
	filterLayout(&t.byB, f, func(b B, a A, v V) {
		out = append(out, Entry[A, B, V]{KeyA: a, KeyB: b, Value: v})
	})
	t.stats.recordSlice(len(out) > 0)
	return out
}
