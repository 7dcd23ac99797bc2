package table

import (
	"cmp"
	"slices"
)

// layout is the storage for one orientation: O is the outer key type, I the
// inner key type. innerKeys and values are aligned row for row and
// spans[i] covers the rows of outerKeys[i].
type layout[O, I cmp.Ordered, V any] struct {
	outerKeys []O
	spans     []Span
	innerKeys []I
	values    []V
}

// truncate empties the layout and keeps its capacity for the next rebuild.
func (l *layout[O, I, V]) truncate() {
	l.outerKeys = l.outerKeys[:0]
	l.spans = l.spans[:0]
	l.innerKeys = l.innerKeys[:0]
	l.values = l.values[:0]
}

func (l *layout[O, I, V]) rows() int { return len(l.innerKeys) }

// projection reads the columns of the source rows for one orientation.
type projection[O, I cmp.Ordered, V any] struct {
	outer func(row int) O
	inner func(row int) I
	value func(row int) V
}

// project sorts order by (outer, inner) and run-length encodes the result
// into l. The sort is stable, so rows with equal composite keys keep their
// input order. Under RejectDuplicates it stops at the first repeated
// composite key and returns its row with ok=false; under KeepLast the later
// row overwrites the earlier one. dropped counts overwritten rows.
func project[O, I cmp.Ordered, V any](l *layout[O, I, V], order []int, p projection[O, I, V], policy DuplicatePolicy) (dup int, dropped int, ok bool) {
	slices.SortStableFunc(order, func(x, y int) int {
		if c := cmp.Compare(p.outer(x), p.outer(y)); c != 0 {
			return c
		}
		return cmp.Compare(p.inner(x), p.inner(y))
	})

	l.outerKeys = l.outerKeys[:0]
	l.spans = l.spans[:0]
	l.innerKeys = slices.Grow(l.innerKeys[:0], len(order))
	l.values = slices.Grow(l.values[:0], len(order))

	for _, row := range order {
		ko, ki := p.outer(row), p.inner(row)
		last := len(l.outerKeys) - 1
		if last < 0 || cmp.Compare(l.outerKeys[last], ko) != 0 {
			l.outerKeys = append(l.outerKeys, ko)
			l.spans = append(l.spans, Span{Start: len(l.innerKeys)})
			last++
		} else if policy != KeepAll && cmp.Compare(l.innerKeys[len(l.innerKeys)-1], ki) == 0 {
			if policy == RejectDuplicates {
				return row, dropped, false
			}
			l.values[len(l.values)-1] = p.value(row)
			dropped++
			continue
		}
		l.spans[last].Length++
		l.innerKeys = append(l.innerKeys, ki)
		l.values = append(l.values, p.value(row))
	}
	return -1, dropped, true
}

// find returns the ordinal of key among the outer keys.
func (l *layout[O, I, V]) find(key O) (int, bool) {
	return slices.BinarySearch(l.outerKeys, key)
}

// run returns the inner keys and values of one outer key without copying.
func (l *layout[O, I, V]) run(key O) ([]I, []V) {
	i, found := l.find(key)
	if !found {
		return nil, nil
	}
	s := l.spans[i]
	return l.innerKeys[s.Start:s.End()], l.values[s.Start:s.End()]
}

// slice copies the run of key into owned pairs. A miss yields an empty,
// non-nil slice.
func (l *layout[O, I, V]) slice(key O) ([]Pair[I, V], bool) {
	keys, vals := l.run(key)
	if keys == nil {
		return []Pair[I, V]{}, false
	}
	out := make([]Pair[I, V], len(keys))
	for j := range keys {
		out[j] = Pair[I, V]{Key: keys[j], Value: vals[j]}
	}
	return out, true
}

// lookup finds the value at (outer, inner). Inner keys are sorted within a
// run, so this is two binary searches.
func (l *layout[O, I, V]) lookup(outer O, inner I) (V, bool) {
	keys, vals := l.run(outer)
	j, found := slices.BinarySearch(keys, inner)
	if !found {
		var zero V
		return zero, false
	}
	return vals[j], true
}

// innerDistinct returns the sorted distinct inner keys.
func (l *layout[O, I, V]) innerDistinct() []I {
	out := slices.Clone(l.innerKeys)
	if out == nil {
		out = []I{}
	}
	slices.Sort(out)
	return slices.CompactFunc(out, func(x, y I) bool { return cmp.Compare(x, y) == 0 })
}

// each calls fn for every row in layout order, stopping when fn returns false.
func (l *layout[O, I, V]) each(fn func(outer O, inner I, value V) bool) {
	for i, s := range l.spans {
		for r := s.Start; r < s.End(); r++ {
			if !fn(l.outerKeys[i], l.innerKeys[r], l.values[r]) {
				return
			}
		}
	}
}

// ordinalRows calls fn for every row of the outer ordinals [lo, hi).
func (l *layout[O, I, V]) ordinalRows(lo, hi int, fn func(outer O, inner I, value V)) {
	for i := lo; i < hi; i++ {
		s := l.spans[i]
		for r := s.Start; r < s.End(); r++ {
			fn(l.outerKeys[i], l.innerKeys[r], l.values[r])
		}
	}
}
