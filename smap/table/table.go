package table

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"
)

// Table is a sparse (KeyA, KeyB) -> Value store that keeps its columns grouped
// by whichever key was sliced last.
//
// Query methods may rebuild the columns, so a Table needs exclusive access for
// every call, including the ones that read.
type Table[A, B cmp.Ordered, V any] struct {
	entries     []Entry[A, B, V]
	orientation Orientation

	// Only the layout named by orientation is populated. The other one is
	// truncated and keeps its capacity for the next flip.
	byA layout[A, B, V]
	byB layout[B, A, V]

	order    []int // sort scratch, reused across rebuilds
	settings settings
	stats    stats
}

// Build copies entries into a new Table laid out in the configured orientation
// (AOuter unless WithOrientation says otherwise).
//
// Composite keys are expected to be unique. Under the default RejectDuplicates
// policy a repeated (KeyA, KeyB) pair fails the build with ErrDuplicateKey;
// KeepLast keeps the pair's last row in input order and KeepAll keeps every
// row.
func Build[A, B cmp.Ordered, V any](entries []Entry[A, B, V], opts ...Option) (*Table[A, B, V], error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return build(slices.Clone(entries), s)
}

// build takes ownership of entries.
func build[A, B cmp.Ordered, V any](entries []Entry[A, B, V], s settings) (*Table[A, B, V], error) {
	if entries == nil {
		entries = []Entry[A, B, V]{}
	}
	t := &Table[A, B, V]{
		entries:     entries,
		orientation: s.orientation,
		settings:    s,
	}

	dropped, err := t.rebuild(s.orientation, s.policy)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		// Keep the source rows in step with the deduplicated layout so later
		// flips project the same set.
		t.entries = t.Entries()
		t.settings.logger.Debug().
			Int("dropped", dropped).
			Int("entries", len(t.entries)).
			Msg("Duplicate composite keys collapsed")
	}
	if s.verify {
		t.verify()
	}

	t.settings.logger.Debug().
		Str("orientation", t.orientation.String()).
		Int("entries", len(t.entries)).
		Int("outer_keys", t.outerCount()).
		Msg("Table built")

	return t, nil
}

// rebuild projects the entries into the layout for o and makes it current.
func (t *Table[A, B, V]) rebuild(o Orientation, policy DuplicatePolicy) (int, error) {
	start := time.Now()

	t.order = t.order[:0]
	for i := range t.entries {
		t.order = append(t.order, i)
	}

	var (
		dup     int
		dropped int
		ok      bool
	)
	switch o {
	case AOuter:
		// Both layouts carry a []V column; hand the idle one over.
		t.byA.values, t.byB.values = t.byB.values, t.byA.values
		t.byB.truncate()
		dup, dropped, ok = project(&t.byA, t.order, projection[A, B, V]{
			outer: func(row int) A { return t.entries[row].KeyA },
			inner: func(row int) B { return t.entries[row].KeyB },
			value: func(row int) V { return t.entries[row].Value },
		}, policy)
	case BOuter:
		t.byA.values, t.byB.values = t.byB.values, t.byA.values
		t.byA.truncate()
		dup, dropped, ok = project(&t.byB, t.order, projection[B, A, V]{
			outer: func(row int) B { return t.entries[row].KeyB },
			inner: func(row int) A { return t.entries[row].KeyA },
			value: func(row int) V { return t.entries[row].Value },
		}, policy)
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownOrientation, o)
	}
	if !ok {
		e := t.entries[dup]
		return 0, fmt.Errorf("%w: (%v, %v)", ErrDuplicateKey, e.KeyA, e.KeyB)
	}

	t.orientation = o
	t.stats.recordBuild(time.Since(start))
	return dropped, nil
}

// orient flips the table to o when it is not already there.
func (t *Table[A, B, V]) orient(o Orientation) {
	if t.orientation == o {
		return
	}
	from := t.orientation
	// KeepAll: duplicates were settled by build, nothing can be rejected here.
	if _, err := t.rebuild(o, KeepAll); err != nil {
		panic(err) // unreachable: o is one of the two orientations
	}
	t.stats.flips.Add(1)
	if t.settings.verify {
		t.verify()
	}

	t.settings.logger.Debug().
		Str("from", from.String()).
		Str("to", o.String()).
		Int("entries", len(t.entries)).
		Dur("duration", t.stats.lastBuildDuration()).
		Msg("Table reoriented")
}

func (t *Table[A, B, V]) verify() {
	errs := t.Validate()
	if len(errs) == 0 {
		return
	}
	t.settings.logger.Warn().
		Errs("errors", errs).
		Str("orientation", t.orientation.String()).
		Msg("Table layout validation failed")
	if t.settings.asserter != nil {
		t.settings.asserter.Assert(context.Background(), len(errs) == 0,
			"table layout invariant violated", "error_count", len(errs))
	}
}

// SliceOnA returns every (KeyB, Value) pair stored under a. It flips the
// table to AOuter first if needed. The result is an owned copy ordered by
// KeyB; a missing key yields an empty slice.
func (t *Table[A, B, V]) SliceOnA(a A) []Pair[B, V] {
	t.orient(AOuter)
	out, found := t.byA.slice(a)
	t.stats.recordSlice(found)
	return out
}

// SliceOnB returns every (KeyA, Value) pair stored under b. It flips the
// table to BOuter first if needed. The result is an owned copy ordered by
// KeyA; a missing key yields an empty slice.
func (t *Table[A, B, V]) SliceOnB(b B) []Pair[A, V] {
	t.orient(BOuter)
	out, found := t.byB.slice(b)
	t.stats.recordSlice(found)
	return out
}

// Get returns the value stored at (a, b) without changing the orientation.
// Under KeepAll with repeated pairs any one of them is returned.
func (t *Table[A, B, V]) Get(a A, b B) (V, bool) {
	if t.orientation == AOuter {
		return t.byA.lookup(a, b)
	}
	return t.byB.lookup(b, a)
}

// Orientation reports which key is outer right now.
func (t *Table[A, B, V]) Orientation() Orientation { return t.orientation }

// Len returns the number of rows.
func (t *Table[A, B, V]) Len() int { return len(t.entries) }

// KeysA returns the distinct KeyA values in ascending order. It never flips.
func (t *Table[A, B, V]) KeysA() []A {
	if t.orientation == AOuter {
		return slices.Clone(nonNil(t.byA.outerKeys))
	}
	return t.byB.innerDistinct()
}

// KeysB returns the distinct KeyB values in ascending order. It never flips.
func (t *Table[A, B, V]) KeysB() []B {
	if t.orientation == BOuter {
		return slices.Clone(nonNil(t.byB.outerKeys))
	}
	return t.byA.innerDistinct()
}

// Entries returns a copy of all rows in the current layout order.
func (t *Table[A, B, V]) Entries() []Entry[A, B, V] {
	out := make([]Entry[A, B, V], 0, len(t.entries))
	t.Each(func(e Entry[A, B, V]) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Each calls fn for every row in the current layout order until fn returns
// false. fn must not query the table.
func (t *Table[A, B, V]) Each(fn func(Entry[A, B, V]) bool) {
	if t.orientation == AOuter {
		t.byA.each(func(a A, b B, v V) bool {
			return fn(Entry[A, B, V]{KeyA: a, KeyB: b, Value: v})
		})
		return
	}
	t.byB.each(func(b B, a A, v V) bool {
		return fn(Entry[A, B, V]{KeyA: a, KeyB: b, Value: v})
	})
}

func (t *Table[A, B, V]) outerCount() int {
	if t.orientation == AOuter {
		return len(t.byA.outerKeys)
	}
	return len(t.byB.outerKeys)
}

func nonNil[K any](s []K) []K {
	if s == nil {
		return []K{}
	}
	return s
}
