package table

import (
	"cmp"
	"fmt"
	"slices"
)

// Validate checks the current layout against the source rows and returns
// every violation found:
//   - outer keys strictly ascending
//   - one span per outer key, spans non-empty, contiguous and covering [0, n)
//   - inner key and value columns of length n
//   - inner keys sorted within each span
//   - every source row stored under its own outer key
func (t *Table[A, B, V]) Validate() []error {
	var errs []error
	if t.orientation == AOuter {
		errs = validateLayout(&t.byA, len(t.entries), func(yield func(A, B)) {
			for _, e := range t.entries {
				yield(e.KeyA, e.KeyB)
			}
		})
		if t.byB.rows() != 0 {
			errs = append(errs, fmt.Errorf("idle_layout_populated: b-outer layout holds %d rows", t.byB.rows()))
		}
	} else {
		errs = validateLayout(&t.byB, len(t.entries), func(yield func(B, A)) {
			for _, e := range t.entries {
				yield(e.KeyB, e.KeyA)
			}
		})
		if t.byA.rows() != 0 {
			errs = append(errs, fmt.Errorf("idle_layout_populated: a-outer layout holds %d rows", t.byA.rows()))
		}
	}

	if len(errs) > 0 {
		t.settings.logger.Warn().Int("error_count", len(errs)).Msg("Table validation found issues")
	} else {
		t.settings.logger.Debug().Int("entries", len(t.entries)).Msg("Table validation passed")
	}
	return errs
}

func validateLayout[O, I cmp.Ordered, V any](l *layout[O, I, V], n int, source func(yield func(O, I))) []error {
	var errs []error

	if len(l.innerKeys) != n {
		errs = append(errs, fmt.Errorf("inner_length_mismatch: %d inner keys for %d rows", len(l.innerKeys), n))
	}
	if len(l.values) != n {
		errs = append(errs, fmt.Errorf("value_length_mismatch: %d values for %d rows", len(l.values), n))
	}
	if len(l.spans) != len(l.outerKeys) {
		errs = append(errs, fmt.Errorf("span_count_mismatch: %d spans for %d outer keys", len(l.spans), len(l.outerKeys)))
		return errs
	}

	next := 0
	for i, s := range l.spans {
		if i > 0 && cmp.Compare(l.outerKeys[i-1], l.outerKeys[i]) >= 0 {
			errs = append(errs, fmt.Errorf("outer_keys_unsorted: %v at %d follows %v", l.outerKeys[i], i, l.outerKeys[i-1]))
		}
		if s.Length <= 0 {
			errs = append(errs, fmt.Errorf("empty_span: outer key %v", l.outerKeys[i]))
		}
		if s.Start != next {
			errs = append(errs, fmt.Errorf("span_gap: outer key %v starts at %d, expected %d", l.outerKeys[i], s.Start, next))
		}
		next = s.End()
		if s.Start >= 0 && s.End() <= len(l.innerKeys) {
			if !slices.IsSortedFunc(l.innerKeys[s.Start:s.End()], cmp.Compare[I]) {
				errs = append(errs, fmt.Errorf("inner_keys_unsorted: outer key %v", l.outerKeys[i]))
			}
		}
	}
	if next != n {
		errs = append(errs, fmt.Errorf("span_coverage: spans cover %d of %d rows", next, n))
	}
	if len(errs) > 0 {
		return errs
	}

	source(func(o O, i I) {
		if _, found := l.lookup(o, i); !found {
			errs = append(errs, fmt.Errorf("row_missing: (%v, %v) not stored under its outer key", o, i))
		}
	})
	return errs
}
