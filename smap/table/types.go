package table

import (
	"cmp"
	"fmt"
	"strings"
)

// Orientation tells which key currently groups the table's storage.
type Orientation uint8

const (
	// AOuter groups rows by KeyA; KeyB is stored flat per group.
	AOuter Orientation = iota
	// BOuter groups rows by KeyB; KeyA is stored flat per group.
	BOuter
)

func (o Orientation) String() string {
	switch o {
	case AOuter:
		return "a-outer"
	case BOuter:
		return "b-outer"
	default:
		return fmt.Sprintf("orientation(%d)", uint8(o))
	}
}

// Other returns the opposite orientation.
func (o Orientation) Other() Orientation {
	if o == AOuter {
		return BOuter
	}
	return AOuter
}

// ParseOrientation accepts "a", "b", "a-outer" and "b-outer" (case-insensitive).
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "a-outer", "aouter":
		return AOuter, nil
	case "b", "b-outer", "bouter":
		return BOuter, nil
	}
	return AOuter, fmt.Errorf("%w: %q", ErrUnknownOrientation, s)
}

// Entry is one (KeyA, KeyB, Value) row.
type Entry[A, B cmp.Ordered, V any] struct {
	KeyA  A
	KeyB  B
	Value V
}

// Span is the half-open row range [Start, Start+Length) owned by one outer key.
type Span struct {
	Start  int
	Length int
}

// End returns the exclusive end of the span.
func (s Span) End() int { return s.Start + s.Length }

// Pair is one slice row: the other key and its value.
type Pair[K any, V any] struct {
	Key   K
	Value V
}

// DuplicatePolicy decides what Build does with repeated (KeyA, KeyB) pairs.
type DuplicatePolicy uint8

const (
	// RejectDuplicates fails the build with ErrDuplicateKey.
	RejectDuplicates DuplicatePolicy = iota
	// KeepLast keeps the row that came last in the input.
	KeepLast
	// KeepAll keeps every row; slices return all of them in input order.
	KeepAll
)

func (p DuplicatePolicy) String() string {
	switch p {
	case RejectDuplicates:
		return "reject"
	case KeepLast:
		return "keep-last"
	case KeepAll:
		return "keep-all"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// ParseDuplicatePolicy accepts "reject", "keep-last" and "keep-all".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reject", "":
		return RejectDuplicates, nil
	case "keep-last", "keeplast", "last":
		return KeepLast, nil
	case "keep-all", "keepall", "all":
		return KeepAll, nil
	}
	return RejectDuplicates, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}
