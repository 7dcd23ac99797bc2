package table

import (
	"cmp"

	"gonum.org/v1/gonum/floats"
)

// SumOnA adds up the values stored under a, flipping to AOuter if needed.
// A missing key sums to zero.
func SumOnA[A, B cmp.Ordered](t *Table[A, B, float64], a A) float64 {
	t.orient(AOuter)
	keys, vals := t.byA.run(a)
	t.stats.recordSlice(keys != nil)
	return floats.Sum(vals)
}

// SumOnB adds up the values stored under b, flipping to BOuter if needed.
func SumOnB[A, B cmp.Ordered](t *Table[A, B, float64], b B) float64 {
	t.orient(BOuter)
	keys, vals := t.byB.run(b)
	t.stats.recordSlice(keys != nil)
	return floats.Sum(vals)
}

// Sum adds up every value in the table. It never flips.
func Sum[A, B cmp.Ordered](t *Table[A, B, float64]) float64 {
	if t.orientation == AOuter {
		return floats.Sum(t.byA.values)
	}
	return floats.Sum(t.byB.values)
}

// Scale returns a new table with every value multiplied by k, laid out in
// t's current orientation.
func Scale[A, B cmp.Ordered](t *Table[A, B, float64], k float64) (*Table[A, B, float64], error) {
	entries := t.Entries()
	vals := make([]float64, len(entries))
	for i, e := range entries {
		vals[i] = e.Value
	}
	floats.Scale(k, vals)
	for i := range entries {
		entries[i].Value = vals[i]
	}

	s := t.settings
	s.orientation = t.orientation
	s.policy = KeepAll
	return build(entries, s)
}

// Multiply returns the element-wise product of x and y over the composite
// keys present in both. Both inputs are flipped to AOuter, the result is
// built AOuter with x's settings.
func Multiply[A, B cmp.Ordered](x, y *Table[A, B, float64]) (*Table[A, B, float64], error) {
	x.orient(AOuter)
	y.orient(AOuter)
	xl, yl := &x.byA, &y.byA

	var out []Entry[A, B, float64]
	i, j := 0, 0
	for i < len(xl.outerKeys) && j < len(yl.outerKeys) {
		c := cmp.Compare(xl.outerKeys[i], yl.outerKeys[j])
		if c < 0 {
			i++
			continue
		}
		if c > 0 {
			j++
			continue
		}

		xs, ys := xl.spans[i], yl.spans[j]
		p, q := xs.Start, ys.Start
		for p < xs.End() && q < ys.End() {
			switch d := cmp.Compare(xl.innerKeys[p], yl.innerKeys[q]); {
			case d < 0:
				p++
			case d > 0:
				q++
			default:
				out = append(out, Entry[A, B, float64]{
					KeyA:  xl.outerKeys[i],
					KeyB:  xl.innerKeys[p],
					Value: xl.values[p] * yl.values[q],
				})
				p++
				q++
			}
		}
		i++
		j++
	}

	s := x.settings
	s.orientation = AOuter
	s.policy = KeepAll
	return build(out, s)
}
