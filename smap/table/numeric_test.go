package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSums(t *testing.T) {
	tbl, err := Build(examplePlan())
	require.NoError(t, err)

	assert.InDelta(t, 30.4, Sum(tbl), 1e-9)
	assert.InDelta(t, 13.0, SumOnA(tbl, 1), 1e-9)
	assert.Equal(t, 0.0, SumOnA(tbl, 8))
	assert.Equal(t, AOuter, tbl.Orientation())

	assert.InDelta(t, 4.7, SumOnB(tbl, "C"), 1e-9)
	assert.Equal(t, BOuter, tbl.Orientation())
	assert.InDelta(t, 30.4, Sum(tbl), 1e-9)
}

func TestScale(t *testing.T) {
	tbl, err := Build(examplePlan(), WithOrientation(BOuter))
	require.NoError(t, err)

	scaled, err := Scale(tbl, 2)
	require.NoError(t, err)

	assert.Equal(t, BOuter, scaled.Orientation())
	assert.Equal(t, tbl.Len(), scaled.Len())
	v, ok := scaled.Get(3, "A")
	require.True(t, ok)
	assert.InDelta(t, 18.8, v, 1e-9)

	// source untouched
	v, _ = tbl.Get(3, "A")
	assert.Equal(t, 9.4, v)
}

func TestMultiply(t *testing.T) {
	price, err := Build(examplePlan(), WithOrientation(BOuter))
	require.NoError(t, err)

	qty, err := Build([]planEntry{
		{KeyA: 1, KeyB: "B", Value: 2.0},
		{KeyA: 3, KeyB: "B", Value: 0.5},
		{KeyA: 3, KeyB: "C", Value: 1.0},
		{KeyA: 4, KeyB: "A", Value: 1.0},
	})
	require.NoError(t, err)

	prod, err := Multiply(price, qty)
	require.NoError(t, err)

	got := prod.Entries()
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].KeyA)
	assert.Equal(t, "B", got[0].KeyB)
	assert.InDelta(t, 16.0, got[0].Value, 1e-9)
	assert.Equal(t, 3, got[1].KeyA)
	assert.Equal(t, "B", got[1].KeyB)
	assert.InDelta(t, 2.3, got[1].Value, 1e-9)
	assert.Empty(t, prod.Validate())

	empty, err := Multiply(qty, &Table[int, string, float64]{})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

func TestEqual(t *testing.T) {
	x, err := Build(examplePlan())
	require.NoError(t, err)
	y, err := Build(examplePlan(), WithOrientation(BOuter))
	require.NoError(t, err)

	assert.True(t, EqualComparable(x, y))
	assert.Equal(t, AOuter, x.Orientation())
	assert.Equal(t, BOuter, y.Orientation())

	changed := examplePlan()
	changed[4].Value = 1.8
	z, err := Build(changed)
	require.NoError(t, err)
	assert.False(t, EqualComparable(x, z))

	short, err := Build(examplePlan()[:6])
	require.NoError(t, err)
	assert.False(t, EqualComparable(x, short))

	assert.True(t, Equal(x, z, func(a, b float64) bool { return a-b < 0.2 && b-a < 0.2 }))
}
