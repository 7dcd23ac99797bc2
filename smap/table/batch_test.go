package table

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceMany(t *testing.T) {
	t.Run("OnB", func(t *testing.T) {
		tbl, err := Build(examplePlan())
		require.NoError(t, err)

		got, err := tbl.SliceManyOnB(context.Background(), []string{"A", "B", "Z", "A"}, 2)
		require.NoError(t, err)
		require.Len(t, got, 4)

		assert.Equal(t, []Pair[int, float64]{{Key: 1, Value: 2.0}, {Key: 3, Value: 9.4}}, got[0])
		assert.Equal(t, []Pair[int, float64]{{Key: 1, Value: 8.0}, {Key: 2, Value: 1.7}, {Key: 3, Value: 4.6}}, got[1])
		assert.Empty(t, got[2])
		assert.Equal(t, got[0], got[3])

		st := tbl.Stats()
		assert.Equal(t, int64(1), st.Flips)
		assert.Equal(t, int64(4), st.Slices)
		assert.Equal(t, int64(1), st.Misses)
	})

	t.Run("OnALargeBatch", func(t *testing.T) {
		entries := randomPlan(5, 1000)
		tbl, err := Build(entries, WithOrientation(BOuter))
		require.NoError(t, err)

		keys := make([]int, 0, 50)
		for a := 0; a < 50; a++ {
			keys = append(keys, a)
		}
		got, err := tbl.SliceManyOnA(context.Background(), keys, 8)
		require.NoError(t, err)

		for i, a := range keys {
			assert.Equal(t, tbl.SliceOnA(a), got[i], "KeyA %d", a)
		}
		assert.Equal(t, int64(1), tbl.Stats().Flips)
	})

	t.Run("ZeroWorkers", func(t *testing.T) {
		tbl, err := Build(examplePlan())
		require.NoError(t, err)

		got, err := tbl.SliceManyOnA(context.Background(), []int{1}, 0)
		require.NoError(t, err)
		assert.Len(t, got[0], 3)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		tbl, err := Build(examplePlan())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = tbl.SliceManyOnB(ctx, []string{"A"}, 2)
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, AOuter, tbl.Orientation(), "canceled batch must not flip")
	})
}
