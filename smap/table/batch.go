package table

import (
	"cmp"
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
)

// SliceManyOnA slices on every key in keys. The table flips at most once,
// then the lookups fan out over up to workers goroutines. Result i belongs to
// keys[i].
func (t *Table[A, B, V]) SliceManyOnA(ctx context.Context, keys []A, workers int) ([][]Pair[B, V], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.orient(AOuter)
	return sliceMany(ctx, &t.byA, keys, workers, &t.stats)
}

// SliceManyOnB is SliceManyOnA along KeyB.
func (t *Table[A, B, V]) SliceManyOnB(ctx context.Context, keys []B, workers int) ([][]Pair[A, V], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.orient(BOuter)
	return sliceMany(ctx, &t.byB, keys, workers, &t.stats)
}

// sliceMany only reads l, so the workers can share it.
func sliceMany[O, I cmp.Ordered, V any](ctx context.Context, l *layout[O, I, V], keys []O, workers int, st *stats) ([][]Pair[I, V], error) {
	if workers < 1 {
		workers = 1
	}
	out := make([][]Pair[I, V], len(keys))

	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx)
	for i, k := range keys {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, found := l.slice(k)
			st.recordSlice(found)
			out[i] = res
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("batch slice interrupted: %w", err)
	}
	return out, nil
}
