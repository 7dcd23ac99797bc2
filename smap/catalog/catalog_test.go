package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ZanzyTHEbar/slicemap/smap/table"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row = table.Entry[string, string, float64]

func demandRows() []row {
	return []row{
		{KeyA: "plant-1", KeyB: "widget", Value: 10},
		{KeyA: "plant-1", KeyB: "gadget", Value: 4},
		{KeyA: "plant-2", KeyB: "widget", Value: 7},
	}
}

func TestCatalog(t *testing.T) {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{"RegisterAndSlice", testRegisterAndSlice},
		{"NameNormalization", testNameNormalization},
		{"RegisterErrors", testRegisterErrors},
		{"PrefixListing", testPrefixListing},
		{"RemoveAndLen", testRemoveAndLen},
		{"WithExclusiveAccess", testWithExclusiveAccess},
		{"ConcurrentSlices", testConcurrentSlices},
		{"Validate", testValidate},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.test)
	}
}

func testRegisterAndSlice(t *testing.T) {
	c := New[string, string, float64]()

	id, err := c.Register("demand", demandRows())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	got, err := c.SliceOnA("demand", "plant-1")
	require.NoError(t, err)
	assert.Equal(t, []table.Pair[string, float64]{{Key: "gadget", Value: 4}, {Key: "widget", Value: 10}}, got)

	byProduct, err := c.SliceOnB("demand", "widget")
	require.NoError(t, err)
	assert.Equal(t, []table.Pair[string, float64]{{Key: "plant-1", Value: 10}, {Key: "plant-2", Value: 7}}, byProduct)

	info, ok := c.Lookup("demand")
	require.True(t, ok)
	assert.Equal(t, id, info.ID)
	assert.Equal(t, "demand", info.Name)
	assert.Equal(t, 3, info.Entries)
	assert.Equal(t, table.BOuter, info.Orientation)
	assert.Equal(t, int64(1), info.Stats.Flips)
	assert.False(t, info.RegisteredAt.IsZero())

	_, err = c.SliceOnA("missing", "plant-1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.SliceOnB("missing", "widget")
	assert.ErrorIs(t, err, ErrNotFound)
	_, ok = c.Lookup("missing")
	assert.False(t, ok)
}

func testNameNormalization(t *testing.T) {
	c := New[string, string, float64]()
	_, err := c.Register(`/capacity\plant-1/`, demandRows())
	require.NoError(t, err)

	for _, name := range []string{"capacity/plant-1", "/capacity/plant-1", "capacity/./plant-1", " capacity/plant-1 "} {
		_, ok := c.Lookup(name)
		assert.True(t, ok, name)
	}
}

func testRegisterErrors(t *testing.T) {
	c := New[string, string, float64]()

	_, err := c.Register("", demandRows())
	assert.ErrorIs(t, err, ErrNameEmpty)
	_, err = c.Register("/", demandRows())
	assert.ErrorIs(t, err, ErrNameEmpty)

	_, err = c.Register("demand", demandRows())
	require.NoError(t, err)
	_, err = c.Register("demand/", demandRows())
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	dups := append(demandRows(), row{KeyA: "plant-1", KeyB: "widget", Value: 1})
	_, err = c.Register("dups", dups)
	assert.ErrorIs(t, err, table.ErrDuplicateKey)
	assert.Contains(t, err.Error(), "failed to build table dups")

	_, err = c.Register("dups", dups, table.WithDuplicatePolicy(table.KeepLast))
	require.NoError(t, err)
	got, err := c.SliceOnA("dups", "plant-1")
	require.NoError(t, err)
	assert.Contains(t, got, table.Pair[string, float64]{Key: "widget", Value: 1})
}

func testPrefixListing(t *testing.T) {
	c := New[string, string, float64]()
	for _, name := range []string{"capacity/plant-2", "demand", "capacity/plant-1", "cost"} {
		_, err := c.Register(name, demandRows())
		require.NoError(t, err)
	}

	names := func(infos []Info) []string {
		out := make([]string, len(infos))
		for i, info := range infos {
			out[i] = info.Name
		}
		return out
	}

	assert.Equal(t, []string{"capacity/plant-1", "capacity/plant-2"}, names(c.List("capacity/")))
	assert.Equal(t, []string{"capacity/plant-1", "capacity/plant-2", "cost"}, names(c.List("c")))
	assert.Equal(t, []string{"capacity/plant-1", "capacity/plant-2", "cost", "demand"}, names(c.List("")))
	assert.Empty(t, c.List("zzz"))
}

func testRemoveAndLen(t *testing.T) {
	c := New[string, string, float64]()
	_, err := c.Register("a", demandRows())
	require.NoError(t, err)
	_, err = c.Register("b", demandRows())
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))
	assert.False(t, c.Remove(""))
	assert.Equal(t, 1, c.Len())

	_, err = c.Register("a", demandRows())
	assert.NoError(t, err, "name can be reused after removal")
}

func testWithExclusiveAccess(t *testing.T) {
	c := New[string, string, float64]()
	_, err := c.Register("demand", demandRows())
	require.NoError(t, err)

	var total float64
	err = c.With("demand", func(tbl *table.Table[string, string, float64]) error {
		total = table.SumOnB(tbl, "widget")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 17.0, total)

	sentinel := errors.New("stop")
	err = c.With("demand", func(*table.Table[string, string, float64]) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)

	err = c.With("missing", func(*table.Table[string, string, float64]) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func testConcurrentSlices(t *testing.T) {
	c := New[string, string, float64]()
	var rows []row
	for p := 0; p < 20; p++ {
		for q := 0; q < 20; q++ {
			rows = append(rows, row{KeyA: fmt.Sprintf("plant-%02d", p), KeyB: fmt.Sprintf("sku-%02d", q), Value: float64(p*100 + q)})
		}
	}
	_, err := c.Register("grid", rows)
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if (i+w)%2 == 0 {
					got, err := c.SliceOnA("grid", fmt.Sprintf("plant-%02d", i%20))
					assert.NoError(t, err)
					assert.Len(t, got, 20)
				} else {
					got, err := c.SliceOnB("grid", fmt.Sprintf("sku-%02d", i%20))
					assert.NoError(t, err)
					assert.Len(t, got, 20)
				}
			}
		}(w)
	}
	wg.Wait()

	info, ok := c.Lookup("grid")
	require.True(t, ok)
	assert.Equal(t, int64(workers*50), info.Stats.Slices)
	assert.Empty(t, c.Validate())
}

func testValidate(t *testing.T) {
	var buf bytes.Buffer
	c := New[string, string, float64](
		WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)),
		WithTableOptions(table.WithOrientation(table.BOuter)),
	)
	_, err := c.Register("demand", demandRows())
	require.NoError(t, err)

	info, _ := c.Lookup("demand")
	assert.Equal(t, table.BOuter, info.Orientation)

	assert.Empty(t, c.Validate())
	assert.Contains(t, buf.String(), "Catalog validation passed")
	assert.Contains(t, buf.String(), "Table registered")
}
