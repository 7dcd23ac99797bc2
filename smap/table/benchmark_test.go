package table

import (
	"fmt"
	"testing"
)

func benchPlan(b *testing.B, n int) *Table[int, string, float64] {
	b.Helper()
	tbl, err := Build(randomPlan(99, n))
	if err != nil {
		b.Fatal(err)
	}
	return tbl
}

func BenchmarkSliceSameDimension(b *testing.B) {
	for _, n := range []int{100, 1000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			tbl := benchPlan(b, n)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = tbl.SliceOnA(i % 50)
			}
		})
	}
}

func BenchmarkSliceAlternating(b *testing.B) {
	for _, n := range []int{100, 1000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			tbl := benchPlan(b, n)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if i%2 == 0 {
					_ = tbl.SliceOnA(i % 50)
				} else {
					_ = tbl.SliceOnB(fmt.Sprintf("p%02d", i%40))
				}
			}
		})
	}
}

func BenchmarkBuild(b *testing.B) {
	entries := randomPlan(99, 1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Build(entries); err != nil {
			b.Fatal(err)
		}
	}
}
