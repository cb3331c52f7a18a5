package tsp_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/tspbb/tsp"
)

func benchmarkSolve(b *testing.B, n, workers int) {
	dm := mustMatrix(b, randomCities(uint64(n), n))
	opts := tsp.DefaultOptions()
	opts.Workers = workers
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tsp.Solve(ctx, dm, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolve_N8(b *testing.B)            { benchmarkSolve(b, 8, 1) }
func BenchmarkSolve_N11(b *testing.B)           { benchmarkSolve(b, 11, 1) }
func BenchmarkSolve_N11_Parallel4(b *testing.B) { benchmarkSolve(b, 11, 4) }

func BenchmarkNewLowerBoundTable_N100(b *testing.B) {
	dm := mustMatrix(b, randomCities(7, 100))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tsp.NewLowerBoundTable(dm); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExplorer_N8(b *testing.B) {
	seq := []int{0, 1, 2, 3, 4, 5, 6, 7}
	for i := 0; i < b.N; i++ {
		ex := tsp.NewExplorer(seq, 1)
		for {
			if _, ok := ex.Next(); !ok {
				break
			}
		}
	}
}
