// Package tsp_test holds the shared fixtures of the tsp tests: small named
// instances, deterministic random generators and a few assertion helpers.
package tsp_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspbb/tsp"
)

const (
	// epsCost is the tolerance for comparing costs computed along different paths.
	epsCost = 1e-9

	// seedDet is the base seed of every random instance.
	seedDet = uint64(20240611)
)

// Repeat runs fn n times. Used for determinism checks.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	var i int
	for i = 0; i < n; i++ {
		fn(t)
	}
}

// mustErrIs fails the test unless err matches target.
func mustErrIs(t *testing.T, err, target error) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, target)
}

// unitSquare returns the corners of the unit square, IDs 1..4 counter-clockwise.
func unitSquare() []tsp.City {
	return []tsp.City{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 1, Y: 0},
		{ID: 3, X: 1, Y: 1},
		{ID: 4, X: 0, Y: 1},
	}
}

// randomWeights returns a symmetric n×n table of small integer weights with
// IDs 1..n. The narrow range produces many equal-cost tours.
func randomWeights(seed uint64, n int) ([]int, [][]float64) {
	var (
		rng  = rand.New(rand.NewPCG(seedDet, seed))
		ids  = make([]int, n)
		w    = make([][]float64, n)
		i, j int
	)
	for i = 0; i < n; i++ {
		ids[i] = i + 1
		w[i] = make([]float64, n)
	}
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			w[i][j] = float64(1 + rng.IntN(4))
			w[j][i] = w[i][j]
		}
	}

	return ids, w
}

// randomCities places n cities uniformly in [0,100)² with IDs 1..n.
func randomCities(seed uint64, n int) []tsp.City {
	var (
		rng = rand.New(rand.NewPCG(seedDet, seed))
		out = make([]tsp.City, n)
		i   int
	)
	for i = range out {
		out[i] = tsp.City{ID: i + 1, X: rng.Float64() * 100, Y: rng.Float64() * 100}
	}

	return out
}

// scrambledCircle places n cities on a circle but hands out IDs with stride
// 3 (n must not be a multiple of 3), so ascending-ID order zigzags across it.
func scrambledCircle(n int) []tsp.City {
	var (
		out = make([]tsp.City, n)
		i   int
		pos int
		a   float64
	)
	for i = 0; i < n; i++ {
		pos = (i * 3) % n
		a = 2 * math.Pi * float64(pos) / float64(n)
		out[i] = tsp.City{ID: i + 1, X: 10 * math.Cos(a), Y: 10 * math.Sin(a)}
	}

	return out
}

// mustMatrix builds a distance matrix or fails.
func mustMatrix(t testing.TB, cities []tsp.City) *tsp.DistanceMatrix {
	t.Helper()
	dm, err := tsp.NewDistanceMatrix(cities, len(cities))
	require.NoError(t, err)

	return dm
}

// bruteForceCost is an independent optimum: every permutation of rows 1..n-1
// behind row 0, costs summed with Weight.
func bruteForceCost(dm *tsp.DistanceMatrix) float64 {
	var (
		n    = dm.N()
		best = math.Inf(1)
	)
	for perm := range tsp.Permutations(n - 1) {
		var (
			c    float64
			prev = 0
			v    int
		)
		for _, v = range perm {
			c += dm.Weight(prev, v+1)
			prev = v + 1
		}
		c += dm.Weight(prev, 0)
		best = math.Min(best, c)
	}

	return best
}

// prefixCost sums the edges of an index path.
func prefixCost(dm *tsp.DistanceMatrix, path []int) float64 {
	var (
		c float64
		i int
	)
	for i = 1; i < len(path); i++ {
		c += dm.Weight(path[i-1], path[i])
	}

	return c
}
