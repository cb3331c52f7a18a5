package tsp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspbb/tsp"
)

func TestNewLowerBoundTable_NearestAreMinimal(t *testing.T) {
	dm := mustMatrix(t, randomCities(2, 9))
	lb, err := tsp.NewLowerBoundTable(dm)
	require.NoError(t, err)
	require.Equal(t, dm.N(), lb.N())

	var i, j int
	for i = 0; i < dm.N(); i++ {
		near := lb.At(i)
		require.NotEqual(t, i, near.First.Index)
		require.NotEqual(t, i, near.Second.Index)
		require.NotEqual(t, near.First.Index, near.Second.Index)
		assert.LessOrEqual(t, near.First.Dist, near.Second.Dist)
		assert.Equal(t, dm.ID(near.First.Index), near.First.ID)
		for j = 0; j < dm.N(); j++ {
			if j == i {
				continue
			}
			assert.LessOrEqual(t, near.First.Dist, dm.Weight(i, j))
			if j != near.First.Index {
				assert.LessOrEqual(t, near.Second.Dist, dm.Weight(i, j))
			}
		}
	}
}

func TestNewLowerBoundTable_TiesPreferLowerID(t *testing.T) {
	dm := mustMatrix(t, []tsp.City{
		{ID: 1, X: 0, Y: 0},
		{ID: 4, X: 1, Y: 0},
		{ID: 2, X: -1, Y: 0},
		{ID: 3, X: 0, Y: 5},
	})
	lb, err := tsp.NewLowerBoundTable(dm)
	require.NoError(t, err)

	near := lb.At(0) // city 1: cities 2 and 4 both at distance 1
	assert.Equal(t, 2, near.First.ID)
	assert.Equal(t, 4, near.Second.ID)
	assert.Equal(t, 1.0, near.First.Dist)
	assert.Equal(t, 1.0, near.Second.Dist)
}

func TestNewLowerBoundTable_Precondition(t *testing.T) {
	for _, n := range []int{1, 2} {
		dm := mustMatrix(t, unitSquare()[:n])
		lb, err := tsp.NewLowerBoundTable(dm)
		mustErrIs(t, err, tsp.ErrPrecondition)
		assert.Nil(t, lb)
	}
}

func TestLowerBoundTable_RootBoundUnitSquare(t *testing.T) {
	lb, err := tsp.NewLowerBoundTable(mustMatrix(t, unitSquare()))
	require.NoError(t, err)
	assert.Equal(t, 4.0, lb.RootBound())
}

func TestLowerBoundTable_IsolatedCityIsInf(t *testing.T) {
	inf := math.Inf(1)
	dm, err := tsp.NewDistanceMatrixFromWeights([]int{1, 2, 3, 4}, [][]float64{
		{0, 1, 1, 1},
		{1, 0, 1, inf},
		{1, 1, 0, inf},
		{1, inf, inf, 0},
	})
	require.NoError(t, err)
	lb, err := tsp.NewLowerBoundTable(dm)
	require.NoError(t, err)

	assert.Equal(t, -1, lb.At(3).Second.Index)
	assert.True(t, math.IsInf(lb.RootBound(), 1))
}

// Every prefix bound must stay below the cost of each tour extending it.
func TestNewLowerBoundTable_OverflowIsNumericAnomaly(t *testing.T) {
	dm := mustMatrix(t, []tsp.City{{ID: 1}, {ID: 2, X: 1e308}, {ID: 3, Y: 1e308}})
	d, err := dm.Distance(1, 2)
	require.NoError(t, err)
	require.False(t, math.IsInf(d, 0), "distances themselves are finite")

	_, err = tsp.NewLowerBoundTable(dm)
	mustErrIs(t, err, tsp.ErrNumericAnomaly)

	// Each row sum fits, but the total does not.
	dm = mustMatrix(t, []tsp.City{{ID: 1}, {ID: 2, X: 3e307}, {ID: 3, X: 6e307}, {ID: 4, X: 9e307}, {ID: 5, X: 1.2e308}, {ID: 6, X: 1.5e308}})
	_, err = tsp.NewLowerBoundTable(dm)
	mustErrIs(t, err, tsp.ErrNumericAnomaly)
}

func TestLowerBoundTable_PartialBoundIsAdmissible(t *testing.T) {
	var seed uint64
	for seed = 1; seed <= 4; seed++ {
		dm := mustMatrix(t, randomCities(seed, 6))
		lb, err := tsp.NewLowerBoundTable(dm)
		require.NoError(t, err)

		opt := bruteForceCost(dm)
		require.LessOrEqual(t, lb.RootBound(), opt+epsCost)

		for perm := range tsp.Permutations(dm.N() - 1) {
			ord := make([]int, 0, dm.N())
			ord = append(ord, 0)
			for _, v := range perm {
				ord = append(ord, v+1)
			}
			full := prefixCost(dm, ord) + dm.Weight(ord[len(ord)-1], 0)

			var k int
			for k = 1; k <= len(ord); k++ {
				b := lb.PartialBound(dm, ord[:k], prefixCost(dm, ord[:k]))
				require.LessOrEqual(t, b, full+epsCost, "seed %d prefix %v", seed, ord[:k])
			}
			// A full prefix is the exact cycle cost.
			require.InDelta(t, full, lb.PartialBound(dm, ord, prefixCost(dm, ord)), epsCost)
		}
	}
}

func TestLowerBoundTable_PartialBoundShortPrefixIsRoot(t *testing.T) {
	dm := mustMatrix(t, randomCities(3, 5))
	lb, err := tsp.NewLowerBoundTable(dm)
	require.NoError(t, err)

	assert.Equal(t, lb.RootBound(), lb.PartialBound(dm, nil, 0))
	assert.Equal(t, lb.RootBound(), lb.PartialBound(dm, []int{2}, 0))
}
