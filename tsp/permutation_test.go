package tsp_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspbb/tsp"
)

// drain collects every ordering the explorer still produces, current one included.
func drain(ex *tsp.Explorer) [][]int {
	var out [][]int
	for !ex.Done() {
		out = append(out, ex.Checkpoint())
		if _, ok := ex.Next(); !ok {
			break
		}
	}

	return out
}

func TestExplorer_FullTraversal(t *testing.T) {
	factorial := []int{1, 1, 2, 6, 24, 120, 720}
	var n int
	for n = 1; n <= 6; n++ {
		seq := make([]int, n)
		for i := range seq {
			seq[i] = i
		}
		all := drain(tsp.NewExplorer(seq, 0))
		require.Len(t, all, factorial[n], "n=%d", n)

		seen := make(map[string]struct{}, len(all))
		for i, p := range all {
			key := fmt.Sprint(p)
			_, dup := seen[key]
			require.False(t, dup, "repeated %v", p)
			seen[key] = struct{}{}
			if i > 0 {
				require.True(t, lexLess(all[i-1], p), "%v !< %v", all[i-1], p)
			}
		}
	}
}

func TestExplorer_FixedPrefixNeverMoves(t *testing.T) {
	all := drain(tsp.NewExplorer([]int{0, 1, 2, 3, 4}, 1))
	require.Len(t, all, 24)
	for _, p := range all {
		assert.Equal(t, 0, p[0])
	}

	all = drain(tsp.NewExplorer([]int{2, 0, 1, 3}, 2))
	require.Len(t, all, 2)
	assert.Equal(t, []int{2, 0, 1, 3}, all[0])
	assert.Equal(t, []int{2, 0, 3, 1}, all[1])
}

func TestExplorer_NextReportsPivot(t *testing.T) {
	ex := tsp.NewExplorer([]int{0, 1, 2, 3}, 0)
	pivot, ok := ex.Next()
	require.True(t, ok)
	assert.Equal(t, 2, pivot)
	assert.Equal(t, []int{0, 1, 3, 2}, ex.Ordering())

	pivot, ok = ex.Next()
	require.True(t, ok)
	assert.Equal(t, 1, pivot)
	assert.Equal(t, []int{0, 2, 1, 3}, ex.Ordering())
}

func TestExplorer_Skip(t *testing.T) {
	ex := tsp.NewExplorer([]int{0, 1, 2, 3}, 1)

	pivot, ok := ex.Skip(1)
	require.True(t, ok)
	assert.Equal(t, 1, pivot)
	assert.Equal(t, []int{0, 2, 1, 3}, ex.Ordering())

	// Skipping at the last position behaves like Next.
	pivot, ok = ex.Skip(3)
	require.True(t, ok)
	assert.Equal(t, 2, pivot)
	assert.Equal(t, []int{0, 2, 3, 1}, ex.Ordering())

	// Skipping the last prefix exhausts the explorer.
	require.NoError(t, ex.Restore([]int{0, 3, 1, 2}))
	_, ok = ex.Skip(1)
	assert.False(t, ok)
	assert.True(t, ex.Done())

	// A fixed position is shared by every ordering.
	ex.Reset()
	_, ok = ex.Skip(0)
	assert.False(t, ok)
}

// Skip(k) must land on the first later ordering with a different prefix [0..k].
func TestExplorer_SkipMatchesFiltering(t *testing.T) {
	seq := []int{0, 1, 2, 3, 4}
	all := drain(tsp.NewExplorer(seq, 1))
	var i, k int
	for i = range all {
		for k = 1; k < len(seq); k++ {
			ex := tsp.NewExplorer(seq, 1)
			require.NoError(t, ex.Restore(all[i]))
			_, ok := ex.Skip(k)

			want := -1
			for j := i + 1; j < len(all); j++ {
				if !samePrefix(all[i], all[j], k) {
					want = j
					break
				}
			}
			if want < 0 {
				require.False(t, ok, "from %v skip %d", all[i], k)
				continue
			}
			require.True(t, ok)
			require.Equal(t, all[want], ex.Ordering(), "from %v skip %d", all[i], k)
		}
	}
}

func TestExplorer_CheckpointRestore(t *testing.T) {
	seq := []int{0, 1, 2, 3, 4}
	ex := tsp.NewExplorer(seq, 1)
	var i int
	for i = 0; i < 7; i++ {
		_, _ = ex.Next()
	}
	cp := ex.Checkpoint()
	rest := drain(ex)

	resumed := tsp.NewExplorer(seq, 1)
	require.NoError(t, resumed.Restore(cp))
	assert.Equal(t, rest, drain(resumed))
	assert.Equal(t, 24-7, len(rest))

	err := resumed.Restore([]int{0, 1})
	mustErrIs(t, err, tsp.ErrInvalidTour)
	err = resumed.Restore([]int{1, 0, 2, 3, 4})
	mustErrIs(t, err, tsp.ErrInvalidTour)
}

func TestExplorer_OrderingIsReused(t *testing.T) {
	ex := tsp.NewExplorer([]int{0, 1, 2}, 0)
	cp := ex.Checkpoint()
	first := ex.Ordering()
	_, _ = ex.Next()
	assert.Equal(t, []int{0, 2, 1}, first, "Ordering aliases the cursor")
	assert.Equal(t, []int{0, 1, 2}, cp, "Checkpoint is a copy")
}

func TestNextPermutation_Pure(t *testing.T) {
	seq := []int{1, 2, 3}
	next, pivot, ok := tsp.NextPermutation(seq, 0)
	require.True(t, ok)
	assert.Equal(t, []int{1, 3, 2}, next)
	assert.Equal(t, 1, pivot)
	assert.Equal(t, []int{1, 2, 3}, seq)

	_, _, ok = tsp.NextPermutation([]int{3, 2, 1}, 0)
	assert.False(t, ok)
	_, _, ok = tsp.NextPermutation([]int{1, 3, 2}, 1)
	assert.False(t, ok, "suffix from 1 is already descending")
	_, _, ok = tsp.NextPermutation(nil, 0)
	assert.False(t, ok)
}

func TestPermutations(t *testing.T) {
	var got [][]int
	for p := range tsp.Permutations(3) {
		got = append(got, append([]int(nil), p...))
	}
	require.Len(t, got, 6)
	assert.Equal(t, []int{0, 1, 2}, got[0])
	assert.Equal(t, []int{2, 1, 0}, got[5])

	var count int
	for range tsp.Permutations(0) {
		count++
	}
	assert.Zero(t, count)

	count = 0
	for range tsp.Permutations(5) {
		count++
		if count == 10 {
			break
		}
	}
	assert.Equal(t, 10, count)
}

func lexLess(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return false
}

func samePrefix(a, b []int, k int) bool {
	for i := 0; i <= k; i++ {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
