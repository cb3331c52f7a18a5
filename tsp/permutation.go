// Package tsp — lexicographic permutation explorer.
//
// The explorer enumerates orderings of a suffix seq[from:] in lexicographic
// order with the classic "next permutation" step:
//
//  1. find the rightmost i ≥ from with seq[i] < seq[i+1] (the pivot),
//  2. find the rightmost j > i with seq[j] > seq[i] and swap them,
//  3. reverse seq[i+1:] so the new suffix is the smallest completion.
//
// Starting from an ascending suffix, repeated steps visit every permutation
// exactly once. Skip(k) jumps past every ordering that shares positions
// [0..k], which is how branch-and-bound abandons a pruned prefix. The cursor
// is a plain slice, so it can be checkpointed and restored at any point.
//
// Complexity: O(n) per step; O(n log n) for Skip.
package tsp

import (
	"iter"
	"sort"

	"github.com/pkg/errors"
)

// NextPermutation returns the lexicographic successor of seq, permuting only
// positions ≥ from. seq is not modified. pivot is the first position that
// differs from seq. ok is false when seq[from:] is already the last
// (descending) arrangement.
//
// Complexity: O(n).
func NextPermutation(seq []int, from int) (next []int, pivot int, ok bool) {
	next = make([]int, len(seq))
	copy(next, seq)
	if pivot, ok = nextPermutationInPlace(next, from); !ok {
		return nil, -1, false
	}

	return next, pivot, true
}

// nextPermutationInPlace advances a[from:] and returns the pivot position.
func nextPermutationInPlace(a []int, from int) (int, bool) {
	if from < 0 {
		from = 0
	}
	var (
		n = len(a)
		i = n - 2
		j = n - 1
	)
	for i >= from && a[i] >= a[i+1] {
		i--
	}
	if i < from {
		return -1, false
	}
	for a[j] <= a[i] {
		j--
	}
	a[i], a[j] = a[j], a[i]
	reverseInts(a[i+1:])

	return i, true
}

// reverseInts reverses s in place.
func reverseInts(s []int) {
	for l, r := 0, len(s)-1; l < r; l, r = l+1, r-1 {
		s[l], s[r] = s[r], s[l]
	}
}

// Explorer is a restartable cursor over the permutations of a suffix.
// It is not safe for concurrent use; give each goroutine its own.
type Explorer struct {
	from    int
	initial []int
	cur     []int
	done    bool
}

// NewExplorer starts a cursor at initial (copied). Positions < from are fixed.
// For a full traversal the suffix initial[from:] should be ascending.
func NewExplorer(initial []int, from int) *Explorer {
	if from < 0 {
		from = 0
	}
	e := &Explorer{from: from, initial: append([]int(nil), initial...)}
	e.Reset()

	return e
}

// Ordering returns the current arrangement. The slice is owned by the
// explorer and changes on the next Next/Skip/Restore/Reset call.
func (e *Explorer) Ordering() []int { return e.cur }

// Fixed returns the number of leading positions the explorer never moves.
func (e *Explorer) Fixed() int { return e.from }

// Done reports whether the traversal is exhausted.
func (e *Explorer) Done() bool { return e.done }

// Next advances to the lexicographic successor. It returns the first changed
// position, or ok=false once every permutation has been produced.
func (e *Explorer) Next() (pivot int, ok bool) {
	if e.done {
		return -1, false
	}
	if pivot, ok = nextPermutationInPlace(e.cur, e.from); !ok {
		e.done = true
	}

	return pivot, ok
}

// Skip advances to the first ordering whose prefix [0..k] differs from the
// current one, skipping every completion of that prefix. k < Fixed() means the
// whole traversal shares the prefix, so the explorer is exhausted.
func (e *Explorer) Skip(k int) (pivot int, ok bool) {
	if e.done {
		return -1, false
	}
	if k < e.from {
		e.done = true
		return -1, false
	}
	if k+1 < len(e.cur) {
		// The descending suffix is the last completion of this prefix.
		sort.Sort(sort.Reverse(sort.IntSlice(e.cur[k+1:])))
	}

	return e.Next()
}

// Checkpoint returns a copy of the current arrangement.
func (e *Explorer) Checkpoint() []int {
	return append([]int(nil), e.cur...)
}

// Restore resumes the traversal from a checkpoint taken on this explorer.
// Errors: ErrInvalidTour when the length or the fixed prefix differ.
func (e *Explorer) Restore(cp []int) error {
	if len(cp) != len(e.initial) {
		return errors.Wrapf(ErrInvalidTour, "checkpoint has %d positions, want %d", len(cp), len(e.initial))
	}
	var i int
	for i = 0; i < e.from && i < len(cp); i++ {
		if cp[i] != e.initial[i] {
			return errors.Wrapf(ErrInvalidTour, "checkpoint changes fixed position %d", i)
		}
	}
	copy(e.cur, cp)
	e.done = false

	return nil
}

// Reset rewinds to the initial arrangement.
func (e *Explorer) Reset() {
	if e.cur == nil {
		e.cur = make([]int, len(e.initial))
	}
	copy(e.cur, e.initial)
	e.done = false
}

// Permutations yields every permutation of 0..n-1 in lexicographic order.
// The yielded slice is reused between iterations; copy it to keep it.
func Permutations(n int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if n <= 0 {
			return
		}
		var (
			seq = make([]int, n)
			i   int
		)
		for i = range seq {
			seq[i] = i
		}
		ex := NewExplorer(seq, 0)
		for {
			if !yield(ex.Ordering()) {
				return
			}
			if _, ok := ex.Next(); !ok {
				return
			}
		}
	}
}
