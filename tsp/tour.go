// Package tsp — tour utilities.
//
// Tours at the public boundary are open sequences of city IDs of length N;
// the closing edge from the last element back to the first is implicit.
// Provided helpers:
//   - ValidateTour: the tour is a permutation of the matrix IDs.
//   - CanonicalTour: rotate to the lowest ID and fix the direction.
//   - SameCycle: equality under rotation and reflection.
//   - DebugString: compact printable form.
//
// Design:
//   - No logging, no panics on user input - only sentinel errors from types.go.
//   - O(n) time for every helper.
package tsp

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ValidateTour checks that tour lists every city ID of dm exactly once.
//
// Complexity: O(n) time, O(n) space.
func ValidateTour(dm *DistanceMatrix, tour []int) error {
	if dm == nil {
		return errors.Wrap(ErrMalformedInput, "nil distance matrix")
	}
	if len(tour) != dm.N() {
		return errors.Wrapf(ErrInvalidTour, "tour has %d cities, want %d", len(tour), dm.N())
	}

	var (
		seen = make([]bool, dm.N())
		id   int
		idx  int
		ok   bool
	)
	for _, id = range tour {
		if idx, ok = dm.Index(id); !ok {
			return errors.Wrapf(ErrInvalidTour, "unknown city %d", id)
		}
		if seen[idx] {
			return errors.Wrapf(ErrInvalidTour, "city %d visited twice", id)
		}
		seen[idx] = true
	}

	return nil
}

// CanonicalTour returns a copy of tour rotated so that its smallest ID comes
// first, reversed if needed so that the second element is smaller than the
// last. Two tours describe the same cycle iff their canonical forms are equal.
//
// Complexity: O(n).
func CanonicalTour(tour []int) []int {
	var n = len(tour)
	if n == 0 {
		return nil
	}

	var (
		pivot int
		i     int
	)
	for i = 1; i < n; i++ {
		if tour[i] < tour[pivot] {
			pivot = i
		}
	}
	out := make([]int, n)
	for i = 0; i < n; i++ {
		out[i] = tour[(pivot+i)%n]
	}
	if n > 2 && out[1] > out[n-1] {
		reverseInts(out[1:])
	}

	return out
}

// SameCycle reports whether a and b describe the same undirected cycle.
//
// Complexity: O(n).
func SameCycle(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	ca, cb := CanonicalTour(a), CanonicalTour(b)
	var i int
	for i = range ca {
		if ca[i] != cb[i] {
			return false
		}
	}

	return true
}

// DebugString renders a tour as "[1 3 2 | 1]" where the bar marks the closure.
func DebugString(tour []int) string {
	if len(tour) == 0 {
		return "[]"
	}

	var (
		b  strings.Builder
		i  int
		id int
	)
	b.WriteByte('[')
	for i, id = range tour {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(id))
	}
	b.WriteString(" | ")
	b.WriteString(strconv.Itoa(tour[0]))
	b.WriteByte(']')

	return b.String()
}
