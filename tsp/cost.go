// Package tsp — cost utilities.
//
// TourCost sums a closed tour in exactly the order the search does (edges in
// visiting order, then the closing edge), so recomputing the cost of a
// returned tour reproduces Result.Cost bit for bit.
//
// Complexity: O(n) time, O(1) extra space.
package tsp

import (
	"github.com/pkg/errors"
)

// TourCost returns the length of the closed tour given as city IDs.
//
// Errors:
//   - ErrInvalidTour when tour is not a permutation of the matrix IDs.
//   - ErrIncompleteGraph when an edge of the tour is missing (+Inf).
func TourCost(dm *DistanceMatrix, tour []int) (float64, error) {
	if err := ValidateTour(dm, tour); err != nil {
		return 0, err
	}

	ord := make([]int, len(tour))
	var i int
	for i = range tour {
		ord[i], _ = dm.Index(tour[i]) // validated above
	}
	var c = orderingCost(dm, ord)
	if isInf(c) {
		return 0, errors.Wrapf(ErrIncompleteGraph, "tour %s uses a missing edge", DebugString(tour))
	}

	return c, nil
}

// EdgeCost returns the distance between two city IDs.
// Errors: ErrInvalidTour for unknown IDs, ErrIncompleteGraph for a missing edge or a self-loop.
func EdgeCost(dm *DistanceMatrix, from, to int) (float64, error) {
	u, ok := dm.Index(from)
	if !ok {
		return 0, errors.Wrapf(ErrInvalidTour, "unknown city %d", from)
	}
	v, ok := dm.Index(to)
	if !ok {
		return 0, errors.Wrapf(ErrInvalidTour, "unknown city %d", to)
	}
	w := dm.Weight(u, v)
	if isInf(w) {
		return 0, errors.Wrapf(ErrIncompleteGraph, "no edge %d→%d", from, to)
	}

	return w, nil
}
