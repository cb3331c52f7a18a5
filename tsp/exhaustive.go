// Package tsp — exhaustive reference search.
//
// SolveExhaustive evaluates every ordering with the lowest-ID city fixed in
// front, without any bound. It is the oracle the branch-and-bound tests are
// checked against and is only practical for N ≲ 10.
//
// Complexity: O((n-1)!·n) time, O(n) space.
package tsp

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// SolveExhaustive returns the optimal tour by full enumeration. It applies the
// same tie policy as Solve (strict less-than, lexicographic order), so on a
// completed run both return the same tour.
//
// Errors: ErrPrecondition for N < MinCities, ErrIncompleteGraph when no finite
// tour exists, ctx.Err() wrapped with ErrSearchStopped when canceled.
func SolveExhaustive(ctx context.Context, dm *DistanceMatrix) (Result, error) {
	var started = time.Now()
	if dm == nil || dm.N() < MinCities {
		return Result{}, errors.Wrap(ErrPrecondition, "exhaustive search needs at least 3 cities")
	}

	var (
		ex    = NewExplorer(initialOrdering(dm.N(), 0), 1)
		inc   = NewIncumbent(nil)
		nodes int64
		c     float64
	)
	for {
		nodes++
		if nodes%checkEvery == 0 && ctx.Err() != nil {
			return Result{}, errors.Wrap(ErrSearchStopped, ctx.Err().Error())
		}
		c = orderingCost(dm, ex.Ordering())
		if c < inc.Cost() {
			inc.Offer(ex.Ordering(), c)
		}
		if _, ok := ex.Next(); !ok {
			break
		}
	}

	tour, cost := inc.Snapshot()
	if tour == nil {
		return Result{}, ErrIncompleteGraph
	}

	return Result{
		Tour:         toIDs(dm, tour),
		Cost:         cost,
		Nodes:        nodes,
		Improvements: inc.Improvements(),
		Optimal:      true,
		Elapsed:      time.Since(started),
	}, nil
}
