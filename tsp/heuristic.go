// Package tsp — nearest-neighbour construction.
//
// The repetitive nearest-neighbour heuristic builds one greedy tour from every
// start city and keeps the cheapest. It is only used to seed the incumbent
// (Options.SeedNearestNeighbor); it never replaces the exact search.
//
// Complexity: O(n²) per start, O(n³) for the repetitive variant.
package tsp

import (
	"github.com/pkg/errors"
)

// NearestNeighborTour returns the cheapest repetitive nearest-neighbour tour,
// rotated so that startID comes first (0 selects the lowest ID), and its cost.
//
// Errors: ErrPrecondition for N < MinCities, ErrInvalidOptions for an unknown
// start, ErrIncompleteGraph when every greedy walk hits a missing edge.
func NearestNeighborTour(dm *DistanceMatrix, startID int) ([]int, float64, error) {
	if dm == nil || dm.N() < MinCities {
		return nil, 0, errors.Wrap(ErrPrecondition, "nearest neighbour needs at least 3 cities")
	}
	start, err := resolveStart(dm, startID)
	if err != nil {
		return nil, 0, err
	}
	ord, cost, err := repetitiveNearestNeighbor(dm, start)
	if err != nil {
		return nil, 0, err
	}

	return toIDs(dm, ord), cost, nil
}

// repetitiveNearestNeighbor tries every city as the greedy origin and returns
// the best closed walk rotated to start (matrix indices).
func repetitiveNearestNeighbor(dm *DistanceMatrix, start int) ([]int, float64, error) {
	var (
		n        = dm.N()
		best     []int
		bestCost = inf
		origin   int
		cand     []int
		c        float64
	)
	for origin = 0; origin < n; origin++ {
		cand = greedyWalk(dm, origin)
		if cand == nil {
			continue
		}
		cand = rotateTo(cand, start)
		if c = orderingCost(dm, cand); c < bestCost {
			best, bestCost = cand, c
		}
	}
	if best == nil {
		return nil, 0, ErrIncompleteGraph
	}

	return best, bestCost, nil
}

// greedyWalk always moves to the closest unvisited city (lower ID on ties).
// It returns nil when it gets stuck on missing edges.
func greedyWalk(dm *DistanceMatrix, origin int) []int {
	var (
		n       = dm.N()
		visited = make([]bool, n)
		out     = make([]int, 0, n)
		cur     = origin
		v, next int
		w, bw   float64
	)
	visited[cur] = true
	out = append(out, cur)
	for len(out) < n {
		next, bw = -1, inf
		for v = 0; v < n; v++ {
			if visited[v] {
				continue
			}
			if w = dm.Weight(cur, v); w < bw {
				next, bw = v, w
			}
		}
		if next < 0 {
			return nil
		}
		visited[next] = true
		out = append(out, next)
		cur = next
	}
	if isInf(dm.Weight(cur, origin)) {
		return nil
	}

	return out
}

// rotateTo returns a copy of the cycle ord starting at v.
func rotateTo(ord []int, v int) []int {
	var (
		n     = len(ord)
		pivot int
		i     int
	)
	for i = 0; i < n; i++ {
		if ord[i] == v {
			pivot = i
			break
		}
	}
	out := make([]int, n)
	for i = 0; i < n; i++ {
		out[i] = ord[(pivot+i)%n]
	}

	return out
}
