// Package tsp — two-nearest-neighbour lower-bound table.
//
// In any closed tour every city has exactly two incident edges, hence
//
//	2·cost(tour) = Σ_v (cost of the two tour edges at v) ≥ Σ_v (First(v) + Second(v))
//
// where First/Second are the two cheapest edges at v. Halving gives an
// admissible bound for the whole instance (RootBound). For a fixed path prefix
// p0…pk the edges inside the path are known exactly; only the free side of
// the two endpoints and both sides of every unvisited city are estimated:
//
//	LB(p0…pk) = pathCost + ½·(First(p0) + First(pk) + Σ_unvisited (First+Second))
//
// This is the classic "sum of two nearest edges per node, divided by two"
// relaxation. It is built once per instance and is read-only afterwards.
//
// Complexity:
//   - Construction O(n²); RootBound O(1); PartialBound O(n).
package tsp

import (
	"math"

	"github.com/pkg/errors"
)

// Neighbor is one of the two closest cities of a row.
// Index is -1 (and Dist +Inf) when the row has fewer finite edges than needed.
type Neighbor struct {
	Index int
	ID    int
	Dist  float64
}

// Nearest holds the closest and second-closest neighbours of a city.
// Invariant: First.Dist ≤ Second.Dist, both distinct from each other and the city.
type Nearest struct {
	First  Neighbor
	Second Neighbor
}

// LowerBoundTable records, per city, its two nearest neighbours.
type LowerBoundTable struct {
	n     int
	rows  []Nearest
	first []float64 // First.Dist per row
	pair  []float64 // First.Dist + Second.Dist per row
	root  float64
}

// NewLowerBoundTable scans every row of dm and keeps the two smallest finite
// distances. Equal distances prefer the lower city ID.
//
// Errors:
//   - ErrPrecondition when dm has fewer than MinCities cities.
//   - ErrNumericAnomaly when finite distances sum to ±Inf or NaN.
//
// Complexity: O(n²) time, O(n) space.
func NewLowerBoundTable(dm *DistanceMatrix) (*LowerBoundTable, error) {
	if dm == nil {
		return nil, errors.Wrap(ErrMalformedInput, "nil distance matrix")
	}
	if dm.N() < MinCities {
		return nil, errors.Wrapf(ErrPrecondition, "lower bound needs at least %d cities, got %d", MinCities, dm.N())
	}

	var (
		n     = dm.N()
		t     = &LowerBoundTable{n: n, rows: make([]Nearest, n), first: make([]float64, n), pair: make([]float64, n)}
		empty = Neighbor{Index: -1, Dist: inf}
		i, j  int
		cand  Neighbor
		near  Nearest
		sum   float64
		short bool // some row has fewer than two finite edges
	)
	for i = 0; i < n; i++ {
		near = Nearest{First: empty, Second: empty}
		for j = 0; j < n; j++ {
			if j == i || math.IsInf(dm.Weight(i, j), 1) {
				continue // self or missing edge
			}
			cand = Neighbor{Index: j, ID: dm.ID(j), Dist: dm.Weight(i, j)}
			if closer(cand, near.First) {
				near.Second = near.First
				near.First = cand
			} else if closer(cand, near.Second) {
				near.Second = cand
			}
		}
		t.rows[i] = near
		t.first[i] = near.First.Dist
		t.pair[i] = near.First.Dist + near.Second.Dist
		if near.Second.Index < 0 {
			short = true
		} else if !isFinite(t.pair[i]) {
			return nil, errors.Wrapf(ErrNumericAnomaly, "nearest-edge sum of city %d is %g", dm.ID(i), t.pair[i])
		}
		sum += t.pair[i]
	}
	t.root = sum / 2
	if math.IsNaN(t.root) || math.IsInf(t.root, -1) || (!short && !isFinite(t.root)) {
		return nil, errors.Wrapf(ErrNumericAnomaly, "root bound is %g", t.root)
	}

	return t, nil
}

// closer reports whether a beats b: smaller distance, then lower ID.
// An empty slot (Index -1) loses against any real neighbour.
func closer(a, b Neighbor) bool {
	if b.Index < 0 {
		return true
	}
	if a.Dist != b.Dist {
		return a.Dist < b.Dist
	}

	return a.ID < b.ID
}

// N returns the number of cities.
func (t *LowerBoundTable) N() int { return t.n }

// At returns the nearest neighbours of row i.
func (t *LowerBoundTable) At(i int) Nearest { return t.rows[i] }

// RootBound returns ½·Σ_v (First(v)+Second(v)), a lower bound on every tour.
// It is +Inf when some city has fewer than two finite edges.
func (t *LowerBoundTable) RootBound() float64 { return t.root }

// PartialBound returns an admissible lower bound on the cost of every closed
// tour that starts with prefix (matrix indices; prefix[0] is the start).
// prefixCost must be the summed cost of the prefix edges.
//
//   - len(prefix) ≤ 1 → RootBound.
//   - len(prefix) == N → prefixCost plus the closing edge (exact cycle cost).
//   - otherwise → prefixCost + ½·(First(start) + First(last) + Σ_unvisited pair).
//
// The prefix must hold distinct in-range indices.
//
// Complexity: O(n) time and space.
func (t *LowerBoundTable) PartialBound(dm *DistanceMatrix, prefix []int, prefixCost float64) float64 {
	var k = len(prefix)
	if k <= 1 {
		return t.root
	}
	if k == t.n {
		return prefixCost + dm.Weight(prefix[k-1], prefix[0])
	}

	var (
		visited = make([]bool, t.n)
		rest    float64
		v       int
	)
	for _, v = range prefix {
		visited[v] = true
	}
	for v = 0; v < t.n; v++ {
		if !visited[v] {
			rest += t.pair[v]
		}
	}

	return t.bound(prefixCost, prefix[0], prefix[k-1], rest)
}

// bound evaluates the partial-path formula from its ingredients; the search
// maintains rest incrementally and calls this directly.
func (t *LowerBoundTable) bound(pathCost float64, start, last int, rest float64) float64 {
	return pathCost + 0.5*(t.first[start]+t.first[last]+rest)
}
