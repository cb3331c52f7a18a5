// Package tsp — Held–Karp 1-tree (Lagrangian) lower bound.
//
// This module computes an admissible root bound on OPT via the classical
// Held–Karp relaxation:
//
//   - Choose city r as the root. For multipliers π define reduced costs
//     c'_{ij} = c_{ij} + π_i + π_j.
//   - Build a minimum 1-tree T(π): MST on V\{r} using c', plus the two
//     cheapest r-incident edges.
//   - L(π) = cost_c'(T(π)) − 2·Σ_i π_i is a lower bound for every π.
//   - Update π by subgradient steps s_i = deg_T(i) − 2.
//
// Solve uses max(RootBound, L) only at the root, to prove an incumbent optimal
// and stop early; node pruning keeps the cheaper two-nearest bound.
//
// Complexity (per call): O(iters · n²) time, O(n) working memory.
//
// Determinism: no RNG; Prim and root-edge selection break ties by index.
package tsp

import (
	"math"

	"github.com/pkg/errors"
)

// OneTreeConfig controls the subgradient loop.
type OneTreeConfig struct {
	// MaxIter is the maximum number of subgradient iterations (≥ 1).
	MaxIter int
	// Alpha ∈ (0, 2): step scale.
	Alpha float64
	// UB is an optional incumbent cost for adaptive steps (≤ 0 or +Inf disables it).
	UB float64
}

// DefaultOneTreeConfig returns conservative defaults.
func DefaultOneTreeConfig() OneTreeConfig {
	return OneTreeConfig{MaxIter: 32, Alpha: 0.9, UB: inf}
}

// OneTreeBound computes the Held–Karp 1-tree lower bound of dm using row root.
//
// Errors:
//   - ErrPrecondition for N < MinCities.
//   - ErrIncompleteGraph if no 1-tree can be formed (disconnected V\{root}
//     or fewer than two finite root edges).
func OneTreeBound(dm *DistanceMatrix, root int, cfg OneTreeConfig) (float64, error) {
	if dm == nil || dm.N() < MinCities {
		return 0, errors.Wrap(ErrPrecondition, "1-tree bound needs at least 3 cities")
	}
	var n = dm.N()
	if root < 0 || root >= n {
		return 0, errors.Wrapf(ErrInvalidOptions, "root row %d", root)
	}
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = 1
	}
	if cfg.Alpha <= 0 || cfg.Alpha >= 2 {
		cfg.Alpha = 0.9
	}

	eng := oneTreeEngine{
		n:      n,
		root:   root,
		dm:     dm,
		pi:     make([]float64, n),
		deg:    make([]int, n),
		inTree: make([]bool, n),
		parent: make([]int, n),
		key:    make([]float64, n),
	}

	var (
		bestLB    = math.Inf(-1)
		sumPi     float64
		iter, i   int
		norm2     float64
		redCost   float64
		degDiff   int
		haveUB    = !math.IsInf(cfg.UB, 0) && cfg.UB > 0
		step      float64
		lastBound float64
		err       error
	)
	for iter = 0; iter < cfg.MaxIter; iter++ {
		if redCost, err = eng.buildOneTreeReduced(); err != nil {
			return 0, err
		}

		sumPi = 0
		for i = 0; i < n; i++ {
			sumPi += eng.pi[i]
		}
		lastBound = redCost - 2*sumPi
		if lastBound > bestLB {
			bestLB = lastBound
		}

		// deg(i)==2 everywhere: the 1-tree is a tour and the bound is tight.
		norm2 = 0
		for i = 0; i < n; i++ {
			degDiff = eng.deg[i] - 2
			norm2 += float64(degDiff * degDiff)
		}
		if norm2 == 0 {
			break
		}

		// t = α·(UB−L)/||s||² with an incumbent, α/(1+iter) otherwise.
		if haveUB {
			step = math.Max(cfg.UB-lastBound, 0)
			step = cfg.Alpha * step / norm2
		} else {
			step = cfg.Alpha / (1.0 + float64(iter))
		}
		if step == 0 {
			break
		}
		for i = 0; i < n; i++ {
			eng.pi[i] += step * float64(eng.deg[i]-2)
		}
	}
	if math.IsNaN(bestLB) || math.IsInf(bestLB, 0) {
		return 0, errors.Wrapf(ErrNumericAnomaly, "1-tree bound is %g", bestLB)
	}

	return bestLB, nil
}

// oneTreeEngine holds mutable state for building 1-trees on reduced costs.
// Arrays are reused across iterations.
type oneTreeEngine struct {
	n    int
	root int
	dm   *DistanceMatrix

	pi []float64 // Lagrange multipliers

	deg    []int
	inTree []bool
	parent []int
	key    []float64
}

// reduced returns c'_{uv} = c_{uv} + π_u + π_v.
func (e *oneTreeEngine) reduced(u, v int) float64 {
	return e.dm.Weight(u, v) + e.pi[u] + e.pi[v]
}

// buildOneTreeReduced builds a minimum 1-tree on reduced costs (Prim over
// V\{root} in O(n²), then the two cheapest root edges). It fills e.deg and
// returns the reduced-cost total.
func (e *oneTreeEngine) buildOneTreeReduced() (float64, error) {
	var (
		v, u, best, iter int
		c                float64
		costReduced      float64
	)
	for v = 0; v < e.n; v++ {
		e.deg[v] = 0
		e.inTree[v] = false
		e.parent[v] = -1
		e.key[v] = inf
	}
	start := 0
	if start == e.root {
		start = 1
	}
	e.key[start] = 0

	for iter = 0; iter < e.n-1; iter++ {
		best = -1
		for v = 0; v < e.n; v++ {
			if v == e.root || e.inTree[v] {
				continue
			}
			if best == -1 || e.key[v] < e.key[best] {
				best = v // strict < keeps the lowest index on ties
			}
		}
		if best == -1 || math.IsInf(e.key[best], 0) {
			return 0, errors.Wrap(ErrIncompleteGraph, "cities other than the root are disconnected")
		}

		e.inTree[best] = true
		if e.parent[best] != -1 {
			u = e.parent[best]
			costReduced += e.reduced(best, u)
			e.deg[best]++
			e.deg[u]++
		}
		for v = 0; v < e.n; v++ {
			if v == e.root || e.inTree[v] {
				continue
			}
			if c = e.reduced(best, v); c < e.key[v] {
				e.key[v] = c
				e.parent[v] = best
			}
		}
	}

	// Two cheapest root edges.
	var (
		m1To, m2To = -1, -1
		m1, m2     = inf, inf
	)
	for v = 0; v < e.n; v++ {
		if v == e.root {
			continue
		}
		c = e.reduced(e.root, v)
		if c < m1 {
			m2, m2To = m1, m1To
			m1, m1To = c, v
		} else if c < m2 {
			m2, m2To = c, v
		}
	}
	if math.IsInf(m1, 0) || math.IsInf(m2, 0) {
		return 0, errors.Wrap(ErrIncompleteGraph, "root has fewer than two finite edges")
	}

	costReduced += m1 + m2
	e.deg[e.root] += 2
	e.deg[m1To]++
	e.deg[m2To]++

	return costReduced, nil
}
