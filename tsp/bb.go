// Package tsp — Branch-and-Bound (exact search with admissible lower bounds).
//
// Solve explores orderings of the cities with the first position fixed to the
// start city. The implicit search tree is walked through an Explorer cursor:
//
//   - Start      → the explorer holds [start, ascending rest].
//   - Partial(k) → positions 0..k are fixed; the engine keeps prefix costs so
//     only positions ≥ the explorer pivot are recomputed after each step.
//   - Pruned     → bound(prefix) ≥ bestCost; Explorer.Skip(k) jumps past every
//     completion of the prefix.
//   - Complete   → the closing edge last→start is added; the incumbent is
//     replaced only on a strictly smaller cost.
//
// Because the explorer is lexicographic over matrix indices, and rows are
// ordered by city ID, candidates are tried in ascending ID order and the first
// optimum found (the lowest ID sequence) is the one returned.
//
// The incumbent is seeded with the very first ordering [start, ascending rest].
// That is exactly the first Complete state the search would reach, so seeding
// does not change which tour wins, but a stopped search always has a tour.
//
// Complexity:
//   - Worst case O(n!·n); practical speed comes from pruning.
//   - Per node: O(n) bound (sum over unvisited) + O(1) state updates.
//   - Memory: O(n²) for the matrix, O(n) per engine.
package tsp

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/tspbb/common"
)

// checkEvery is the node interval between context/deadline checks.
const checkEvery = 1024

// budget is the stop policy shared by every engine of one search.
type budget struct {
	ctx         context.Context
	maxNodes    int64
	useDeadline bool
	deadline    time.Time
	nodes       atomic.Int64
	pruned      atomic.Int64
	reason      atomic.Int32 // StopReason, first writer wins
}

// stop records reason unless another one was recorded first.
func (b *budget) stop(reason StopReason) {
	b.reason.CompareAndSwap(int32(NotStopped), int32(reason))
}

// stopped reports whether any engine requested a stop.
func (b *budget) stopped() bool { return b.reason.Load() != int32(NotStopped) }

// visit accounts for one node and reports whether the search must halt.
// Context and deadline are polled every checkEvery nodes to keep overhead low.
func (b *budget) visit() bool {
	if b.stopped() {
		return true
	}
	var n = b.nodes.Add(1)
	if b.maxNodes > 0 && n >= b.maxNodes {
		b.stop(StoppedNodeLimit)
		return true
	}
	if n%checkEvery != 0 {
		return false
	}
	if b.ctx.Err() != nil {
		b.stop(StoppedCanceled)
		return true
	}
	if b.useDeadline && time.Now().After(b.deadline) {
		b.stop(StoppedTimeLimit)
		return true
	}

	return false
}

// bbEngine holds the per-goroutine search state. Engines share the matrix,
// the bound table, the incumbent and the budget; everything else is private.
type bbEngine struct {
	n     int
	dm    *DistanceMatrix
	lb    *LowerBoundTable
	inc   *Incumbent
	b     *budget
	root  float64
	cost  []float64 // cost[k] = summed edges of positions 0..k
	proof *atomic.Bool
}

// newEngine allocates scratch buffers for one goroutine.
// root is the bound used for the early optimality proof.
func newEngine(dm *DistanceMatrix, lb *LowerBoundTable, inc *Incumbent, b *budget, root float64, proof *atomic.Bool) *bbEngine {
	return &bbEngine{
		n:     dm.N(),
		dm:    dm,
		lb:    lb,
		inc:   inc,
		b:     b,
		root:  root,
		cost:  make([]float64, dm.N()),
		proof: proof,
	}
}

// unvisitedPair sums First+Second over ord[k+1:].
func (e *bbEngine) unvisitedPair(ord []int, k int) float64 {
	var (
		s float64
		v int
	)
	for _, v = range ord[k+1:] {
		s += e.lb.pair[v]
	}

	return s
}

// provenOptimal reports whether nothing can beat the incumbent any more.
func (e *bbEngine) provenOptimal() bool {
	if e.proof.Load() {
		return true
	}
	if e.inc.Cost() <= e.root {
		e.proof.Store(true)
		return true
	}

	return false
}

// run walks every ordering the explorer can still produce.
// Positions below ex.Fixed() are treated as already decided.
func (e *bbEngine) run(ex *Explorer) {
	var (
		ord   = ex.Ordering()
		n     = e.n
		pivot = 1 // first position whose prefix cost must be recomputed
		k     int
		ok    bool
		total float64
		bound float64
	)
	e.cost[0] = 0

	for {
		if e.provenOptimal() {
			return
		}

		// Partial(k): extend the prefix position by position.
		for k = max(pivot, 1); k < n-1; k++ {
			e.cost[k] = e.cost[k-1] + e.dm.Weight(ord[k-1], ord[k])
			if e.b.visit() {
				return
			}
			bound = e.lb.bound(e.cost[k], ord[0], ord[k], e.unvisitedPair(ord, k))
			if bound >= e.inc.Cost() {
				break // Pruned
			}
		}
		if k < n-1 {
			e.b.pruned.Add(1)
			if pivot, ok = ex.Skip(k); !ok {
				return
			}
			continue
		}

		// Complete: close the cycle back to the start.
		e.cost[n-1] = e.cost[n-2] + e.dm.Weight(ord[n-2], ord[n-1])
		if e.b.visit() {
			return
		}
		total = e.cost[n-1] + e.dm.Weight(ord[n-1], ord[0])
		if total < e.inc.Cost() {
			e.inc.Offer(ord, total)
		}

		if pivot, ok = ex.Next(); !ok {
			return
		}
	}
}

// Solve runs branch-and-bound on dm and returns the best tour found.
//
// Errors:
//   - ErrPrecondition when dm has fewer than MinCities cities.
//   - ErrInvalidOptions for negative budgets or an unknown StartCity.
//   - ErrIncompleteGraph when no finite closed tour exists.
//   - ErrSearchStopped when a budget or ctx stopped the search before any
//     finite tour was recorded.
//
// On a stop with an incumbent, Solve returns it with Result.Stopped set and
// Result.Optimal false, and a nil error.
func Solve(ctx context.Context, dm *DistanceMatrix, opts Options) (Result, error) {
	var started = time.Now()
	if err := validateOptions(opts); err != nil {
		return Result{}, err
	}
	if dm == nil {
		return Result{}, errors.Wrap(ErrMalformedInput, "nil distance matrix")
	}
	if dm.N() < MinCities {
		return Result{}, errors.Wrapf(ErrPrecondition, "search needs at least %d cities, got %d", MinCities, dm.N())
	}
	lb, err := NewLowerBoundTable(dm)
	if err != nil {
		return Result{}, err
	}
	start, err := resolveStart(dm, opts.StartCity)
	if err != nil {
		return Result{}, err
	}

	logger := common.Logger(ctx).WithFields(logrus.Fields{
		"cities":  dm.N(),
		"start":   dm.ID(start),
		"workers": max(opts.Workers, 1),
	})

	// Every city of a closed tour needs two distinct finite edges.
	if isInf(lb.RootBound()) {
		return Result{}, errors.Wrap(ErrIncompleteGraph, "a city has fewer than two finite edges")
	}

	inc := NewIncumbent(translateHook(dm, opts.OnImprove))
	b := &budget{ctx: ctx, maxNodes: opts.MaxNodes}
	if opts.TimeLimit > 0 {
		b.useDeadline = true
		b.deadline = started.Add(opts.TimeLimit)
	}

	// Seed: the first lexicographic ordering, then optionally nearest neighbour.
	initial := initialOrdering(dm.N(), start)
	if c := orderingCost(dm, initial); !isInf(c) {
		inc.Offer(initial, c)
	}
	if opts.SeedNearestNeighbor {
		if nn, _, nerr := repetitiveNearestNeighbor(dm, start); nerr == nil {
			nn = twoOpt(dm, nn)
			inc.Offer(nn, orderingCost(dm, nn))
		}
	}
	proofRoot := proofBound(dm, lb, start, inc.Cost())
	logger.WithFields(logrus.Fields{
		"root_bound":  lb.RootBound(),
		"proof_bound": proofRoot,
		"seed_cost":   inc.Cost(),
	}).Debug("branch-and-bound started")

	var proof atomic.Bool
	if ctx.Err() != nil {
		b.stop(StoppedCanceled) // canceled before the first node: return the seed
	}
	if opts.Workers > 1 {
		if err = solveParallel(dm, lb, inc, b, proofRoot, &proof, initial, opts.Workers); err != nil {
			return Result{}, err
		}
	} else {
		newEngine(dm, lb, inc, b, proofRoot, &proof).run(NewExplorer(initial, 1))
	}

	tour, cost := inc.Snapshot()
	res := Result{
		Cost:         cost,
		RootBound:    lb.RootBound(),
		Nodes:        b.nodes.Load(),
		Pruned:       b.pruned.Load(),
		Improvements: inc.Improvements(),
		Stopped:      StopReason(b.reason.Load()),
		Elapsed:      time.Since(started),
	}
	if proof.Load() {
		res.Stopped = NotStopped
	}
	res.Optimal = res.Stopped == NotStopped

	if tour == nil {
		if res.Stopped != NotStopped {
			return res, errors.Wrapf(ErrSearchStopped, "stopped by %s after %d nodes", res.Stopped, res.Nodes)
		}
		return res, ErrIncompleteGraph
	}
	res.Tour = toIDs(dm, tour)

	logger.WithFields(logrus.Fields{
		"cost":    res.Cost,
		"nodes":   res.Nodes,
		"pruned":  res.Pruned,
		"optimal": res.Optimal,
		"stopped": res.Stopped.String(),
	}).Debug("branch-and-bound finished")

	return res, nil
}

// SolveCities builds the distance matrix for cities and runs Solve.
func SolveCities(ctx context.Context, cities []City, dimension int, opts Options) (Result, error) {
	dm, err := NewDistanceMatrix(cities, dimension)
	if err != nil {
		return Result{}, err
	}

	return Solve(ctx, dm, opts)
}

// oneTreeSlack is the relative margin taken off the 1-tree bound so that
// rounding in the subgradient loop cannot claim a proof it does not have.
const oneTreeSlack = 1e-9

// proofBound returns max(two-nearest root bound, 1-tree bound − slack).
func proofBound(dm *DistanceMatrix, lb *LowerBoundTable, start int, ub float64) float64 {
	var (
		root = lb.RootBound()
		cfg  = DefaultOneTreeConfig()
	)
	cfg.UB = ub
	ot, err := OneTreeBound(dm, start, cfg)
	if err != nil {
		return root
	}
	ot -= oneTreeSlack * math.Max(1, math.Abs(ot))

	return math.Max(root, ot)
}

// initialOrdering returns [start, 0, 1, …] skipping start: the lexicographically
// smallest ordering with start in front.
func initialOrdering(n, start int) []int {
	out := make([]int, 0, n)
	out = append(out, start)
	var v int
	for v = 0; v < n; v++ {
		if v != start {
			out = append(out, v)
		}
	}

	return out
}

// orderingCost sums edges in order then the closing edge, the same
// summation order the engine and TourCost use.
func orderingCost(dm *DistanceMatrix, ord []int) float64 {
	var (
		sum float64
		i   int
	)
	for i = 1; i < len(ord); i++ {
		sum += dm.Weight(ord[i-1], ord[i])
	}

	return sum + dm.Weight(ord[len(ord)-1], ord[0])
}

// toIDs maps matrix indices to city IDs.
func toIDs(dm *DistanceMatrix, ord []int) []int {
	out := make([]int, len(ord))
	var i int
	for i = range ord {
		out[i] = dm.ID(ord[i])
	}

	return out
}

// translateHook adapts a user hook on city IDs to the index-based incumbent.
func translateHook(dm *DistanceMatrix, hook func([]int, float64)) func([]int, float64) {
	if hook == nil {
		return nil
	}

	return func(tour []int, cost float64) { hook(toIDs(dm, tour), cost) }
}

// isInf reports whether x is +Inf.
func isInf(x float64) bool { return math.IsInf(x, 1) }
