// Package tsp — concurrent first-level fan-out.
//
// Every choice of the city at position 1 roots an independent subtree. With
// Options.Workers > 1 those subtrees are searched by a bounded pool of
// goroutines (errgroup with SetLimit). All engines share one Incumbent (the
// only synchronised write path) and one budget, so pruning in one subtree
// benefits from tours found in another and a stop request halts them all.
//
// Subtrees are submitted in ascending ID order. The optimal cost is the same
// as the sequential search; among several equal-cost optima the returned one
// depends on scheduling.
package tsp

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// solveParallel searches every first-level subtree of initial concurrently.
// initial must be [start, ascending rest]. Cancellation reaches the workers
// through b, which polls its context.
func solveParallel(dm *DistanceMatrix, lb *LowerBoundTable, inc *Incumbent,
	b *budget, root float64, proof *atomic.Bool, initial []int, workers int) error {
	var g errgroup.Group
	g.SetLimit(workers)

	var pos int
	for pos = 1; pos < len(initial); pos++ {
		if b.stopped() || proof.Load() {
			break
		}
		prefix := subtreeOrdering(initial, pos)
		g.Go(func() error {
			newEngine(dm, lb, inc, b, root, proof).run(NewExplorer(prefix, 2))
			return nil
		})
	}

	return g.Wait()
}

// subtreeOrdering moves initial[pos] to position 1 and keeps the rest ascending.
func subtreeOrdering(initial []int, pos int) []int {
	out := make([]int, 0, len(initial))
	out = append(out, initial[0], initial[pos])
	var i int
	for i = 1; i < len(initial); i++ {
		if i != pos {
			out = append(out, initial[i])
		}
	}

	return out
}
