// Package tsp - 2-opt polishing of seed tours.
//
// TwoOpt performs deterministic first-improvement 2-opt on a closed tour:
// reversing segment [i..k] replaces edges (a,b),(c,d) with (a,c),(b,d), where
// a=T[i−1], b=T[i], c=T[k], d=T[(k+1) mod n]. Position 0 never moves, so the
// start city is preserved. It is only used to tighten the nearest-neighbour
// seed before the exact search.
//
// Complexity:
//   - One pass: O(n²) candidate checks; the scan restarts after each accepted move.
//   - Each accepted move costs O(k−i).
package tsp

// improveEps is the minimum gain for a 2-opt move to be accepted.
const improveEps = 1e-12

// TwoOpt improves a tour of city IDs until no 2-opt move gains more than 1e-12.
// It returns the improved tour (same first city) and its cost.
//
// Errors: those of TourCost for an invalid or infeasible input tour.
func TwoOpt(dm *DistanceMatrix, tour []int) ([]int, float64, error) {
	if _, err := TourCost(dm, tour); err != nil {
		return nil, 0, err
	}
	ord := make([]int, len(tour))
	var i int
	for i = range tour {
		ord[i], _ = dm.Index(tour[i])
	}
	ord = twoOpt(dm, ord)

	return toIDs(dm, ord), orderingCost(dm, ord), nil
}

// twoOpt polishes ord (matrix indices) in place and returns it.
func twoOpt(dm *DistanceMatrix, ord []int) []int {
	var (
		n                  = len(ord)
		a, b, c, d         int
		i, k               int
		wab, wcd, wac, wbd float64
		improved           = true
	)
	if n < 4 {
		return ord // every 3-cycle is optimal
	}
	for improved {
		improved = false
	scan:
		for i = 1; i <= n-2; i++ {
			for k = i + 1; k <= n-1; k++ {
				a, b, c, d = ord[i-1], ord[i], ord[k], ord[(k+1)%n]
				wac, wbd = dm.Weight(a, c), dm.Weight(b, d)
				if isInf(wac) || isInf(wbd) {
					continue
				}
				wab, wcd = dm.Weight(a, b), dm.Weight(c, d)
				if (wac+wbd)-(wab+wcd) < -improveEps {
					reverseInts(ord[i : k+1])
					improved = true
					break scan // first improvement: restart
				}
			}
		}
	}

	return ord
}
