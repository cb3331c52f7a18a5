// Package tsp solves small symmetric Euclidean Travelling Salesman instances
// exactly, by branch-and-bound over city orderings.
//
// Building blocks:
//
//   - DistanceMatrix: pairwise Euclidean distances, rows ordered by city ID,
//     diagonal set to NoSelfDistance (-1). Missing edges are +Inf.
//   - LowerBoundTable: each city's two nearest neighbours. The bound of a
//     partial tour is pathCost + ½·(First(start) + First(last) + Σ unvisited
//     (First+Second)), admissible for any completion.
//   - Explorer: a lexicographic permutation cursor with a fixed prefix and a
//     Skip(k) operation that discards every ordering sharing the first k+1
//     positions.
//   - Solve: depth-first branch-and-bound that prunes a prefix as soon as its
//     bound reaches the incumbent cost.
//
// Helpers:
//
//   - SolveExhaustive: plain enumeration, for cross-checking (n ≲ 10).
//   - NearestNeighborTour, TwoOpt: seed construction and polishing.
//   - OneTreeBound: Held–Karp root bound used to prove optimality early.
//   - TourCost, ValidateTour, CanonicalTour, SameCycle: tour utilities.
//
// Determinism: with Workers ≤ 1 the search order is fixed, the incumbent is
// only replaced on a strictly smaller cost, and so among equal-cost optima the
// lowest ID sequence is returned. With Workers > 1 the cost is still optimal
// but the chosen tie may vary.
//
// Complexity: worst case O(n!·n); practical for n up to about 12–15 on
// random planar instances.
package tsp
