// Package tsp — shared best-tour record.
//
// The incumbent is the single mutable result of a search. Writers go through
// Offer, a compare-and-replace guarded by a mutex that accepts strictly better
// costs only; readers use Cost, a lock-free atomic load, for pruning. Because
// replacements require cost < current, the recorded cost never increases.
package tsp

import (
	"math"
	"sync"
	"sync/atomic"
)

// Incumbent is the best complete tour found so far.
// The zero value is not usable; call NewIncumbent.
type Incumbent struct {
	mu           sync.Mutex
	bits         atomic.Uint64 // math.Float64bits of the current cost
	tour         []int
	improvements int64
	onImprove    func(tour []int, cost float64)
}

// NewIncumbent returns an empty record with cost +Inf. onImprove, if non-nil,
// is called under the lock with a private copy of every accepted tour.
func NewIncumbent(onImprove func(tour []int, cost float64)) *Incumbent {
	in := &Incumbent{onImprove: onImprove}
	in.bits.Store(math.Float64bits(inf))

	return in
}

// Cost returns the current best cost (+Inf when empty). Safe for concurrent use.
func (in *Incumbent) Cost() float64 {
	return math.Float64frombits(in.bits.Load())
}

// Offer records tour if cost is strictly below the current best.
// Ties never replace the incumbent. It reports whether tour was accepted.
//
// Complexity: O(1) when rejected by the fast path, O(n) copy when accepted.
func (in *Incumbent) Offer(tour []int, cost float64) bool {
	if math.IsNaN(cost) || !(cost < in.Cost()) {
		return false // fast path without the lock
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if !(cost < in.Cost()) {
		return false // lost the race to a better tour
	}
	if cap(in.tour) < len(tour) {
		in.tour = make([]int, len(tour))
	}
	in.tour = in.tour[:len(tour)]
	copy(in.tour, tour)
	in.bits.Store(math.Float64bits(cost))
	in.improvements++
	if in.onImprove != nil {
		in.onImprove(append([]int(nil), tour...), cost)
	}

	return true
}

// Snapshot returns a copy of the best tour and its cost. The tour is nil when empty.
func (in *Incumbent) Snapshot() ([]int, float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.tour == nil {
		return nil, in.Cost()
	}

	return append([]int(nil), in.tour...), in.Cost()
}

// Improvements returns how many tours were accepted.
func (in *Incumbent) Improvements() int64 {
	in.mu.Lock()
	defer in.mu.Unlock()

	return in.improvements
}
