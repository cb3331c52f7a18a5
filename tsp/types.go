package tsp

import (
	"errors"
	"math"
	"time"
)

// Sentinel errors. Call sites may add context with github.com/pkg/errors;
// callers match with errors.Is.
var (
	// ErrMalformedInput is returned for dimension ≤ 0, a coordinate count that
	// does not match the dimension, duplicate city IDs or non-finite coordinates.
	ErrMalformedInput = errors.New("tsp: malformed input")

	// ErrPrecondition is returned when fewer than MinCities cities reach the
	// lower-bound or search stages.
	ErrPrecondition = errors.New("tsp: precondition violated")

	// ErrNumericAnomaly is returned when a computed distance or bound is not finite
	// although every input was.
	ErrNumericAnomaly = errors.New("tsp: numeric anomaly")

	// ErrIncompleteGraph is returned when no closed tour of finite cost exists.
	ErrIncompleteGraph = errors.New("tsp: no finite tour exists")

	// ErrSearchStopped is returned when the search was stopped before any
	// complete tour of finite cost was recorded.
	ErrSearchStopped = errors.New("tsp: search stopped before a tour was found")

	// ErrInvalidTour is returned when a tour is not a permutation of the city IDs.
	ErrInvalidTour = errors.New("tsp: invalid tour")

	// ErrInvalidOptions is returned for negative budgets or an unknown start city.
	ErrInvalidOptions = errors.New("tsp: invalid options")
)

// NoSelfDistance marks the diagonal of a DistanceMatrix. It is never a valid distance.
const NoSelfDistance = -1.0

// MinCities is the smallest instance for which a cycle (and the two-nearest bound) exists.
const MinCities = 3

// inf is the cost of a missing edge or an empty incumbent.
var inf = math.Inf(1)

// City is a TSPLIB node: a 1-based identifier and planar coordinates.
type City struct {
	ID int
	X  float64
	Y  float64
}

// StopReason tells why a search ended before exhausting the tree.
type StopReason int

const (
	// NotStopped means every branch reached a terminal state.
	NotStopped StopReason = iota
	// StoppedCanceled means the context was canceled.
	StoppedCanceled
	// StoppedTimeLimit means Options.TimeLimit elapsed.
	StoppedTimeLimit
	// StoppedNodeLimit means Options.MaxNodes nodes were explored.
	StoppedNodeLimit
)

// String implements fmt.Stringer.
func (r StopReason) String() string {
	switch r {
	case NotStopped:
		return "none"
	case StoppedCanceled:
		return "canceled"
	case StoppedTimeLimit:
		return "time limit"
	case StoppedNodeLimit:
		return "node limit"
	default:
		return "unknown"
	}
}

// Options configures Solve.
type Options struct {
	// StartCity is the ID fixed at position 0. Zero selects the lowest ID.
	StartCity int

	// Workers is the number of first-level subtrees searched concurrently.
	// Values ≤ 1 run the deterministic sequential search.
	Workers int

	// MaxNodes bounds the number of explored nodes (0 = unlimited).
	MaxNodes int64

	// TimeLimit bounds wall-clock search time (0 = unlimited).
	TimeLimit time.Duration

	// SeedNearestNeighbor offers the repetitive nearest-neighbour tour as the
	// initial incumbent. It can change which of several equal-cost optima is
	// returned, so it is off by default.
	SeedNearestNeighbor bool

	// OnImprove, when set, is called with every strictly better tour (city IDs)
	// in the order improvements are recorded. It must not retain the slice.
	OnImprove func(tour []int, cost float64)
}

// DefaultOptions returns the sequential, unbounded, deterministic configuration.
func DefaultOptions() Options {
	return Options{Workers: 1}
}

// Result is the outcome of a search.
type Result struct {
	// Tour lists the N city IDs in visiting order; the last connects back to the first.
	Tour []int

	// Cost is the total length of the closed tour.
	Cost float64

	// RootBound is the two-nearest-neighbour lower bound of the whole instance.
	RootBound float64

	// Nodes counts evaluated partial and complete orderings.
	Nodes int64

	// Pruned counts partial orderings abandoned because bound ≥ best.
	Pruned int64

	// Improvements counts incumbent replacements, including the seed.
	Improvements int64

	// Optimal is true when the search finished or proved the incumbent optimal.
	Optimal bool

	// Stopped is the reason the search ended early, if any.
	Stopped StopReason

	// Elapsed is the wall-clock duration of the search.
	Elapsed time.Duration
}
