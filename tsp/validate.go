// Package tsp - validation utilities shared by the matrix builders and solvers.
//
// This file contains small helpers that:
//  1. Validate Options (budgets, worker count).
//  2. Validate raw city tables (dimension, count, finiteness, unique IDs).
//  3. Resolve the start city.
//
// Design principles:
//   - Deterministic, side-effect free functions.
//   - No logging, no panics on user input - only sentinel errors from types.go,
//     wrapped with context via github.com/pkg/errors.
package tsp

import (
	"math"

	"github.com/pkg/errors"
)

// validateOptions checks internal consistency of Options without referencing
// the instance.
//
// Complexity: O(1).
func validateOptions(opts Options) error {
	if opts.Workers < 0 {
		return errors.Wrapf(ErrInvalidOptions, "workers %d", opts.Workers)
	}
	if opts.MaxNodes < 0 {
		return errors.Wrapf(ErrInvalidOptions, "max nodes %d", opts.MaxNodes)
	}
	if opts.TimeLimit < 0 {
		return errors.Wrapf(ErrInvalidOptions, "time limit %s", opts.TimeLimit)
	}
	if opts.StartCity < 0 {
		return errors.Wrapf(ErrInvalidOptions, "start city %d", opts.StartCity)
	}

	return nil
}

// validateCities enforces the input boundary of the core:
//   - dimension > 0,
//   - len(cities) == dimension,
//   - finite coordinates,
//   - unique IDs.
//
// Complexity: O(n) time, O(n) space.
func validateCities(cities []City, dimension int) error {
	// Stage 1: shape.
	if dimension <= 0 {
		return errors.Wrapf(ErrMalformedInput, "dimension %d", dimension)
	}
	if len(cities) != dimension {
		return errors.Wrapf(ErrMalformedInput, "dimension %d but %d coordinate rows", dimension, len(cities))
	}

	// Stage 2: per-row values.
	var (
		seen = make(map[int]struct{}, len(cities))
		c    City
		ok   bool
	)
	for _, c = range cities {
		if !isFinite(c.X) || !isFinite(c.Y) {
			return errors.Wrapf(ErrMalformedInput, "city %d has non-finite coordinates (%g, %g)", c.ID, c.X, c.Y)
		}
		if _, ok = seen[c.ID]; ok {
			return errors.Wrapf(ErrMalformedInput, "duplicate city id %d", c.ID)
		}
		seen[c.ID] = struct{}{}
	}

	return nil
}

// resolveStart maps Options.StartCity to a matrix index. Zero selects index 0,
// which holds the lowest ID because matrices are ordered by ID.
//
// Complexity: O(1).
func resolveStart(dm *DistanceMatrix, startID int) (int, error) {
	if startID == 0 {
		return 0, nil
	}
	idx, ok := dm.Index(startID)
	if !ok {
		return 0, errors.Wrapf(ErrInvalidOptions, "start city %d is not in the instance", startID)
	}

	return idx, nil
}

// isFinite reports whether x is neither NaN nor ±Inf.
func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
