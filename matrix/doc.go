// SPDX-License-Identifier: MIT

// Package matrix provides the dense square storage used by the TSP core.
//
// The package offers:
//
//   - Matrix, a minimal bounds-checked interface over two-dimensional float64 data.
//   - Dense, a row-major implementation backed by a single flat slice.
//   - Validators for shape and symmetry that return plain sentinels so call
//     sites can wrap them uniformly.
//
// Matrices are built once per problem instance and are safe for concurrent
// reads afterwards. No method panics on user input.
package matrix
