// Package tsp — all-pairs Euclidean distance matrix.
//
// DistanceMatrix is the foundation of the core: it is built once per
// instance from the city table and is read-only afterwards, so concurrent
// searches may share it freely.
//
// Layout:
//   - Rows/columns are ordered by ascending city ID, so lexicographic order
//     over matrix indices equals ascending city-ID order.
//   - Storage is a *matrix.Dense (strict accessors, debugging dumps) plus a
//     flat weight buffer w[u*n+v] used in hot loops, where every invalid entry
//     (diagonal, negative, NaN, ±Inf) reads as +Inf.
//
// Complexity:
//   - Construction O(n²) time and memory; accessors O(1).
package tsp

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/katalvlaran/tspbb/matrix"
)

// symTol is the structural tolerance used by IsSymmetric.
const symTol = 1e-12

// DistanceMatrix holds pairwise distances between the cities of one instance.
type DistanceMatrix struct {
	n     int
	ids   []int       // ids[i] is the city ID of row i (ascending)
	index map[int]int // city ID -> row
	dense *matrix.Dense
	w     []float64 // search weights, invalid entries are +Inf
}

// NewDistanceMatrix computes the N×N Euclidean distance table for cities.
//
// Contract:
//   - dimension > 0 and len(cities) == dimension, otherwise ErrMalformedInput.
//   - Coordinates must be finite and IDs unique (ErrMalformedInput).
//   - A distance that overflows to ±Inf is reported as ErrNumericAnomaly.
//   - The diagonal holds NoSelfDistance.
//
// No partial matrix is returned on error.
//
// Complexity: O(n²) time and memory.
func NewDistanceMatrix(cities []City, dimension int) (*DistanceMatrix, error) {
	if err := validateCities(cities, dimension); err != nil {
		return nil, err
	}

	// Order rows by ID without touching the caller's slice.
	sorted := make([]City, len(cities))
	copy(sorted, cities)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].ID < sorted[b].ID })

	dm, err := newDistanceMatrix(idsOf(sorted))
	if err != nil {
		return nil, err
	}

	var (
		i, j int
		d    float64
	)
	for i = 0; i < dm.n; i++ {
		for j = i + 1; j < dm.n; j++ { // upper triangle, mirrored
			d = math.Hypot(sorted[i].X-sorted[j].X, sorted[i].Y-sorted[j].Y)
			if !isFinite(d) {
				return nil, errors.Wrapf(ErrNumericAnomaly, "distance between cities %d and %d is %g",
					sorted[i].ID, sorted[j].ID, d)
			}
			dm.putSym(i, j, d)
		}
	}

	return dm, nil
}

// NewDistanceMatrixFromWeights builds a matrix from explicit symmetric
// weights where w[i][j] == w[j][i] is the cost of the edge between ids[i] and
// ids[j]. +Inf marks a missing edge; negative entries are kept as given by
// Distance and read as missing by the search. The diagonal is ignored and
// overwritten with NoSelfDistance.
//
// Contract:
//   - len(ids) > 0, unique IDs, and w is len(ids)×len(ids).
//   - Off-diagonal entries are not NaN and w is exactly symmetric; the lower
//     bounds used by Solve only hold for undirected costs.
//
// Violations return ErrMalformedInput.
//
// Complexity: O(n²).
func NewDistanceMatrixFromWeights(ids []int, w [][]float64) (*DistanceMatrix, error) {
	if len(ids) == 0 {
		return nil, errors.Wrap(ErrMalformedInput, "no cities")
	}
	if len(w) != len(ids) {
		return nil, errors.Wrapf(ErrMalformedInput, "%d ids but %d weight rows", len(ids), len(w))
	}

	// Sort rows by ID via a permutation so w can stay in caller order.
	var (
		n    = len(ids)
		perm = make([]int, n)
		i, j int
	)
	for i = range perm {
		perm[i] = i
		if len(w[i]) != n {
			return nil, errors.Wrapf(ErrMalformedInput, "weight row %d has %d entries, want %d", i, len(w[i]), n)
		}
	}
	sort.Slice(perm, func(a, b int) bool { return ids[perm[a]] < ids[perm[b]] })

	sortedIDs := make([]int, n)
	for i = range perm {
		sortedIDs[i] = ids[perm[i]]
	}
	dm, err := newDistanceMatrix(sortedIDs)
	if err != nil {
		return nil, err
	}
	var d float64
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			if d = w[perm[i]][perm[j]]; math.IsNaN(d) {
				return nil, errors.Wrapf(ErrMalformedInput, "weight %d→%d is NaN", sortedIDs[i], sortedIDs[j])
			}
			dm.put(i, j, d)
		}
	}
	if err = matrix.ValidateSymmetric(dm.dense, 0); err != nil {
		return nil, errors.Wrap(ErrMalformedInput, err.Error())
	}

	return dm, nil
}

// newDistanceMatrix allocates storage for the sorted IDs with a sentinel diagonal.
func newDistanceMatrix(ids []int) (*DistanceMatrix, error) {
	var n = len(ids)
	dense, err := matrix.NewSquare(n, 0)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedInput, err.Error())
	}
	dm := &DistanceMatrix{
		n:     n,
		ids:   ids,
		index: make(map[int]int, n),
		dense: dense,
		w:     make([]float64, n*n),
	}

	var i int
	for i = 0; i < n; i++ {
		if _, dup := dm.index[ids[i]]; dup {
			return nil, errors.Wrapf(ErrMalformedInput, "duplicate city id %d", ids[i])
		}
		dm.index[ids[i]] = i
		_ = dense.Set(i, i, NoSelfDistance)
		dm.w[i*n+i] = inf
	}

	return dm, nil
}

// put stores d at (i, j) in both representations.
func (dm *DistanceMatrix) put(i, j int, d float64) {
	_ = dm.dense.Set(i, j, d) // indices come from loops bounded by n
	if math.IsNaN(d) || d < 0 {
		d = inf
	}
	dm.w[i*dm.n+j] = d
}

// putSym stores d at (i, j) and (j, i).
func (dm *DistanceMatrix) putSym(i, j int, d float64) {
	_ = dm.dense.SetSym(i, j, d)
	dm.w[i*dm.n+j] = d
	dm.w[j*dm.n+i] = d
}

// N returns the number of cities.
func (dm *DistanceMatrix) N() int { return dm.n }

// ID returns the city ID of row i.
func (dm *DistanceMatrix) ID(i int) int { return dm.ids[i] }

// IDs returns a copy of the row IDs in ascending order.
func (dm *DistanceMatrix) IDs() []int {
	out := make([]int, dm.n)
	copy(out, dm.ids)

	return out
}

// Index returns the row of a city ID.
func (dm *DistanceMatrix) Index(id int) (int, bool) {
	i, ok := dm.index[id]

	return i, ok
}

// Distance returns the stored entry (i, j): a distance, NoSelfDistance on the
// diagonal, or whatever explicit weight was supplied.
// Out-of-range indices yield ErrMalformedInput.
//
// Complexity: O(1).
func (dm *DistanceMatrix) Distance(i, j int) (float64, error) {
	d, err := dm.dense.At(i, j)
	if err != nil {
		return 0, errors.Wrap(ErrMalformedInput, err.Error())
	}

	return d, nil
}

// Weight returns the search cost of edge i→j; the diagonal and invalid
// entries read as +Inf. Indices must be in range.
//
// Complexity: O(1).
func (dm *DistanceMatrix) Weight(i, j int) float64 { return dm.w[i*dm.n+j] }

// Matrix returns a deep copy of the underlying dense table.
func (dm *DistanceMatrix) Matrix() matrix.Matrix { return dm.dense.Clone() }

// IsSymmetric reports whether (i,j) == (j,i) for every i ≠ j within 1e-12.
//
// Complexity: O(n²).
func (dm *DistanceMatrix) IsSymmetric() bool {
	return matrix.ValidateSymmetric(dm.dense, symTol) == nil
}

// String dumps the table row by row.
func (dm *DistanceMatrix) String() string { return dm.dense.String() }

// idsOf extracts IDs preserving order.
func idsOf(cities []City) []int {
	out := make([]int, len(cities))
	var i int
	for i = range cities {
		out[i] = cities[i].ID
	}

	return out
}
