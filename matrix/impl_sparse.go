// SPDX-License-Identifier: MIT

// Package matrix - Sparse operators (compressed sparse row).
//
// Purpose:
//   - Hold immutable linear operators whose pattern is known at assembly time
//     (cohort shift operators are the canonical case: one sub-diagonal of ones).
//   - Apply them to Dense compartments with a single sparse×dense product so
//     every queue advances with the exact same arithmetic.
//
// Determinism & Performance:
//   - Entries are sorted (row, col) at assembly; products walk rows in order.
//   - Assembly is O(nnz log nnz); a product costs O(nnz * k) for a k-column operand.
//   - A Sparse is read-only after NewSparse returns and may be shared across
//     goroutines and model instances.

package matrix

import (
	"fmt"
	"slices"
	"sort"
)

const (
	ctxSparse      = "NewSparse"
	ctxSparseAt    = "Sparse.At"
	ctxMulDense    = "Sparse.MulDenseInto"
	ctxShiftDepths = "NewShift"
)

// Sparse is an immutable CSR matrix.
//   - rowPtr has r+1 entries; row i owns colIdx/vals[rowPtr[i]:rowPtr[i+1]].
//   - colIdx is strictly increasing inside each row.
type Sparse struct {
	r, c   int
	rowPtr []int
	colIdx []int
	vals   []float64
}

var _ Matrix = (*Sparse)(nil)

// NewSparse assembles an r×c CSR operator from triplets.
// MAIN DESCRIPTION:
//   - Builder for immutable sparse operators.
//
// Implementation:
//   - Stage 1: validate shape, every coordinate and every value.
//   - Stage 2: sort a copy of the triplets by (row, col).
//   - Stage 3: merge duplicates (summing) and drop entries that sum to exactly 0.
//   - Stage 4: fill rowPtr by prefix counts.
//
// Errors:
//   - ErrBadShape (rows/cols ≤ 0), ErrOutOfRange (coordinate), ErrNaNInf (value).
//
// Complexity:
//   - Time O(nnz log nnz), Space O(r + nnz).
func NewSparse(rows, cols int, entries []Triplet) (*Sparse, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%s(%d,%d): %w", ctxSparse, rows, cols, ErrBadShape)
	}
	for k, t := range entries {
		if t.Row < 0 || t.Row >= rows || t.Col < 0 || t.Col >= cols {
			return nil, fmt.Errorf("%s: entry %d at (%d,%d): %w", ctxSparse, k, t.Row, t.Col, ErrOutOfRange)
		}
		if isNonFinite(t.Val) {
			return nil, fmt.Errorf("%s: entry %d at (%d,%d): %w", ctxSparse, k, t.Row, t.Col, ErrNaNInf)
		}
	}

	sorted := slices.Clone(entries)
	sort.SliceStable(sorted, func(a, b int) bool {
		if sorted[a].Row != sorted[b].Row {
			return sorted[a].Row < sorted[b].Row
		}
		return sorted[a].Col < sorted[b].Col
	})

	s := &Sparse{
		r:      rows,
		c:      cols,
		rowPtr: make([]int, rows+1),
		colIdx: make([]int, 0, len(sorted)),
		vals:   make([]float64, 0, len(sorted)),
	}
	var k, next int
	var sum float64
	for k = 0; k < len(sorted); k = next {
		// Merge the run of duplicates starting at k.
		sum = sorted[k].Val
		for next = k + 1; next < len(sorted) && sorted[next].Row == sorted[k].Row && sorted[next].Col == sorted[k].Col; next++ {
			sum += sorted[next].Val
		}
		if sum == 0 {
			continue
		}
		s.colIdx = append(s.colIdx, sorted[k].Col)
		s.vals = append(s.vals, sum)
		s.rowPtr[sorted[k].Row+1]++
	}
	for i := 0; i < rows; i++ {
		s.rowPtr[i+1] += s.rowPtr[i]
	}

	return s, nil
}

// NewShift builds the depth×depth cohort shift operator.
// MAIN DESCRIPTION:
//   - Ones at (i+1, i) for i in [0, depth-2]. Left-multiplying a depth×p
//     queue moves the cohort in slot i to slot i+1 and leaves slot 0 empty;
//     the cohort in slot depth-1 has no destination and must be read by the
//     caller before the product.
//
// Behavior highlights:
//   - depth == 1 yields the empty (all-zero) 1×1 operator: the single slot
//     matures on every advance.
//
// Errors:
//   - ErrBadShape when depth ≤ 0.
//
// Complexity:
//   - Time O(depth), Space O(depth).
func NewShift(depth int) (*Sparse, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%s(%d): %w", ctxShiftDepths, depth, ErrBadShape)
	}
	entries := make([]Triplet, 0, depth-1)
	for i := 0; i+1 < depth; i++ {
		entries = append(entries, Triplet{Row: i + 1, Col: i, Val: 1})
	}

	return NewSparse(depth, depth, entries)
}

// Rows returns the row count.
func (s *Sparse) Rows() int { return s.r }

// Cols returns the column count.
func (s *Sparse) Cols() int { return s.c }

// NNZ returns the number of stored entries.
func (s *Sparse) NNZ() int { return len(s.vals) }

// At returns element (i, j); entries outside the pattern read as 0.
// Complexity: O(log nnz(row i)).
func (s *Sparse) At(i, j int) (float64, error) {
	if i < 0 || i >= s.r || j < 0 || j >= s.c {
		return 0, fmt.Errorf("%s(%d,%d): %w", ctxSparseAt, i, j, ErrOutOfRange)
	}
	lo, hi := s.rowPtr[i], s.rowPtr[i+1]
	if k, ok := slices.BinarySearch(s.colIdx[lo:hi], j); ok {
		return s.vals[lo+k], nil
	}

	return 0, nil
}

// Clone returns a deep copy. Sparse values are immutable, so this is only
// useful when a caller wants an independent lifetime.
func (s *Sparse) Clone() Matrix {
	return &Sparse{
		r:      s.r,
		c:      s.c,
		rowPtr: slices.Clone(s.rowPtr),
		colIdx: slices.Clone(s.colIdx),
		vals:   slices.Clone(s.vals),
	}
}

// MulDenseInto computes dst = s · src.
// MAIN DESCRIPTION:
//   - The single sparse linear-operator application used to age a delay queue.
//
// Implementation:
//   - Stage 1: validate non-nil, conformable shapes, no aliasing.
//   - Stage 2: for each row i of s, zero dst row i and accumulate
//     v * src[j,:] for every stored (j, v).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (s.Cols != src.Rows or dst shape),
//     ErrAliasing (dst shares storage with src).
//
// Determinism:
//   - Fixed row order and fixed in-row column order.
//
// Complexity:
//   - Time O(nnz*k + r*k), Space O(1) beyond dst.
func (s *Sparse) MulDenseInto(dst, src *Dense) error {
	if dst == nil || src == nil {
		return fmt.Errorf("%s: %w", ctxMulDense, ErrNilMatrix)
	}
	if s.c != src.r || dst.r != s.r || dst.c != src.c {
		return fmt.Errorf("%s: (%dx%d)·(%dx%d) into %dx%d: %w",
			ctxMulDense, s.r, s.c, src.r, src.c, dst.r, dst.c, ErrDimensionMismatch)
	}
	if sharesStorage(dst, src) {
		return fmt.Errorf("%s: %w", ctxMulDense, ErrAliasing)
	}

	k := src.c
	var i, p, j, dBase, sBase int
	var v float64
	for i = 0; i < s.r; i++ {
		dBase = i * k
		for j = 0; j < k; j++ {
			dst.data[dBase+j] = 0
		}
		for p = s.rowPtr[i]; p < s.rowPtr[i+1]; p++ {
			v = s.vals[p]
			sBase = s.colIdx[p] * k
			for j = 0; j < k; j++ {
				dst.data[dBase+j] += v * src.data[sBase+j]
			}
		}
	}

	return nil
}

// sharesStorage reports whether two Dense values are backed by the same array.
func sharesStorage(a, b *Dense) bool {
	return len(a.data) > 0 && len(b.data) > 0 && &a.data[0] == &b.data[0]
}
