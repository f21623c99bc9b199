// SPDX-License-Identifier: MIT
// Package matrix provides the dense kernels used by population operators:
// matrix×matrix and row-vector×matrix products into caller-owned buffers,
// plus row sums. All functions perform strict fail-fast validation and
// return clear errors on dimension mismatches.
//
// Purpose:
//   - Keep the hot path allocation-free: every kernel writes into dst.
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - All kernels use central validators and wrap via matrixErrorf at the facade.

package matrix

import (
	"fmt"
)

// ZeroSum is the initial value for accumulations.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMulInto    = "MulInto"
	opVecMulInto = "VecMulInto"
	opRowSums    = "RowSums"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MulInto computes dst = a · b for Dense operands.
// MAIN DESCRIPTION:
//   - Row-major i→k→j product that skips zero a[i,k]; with a a depth×p queue
//     and b a p×p dispersal kernel this redistributes every cohort at once.
//
// Implementation:
//   - Stage 1: validate non-nil, a.Cols == b.Rows, dst shape, no aliasing.
//   - Stage 2: zero dst, then accumulate av * b[k,:] into dst[i,:].
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAliasing.
//
// Determinism:
//   - Fixed loop orders (i→k→j).
//
// Complexity:
//   - Time O(r*n*c), Space O(1) beyond dst. Skipping zero a[i,k] pays off for
//     queues whose young slots are still empty.
//
// AI-Hints:
//   - Keep dst as a reusable scratch buffer; swap it with the operand afterwards.
func MulInto(dst, a, b *Dense) error {
	if dst == nil || a == nil || b == nil {
		return matrixErrorf(opMulInto, ErrNilMatrix)
	}
	if a.c != b.r || dst.r != a.r || dst.c != b.c {
		return matrixErrorf(opMulInto, fmt.Errorf("(%dx%d)·(%dx%d) into %dx%d: %w",
			a.r, a.c, b.r, b.c, dst.r, dst.c, ErrDimensionMismatch))
	}
	if sharesStorage(dst, a) || sharesStorage(dst, b) {
		return matrixErrorf(opMulInto, ErrAliasing)
	}

	var (
		i, k, j                            int
		av                                 float64
		rowOffsetA, rowOffsetB, rowOffsetR int
	)
	dst.Zero()
	for i = 0; i < a.r; i++ {
		rowOffsetA = i * a.c
		rowOffsetR = i * b.c
		for k = 0; k < a.c; k++ {
			av = a.data[rowOffsetA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowOffsetB = k * b.c
			for j = 0; j < b.c; j++ {
				dst.data[rowOffsetR+j] += av * b.data[rowOffsetB+j]
			}
		}
	}

	return nil
}

// VecMulInto computes the row-vector product dst = xᵀ · m, i.e.
// dst[j] = Σ_i x[i]·m[i,j].
//
// Contract: m non-nil; len(x) == m.Rows(); len(dst) == m.Cols(); dst and x
// must not overlap.
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(1).
func VecMulInto(dst, x []float64, m *Dense) error {
	if m == nil {
		return matrixErrorf(opVecMulInto, ErrNilMatrix)
	}
	if err := ValidateVecLen(x, m.r); err != nil {
		return matrixErrorf(opVecMulInto, err)
	}
	if err := ValidateVecLen(dst, m.c); err != nil {
		return matrixErrorf(opVecMulInto, err)
	}
	if len(x) > 0 && len(dst) > 0 && &x[0] == &dst[0] {
		return matrixErrorf(opVecMulInto, ErrAliasing)
	}

	var i, j, base int
	var xv float64
	for j = range dst {
		dst[j] = ZeroSum
	}
	for i = 0; i < m.r; i++ {
		xv = x[i]
		if xv == 0 {
			continue
		}
		base = i * m.c
		for j = 0; j < m.c; j++ {
			dst[j] += xv * m.data[base+j]
		}
	}

	return nil
}

// RowSums returns the sum of every row of m.
// Complexity: Time O(r*c), Space O(r).
func RowSums(m *Dense) ([]float64, error) {
	if m == nil {
		return nil, matrixErrorf(opRowSums, ErrNilMatrix)
	}
	out := make([]float64, m.r)
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			out[i] += m.data[base+j]
		}
	}

	return out, nil
}
