// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels and population operators minimal by delegating
//    shape/nil/range/stochasticity checks here.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Shape → Finite → Range).

package matrix

import (
	"fmt"
	"math"
)

// DefaultEpsilon is the tolerance used for row-sum checks unless a caller
// configures another one.
const DefaultEpsilon = 1e-9

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// A typed nil (*Dense)(nil) stored in the interface is also rejected.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	switch v := m.(type) {
	case nil:
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	case *Dense:
		if v == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	case *Sparse:
		if v == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
//
// Errors: ErrNilMatrix if nil, ErrNonSquare if not square.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquare", err)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", fmt.Errorf("%dx%d: %w", m.Rows(), m.Cols(), ErrNonSquare))
	}

	return nil
}

// ValidateShape checks that m is non-nil and exactly rows×cols.
// Complexity: O(1).
func ValidateShape(m Matrix, rows, cols int) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateShape", err)
	}
	if m.Rows() != rows || m.Cols() != cols {
		return validatorErrorf("ValidateShape",
			fmt.Errorf("got %dx%d, want %dx%d: %w", m.Rows(), m.Cols(), rows, cols, ErrDimensionMismatch))
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// Time: O(1). Space: O(1).
func ValidateVecLen(x []float64, n int) error {
	if x == nil && n > 0 {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", fmt.Errorf("len %d, want %d: %w", len(x), n, ErrDimensionMismatch))
	}

	return nil
}

// ValidateNonNegative checks every entry of a Dense is finite and ≥ 0.
// Used for carrying-capacity tables and queue compartments.
//
// Errors: ErrNilMatrix, ErrNaNInf, ErrNegative (first offending cell, row-major).
// Complexity: O(r*c).
func ValidateNonNegative(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateNonNegative", ErrNilMatrix)
	}
	var i, j, base int
	var v float64
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			v = m.data[base+j]
			if isNonFinite(v) {
				return validatorErrorf("ValidateNonNegative", fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
			}
			if v < 0 {
				return validatorErrorf("ValidateNonNegative", fmt.Errorf("(%d,%d)=%g: %w", i, j, v, ErrNegative))
			}
		}
	}

	return nil
}

// ValidateRowStochastic checks that m is square, every entry lies in [0,1]
// and every row sums to 1 within eps.
// MAIN DESCRIPTION:
//   - Gatekeeper for dispersal kernels: a row-stochastic kernel moves mass
//     between patches without creating or destroying it.
//
// Implementation:
//   - Stage 1: ValidateSquare.
//   - Stage 2: validate eps is finite and ≥ 0.
//   - Stage 3: scan rows; reject non-finite (ErrNaNInf), out-of-range entries and
//     row sums with |sum-1| > eps (ErrNotStochastic).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf, ErrNotStochastic.
//
// Complexity:
//   - Time O(n²), Space O(1).
func ValidateRowStochastic(m *Dense, eps float64) error {
	if m == nil {
		return validatorErrorf("ValidateRowStochastic", ErrNilMatrix)
	}
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateRowStochastic", err)
	}
	if isNonFinite(eps) || eps < 0 {
		return validatorErrorf("ValidateRowStochastic", fmt.Errorf("eps=%g: %w", eps, ErrNaNInf))
	}

	var i, j, base int
	var v, sum float64
	for i = 0; i < m.r; i++ {
		base = i * m.c
		sum = ZeroSum
		for j = 0; j < m.c; j++ {
			v = m.data[base+j]
			if isNonFinite(v) {
				return validatorErrorf("ValidateRowStochastic", fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
			}
			if v < 0 || v > 1+eps {
				return validatorErrorf("ValidateRowStochastic", fmt.Errorf("(%d,%d)=%g: %w", i, j, v, ErrNotStochastic))
			}
			sum += v
		}
		if math.Abs(sum-1) > eps {
			return validatorErrorf("ValidateRowStochastic", fmt.Errorf("row %d sums to %g: %w", i, sum, ErrNotStochastic))
		}
	}

	return nil
}
