// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by dense and sparse operators.
// This file intentionally contains ONLY the public Matrix interface and the
// triplet type used to assemble sparse operators. Errors live in errors.go.
package matrix

// Matrix represents a two-dimensional array of float64 values.
// Both *Dense and *Sparse implement it; Set is only meaningful on *Dense
// (sparse operators are immutable after assembly and return ErrOutOfRange
// for writes outside their pattern).
//
// Complexity notes: Rows/Cols are O(1); At is O(1) on Dense and
// O(log nnz(row)) on Sparse; Clone is O(storage).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	Clone() Matrix
}

// Triplet is one explicit (row, col, value) entry used to assemble a Sparse
// operator. Duplicate coordinates are summed during assembly.
type Triplet struct {
	Row, Col int     // zero-based coordinates
	Val      float64 // finite value
}
