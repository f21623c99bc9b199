// Package matrix offers the dense and sparse linear operators behind the
// population model.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix used both for operators (dispersal
//     kernels, carrying-capacity tables) and for age-structured compartments
//     (one row per age slot, one column per patch).
//   - Sparse, an immutable CSR operator; NewShift builds the cohort shift
//     operator for a delay queue of a given depth.
//   - Allocation-free kernels writing into caller-owned buffers (MulInto,
//     VecMulInto, Sparse.MulDenseInto).
//   - Validators (ValidateSquare, ValidateRowStochastic, ValidateNonNegative, ...)
//     returning package sentinels that callers match with errors.Is.
//
// Public accessors never panic on user input; they return ErrOutOfRange,
// ErrDimensionMismatch, ErrNaNInf and friends.
package matrix
