package matrix_test

import (
	"testing"

	"github.com/dd-harp/birds-sim/matrix"
	"github.com/stretchr/testify/require"
)

// TestMulInto covers the dense product and its guards.
func TestMulInto(t *testing.T) {
	t.Parallel()

	a, _ := matrix.NewDenseFrom([][]float64{{1, 2}, {0, 3}})
	b, _ := matrix.NewDenseFrom([][]float64{{0.5, 0.5}, {1, 0}})
	dst, _ := matrix.NewDense(2, 2)

	require.NoError(t, matrix.MulInto(dst, a, b))
	want, _ := matrix.NewDenseFrom([][]float64{{2.5, 0.5}, {3, 0}})
	require.Equal(t, want.String(), dst.String())

	// dst is zeroed first: a second product must not accumulate.
	require.NoError(t, matrix.MulInto(dst, a, b))
	require.Equal(t, want.String(), dst.String())

	require.ErrorIs(t, matrix.MulInto(a, a, b), matrix.ErrAliasing)
	require.ErrorIs(t, matrix.MulInto(dst, nil, b), matrix.ErrNilMatrix)

	c, _ := matrix.NewDense(3, 2)
	require.ErrorIs(t, matrix.MulInto(dst, a, c), matrix.ErrDimensionMismatch)
}

// TestVecMulInto covers the row-vector product used for per-patch vectors.
func TestVecMulInto(t *testing.T) {
	t.Parallel()

	m, _ := matrix.NewDenseFrom([][]float64{{0.25, 0.75}, {1, 0}})
	dst := make([]float64, 2)

	require.NoError(t, matrix.VecMulInto(dst, []float64{4, 2}, m))
	require.Equal(t, []float64{3, 3}, dst)

	x := []float64{1, 1}
	require.ErrorIs(t, matrix.VecMulInto(x, x, m), matrix.ErrAliasing)
	require.ErrorIs(t, matrix.VecMulInto(dst, []float64{1}, m), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.VecMulInto(make([]float64, 3), x, m), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.VecMulInto(dst, x, nil), matrix.ErrNilMatrix)
}

// TestRowSums verifies row totals.
func TestRowSums(t *testing.T) {
	m, _ := matrix.NewDenseFrom([][]float64{{0.2, 0.8}, {0.5, 0.25}})
	sums, err := matrix.RowSums(m)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{1, 0.75}, sums, 1e-12)

	_, err = matrix.RowSums(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
