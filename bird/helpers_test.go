package bird_test

import (
	"testing"

	"github.com/dd-harp/birds-sim/bird"
	"github.com/dd-harp/birds-sim/matrix"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distmv"
)

func identity(t *testing.T, p int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewIdentity(p)
	require.NoError(t, err)

	return m
}

func dense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

// capacity returns a p×horizon table with per-patch constants.
func capacity(t *testing.T, horizon int, perPatch ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(len(perPatch), horizon)
	require.NoError(t, err)
	for j, k := range perPatch {
		for n := 0; n < horizon; n++ {
			require.NoError(t, m.Set(j, n, k))
		}
	}

	return m
}

// randomKernel draws each row from a flat Dirichlet.
func randomKernel(t *testing.T, p int) *matrix.Dense {
	t.Helper()
	alpha := make([]float64, p)
	for i := range alpha {
		alpha[i] = 1
	}
	dir := distmv.NewDirichlet(alpha, nil)
	rows := make([][]float64, p)
	for i := range rows {
		rows[i] = dir.Rand(nil)
	}

	return dense(t, rows)
}

// closedConfig is a model with identity kernels, no mortality and a generous
// horizon.
func closedConfig(t *testing.T, p int) bird.Config {
	t.Helper()
	k := make([]float64, p)
	for j := range k {
		k[j] = 1000
	}

	return bird.Config{
		Patches:        p,
		Dt:             1.0 / 365,
		Psi:            identity(t, p),
		Theta:          identity(t, p),
		EggDelay:       1,
		FledglingDelay: 3,
		K:              capacity(t, 400, k...),
	}
}

func mustModel(t *testing.T, cfg bird.Config, opts ...bird.Option) *bird.Model {
	t.Helper()
	m, err := bird.New(cfg, opts...)
	require.NoError(t, err)

	return m
}
