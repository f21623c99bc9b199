package cohort_test

import (
	"math"
	"testing"

	"github.com/dd-harp/birds-sim/cohort"
	"github.com/stretchr/testify/require"
)

func TestPoolBasics(t *testing.T) {
	t.Parallel()

	_, err := cohort.NewPool(0)
	require.ErrorIs(t, err, cohort.ErrBadPatches)

	p, err := cohort.NewPool(3)
	require.NoError(t, err)
	require.NoError(t, p.Ingest([]float64{1, 2, 3}))
	require.NoError(t, p.Set(2, 10))
	require.ErrorIs(t, p.Set(3, 1), cohort.ErrSlotOutOfRange)
	require.ErrorIs(t, p.Set(0, math.Inf(1)), cohort.ErrInvalidMass)
	require.Equal(t, 13.0, p.Sum())

	out := make([]float64, 3)
	require.NoError(t, p.Take(out, 0.5))
	require.Equal(t, []float64{0.5, 1, 5}, out)
	require.Equal(t, []float64{0.5, 1, 5}, p.Values())

	p.Survive(0)
	require.Zero(t, p.Sum())
	require.NoError(t, p.CheckNonNegative())

	p.Values()[1] = -1
	require.ErrorIs(t, p.CheckNonNegative(), cohort.ErrInvalidMass)
}

func TestTransitionFractions(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1.0, cohort.SurvivalFraction(0, 1))
	require.InDelta(t, math.Exp(-0.2), cohort.SurvivalFraction(0.1, 2), 1e-15)
	require.Zero(t, cohort.TransitionFraction(0, 1))
	require.InDelta(t, 1-math.Exp(-0.3), cohort.TransitionFraction(0.3, 1), 1e-15)
}

func TestSIRInfectRecoverConserves(t *testing.T) {
	t.Parallel()

	x, err := cohort.NewPoolSIR(2)
	require.NoError(t, err)
	require.NoError(t, x.S.Ingest([]float64{100, 50}))
	require.NoError(t, x.I.Ingest([]float64{10, 0}))

	before := x.Sum()
	require.NoError(t, x.Infect([]float64{math.Log(2), 0}, 1)) // half of S in patch 0
	require.InDelta(t, 50, x.S.Values()[0], 1e-9)
	require.InDelta(t, 60, x.I.Values()[0], 1e-9)
	require.Equal(t, 50.0, x.S.Values()[1])

	require.NoError(t, x.Recover(math.Log(4), 1)) // three quarters of I
	require.InDelta(t, 15, x.I.Values()[0], 1e-9)
	require.InDelta(t, 45, x.R.Values()[0], 1e-9)
	require.InDelta(t, before, x.Sum(), 1e-9)

	// Enormous hazards move everything but never more than the source.
	require.NoError(t, x.Infect([]float64{1e300, 1e300}, 1))
	require.Zero(t, x.S.Sum())
	require.NoError(t, x.CheckNonNegative())
	require.InDelta(t, before, x.Sum(), 1e-9)

	require.ErrorIs(t, x.Infect([]float64{1}, 1), cohort.ErrPatchMismatch)
	require.ErrorIs(t, x.Infect([]float64{-1, 0}, 1), cohort.ErrInvalidMass)
	require.ErrorIs(t, x.Recover(math.NaN(), 1), cohort.ErrInvalidMass)
}

func TestQueueSIRTransitionsStayInSlot(t *testing.T) {
	t.Parallel()

	x, err := cohort.NewQueueSIR(3, 1)
	require.NoError(t, err)
	require.NoError(t, x.S.Set(1, 0, 8))

	require.NoError(t, x.Infect([]float64{math.Log(2)}, 1))
	s1, _ := x.S.Slot(1)
	i1, _ := x.I.Slot(1)
	i0, _ := x.I.Slot(0)
	require.InDelta(t, 4, s1[0], 1e-12)
	require.InDelta(t, 4, i1[0], 1e-12)
	require.Zero(t, i0[0])
}

func TestSIRPartsAndPrevalence(t *testing.T) {
	t.Parallel()

	x, err := cohort.NewPoolSIR(2)
	require.NoError(t, err)
	require.NoError(t, x.S.Ingest([]float64{3, 0}))
	require.NoError(t, x.I.Ingest([]float64{1, 0}))

	part, err := x.Part(cohort.Infected)
	require.NoError(t, err)
	require.Same(t, x.I, part)
	_, err = x.Part(cohort.Status(9))
	require.ErrorIs(t, err, cohort.ErrSlotOutOfRange)

	prev := make([]float64, 2)
	require.NoError(t, x.Prevalence(prev))
	require.Equal(t, []float64{0.25, 0}, prev)

	y, _ := cohort.NewPoolSIR(2)
	require.NoError(t, y.CopyFrom(x))
	require.Equal(t, x.Sum(), y.Sum())

	require.Equal(t, "S", cohort.Susceptible.String())
	require.Equal(t, "R", cohort.Recovered.String())

	s, _ := cohort.NewPool(2)
	i, _ := cohort.NewPool(3)
	_, err = cohort.NewSIR(s, i, s)
	require.ErrorIs(t, err, cohort.ErrPatchMismatch)
}
