package cohort_test

import (
	"testing"

	"github.com/dd-harp/birds-sim/cohort"
	"github.com/stretchr/testify/require"
)

func TestNewQueueRejectsBadShape(t *testing.T) {
	t.Parallel()

	_, err := cohort.NewQueue(0, 2)
	require.ErrorIs(t, err, cohort.ErrBadDepth)
	_, err = cohort.NewQueue(2, 0)
	require.ErrorIs(t, err, cohort.ErrBadPatches)
}

// TestPulseMaturesAfterDepthAdvances feeds one pulse into slot 0 and checks it
// leaves exactly on the depth-th advance, and nothing leaves before.
func TestPulseMaturesAfterDepthAdvances(t *testing.T) {
	t.Parallel()

	for _, depth := range []int{1, 2, 3, 7, 20} {
		q, err := cohort.NewQueue(depth, 1)
		require.NoError(t, err)
		shift, err := cohort.NewShiftOperator(depth)
		require.NoError(t, err)

		const pulse = 42.5
		require.NoError(t, q.Ingest([]float64{pulse}))

		matured := make([]float64, 1)
		for k := 1; k <= depth+2; k++ {
			require.NoError(t, shift.Advance(q, matured))
			if k == depth {
				require.Equal(t, pulse, matured[0], "depth %d advance %d", depth, k)
			} else {
				require.Zero(t, matured[0], "depth %d advance %d", depth, k)
			}
		}
		require.Zero(t, q.Sum())
	}
}

// TestTwoPatchDelayScenario: 2 patches, depth 3, 100 individuals enter patch 0
// at step 0 and leave at step 3; patch 1 stays empty.
func TestTwoPatchDelayScenario(t *testing.T) {
	t.Parallel()

	q, err := cohort.NewQueue(3, 2)
	require.NoError(t, err)
	shift, err := cohort.NewShiftOperator(3)
	require.NoError(t, err)

	matured := make([]float64, 2)
	for step := 0; step <= 5; step++ {
		require.NoError(t, shift.Advance(q, matured))
		inflow := []float64{0, 0}
		if step == 0 {
			inflow[0] = 100
		}
		require.NoError(t, q.Ingest(inflow))

		if step == 3 {
			require.Equal(t, []float64{100, 0}, matured, "step %d", step)
		} else {
			require.Equal(t, []float64{0, 0}, matured, "step %d", step)
		}
	}
}

func TestQueueSlotsAndTotals(t *testing.T) {
	t.Parallel()

	q, err := cohort.NewQueue(3, 2)
	require.NoError(t, err)
	require.NoError(t, q.Set(0, 0, 1))
	require.NoError(t, q.Set(2, 1, 4))
	require.ErrorIs(t, q.Set(3, 0, 1), cohort.ErrSlotOutOfRange)
	require.ErrorIs(t, q.Set(0, 0, -1), cohort.ErrInvalidMass)

	totals := make([]float64, 2)
	require.NoError(t, q.Totals(totals))
	require.Equal(t, []float64{1, 4}, totals)
	require.ErrorIs(t, q.Totals(make([]float64, 1)), cohort.ErrPatchMismatch)

	slot, err := q.Slot(2)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 4}, slot)
	slot[1] = 99 // copy: must not write through
	require.Equal(t, 5.0, q.Sum())

	_, err = q.Slot(-1)
	require.ErrorIs(t, err, cohort.ErrSlotOutOfRange)

	q.Survive(0.5)
	require.Equal(t, 2.5, q.Sum())
	require.NoError(t, q.CheckNonNegative())
}

func TestQueueIngestValidates(t *testing.T) {
	t.Parallel()

	q, err := cohort.NewQueue(2, 2)
	require.NoError(t, err)
	require.ErrorIs(t, q.Ingest([]float64{1}), cohort.ErrPatchMismatch)
	require.ErrorIs(t, q.Ingest([]float64{1, -1}), cohort.ErrInvalidMass)
	require.Zero(t, q.Sum())
}

func TestQueueMoveFractionKeepsAge(t *testing.T) {
	t.Parallel()

	src, _ := cohort.NewQueue(2, 2)
	dst, _ := cohort.NewQueue(2, 2)
	require.NoError(t, src.Set(0, 0, 10))
	require.NoError(t, src.Set(1, 1, 8))

	require.NoError(t, src.MoveFraction(dst, []float64{0.5, 2}))

	s0, _ := src.Slot(0)
	s1, _ := src.Slot(1)
	d0, _ := dst.Slot(0)
	d1, _ := dst.Slot(1)
	require.Equal(t, []float64{5, 0}, s0)
	require.Equal(t, []float64{0, 0}, s1) // fraction clamped to 1
	require.Equal(t, []float64{5, 0}, d0)
	require.Equal(t, []float64{0, 8}, d1)

	other, _ := cohort.NewQueue(3, 2)
	require.ErrorIs(t, src.MoveFraction(other, []float64{0, 0}), cohort.ErrPatchMismatch)
	require.ErrorIs(t, src.CopyFrom(other), cohort.ErrPatchMismatch)
	require.NoError(t, dst.CopyFrom(src))
	require.Equal(t, 5.0, dst.Sum())
}
