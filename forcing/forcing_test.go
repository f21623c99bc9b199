package forcing_test

import (
	"math"
	"testing"

	"github.com/dd-harp/birds-sim/forcing"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		p       forcing.Params
		wantErr bool
	}{
		{"zero", forcing.Params{}, false},
		{"typical", forcing.Params{KB: 2, LambdaB: 3, PhiB: 60}, false},
		{"negative phase", forcing.Params{KB: 2, LambdaB: 3, PhiB: -60}, false},
		{"negative kB", forcing.Params{KB: -1}, true},
		{"negative lambda", forcing.Params{KB: 1, LambdaB: -1}, true},
		{"nan", forcing.Params{KB: math.NaN()}, true},
		{"inf phase", forcing.Params{KB: 1, PhiB: math.Inf(1)}, true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if tc.wantErr {
				require.ErrorIs(t, err, forcing.ErrInvalidParams)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRateKnownValues(t *testing.T) {
	t.Parallel()

	// cos(0)=1 → exp(-λ); cos(π/2)=0 → full rate.
	p := forcing.Params{KB: 4, LambdaB: 2}
	require.InDelta(t, 2*math.Exp(-2), forcing.Rate(0, p), 1e-12)
	require.InDelta(t, 2.0, forcing.Rate(0.5, p), 1e-12)

	// Flat season.
	flat := forcing.Params{KB: 3}
	for _, tt := range []float64{0, 0.1, 0.37, 2.9} {
		require.InDelta(t, 1.5, forcing.Rate(tt, flat), 1e-12)
	}
}

func TestRateBoundedAndNonNegative(t *testing.T) {
	t.Parallel()

	p := forcing.Params{KB: 5, LambdaB: 7, PhiB: 123}
	for i := 0; i < 1000; i++ {
		r := forcing.Rate(float64(i)*0.0137, p)
		require.GreaterOrEqual(t, r, 0.0)
		require.LessOrEqual(t, r, 0.5*p.KB)
	}
}

// TestRatePeriodic checks rate(t) == rate(t + one year) for a daily step.
func TestRatePeriodic(t *testing.T) {
	t.Parallel()

	dt := 1 / forcing.DaysPerYear
	p := forcing.Params{KB: 2.5, LambdaB: 4, PhiB: 45}
	for step := 0; step < 2*int(forcing.DaysPerYear); step += 7 {
		tt := float64(step) * dt
		require.InDelta(t, forcing.Rate(tt, p), forcing.Rate(tt+forcing.DaysPerYear*dt, p), 1e-9)
		require.InDelta(t, forcing.Rate(tt, p), forcing.Rate(tt+forcing.Period, p), 1e-9)
	}
}

func TestSeries(t *testing.T) {
	t.Parallel()

	p := forcing.Params{KB: 1, LambdaB: 1}
	s, err := forcing.Series(0, 0.25, 5, p)
	require.NoError(t, err)
	require.Len(t, s, 5)
	require.InDelta(t, s[0], s[4], 1e-12)
	require.InDelta(t, forcing.Rate(0.5, p), s[2], 1e-12)

	_, err = forcing.Series(0, 0, 5, p)
	require.ErrorIs(t, err, forcing.ErrInvalidParams)
	_, err = forcing.Series(0, 1, -1, p)
	require.ErrorIs(t, err, forcing.ErrInvalidParams)
	_, err = forcing.Series(0, 1, 1, forcing.Params{KB: -1})
	require.ErrorIs(t, err, forcing.ErrInvalidParams)
}
