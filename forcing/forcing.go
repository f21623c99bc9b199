package forcing

import (
	"errors"
	"fmt"
	"math"
)

// Seasonal oviposition forcing
//
// Description:
//
//	Rate maps continuous time t to the per-capita oviposition rate
//
//	  rate(t) = 0.5 · KB · exp(-LambdaB · cos(π·t + PhiB/365)²)
//
//	The factor 0.5 counts females only. cos² has period 1 in t, so one unit
//	of t is one breeding year: express t (and therefore the model step dt)
//	in years, e.g. dt = 1/DaysPerYear for a daily step.
//
//	LambdaB sharpens the breeding season: 0 gives a flat rate of KB/2,
//	large values concentrate oviposition around the peaks of the cycle.
//	PhiB shifts the season and is given in days.
//
// Complexity:
//
//	O(1) per evaluation; Series is O(n).
//
// Errors:
//   - ErrInvalidParams: a parameter is NaN/±Inf, KB < 0 or LambdaB < 0.
var (
	// ErrInvalidParams indicates a forcing parameter outside its domain.
	ErrInvalidParams = errors.New("forcing: invalid parameters")
)

const (
	// DaysPerYear converts the day-valued phase offset into cycle units.
	DaysPerYear = 365.0

	// Period is the period of Rate in units of t.
	Period = 1.0
)

// Params bundles the three forcing configuration scalars.
type Params struct {
	KB      float64 `yaml:"kB"`      // baseline oviposition rate (per capita per unit time), ≥ 0
	LambdaB float64 `yaml:"lambdaB"` // decay sharpness, ≥ 0
	PhiB    float64 `yaml:"phiB"`    // phase offset in days
}

// Validate checks Params once so Rate can stay branch-free in the step loop.
func (p Params) Validate() error {
	switch {
	case nonFinite(p.KB) || nonFinite(p.LambdaB) || nonFinite(p.PhiB):
		return fmt.Errorf("%w: non-finite value in %+v", ErrInvalidParams, p)
	case p.KB < 0:
		return fmt.Errorf("%w: kB=%g must be >= 0", ErrInvalidParams, p.KB)
	case p.LambdaB < 0:
		return fmt.Errorf("%w: lambdaB=%g must be >= 0", ErrInvalidParams, p.LambdaB)
	}

	return nil
}

// Rate returns the oviposition rate at time t. The result is finite and
// non-negative for validated Params and finite t.
//
// Example:
//
//	p := forcing.Params{KB: 2, LambdaB: 3, PhiB: 30}
//	r := forcing.Rate(step*dt, p)
func Rate(t float64, p Params) float64 {
	c := math.Cos(math.Pi*t + p.PhiB/DaysPerYear)

	return 0.5 * p.KB * math.Exp(-p.LambdaB*c*c)
}

// Series evaluates Rate on the grid t0, t0+dt, ..., t0+(n-1)·dt.
// Returns ErrInvalidParams for invalid Params, n < 0 or non-finite/non-positive dt.
func Series(t0, dt float64, n int, p Params) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if n < 0 || nonFinite(t0) || nonFinite(dt) || dt <= 0 {
		return nil, fmt.Errorf("%w: grid t0=%g dt=%g n=%d", ErrInvalidParams, t0, dt, n)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = Rate(t0+float64(i)*dt, p)
	}

	return out, nil
}

func nonFinite(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
