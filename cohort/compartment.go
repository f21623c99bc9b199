package cohort

import (
	"fmt"
	"math"
)

// Compartment is the population of one life stage (or one disease status of
// a stage) across all patches. Two variants implement it: Queue keeps age
// structure (one row per age slot), Pool keeps only a per-patch total.
type Compartment interface {
	// Patches returns the number of patches the compartment spans.
	Patches() int

	// Totals writes the per-patch total into dst (len(dst) == Patches()).
	Totals(dst []float64) error

	// Sum returns the total mass over all patches (and all age slots).
	Sum() float64

	// Ingest adds inflow[j] to patch j: slot 0 for a Queue, the total for a Pool.
	Ingest(inflow []float64) error

	// Survive multiplies every entry by the per-step survival fraction.
	Survive(fraction float64)

	// CheckNonNegative reports the first negative or non-finite entry.
	CheckNonNegative() error
}

// Store is a Compartment that can exchange mass with, and be copied from,
// another compartment of the same variant. SIR is parameterised by it.
type Store[C any] interface {
	Compartment

	// MoveFraction moves frac[j] of every entry in patch j into dst.
	// Moved mass never exceeds the source entry; frac is clamped to [0,1].
	MoveFraction(dst C, frac []float64) error

	// CopyFrom overwrites the receiver with src (same shape).
	CopyFrom(src C) error
}

// SurvivalFraction converts a per-time mortality rate into the fraction
// surviving one step of length dt.
func SurvivalFraction(mu, dt float64) float64 { return math.Exp(-mu * dt) }

// TransitionFraction converts a per-time transition rate into the fraction
// leaving within one step of length dt (1 - exp(-rate·dt)).
func TransitionFraction(rate, dt float64) float64 { return -math.Expm1(-rate * dt) }

// moved returns the mass leaving an entry of value v for fraction f, clamped
// so the entry never goes below zero.
func moved(v, f float64) float64 {
	if v <= 0 || f <= 0 {
		return 0
	}
	if f >= 1 {
		return v
	}

	return v * f
}

// validateInflow checks a per-patch vector used as inflow or seed.
func validateInflow(inflow []float64, patches int) error {
	if len(inflow) != patches {
		return fmt.Errorf("%w: len %d, want %d", ErrPatchMismatch, len(inflow), patches)
	}
	for j, v := range inflow {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: patch %d = %g", ErrInvalidMass, j, v)
		}
	}

	return nil
}

func validMass(v float64) bool { return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v) }
