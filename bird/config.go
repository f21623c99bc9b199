package bird

import (
	"errors"
	"fmt"
	"math"

	"github.com/dd-harp/birds-sim/forcing"
	"github.com/dd-harp/birds-sim/matrix"
)

// Mortality holds the four per-time mortality rates. The per-step survival
// fraction of a stage is exp(-mu·dt).
type Mortality struct {
	Egg, Fledgling, Juvenile, Adult float64
}

// Of returns the rate for one stage.
func (m Mortality) Of(s Stage) float64 {
	switch s {
	case Egg:
		return m.Egg
	case Fledgling:
		return m.Fledgling
	case Juvenile:
		return m.Juvenile
	default:
		return m.Adult
	}
}

// Validate requires every rate to be finite and non-negative.
func (m Mortality) Validate() error {
	for _, s := range Stages {
		if mu := m.Of(s); !finiteNonNegative(mu) {
			return fmt.Errorf("%w: mortality %s = %g", ErrConfiguration, s, mu)
		}
	}

	return nil
}

// Config is everything fixed at construction.
type Config struct {
	// Patches is the number of spatial units p (≥ 1).
	Patches int

	// Dt is the step length, in the time unit of every rate. Forcing reads
	// time as step·Dt and has a period of forcing.Period, so Dt is in years
	// for the seasonal cycle to be annual.
	Dt float64

	// Psi is the p×p mating dispersal kernel applied to new eggs.
	Psi *matrix.Dense

	// Theta is the p×p home-range kernel applied to maturing fledglings,
	// maturing juveniles and adults.
	Theta *matrix.Dense

	Mortality Mortality

	// EggDelay and FledglingDelay are the delay-queue depths in steps.
	EggDelay, FledglingDelay int

	// K is the p×horizon carrying capacity; column n is used at step n.
	K *matrix.Dense

	// MaturationRate moves juveniles into the adult stage; the per-step
	// fraction is 1-exp(-MaturationRate·Dt). Zero keeps juveniles forever.
	MaturationRate float64
}

// Horizon returns the number of steps the carrying capacity covers.
func (c Config) Horizon() int {
	if c.K == nil {
		return 0
	}

	return c.K.Cols()
}

// validate checks every field. Dispersal kernels whose rows are off by more
// than eps are numeric invariant violations; any other defect is a
// configuration error.
func (c Config) validate(eps float64) error {
	if c.Patches < 1 {
		return fmt.Errorf("%w: patches = %d", ErrConfiguration, c.Patches)
	}
	if !finiteNonNegative(c.Dt) || c.Dt == 0 {
		return fmt.Errorf("%w: dt = %g", ErrConfiguration, c.Dt)
	}
	if c.EggDelay < 1 || c.FledglingDelay < 1 {
		return fmt.Errorf("%w: delays egg=%d fledgling=%d", ErrConfiguration, c.EggDelay, c.FledglingDelay)
	}
	if err := c.Mortality.Validate(); err != nil {
		return err
	}
	if !finiteNonNegative(c.MaturationRate) {
		return fmt.Errorf("%w: maturation rate = %g", ErrConfiguration, c.MaturationRate)
	}
	for _, k := range []struct {
		name string
		m    *matrix.Dense
	}{{"psi", c.Psi}, {"theta", c.Theta}} {
		if err := validateKernel(k.m, c.Patches, eps); err != nil {
			return fmt.Errorf("%s: %w", k.name, err)
		}
	}
	if err := matrix.ValidateNotNil(c.K); err != nil {
		return kindErrorf(ErrConfiguration, "K", err)
	}
	if c.K.Rows() != c.Patches {
		return kindErrorf(ErrConfiguration, "K", fmt.Errorf("%d rows for %d patches: %w", c.K.Rows(), c.Patches, matrix.ErrDimensionMismatch))
	}
	if err := matrix.ValidateNonNegative(c.K); err != nil {
		return kindErrorf(ErrConfiguration, "K", err)
	}

	return nil
}

func validateKernel(m *matrix.Dense, p int, eps float64) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return kindErrorf(ErrConfiguration, "shape", err)
	}
	if err := matrix.ValidateShape(m, p, p); err != nil {
		return kindErrorf(ErrConfiguration, "shape", err)
	}
	if err := matrix.ValidateRowStochastic(m, eps); err != nil {
		if errors.Is(err, matrix.ErrNotStochastic) {
			return kindErrorf(ErrNumericInvariant, "rows", err)
		}
		return kindErrorf(ErrConfiguration, "entries", err)
	}

	return nil
}

// StepParams are the per-step drivers passed to Update.
type StepParams struct {
	// Forcing parameterises the seasonal oviposition rate.
	Forcing forcing.Params

	// Infection produces the force of infection; nil disables S→I.
	Infection InfectionRule

	// Recovery is the I→R rate (per unit time), applied to every split stage.
	Recovery float64

	// Mortality, when non-nil, replaces Config.Mortality for this step only.
	Mortality *Mortality
}

func (p StepParams) validate() error {
	if err := p.Forcing.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if !finiteNonNegative(p.Recovery) {
		return fmt.Errorf("%w: recovery = %g", ErrConfiguration, p.Recovery)
	}
	if p.Mortality != nil {
		return p.Mortality.Validate()
	}

	return nil
}

func finiteNonNegative(v float64) bool { return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v) }
