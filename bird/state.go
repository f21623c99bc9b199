package bird

import (
	"fmt"

	"github.com/dd-harp/birds-sim/cohort"
)

// state is one complete set of compartments. The model keeps two: the live
// one and a staging copy that Update mutates and swaps in on success.
type state struct {
	egg       *cohort.Queue
	fledgling *cohort.SIR[*cohort.Queue]
	juvenile  *cohort.SIR[*cohort.Pool]
	adult     *cohort.SIR[*cohort.Pool]
}

func newState(cfg Config) (*state, error) {
	egg, err := cohort.NewQueue(cfg.EggDelay, cfg.Patches)
	if err != nil {
		return nil, err
	}
	fl, err := cohort.NewQueueSIR(cfg.FledglingDelay, cfg.Patches)
	if err != nil {
		return nil, err
	}
	juv, err := cohort.NewPoolSIR(cfg.Patches)
	if err != nil {
		return nil, err
	}
	ad, err := cohort.NewPoolSIR(cfg.Patches)
	if err != nil {
		return nil, err
	}

	return &state{egg: egg, fledgling: fl, juvenile: juv, adult: ad}, nil
}

func (s *state) copyFrom(src *state) error {
	if err := s.egg.CopyFrom(src.egg); err != nil {
		return err
	}
	if err := s.fledgling.CopyFrom(src.fledgling); err != nil {
		return err
	}
	if err := s.juvenile.CopyFrom(src.juvenile); err != nil {
		return err
	}

	return s.adult.CopyFrom(src.adult)
}

func (s *state) checkNonNegative() error {
	if err := s.egg.CheckNonNegative(); err != nil {
		return fmt.Errorf("%s: %w", Egg, err)
	}
	if err := s.fledgling.CheckNonNegative(); err != nil {
		return fmt.Errorf("%s: %w", Fledgling, err)
	}
	if err := s.juvenile.CheckNonNegative(); err != nil {
		return fmt.Errorf("%s: %w", Juvenile, err)
	}
	if err := s.adult.CheckNonNegative(); err != nil {
		return fmt.Errorf("%s: %w", Adult, err)
	}

	return nil
}

// compartment returns the compartment for (stage, status). Eggs have no
// disease status and only answer to Susceptible.
func (s *state) compartment(stage Stage, st cohort.Status) (cohort.Compartment, error) {
	if st < cohort.Susceptible || st > cohort.Recovered {
		return nil, fmt.Errorf("%w: status %s", ErrConfiguration, st)
	}
	switch stage {
	case Egg:
		if st != cohort.Susceptible {
			return nil, fmt.Errorf("%w: eggs carry no disease status, got %s", ErrConfiguration, st)
		}
		return s.egg, nil
	case Fledgling:
		return s.fledgling.Part(st)
	case Juvenile:
		return s.juvenile.Part(st)
	case Adult:
		return s.adult.Part(st)
	}

	return nil, fmt.Errorf("%w: stage %s", ErrConfiguration, stage)
}

// queue returns the delay queue for (stage, status); only Egg and Fledgling
// have one.
func (s *state) queue(stage Stage, st cohort.Status) (*cohort.Queue, error) {
	c, err := s.compartment(stage, st)
	if err != nil {
		return nil, err
	}
	q, ok := c.(*cohort.Queue)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no age structure", ErrConfiguration, stage)
	}

	return q, nil
}

// fill writes every per-patch total into snap.
func (s *state) fill(snap *Snapshot) error {
	if err := s.egg.Totals(snap.Egg); err != nil {
		return err
	}
	for _, x := range []struct {
		dst SIRTotals
		sum func(a, b, c []float64) error
	}{
		{snap.Fledgling, s.fledgling.Totals},
		{snap.Juvenile, s.juvenile.Totals},
		{snap.Adult, s.adult.Totals},
	} {
		if err := x.sum(x.dst.S, x.dst.I, x.dst.R); err != nil {
			return err
		}
	}

	return nil
}
