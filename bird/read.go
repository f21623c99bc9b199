package bird

import (
	"fmt"

	"github.com/dd-harp/birds-sim/cohort"
)

// Step returns the number of completed updates.
func (m *Model) Step() int { return m.step }

// Time returns step·dt, the time at which the next update evaluates forcing.
func (m *Model) Time() float64 { return float64(m.step) * m.cfg.Dt }

// Patches returns the number of patches.
func (m *Model) Patches() int { return m.cfg.Patches }

// Horizon returns the number of steps covered by the carrying capacity;
// Update fails with ErrBounds once Step reaches it.
func (m *Model) Horizon() int { return m.cfg.Horizon() }

// Totals returns a fresh per-patch total for one stage and status. Eggs carry
// no disease status and are queried with cohort.Susceptible.
func (m *Model) Totals(stage Stage, status cohort.Status) ([]float64, error) {
	c, err := m.live.compartment(stage, status)
	if err != nil {
		return nil, fmt.Errorf("bird: Totals: %w", err)
	}
	out := make([]float64, m.cfg.Patches)
	if err = c.Totals(out); err != nil {
		return nil, fmt.Errorf("bird: Totals: %w", err)
	}

	return out, nil
}

// Snapshot returns a deep copy of every per-patch total.
func (m *Model) Snapshot() Snapshot {
	snap := newSnapshot(m.cfg.Patches)
	_ = m.live.fill(&snap) // shapes match by construction
	snap.Step, snap.Time = m.step, m.Time()

	return snap
}

// Flows returns the inter-stage transfers of the last completed update.
func (m *Model) Flows() Flows { return m.flows.clone() }

// Population returns the total over every stage, status and patch.
func (m *Model) Population() float64 {
	return m.live.egg.Sum() + m.live.fledgling.Sum() + m.live.juvenile.Sum() + m.live.adult.Sum()
}

// Seed sets the initial value of one patch. For Juvenile and Adult it
// overwrites the aggregate; for Egg and Fledgling it overwrites slot 0 of the
// queue (use SeedQueue for older slots).
//
// Errors: ErrConfiguration for an unknown stage/status, a patch out of range
// or a negative/non-finite value. The model is unchanged on error.
func (m *Model) Seed(stage Stage, status cohort.Status, patch int, value float64) error {
	c, err := m.live.compartment(stage, status)
	if err != nil {
		return fmt.Errorf("bird: Seed: %w", err)
	}
	switch v := c.(type) {
	case *cohort.Pool:
		err = v.Set(patch, value)
	case *cohort.Queue:
		err = v.Set(0, patch, value)
	}
	if err != nil {
		return fmt.Errorf("bird: Seed: %w", kindErrorf(ErrConfiguration, stage.String(), err))
	}

	return nil
}

// SeedQueue sets one age slot of the Egg or Fledgling queue.
func (m *Model) SeedQueue(stage Stage, status cohort.Status, slot, patch int, value float64) error {
	q, err := m.live.queue(stage, status)
	if err != nil {
		return fmt.Errorf("bird: SeedQueue: %w", err)
	}
	if err = q.Set(slot, patch, value); err != nil {
		return fmt.Errorf("bird: SeedQueue: %w", kindErrorf(ErrConfiguration, stage.String(), err))
	}

	return nil
}
