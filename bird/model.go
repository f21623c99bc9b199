package bird

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/dd-harp/birds-sim/cohort"
	"github.com/dd-harp/birds-sim/dispersal"
	"github.com/dd-harp/birds-sim/forcing"
	"github.com/dd-harp/birds-sim/matrix"
	"gonum.org/v1/gonum/floats"
)

// Model is a bird metapopulation: Egg and Fledgling delay queues, Juvenile
// and Adult aggregates, Fledgling/Juvenile/Adult split by S/I/R, connected by
// the psi and theta dispersal kernels.
//
// A Model is not safe for concurrent use. Its dispersal and shift operators
// are read-only and may be shared.
type Model struct {
	cfg  Config
	opts options
	log  *slog.Logger

	psi, theta        *dispersal.Operator
	eggShift, flShift *cohort.ShiftOperator
	live, staged      *state
	step              int
	snap              Snapshot
	flows, next       Flows // committed, in progress

	// per-step scratch, sized once
	hazard   [3][]float64 // Fledgling, Juvenile, Adult
	local    []float64
	moved    []float64
	outflow  [3][]float64
	maturing [3][]float64
}

// New validates cfg and allocates every compartment and operator.
//
// Errors: ErrConfiguration for a malformed parameter or a shape mismatch,
// ErrNumericInvariant for a dispersal kernel whose rows do not sum to one
// within the configured epsilon. The underlying matrix sentinels stay
// matchable with errors.Is.
func New(cfg Config, opts ...Option) (*Model, error) {
	o := gatherOptions(opts...)
	if err := cfg.validate(o.eps); err != nil {
		return nil, fmt.Errorf("bird: New: %w", err)
	}
	psi, err := dispersal.New(cfg.Psi, o.eps)
	if err != nil {
		return nil, fmt.Errorf("bird: New: %w", kindErrorf(ErrNumericInvariant, "psi", err))
	}
	theta, err := dispersal.New(cfg.Theta, o.eps)
	if err != nil {
		return nil, fmt.Errorf("bird: New: %w", kindErrorf(ErrNumericInvariant, "theta", err))
	}
	// Equal depths share one operator.
	shifts := cohort.NewShifts()
	eggShift, err := shifts.For(cfg.EggDelay)
	if err != nil {
		return nil, fmt.Errorf("bird: New: %w", kindErrorf(ErrConfiguration, "egg delay", err))
	}
	flShift, err := shifts.For(cfg.FledglingDelay)
	if err != nil {
		return nil, fmt.Errorf("bird: New: %w", kindErrorf(ErrConfiguration, "fledgling delay", err))
	}
	live, err := newState(cfg)
	if err != nil {
		return nil, fmt.Errorf("bird: New: %w", kindErrorf(ErrConfiguration, "state", err))
	}
	staged, err := newState(cfg)
	if err != nil {
		return nil, fmt.Errorf("bird: New: %w", kindErrorf(ErrConfiguration, "state", err))
	}

	cfg.K = cfg.K.Clone().(*matrix.Dense)
	cfg.Psi, cfg.Theta = nil, nil // owned by the operators now

	p := cfg.Patches
	m := &Model{
		cfg:      cfg,
		opts:     o,
		log:      o.logger,
		psi:      psi,
		theta:    theta,
		eggShift: eggShift,
		flShift:  flShift,
		live:     live,
		staged:   staged,
		snap:     newSnapshot(p),
		flows:    newFlows(p),
		next:     newFlows(p),
		local:    make([]float64, p),
		moved:    make([]float64, p),
	}
	for k := range m.hazard {
		m.hazard[k] = make([]float64, p)
		m.outflow[k] = make([]float64, p)
		m.maturing[k] = make([]float64, p)
	}
	m.log.Info("bird: model created",
		"patches", p, "dt", cfg.Dt, "horizon", cfg.Horizon(),
		"eggDelay", cfg.EggDelay, "fledglingDelay", cfg.FledglingDelay,
		"density", o.density.String(), "shiftOperators", shifts.Len())

	return m, nil
}

// Update advances the model by one step.
//
// Pipeline (fixed order):
//   - Stage 1: validate p and the carrying-capacity column for the current step.
//   - Stage 2: snapshot the live state and evaluate the force of infection.
//   - Stage 3: recruitment. rate = forcing.Rate(step·dt); eggs per patch are
//     rate·dt·breeders·density(N, K[:,step]), then dispersed by psi.
//   - Stage 4: eggs survive and age; hatchlings leave the queue; new eggs
//     enter slot 0.
//   - Stage 5: fledglings survive, get infected and recover inside their
//     queues, then age; hatchlings enter Fledgling-S slot 0.
//   - Stage 6: juveniles survive and transition; the maturing share leaves;
//     fledged birds, dispersed by theta, arrive with their status.
//   - Stage 7: adults survive, transition and disperse by theta; maturing
//     juveniles, dispersed by theta, arrive with their status.
//   - Stage 8: check non-negativity, swap the staged state in, step++.
//
// Every stage works on a staged copy, so a failing call leaves the model as
// it was. Errors are *StepError wrapping ErrConfiguration, ErrBounds or
// ErrNumericInvariant.
func (m *Model) Update(p StepParams) error {
	if err := p.validate(); err != nil {
		return &StepError{Step: m.step, Op: "params", Err: err}
	}
	if m.step >= m.cfg.K.Cols() {
		return stepError(m.step, "carrying capacity", ErrBounds,
			fmt.Errorf("no column for step %d, horizon %d: %w", m.step, m.cfg.K.Cols(), matrix.ErrOutOfRange))
	}
	mort := m.cfg.Mortality
	if p.Mortality != nil {
		mort = *p.Mortality
	}
	dt := m.cfg.Dt

	if err := m.live.fill(&m.snap); err != nil {
		return stepError(m.step, "snapshot", ErrNumericInvariant, err)
	}
	m.snap.Step, m.snap.Time = m.step, m.Time()
	if err := m.forceOfInfection(p.Infection); err != nil {
		return &StepError{Step: m.step, Op: "infection", Err: err}
	}

	st := m.staged
	if err := st.copyFrom(m.live); err != nil {
		return stepError(m.step, "stage", ErrNumericInvariant, err)
	}

	if err := m.recruit(p.Forcing); err != nil {
		return stepError(m.step, "recruitment", ErrNumericInvariant, err)
	}

	if err := m.advanceEggs(st, mort.Egg, dt); err != nil {
		return stepError(m.step, "egg", ErrNumericInvariant, err)
	}
	if err := m.advanceFledglings(st, mort.Fledgling, p.Recovery, dt); err != nil {
		return stepError(m.step, "fledgling", ErrNumericInvariant, err)
	}
	if err := m.advanceJuveniles(st, mort.Juvenile, p.Recovery, dt); err != nil {
		return stepError(m.step, "juvenile", ErrNumericInvariant, err)
	}
	if err := m.advanceAdults(st, mort.Adult, p.Recovery, dt); err != nil {
		return stepError(m.step, "adult", ErrNumericInvariant, err)
	}

	if err := st.checkNonNegative(); err != nil {
		return stepError(m.step, "commit", ErrNumericInvariant, err)
	}
	m.live, m.staged = m.staged, m.live
	m.flows, m.next = m.next, m.flows
	m.step++

	if m.log.Enabled(context.Background(), slog.LevelDebug) {
		m.log.Debug("bird: step",
			"step", m.step, "time", m.Time(),
			"laid", floats.Sum(m.flows.Laid), "hatched", floats.Sum(m.flows.Hatched),
			"fledged", floats.Sum(m.flows.Fledged), "matured", floats.Sum(m.flows.Matured))
	}

	return nil
}

// forceOfInfection fills m.hazard from the rule, or zeroes it for a nil rule.
func (m *Model) forceOfInfection(rule InfectionRule) error {
	for k := range m.hazard {
		h := m.hazard[k]
		if rule == nil {
			clear(h)
			continue
		}
		stage := Stage(k + 1)
		if err := rule.Hazard(&m.snap, stage, h); err != nil {
			return kindErrorf(ErrConfiguration, stage.String(), err)
		}
		for j, v := range h {
			if !finiteNonNegative(v) {
				return fmt.Errorf("%w: %s hazard[%d] = %g", ErrConfiguration, stage, j, v)
			}
		}
	}

	return nil
}

// recruit writes the psi-dispersed eggs of this step into m.next.Laid,
// reading adults from the snapshot.
func (m *Model) recruit(fp forcing.Params) error {
	rate := forcing.Rate(m.Time(), fp)
	a := m.snap.Adult
	var b, n, k float64
	for j := range m.local {
		k, _ = m.cfg.K.At(j, m.step)
		n = a.S[j] + a.I[j] + a.R[j]
		b = a.S[j] + a.I[j]
		if m.opts.recoveredBreeding {
			b += a.R[j]
		}
		m.local[j] = rate * m.cfg.Dt * b * m.opts.density.Factor(n, k)
		if math.IsNaN(m.local[j]) || math.IsInf(m.local[j], 0) {
			return fmt.Errorf("patch %d: eggs = %g: %w", j, m.local[j], matrix.ErrNaNInf)
		}
	}

	return m.psi.Vector(m.next.Laid, m.local)
}

func (m *Model) advanceEggs(st *state, mu, dt float64) error {
	st.egg.Survive(cohort.SurvivalFraction(mu, dt))
	if err := m.eggShift.Advance(st.egg, m.next.Hatched); err != nil {
		return err
	}

	return st.egg.Ingest(m.next.Laid)
}

func (m *Model) advanceFledglings(st *state, mu, gamma, dt float64) error {
	x := st.fledgling
	if err := transitionSIR(x, mu, m.hazard[0], gamma, dt); err != nil {
		return err
	}
	for k, status := range Statuses {
		q, _ := x.Part(status)
		if err := m.flShift.Advance(q, m.outflow[k]); err != nil {
			return err
		}
	}

	return x.S.Ingest(m.next.Hatched)
}

func (m *Model) advanceJuveniles(st *state, mu, gamma, dt float64) error {
	x := st.juvenile
	if err := transitionSIR(x, mu, m.hazard[1], gamma, dt); err != nil {
		return err
	}
	f := cohort.TransitionFraction(m.cfg.MaturationRate, dt)
	clear(m.next.Fledged)
	for k, status := range Statuses {
		pool, _ := x.Part(status)
		if err := pool.Take(m.maturing[k], f); err != nil {
			return err
		}
		if err := m.theta.Vector(m.moved, m.outflow[k]); err != nil {
			return err
		}
		if err := pool.Ingest(m.moved); err != nil {
			return err
		}
		floats.Add(m.next.Fledged, m.moved)
	}

	return nil
}

func (m *Model) advanceAdults(st *state, mu, gamma, dt float64) error {
	x := st.adult
	if err := transitionSIR(x, mu, m.hazard[2], gamma, dt); err != nil {
		return err
	}
	clear(m.next.Matured)
	for k, status := range Statuses {
		pool, _ := x.Part(status)
		// home-range movement of resident adults
		copy(m.local, pool.Values())
		if err := m.theta.Vector(pool.Values(), m.local); err != nil {
			return err
		}
		if err := m.theta.Vector(m.moved, m.maturing[k]); err != nil {
			return err
		}
		if err := pool.Ingest(m.moved); err != nil {
			return err
		}
		floats.Add(m.next.Matured, m.moved)
	}

	return nil
}

// transitionSIR applies survival, then infection and recovery, to one split stage.
func transitionSIR[C cohort.Store[C]](x *cohort.SIR[C], mu float64, hazard []float64, gamma, dt float64) error {
	x.Survive(cohort.SurvivalFraction(mu, dt))
	if err := x.Infect(hazard, dt); err != nil {
		return err
	}

	return x.Recover(gamma, dt)
}
