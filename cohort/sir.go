package cohort

import (
	"fmt"
	"math"
)

// Status is the disease state of a sub-compartment.
type Status int

const (
	Susceptible Status = iota
	Infected
	Recovered
)

// String returns the single-letter label used in reports.
func (s Status) String() string {
	switch s {
	case Susceptible:
		return "S"
	case Infected:
		return "I"
	case Recovered:
		return "R"
	}

	return fmt.Sprintf("Status(%d)", int(s))
}

// SIR splits one life stage into susceptible, infected and recovered
// compartments of the same variant. Disease transitions only move mass
// between the three; demography (survival, aging, maturation) is applied to
// each part separately by the caller.
type SIR[C Store[C]] struct {
	S, I, R C
	frac    []float64
}

// NewSIR groups three compartments of equal patch count.
func NewSIR[C Store[C]](s, i, r C) (*SIR[C], error) {
	p := s.Patches()
	if i.Patches() != p || r.Patches() != p {
		return nil, fmt.Errorf("%w: S/I/R patch counts %d/%d/%d", ErrPatchMismatch, p, i.Patches(), r.Patches())
	}

	return &SIR[C]{S: s, I: i, R: r, frac: make([]float64, p)}, nil
}

// NewQueueSIR allocates an age-structured S/I/R triple.
func NewQueueSIR(depth, patches int) (*SIR[*Queue], error) {
	var qs [3]*Queue
	for k := range qs {
		q, err := NewQueue(depth, patches)
		if err != nil {
			return nil, err
		}
		qs[k] = q
	}

	return NewSIR(qs[0], qs[1], qs[2])
}

// NewPoolSIR allocates an aggregate S/I/R triple.
func NewPoolSIR(patches int) (*SIR[*Pool], error) {
	var ps [3]*Pool
	for k := range ps {
		p, err := NewPool(patches)
		if err != nil {
			return nil, err
		}
		ps[k] = p
	}

	return NewSIR(ps[0], ps[1], ps[2])
}

// Part returns the compartment holding status st.
func (x *SIR[C]) Part(st Status) (C, error) {
	switch st {
	case Susceptible:
		return x.S, nil
	case Infected:
		return x.I, nil
	case Recovered:
		return x.R, nil
	}
	var zero C

	return zero, fmt.Errorf("%w: status %d", ErrSlotOutOfRange, int(st))
}

// Patches returns the patch count shared by the three parts.
func (x *SIR[C]) Patches() int { return len(x.frac) }

// Survive applies the same survival fraction to S, I and R.
func (x *SIR[C]) Survive(fraction float64) {
	x.S.Survive(fraction)
	x.I.Survive(fraction)
	x.R.Survive(fraction)
}

// Infect moves S→I with per-patch hazard h (per unit time) over a step dt:
// the transferred share is 1-exp(-h[j]·dt), never more than S holds.
func (x *SIR[C]) Infect(hazard []float64, dt float64) error {
	if len(hazard) != len(x.frac) {
		return fmt.Errorf("%w: hazard len %d, want %d", ErrPatchMismatch, len(hazard), len(x.frac))
	}
	for j, h := range hazard {
		if !validMass(h) {
			return fmt.Errorf("%w: hazard[%d] = %g", ErrInvalidMass, j, h)
		}
		x.frac[j] = TransitionFraction(h, dt)
	}

	return x.S.MoveFraction(x.I, x.frac)
}

// Recover moves I→R at rate gamma (per unit time) over a step dt.
func (x *SIR[C]) Recover(gamma, dt float64) error {
	if !validMass(gamma) {
		return fmt.Errorf("%w: recovery rate %g", ErrInvalidMass, gamma)
	}
	f := TransitionFraction(gamma, dt)
	for j := range x.frac {
		x.frac[j] = f
	}

	return x.I.MoveFraction(x.R, x.frac)
}

// Totals writes per-patch totals for S, I and R.
func (x *SIR[C]) Totals(s, i, r []float64) error {
	if err := x.S.Totals(s); err != nil {
		return err
	}
	if err := x.I.Totals(i); err != nil {
		return err
	}

	return x.R.Totals(r)
}

// Sum returns the total over all statuses and patches.
func (x *SIR[C]) Sum() float64 { return x.S.Sum() + x.I.Sum() + x.R.Sum() }

// CopyFrom overwrites all three parts with src's.
func (x *SIR[C]) CopyFrom(src *SIR[C]) error {
	if err := x.S.CopyFrom(src.S); err != nil {
		return err
	}
	if err := x.I.CopyFrom(src.I); err != nil {
		return err
	}

	return x.R.CopyFrom(src.R)
}

// CheckNonNegative checks S, I and R, reporting the status at fault.
func (x *SIR[C]) CheckNonNegative() error {
	for _, st := range []Status{Susceptible, Infected, Recovered} {
		c, _ := x.Part(st)
		if err := c.CheckNonNegative(); err != nil {
			return fmt.Errorf("%s: %w", st, err)
		}
	}

	return nil
}

// Prevalence returns I/(S+I+R) per patch, 0 where the stage is empty.
func (x *SIR[C]) Prevalence(dst []float64) error {
	if len(dst) != len(x.frac) {
		return fmt.Errorf("%w: len %d, want %d", ErrPatchMismatch, len(dst), len(x.frac))
	}
	s := make([]float64, len(dst))
	r := make([]float64, len(dst))
	if err := x.Totals(s, dst, r); err != nil {
		return err
	}
	var n float64
	for j := range dst {
		n = s[j] + dst[j] + r[j]
		if n <= 0 || math.IsNaN(n) {
			dst[j] = 0
			continue
		}
		dst[j] /= n
	}

	return nil
}
