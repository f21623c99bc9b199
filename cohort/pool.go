package cohort

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Pool is an aggregate compartment: one total per patch, no age structure.
// Juvenile and Adult stages use it.
type Pool struct {
	v []float64
}

var (
	_ Compartment  = (*Pool)(nil)
	_ Store[*Pool] = (*Pool)(nil)
)

// NewPool allocates an empty pool.
func NewPool(patches int) (*Pool, error) {
	if patches <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadPatches, patches)
	}

	return &Pool{v: make([]float64, patches)}, nil
}

// Patches returns the number of patches.
func (p *Pool) Patches() int { return len(p.v) }

// Values returns the per-patch totals; the slice shares the pool's storage.
func (p *Pool) Values() []float64 { return p.v }

// Set overwrites one patch; used to seed initial conditions.
func (p *Pool) Set(patch int, v float64) error {
	if patch < 0 || patch >= len(p.v) {
		return fmt.Errorf("%w: patch %d", ErrSlotOutOfRange, patch)
	}
	if !validMass(v) {
		return fmt.Errorf("%w: %g", ErrInvalidMass, v)
	}
	p.v[patch] = v

	return nil
}

// Totals copies the per-patch totals into dst.
func (p *Pool) Totals(dst []float64) error {
	if len(dst) != len(p.v) {
		return fmt.Errorf("%w: len %d, want %d", ErrPatchMismatch, len(dst), len(p.v))
	}
	copy(dst, p.v)

	return nil
}

// Sum returns the total over patches.
func (p *Pool) Sum() float64 { return floats.Sum(p.v) }

// Ingest adds inflow patch-wise.
func (p *Pool) Ingest(inflow []float64) error {
	if err := validateInflow(inflow, len(p.v)); err != nil {
		return err
	}
	for j, v := range inflow {
		p.v[j] += v
	}

	return nil
}

// Survive scales every patch by fraction.
func (p *Pool) Survive(fraction float64) {
	for j := range p.v {
		p.v[j] *= fraction
	}
}

// MoveFraction moves frac[j] of patch j into dst.
func (p *Pool) MoveFraction(dst *Pool, frac []float64) error {
	if dst == nil || len(dst.v) != len(p.v) {
		return fmt.Errorf("%w: move between pools of different size", ErrPatchMismatch)
	}
	if len(frac) != len(p.v) {
		return fmt.Errorf("%w: len %d, want %d", ErrPatchMismatch, len(frac), len(p.v))
	}
	var m float64
	for j := range p.v {
		m = moved(p.v[j], frac[j])
		p.v[j] -= m
		dst.v[j] += m
	}

	return nil
}

// Take removes fraction f of every patch and writes the removed mass into
// out. Used for juvenile maturation.
func (p *Pool) Take(out []float64, f float64) error {
	if len(out) != len(p.v) {
		return fmt.Errorf("%w: len %d, want %d", ErrPatchMismatch, len(out), len(p.v))
	}
	for j := range p.v {
		out[j] = moved(p.v[j], f)
		p.v[j] -= out[j]
	}

	return nil
}

// CopyFrom overwrites the pool with src.
func (p *Pool) CopyFrom(src *Pool) error {
	if src == nil || len(src.v) != len(p.v) {
		return fmt.Errorf("%w: copy between pools of different size", ErrPatchMismatch)
	}
	copy(p.v, src.v)

	return nil
}

// CheckNonNegative reports the first negative or non-finite patch.
func (p *Pool) CheckNonNegative() error {
	for j, v := range p.v {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: patch %d = %g", ErrInvalidMass, j, v)
		}
	}

	return nil
}
