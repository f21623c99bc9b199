package dispersal

import (
	"fmt"

	"github.com/dd-harp/birds-sim/matrix"
)

// Operator is a validated dispersal kernel.
type Operator struct {
	m *matrix.Dense
}

// New validates m as a row-stochastic kernel within eps and takes a private
// copy of it.
//
// Errors (wrapped, match with errors.Is):
//   - matrix.ErrNilMatrix for a nil m.
//   - matrix.ErrNonSquare when m is not p×p.
//   - matrix.ErrNotStochastic for entries outside [0,1] or a row sum off by more than eps.
//   - matrix.ErrNaNInf for non-finite entries or eps.
func New(m *matrix.Dense, eps float64) (*Operator, error) {
	if err := matrix.ValidateRowStochastic(m, eps); err != nil {
		return nil, fmt.Errorf("dispersal: %w", err)
	}

	return &Operator{m: m.Clone().(*matrix.Dense)}, nil
}

// Identity returns the kernel that keeps everyone in place.
func Identity(patches int) (*Operator, error) {
	id, err := matrix.NewIdentity(patches)
	if err != nil {
		return nil, fmt.Errorf("dispersal: %w", err)
	}

	return &Operator{m: id}, nil
}

// Patches returns p.
func (o *Operator) Patches() int { return o.m.Rows() }

// At returns M[i,j].
func (o *Operator) At(i, j int) (float64, error) { return o.m.At(i, j) }

// Vector computes dst[j] = Σ_i src[i]·M[i,j]. dst and src must not overlap.
func (o *Operator) Vector(dst, src []float64) error {
	if err := matrix.VecMulInto(dst, src, o.m); err != nil {
		return fmt.Errorf("dispersal: %w", err)
	}

	return nil
}

// Queue computes dst = src·M, redistributing every age row of a depth×p
// queue matrix. dst must have src's shape and must not alias it.
func (o *Operator) Queue(dst, src *matrix.Dense) error {
	if err := matrix.MulInto(dst, src, o.m); err != nil {
		return fmt.Errorf("dispersal: %w", err)
	}

	return nil
}
