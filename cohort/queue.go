package cohort

import (
	"fmt"

	"github.com/dd-harp/birds-sim/matrix"
)

// Queue is a delay-queue compartment: a depth×patches matrix whose row a
// holds the cohort that entered a steps ago. Row 0 receives recruits, row
// depth-1 matures on the next advance.
//
// A second buffer of the same shape is kept so a ShiftOperator can age the
// queue without allocating.
type Queue struct {
	depth, patches int
	q, scratch     *matrix.Dense
}

var (
	_ Compartment   = (*Queue)(nil)
	_ Store[*Queue] = (*Queue)(nil)
)

// NewQueue allocates an empty queue.
func NewQueue(depth, patches int) (*Queue, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadDepth, depth)
	}
	if patches <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadPatches, patches)
	}
	q, err := matrix.NewDense(depth, patches)
	if err != nil {
		return nil, err
	}
	scratch, err := matrix.NewDense(depth, patches)
	if err != nil {
		return nil, err
	}

	return &Queue{depth: depth, patches: patches, q: q, scratch: scratch}, nil
}

// Depth returns the number of age slots.
func (q *Queue) Depth() int { return q.depth }

// Patches returns the number of patches.
func (q *Queue) Patches() int { return q.patches }

// Slot returns a copy of age slot a across patches.
func (q *Queue) Slot(a int) ([]float64, error) {
	row, err := q.q.Row(a)
	if err != nil {
		return nil, fmt.Errorf("%w: slot %d of %d", ErrSlotOutOfRange, a, q.depth)
	}

	return append([]float64(nil), row...), nil
}

// Set overwrites one cell; used to seed initial conditions.
func (q *Queue) Set(slot, patch int, v float64) error {
	if !validMass(v) {
		return fmt.Errorf("%w: %g", ErrInvalidMass, v)
	}
	if err := q.q.Set(slot, patch, v); err != nil {
		return fmt.Errorf("%w: (%d,%d)", ErrSlotOutOfRange, slot, patch)
	}

	return nil
}

// Totals writes the per-patch sum over all age slots into dst.
func (q *Queue) Totals(dst []float64) error {
	if len(dst) != q.patches {
		return fmt.Errorf("%w: len %d, want %d", ErrPatchMismatch, len(dst), q.patches)
	}

	return q.q.ColSums(dst)
}

// Sum returns the total mass in the queue.
func (q *Queue) Sum() float64 { return q.q.Sum() }

// Ingest adds inflow to slot 0.
func (q *Queue) Ingest(inflow []float64) error {
	if err := validateInflow(inflow, q.patches); err != nil {
		return err
	}
	row, _ := q.q.Row(0)
	for j, v := range inflow {
		row[j] += v
	}

	return nil
}

// Survive scales every cohort by fraction.
func (q *Queue) Survive(fraction float64) { q.q.Scale(fraction) }

// MoveFraction moves frac[j] of every age slot in patch j into the same slot
// of dst. Used for disease transitions inside fledgling queues so age since
// entry is preserved.
func (q *Queue) MoveFraction(dst *Queue, frac []float64) error {
	if dst == nil || dst.depth != q.depth || dst.patches != q.patches {
		return fmt.Errorf("%w: move between queues of different shape", ErrPatchMismatch)
	}
	if len(frac) != q.patches {
		return fmt.Errorf("%w: len %d, want %d", ErrPatchMismatch, len(frac), q.patches)
	}
	var a, j int
	var m float64
	for a = 0; a < q.depth; a++ {
		src, _ := q.q.Row(a)
		to, _ := dst.q.Row(a)
		for j = 0; j < q.patches; j++ {
			m = moved(src[j], frac[j])
			src[j] -= m
			to[j] += m
		}
	}

	return nil
}

// CopyFrom overwrites the queue with src.
func (q *Queue) CopyFrom(src *Queue) error {
	if src == nil || src.depth != q.depth || src.patches != q.patches {
		return fmt.Errorf("%w: copy between queues of different shape", ErrPatchMismatch)
	}

	return q.q.CopyFrom(src.q)
}

// CheckNonNegative reports the first negative or non-finite cell.
func (q *Queue) CheckNonNegative() error { return matrix.ValidateNonNegative(q.q) }

// Dense exposes the backing matrix (depth×patches) for read-only linear
// algebra such as dispersing a whole queue.
func (q *Queue) Dense() *matrix.Dense { return q.q }
