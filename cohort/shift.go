package cohort

import (
	"fmt"

	"github.com/dd-harp/birds-sim/matrix"
)

// ShiftOperator ages a Queue of a fixed depth by one step. It wraps the
// sparse operator built by matrix.NewShift and is read-only after
// construction, so one operator may serve every queue of its depth, across
// model instances.
type ShiftOperator struct {
	depth int
	op    *matrix.Sparse
}

// NewShiftOperator builds the operator for queues of the given depth.
func NewShiftOperator(depth int) (*ShiftOperator, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadDepth, depth)
	}
	op, err := matrix.NewShift(depth)
	if err != nil {
		return nil, err
	}

	return &ShiftOperator{depth: depth, op: op}, nil
}

// Depth returns the queue depth the operator was built for.
func (s *ShiftOperator) Depth() int { return s.depth }

// Advance ages q by one step. The oldest cohort (slot depth-1) is copied into
// matured before the product so it is never lost; afterwards every cohort sits
// one slot further and slot 0 is empty, ready for Ingest.
//
// Errors: ErrDepthMismatch, ErrPatchMismatch (len(matured) != q.Patches()).
func (s *ShiftOperator) Advance(q *Queue, matured []float64) error {
	if q == nil || q.depth != s.depth {
		return ErrDepthMismatch
	}
	if len(matured) != q.patches {
		return fmt.Errorf("%w: matured len %d, want %d", ErrPatchMismatch, len(matured), q.patches)
	}
	oldest, _ := q.q.Row(s.depth - 1)
	copy(matured, oldest)

	if err := s.op.MulDenseInto(q.scratch, q.q); err != nil {
		return err
	}
	q.q, q.scratch = q.scratch, q.q

	return nil
}

// Shifts caches one ShiftOperator per distinct depth. It is not safe for
// concurrent For calls; build it once while constructing a model.
type Shifts struct {
	ops map[int]*ShiftOperator
}

// NewShifts returns an empty cache.
func NewShifts() *Shifts { return &Shifts{ops: make(map[int]*ShiftOperator)} }

// For returns the operator for depth, building it on first use.
func (c *Shifts) For(depth int) (*ShiftOperator, error) {
	if op, ok := c.ops[depth]; ok {
		return op, nil
	}
	op, err := NewShiftOperator(depth)
	if err != nil {
		return nil, err
	}
	c.ops[depth] = op

	return op, nil
}

// Len returns the number of distinct depths built so far.
func (c *Shifts) Len() int { return len(c.ops) }
