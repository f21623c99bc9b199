package bird

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by New, Update, Seed and the readers
// wraps exactly one of them; the underlying cause (a matrix, cohort or
// forcing sentinel) stays reachable through errors.Is as well.
var (
	// ErrConfiguration marks a malformed or missing parameter or a shape
	// mismatch, detected at construction or before an update touches state.
	ErrConfiguration = errors.New("bird: configuration error")

	// ErrBounds marks a time-indexed lookup outside the configured horizon,
	// e.g. no carrying-capacity column for the current step.
	ErrBounds = errors.New("bird: out of bounds")

	// ErrNumericInvariant marks a compartment that would go negative or a
	// dispersal matrix whose rows do not sum to one.
	ErrNumericInvariant = errors.New("bird: numeric invariant violated")
)

// StepError reports a failed Update. The model state is exactly what it was
// before the call.
type StepError struct {
	Step int    // step counter at the time of the call
	Op   string // pipeline stage that failed, e.g. "recruitment"
	Err  error  // wraps one of the error kinds above
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %s: %v", e.Step, e.Op, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// kindErrorf wraps cause with an error kind and an op tag.
func kindErrorf(kind error, op string, cause error) error {
	return fmt.Errorf("%w: %s: %w", kind, op, cause)
}

func stepError(step int, op string, kind, cause error) error {
	return &StepError{Step: step, Op: op, Err: fmt.Errorf("%w: %w", kind, cause)}
}
