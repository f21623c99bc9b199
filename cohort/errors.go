package cohort

import "errors"

// Sentinel errors returned by compartments and shift operators. Callers
// match them with errors.Is; matrix sentinels (matrix.ErrNegative,
// matrix.ErrNaNInf) are wrapped unchanged where the check is delegated.
var (
	// ErrBadDepth indicates a non-positive queue depth.
	ErrBadDepth = errors.New("cohort: queue depth must be > 0")

	// ErrBadPatches indicates a non-positive patch count.
	ErrBadPatches = errors.New("cohort: patch count must be > 0")

	// ErrPatchMismatch indicates a per-patch vector or compartment of the wrong size.
	ErrPatchMismatch = errors.New("cohort: patch count mismatch")

	// ErrDepthMismatch indicates a shift operator applied to a queue of another depth.
	ErrDepthMismatch = errors.New("cohort: operator depth does not match queue depth")

	// ErrInvalidMass indicates an inflow, seed or rate that is negative or non-finite.
	ErrInvalidMass = errors.New("cohort: mass must be finite and non-negative")

	// ErrSlotOutOfRange indicates an age slot or patch index outside the compartment.
	ErrSlotOutOfRange = errors.New("cohort: slot or patch out of range")
)
