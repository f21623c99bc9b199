// Package cohort holds the stage compartments of the population model and
// the operator that ages them.
//
// Two compartment variants share the Compartment interface:
//
//   - Queue: a delay queue, depth×patches, one row per age-since-entry slot.
//     Row 0 receives recruits; row depth-1 leaves on the next Advance.
//   - Pool: an aggregate per-patch total without age structure.
//
// ShiftOperator advances a Queue with a single sparse product and hands back
// the cohort that fell off the end. Shifts caches one operator per depth.
//
// SIR groups three compartments of the same variant by disease status and
// applies infection (S→I) and recovery (I→R) as clamped mass transfers.
//
// Within a step the package assumes the order used by the model:
// survival, then disease transitions, then aging/maturation, then inflow.
package cohort
