// Package dispersal moves individuals between patches.
//
// An Operator wraps one row-stochastic p×p matrix M: entry M[i,j] is the share
// of patch i's individuals that end up in patch j. Vector applies it to a
// per-patch total, Queue to every age row of a delay queue at once. Because
// rows sum to one the total is conserved up to floating-point rounding.
//
// Operators are read-only after New and may be shared between models.
package dispersal
