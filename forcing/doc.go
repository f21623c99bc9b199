// Package forcing implements the seasonal oviposition law that drives
// recruitment in the bird model.
//
// The law is a pure function of time and three scalars (Params). Validate
// the Params once per step with Params.Validate and evaluate with Rate.
package forcing
