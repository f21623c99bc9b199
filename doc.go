// Package birdsim is a discrete-time simulator for an epidemic spreading
// through a spatially structured bird population.
//
// 🐦 What does birdsim model?
//
//	Four life stages moving through p patches, one step at a time:
//		• Egg          delay queue, no disease status
//		• Fledgling    delay queue, split into S/I/R
//		• Juvenile     per-patch aggregate, split into S/I/R
//		• Adult        per-patch aggregate, split into S/I/R; the breeders
//
//	New eggs follow a seasonal oviposition rate, suppressed as adults reach
//	the carrying capacity of their patch, and are scattered by the mating
//	kernel psi. Maturing birds and resident adults move by the home-range
//	kernel theta. Disease status survives every maturation.
//
// Everything is organized under these packages:
//
//	matrix/              Dense and CSR Sparse operators, kernels, validators
//	forcing/             seasonal oviposition rate
//	cohort/              delay-queue and aggregate compartments, shift operator, S/I/R split
//	dispersal/           row-stochastic redistribution between patches
//	bird/                the metapopulation model and its step pipeline
//	ensemble/            concurrent runs of isolated replicates
//	internal/scenario/   YAML scenario files
//	cmd/birdsim/         command-line runner
//
// One step, in order:
//
//	eggs laid ──psi──▶ Egg queue ──▶ Fledgling-S queue ──theta──▶ Juvenile ──theta──▶ Adult
//	                                  (S→I→R inside the queue)      (S→I→R)           (S→I→R, theta)
//
// Quick start:
//
//	go run ./cmd/birdsim -config internal/scenario/testdata/two_patch.yaml
package birdsim
