// Package bird is a discrete-time metapopulation model of a bird population
// with an S/I/R infection.
//
// Life cycle. Eggs and fledglings sit in delay queues whose depth is the
// stage duration in steps; juveniles and adults are aggregates. Fledglings,
// juveniles and adults are split by disease status; eggs are not, and
// hatchlings always enter as susceptible. Status is carried across every
// maturation.
//
// Space. p patches are linked by two row-stochastic kernels: psi moves new
// eggs (mating dispersal), theta moves maturing fledglings, maturing juveniles
// and resident adults (home-range dispersal).
//
// Drivers. Oviposition follows the seasonal forcing of package forcing,
// scaled by the number of breeders and suppressed as adults approach the
// carrying capacity K[:,step] according to a Density policy. Each stage has
// its own mortality rate; the per-step survival fraction is exp(-mu·dt).
//
// Within one stage the order is: survival, disease transition, aging or
// maturation capture, inflow.
//
// Errors. New and Update return errors wrapping ErrConfiguration, ErrBounds
// or ErrNumericInvariant. A failing Update leaves the model untouched.
//
// Example:
//
//	m, err := bird.New(cfg, bird.WithDensity(bird.DensitySaturating))
//	if err != nil {
//		return err
//	}
//	for m.Step() < m.Horizon() {
//		if err := m.Update(params); err != nil {
//			return err
//		}
//	}
package bird
