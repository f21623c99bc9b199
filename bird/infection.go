package bird

import (
	"fmt"
)

// InfectionRule computes the force of infection (per unit time) for one
// S/I/R-split stage from the start-of-step snapshot. Hazard writes one value
// per patch into dst; the model rejects negative or non-finite values before
// touching any compartment. Implementations must not retain snap.
type InfectionRule interface {
	Hazard(snap *Snapshot, stage Stage, dst []float64) error
}

// ConstantHazard applies fixed per-patch hazards. PerStage, when it holds an
// entry for a stage, overrides Rates for that stage; a stage with neither
// gets no infection.
type ConstantHazard struct {
	Rates    []float64
	PerStage map[Stage][]float64
}

// Hazard implements InfectionRule.
func (c ConstantHazard) Hazard(_ *Snapshot, stage Stage, dst []float64) error {
	src := c.Rates
	if r, ok := c.PerStage[stage]; ok {
		src = r
	}
	if src == nil {
		clear(dst)
		return nil
	}
	if len(src) != len(dst) {
		return fmt.Errorf("%w: %s hazard has %d patches, want %d", ErrConfiguration, stage, len(src), len(dst))
	}
	copy(dst, src)

	return nil
}

// FrequencyDependent is adult-driven frequency-dependent transmission:
// every split stage in patch j sees β·I_adult[j]/N_adult[j], and nothing
// where the patch has no adults.
type FrequencyDependent struct {
	Beta float64
}

// Hazard implements InfectionRule.
func (f FrequencyDependent) Hazard(snap *Snapshot, _ Stage, dst []float64) error {
	if !finiteNonNegative(f.Beta) {
		return fmt.Errorf("%w: beta = %g", ErrConfiguration, f.Beta)
	}
	a := snap.Adult
	if len(a.I) != len(dst) {
		return fmt.Errorf("%w: snapshot has %d patches, want %d", ErrConfiguration, len(a.I), len(dst))
	}
	var n float64
	for j := range dst {
		n = a.S[j] + a.I[j] + a.R[j]
		if n <= 0 {
			dst[j] = 0
			continue
		}
		dst[j] = f.Beta * a.I[j] / n
	}

	return nil
}
