package bird

import (
	"fmt"
	"math"
)

// Density selects how recruitment is suppressed as adults approach the
// carrying capacity K of their patch. Every policy returns a factor in
// [0,1], non-increasing in the adult count N, and 0 wherever K is 0.
type Density int

const (
	// DensityLinear is max(0, 1-N/K).
	DensityLinear Density = iota
	// DensitySaturating is K/(K+N).
	DensitySaturating
	// DensityNone is 1 (no suppression) except on patches with K = 0.
	DensityNone
)

// Factor returns the multiplicative recruitment factor for n adults and
// capacity k.
func (d Density) Factor(n, k float64) float64 {
	if k <= 0 || math.IsNaN(k) {
		return 0
	}
	if n < 0 || math.IsNaN(n) {
		n = 0
	}
	switch d {
	case DensitySaturating:
		return k / (k + n)
	case DensityNone:
		return 1
	default:
		return math.Max(0, 1-n/k)
	}
}

func (d Density) String() string {
	switch d {
	case DensityLinear:
		return "linear"
	case DensitySaturating:
		return "saturating"
	case DensityNone:
		return "none"
	}

	return fmt.Sprintf("Density(%d)", int(d))
}

// ParseDensity maps "linear", "saturating" or "none" to a policy. The empty
// string selects DefaultDensity.
func ParseDensity(s string) (Density, error) {
	switch s {
	case "":
		return DefaultDensity, nil
	case "linear":
		return DensityLinear, nil
	case "saturating":
		return DensitySaturating, nil
	case "none":
		return DensityNone, nil
	}

	return 0, fmt.Errorf("%w: unknown density policy %q", ErrConfiguration, s)
}

func (d Density) valid() bool { return d >= DensityLinear && d <= DensityNone }
