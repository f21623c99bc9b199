// Functional configuration for Model. Defaults are constants; WithX
// constructors validate eagerly and panic on nonsensical values, which are
// programmer errors rather than runtime conditions.

package bird

import (
	"io"
	"log/slog"
	"math"

	"github.com/dd-harp/birds-sim/matrix"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the row-sum tolerance for psi and theta.
	DefaultEpsilon = matrix.DefaultEpsilon

	// DefaultDensity is the recruitment suppression policy.
	DefaultDensity = DensityLinear

	// DefaultRecoveredBreeding leaves recovered adults out of the breeders.
	DefaultRecoveredBreeding = false
)

const (
	panicEpsilonInvalid = "bird: WithEpsilon: eps must be finite, non-negative"
	panicDensityInvalid = "bird: WithDensity: unknown density policy"
	panicLoggerNil      = "bird: WithLogger: logger must not be nil"
)

// Option mutates the model options. Options are applied in order; the last
// one wins.
type Option func(*options)

type options struct {
	eps               float64 // >= 0; DefaultEpsilon
	density           Density // DefaultDensity
	recoveredBreeding bool    // DefaultRecoveredBreeding
	logger            *slog.Logger
}

// WithEpsilon sets the tolerance used when validating dispersal rows.
// Panics if eps is negative, NaN or Inf.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}

	return func(o *options) { o.eps = eps }
}

// WithDensity selects the recruitment suppression policy.
// Panics on a value outside the declared policies.
func WithDensity(d Density) Option {
	if !d.valid() {
		panic(panicDensityInvalid)
	}

	return func(o *options) { o.density = d }
}

// WithRecoveredBreeding counts recovered adults as breeders alongside S and I.
func WithRecoveredBreeding() Option {
	return func(o *options) { o.recoveredBreeding = true }
}

// WithLogger routes model logs (construction at Info, every step at Debug)
// to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *options) { o.logger = l }
}

func defaultOptions() options {
	return options{
		eps:               DefaultEpsilon,
		density:           DefaultDensity,
		recoveredBreeding: DefaultRecoveredBreeding,
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// gatherOptions applies opts over the defaults, skipping nil entries.
func gatherOptions(opts ...Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
