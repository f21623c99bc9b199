// internal/scenario/scenario.go
//
// This package reads a simulation scenario from YAML and turns it into a
// ready-to-run bird.Model plus the StepParams it is driven with.

package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/dd-harp/birds-sim/bird"
	"github.com/dd-harp/birds-sim/cohort"
	"github.com/dd-harp/birds-sim/forcing"
	"github.com/dd-harp/birds-sim/matrix"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScenario is wrapped by every validation failure.
var ErrInvalidScenario = errors.New("scenario: invalid scenario")

// Delays are the delay-queue depths in steps.
type Delays struct {
	Egg       int `yaml:"egg"`
	Fledgling int `yaml:"fledgling"`
}

// Mortality mirrors bird.Mortality.
type Mortality struct {
	Egg       float64 `yaml:"egg"`
	Fledgling float64 `yaml:"fledgling"`
	Juvenile  float64 `yaml:"juvenile"`
	Adult     float64 `yaml:"adult"`
}

// Capacity is either a full patches×horizon table or one constant per patch
// repeated over Horizon steps.
type Capacity struct {
	Matrix   [][]float64 `yaml:"matrix,omitempty"`
	Constant []float64   `yaml:"constant,omitempty"`
	Horizon  int         `yaml:"horizon,omitempty"`
}

// Infection selects the force of infection: constant hazards (optionally per
// stage) or adult frequency-dependent transmission with rate Beta. Leaving
// every field empty disables infection.
type Infection struct {
	Constant []float64            `yaml:"constant,omitempty"`
	PerStage map[string][]float64 `yaml:"perStage,omitempty"`
	Beta     *float64             `yaml:"beta,omitempty"`
}

// Seed is one initial condition. Slot addresses an age slot of the Egg or
// Fledgling queue and is ignored for the aggregate stages.
type Seed struct {
	Stage  string  `yaml:"stage"`
	Status string  `yaml:"status,omitempty"` // S (default), I or R
	Patch  int     `yaml:"patch"`
	Slot   int     `yaml:"slot,omitempty"`
	Value  float64 `yaml:"value"`
}

// Scenario models a scenario file.
type Scenario struct {
	Patches           int            `yaml:"patches"`
	Dt                float64        `yaml:"dt"`
	Steps             int            `yaml:"steps"`
	Delays            Delays         `yaml:"delays"`
	Mortality         Mortality      `yaml:"mortality"`
	MaturationRate    float64        `yaml:"maturationRate"`
	Density           string         `yaml:"density,omitempty"`
	RecoveredBreeding bool           `yaml:"recoveredBreeding,omitempty"`
	Epsilon           *float64       `yaml:"epsilon,omitempty"`
	Psi               [][]float64    `yaml:"psi,omitempty"`   // identity when empty
	Theta             [][]float64    `yaml:"theta,omitempty"` // identity when empty
	Capacity          Capacity       `yaml:"capacity"`
	Forcing           forcing.Params `yaml:"forcing"`
	Infection         Infection      `yaml:"infection,omitempty"`
	Recovery          float64        `yaml:"recovery"`
	Initial           []Seed         `yaml:"initial,omitempty"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return sc, nil
}

// Parse decodes and validates a scenario. Unknown keys are rejected.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	sc.applyDefaults()
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	return &sc, nil
}

func (sc *Scenario) applyDefaults() {
	if sc.Steps == 0 {
		sc.Steps = sc.Horizon()
	}
}

// Horizon returns the number of steps covered by the carrying capacity.
func (sc *Scenario) Horizon() int {
	if len(sc.Capacity.Matrix) > 0 {
		return len(sc.Capacity.Matrix[0])
	}

	return sc.Capacity.Horizon
}

// Validate checks the structure of the scenario. Numeric ranges of rates and
// kernels are left to bird.New.
func (sc *Scenario) Validate() error {
	if sc.Patches < 1 {
		return invalidf("patches = %d", sc.Patches)
	}
	if err := validateSquare("psi", sc.Psi, sc.Patches); err != nil {
		return err
	}
	if err := validateSquare("theta", sc.Theta, sc.Patches); err != nil {
		return err
	}
	c := sc.Capacity
	switch {
	case len(c.Matrix) > 0 && len(c.Constant) > 0:
		return invalidf("capacity: give either matrix or constant, not both")
	case len(c.Matrix) > 0:
		if len(c.Matrix) != sc.Patches {
			return invalidf("capacity: %d rows for %d patches", len(c.Matrix), sc.Patches)
		}
	case len(c.Constant) > 0:
		if len(c.Constant) != sc.Patches {
			return invalidf("capacity: %d constants for %d patches", len(c.Constant), sc.Patches)
		}
		if c.Horizon < 1 {
			return invalidf("capacity: horizon = %d", c.Horizon)
		}
	default:
		return invalidf("capacity: missing")
	}
	if sc.Steps < 0 || sc.Steps > sc.Horizon() {
		return invalidf("steps = %d, horizon %d", sc.Steps, sc.Horizon())
	}
	if _, err := bird.ParseDensity(sc.Density); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if sc.Epsilon != nil && (*sc.Epsilon < 0 || math.IsNaN(*sc.Epsilon) || math.IsInf(*sc.Epsilon, 0)) {
		return invalidf("epsilon = %g", *sc.Epsilon)
	}
	if err := sc.Infection.validate(sc.Patches); err != nil {
		return err
	}
	for i, s := range sc.Initial {
		if _, _, err := s.parse(); err != nil {
			return fmt.Errorf("%w: initial[%d]: %w", ErrInvalidScenario, i, err)
		}
	}

	return nil
}

func (inf Infection) validate(p int) error {
	constant := len(inf.Constant) > 0 || len(inf.PerStage) > 0
	if constant && inf.Beta != nil {
		return invalidf("infection: constant hazards and beta are exclusive")
	}
	if len(inf.Constant) > 0 && len(inf.Constant) != p {
		return invalidf("infection: %d hazards for %d patches", len(inf.Constant), p)
	}
	for name, rates := range inf.PerStage {
		st, err := bird.ParseStage(name)
		if err != nil || st == bird.Egg {
			return invalidf("infection: stage %q", name)
		}
		if len(rates) != p {
			return invalidf("infection: %s has %d hazards for %d patches", name, len(rates), p)
		}
	}

	return nil
}

// rule returns the InfectionRule the section describes, nil for none.
func (inf Infection) rule() bird.InfectionRule {
	switch {
	case inf.Beta != nil:
		return bird.FrequencyDependent{Beta: *inf.Beta}
	case len(inf.Constant) > 0 || len(inf.PerStage) > 0:
		r := bird.ConstantHazard{Rates: inf.Constant}
		if len(inf.PerStage) > 0 {
			r.PerStage = make(map[bird.Stage][]float64, len(inf.PerStage))
			for name, rates := range inf.PerStage {
				st, _ := bird.ParseStage(name)
				r.PerStage[st] = rates
			}
		}
		return r
	}

	return nil
}

func (s Seed) parse() (bird.Stage, cohort.Status, error) {
	st, err := bird.ParseStage(s.Stage)
	if err != nil {
		return 0, 0, err
	}
	status := s.Status
	if status == "" {
		status = "S"
	}
	ds, err := bird.ParseStatus(status)
	if err != nil {
		return 0, 0, err
	}

	return st, ds, nil
}

// Build constructs the model, applies the initial conditions and returns the
// per-step drivers. opts are appended after the options the scenario sets.
func (sc *Scenario) Build(opts ...bird.Option) (*bird.Model, bird.StepParams, error) {
	cfg, err := sc.config()
	if err != nil {
		return nil, bird.StepParams{}, err
	}
	density, _ := bird.ParseDensity(sc.Density)
	all := []bird.Option{bird.WithDensity(density)}
	if sc.Epsilon != nil {
		all = append(all, bird.WithEpsilon(*sc.Epsilon))
	}
	if sc.RecoveredBreeding {
		all = append(all, bird.WithRecoveredBreeding())
	}
	m, err := bird.New(cfg, append(all, opts...)...)
	if err != nil {
		return nil, bird.StepParams{}, err
	}
	for i, s := range sc.Initial {
		if err = sc.seed(m, s); err != nil {
			return nil, bird.StepParams{}, fmt.Errorf("scenario: initial[%d]: %w", i, err)
		}
	}

	return m, sc.Params(), nil
}

// Params returns the per-step drivers of the scenario.
func (sc *Scenario) Params() bird.StepParams {
	return bird.StepParams{
		Forcing:   sc.Forcing,
		Infection: sc.Infection.rule(),
		Recovery:  sc.Recovery,
	}
}

func (sc *Scenario) seed(m *bird.Model, s Seed) error {
	stage, status, err := s.parse()
	if err != nil {
		return err
	}
	if stage == bird.Egg || stage == bird.Fledgling {
		return m.SeedQueue(stage, status, s.Slot, s.Patch, s.Value)
	}

	return m.Seed(stage, status, s.Patch, s.Value)
}

func (sc *Scenario) config() (bird.Config, error) {
	psi, err := kernel(sc.Psi, sc.Patches)
	if err != nil {
		return bird.Config{}, fmt.Errorf("scenario: psi: %w", err)
	}
	theta, err := kernel(sc.Theta, sc.Patches)
	if err != nil {
		return bird.Config{}, fmt.Errorf("scenario: theta: %w", err)
	}
	k, err := sc.capacity()
	if err != nil {
		return bird.Config{}, fmt.Errorf("scenario: capacity: %w", err)
	}

	return bird.Config{
		Patches: sc.Patches,
		Dt:      sc.Dt,
		Psi:     psi,
		Theta:   theta,
		Mortality: bird.Mortality{
			Egg:       sc.Mortality.Egg,
			Fledgling: sc.Mortality.Fledgling,
			Juvenile:  sc.Mortality.Juvenile,
			Adult:     sc.Mortality.Adult,
		},
		EggDelay:       sc.Delays.Egg,
		FledglingDelay: sc.Delays.Fledgling,
		K:              k,
		MaturationRate: sc.MaturationRate,
	}, nil
}

func (sc *Scenario) capacity() (*matrix.Dense, error) {
	c := sc.Capacity
	if len(c.Matrix) > 0 {
		return matrix.NewDenseFrom(c.Matrix)
	}
	k, err := matrix.NewDense(sc.Patches, c.Horizon)
	if err != nil {
		return nil, err
	}
	err = k.Apply(func(i, _ int, _ float64) float64 { return c.Constant[i] })

	return k, err
}

func kernel(rows [][]float64, p int) (*matrix.Dense, error) {
	if len(rows) == 0 {
		return matrix.NewIdentity(p)
	}

	return matrix.NewDenseFrom(rows)
}

func validateSquare(name string, rows [][]float64, p int) error {
	if len(rows) == 0 {
		return nil
	}
	if len(rows) != p {
		return invalidf("%s: %d rows for %d patches", name, len(rows), p)
	}
	for i, r := range rows {
		if len(r) != p {
			return invalidf("%s: row %d has %d entries, want %d", name, i, len(r), p)
		}
	}

	return nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidScenario, fmt.Sprintf(format, args...))
}
