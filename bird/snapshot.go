package bird

import (
	"github.com/dd-harp/birds-sim/cohort"
	"gonum.org/v1/gonum/floats"
)

// SIRTotals holds per-patch totals of one S/I/R-split stage.
type SIRTotals struct {
	S, I, R []float64
}

func newSIRTotals(p int) SIRTotals {
	return SIRTotals{S: make([]float64, p), I: make([]float64, p), R: make([]float64, p)}
}

// Of returns the totals for one status.
func (t SIRTotals) Of(st cohort.Status) []float64 {
	switch st {
	case cohort.Infected:
		return t.I
	case cohort.Recovered:
		return t.R
	default:
		return t.S
	}
}

// Total writes S+I+R per patch into dst.
func (t SIRTotals) Total(dst []float64) {
	copy(dst, t.S)
	floats.Add(dst, t.I)
	floats.Add(dst, t.R)
}

// Sum returns the stage total over statuses and patches.
func (t SIRTotals) Sum() float64 { return floats.Sum(t.S) + floats.Sum(t.I) + floats.Sum(t.R) }

func (t SIRTotals) clone() SIRTotals {
	return SIRTotals{S: append([]float64(nil), t.S...), I: append([]float64(nil), t.I...), R: append([]float64(nil), t.R...)}
}

// Snapshot is the per-patch state of every stage at one step.
type Snapshot struct {
	Step int
	Time float64

	Egg                        []float64
	Fledgling, Juvenile, Adult SIRTotals
}

func newSnapshot(p int) Snapshot {
	return Snapshot{
		Egg:       make([]float64, p),
		Fledgling: newSIRTotals(p),
		Juvenile:  newSIRTotals(p),
		Adult:     newSIRTotals(p),
	}
}

// Stage returns the totals of a split stage; for Egg every individual is
// reported as susceptible.
func (s Snapshot) Stage(st Stage) SIRTotals {
	switch st {
	case Fledgling:
		return s.Fledgling
	case Juvenile:
		return s.Juvenile
	case Adult:
		return s.Adult
	}
	zero := make([]float64, len(s.Egg))

	return SIRTotals{S: s.Egg, I: zero, R: zero}
}

// Population returns the total over every stage, status and patch.
func (s Snapshot) Population() float64 {
	return floats.Sum(s.Egg) + s.Fledgling.Sum() + s.Juvenile.Sum() + s.Adult.Sum()
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Step:      s.Step,
		Time:      s.Time,
		Egg:       append([]float64(nil), s.Egg...),
		Fledgling: s.Fledgling.clone(),
		Juvenile:  s.Juvenile.clone(),
		Adult:     s.Adult.clone(),
	}
}

// Flows are the per-patch transfers between stages during the last step.
// Fledged and Matured sum over disease status and are reported after theta
// dispersal; Laid is after psi dispersal.
type Flows struct {
	Laid    []float64 // new eggs
	Hatched []float64 // eggs leaving the egg queue
	Fledged []float64 // fledglings entering the juvenile stage
	Matured []float64 // juveniles entering the adult stage
}

func newFlows(p int) Flows {
	return Flows{Laid: make([]float64, p), Hatched: make([]float64, p), Fledged: make([]float64, p), Matured: make([]float64, p)}
}

func (f Flows) clone() Flows {
	return Flows{
		Laid:    append([]float64(nil), f.Laid...),
		Hatched: append([]float64(nil), f.Hatched...),
		Fledged: append([]float64(nil), f.Fledged...),
		Matured: append([]float64(nil), f.Matured...),
	}
}
