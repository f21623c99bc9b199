package bird

import (
	"fmt"

	"github.com/dd-harp/birds-sim/cohort"
)

// Stage is a life stage of the bird.
type Stage int

const (
	Egg Stage = iota
	Fledgling
	Juvenile
	Adult
)

// Stages lists every stage in life-cycle order.
var Stages = [...]Stage{Egg, Fledgling, Juvenile, Adult}

// Statuses lists the disease states of the S/I/R-split stages.
var Statuses = [...]cohort.Status{cohort.Susceptible, cohort.Infected, cohort.Recovered}

func (s Stage) String() string {
	switch s {
	case Egg:
		return "egg"
	case Fledgling:
		return "fledgling"
	case Juvenile:
		return "juvenile"
	case Adult:
		return "adult"
	}

	return fmt.Sprintf("Stage(%d)", int(s))
}

// ParseStage is the inverse of Stage.String.
func ParseStage(s string) (Stage, error) {
	for _, st := range Stages {
		if st.String() == s {
			return st, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown stage %q", ErrConfiguration, s)
}

// ParseStatus accepts "S", "I" or "R".
func ParseStatus(s string) (cohort.Status, error) {
	for _, st := range Statuses {
		if st.String() == s {
			return st, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown status %q", ErrConfiguration, s)
}
