package bird_test

import (
	"fmt"

	"github.com/dd-harp/birds-sim/bird"
	"github.com/dd-harp/birds-sim/cohort"
	"github.com/dd-harp/birds-sim/matrix"
)

// A single patch: 10 hatchlings spend two steps as fledglings and then join
// the juveniles.
func ExampleModel_Update() {
	id, _ := matrix.NewIdentity(1)
	k, _ := matrix.NewDenseFrom([][]float64{{100, 100, 100, 100}})
	m, err := bird.New(bird.Config{
		Patches:        1,
		Dt:             1.0 / 365,
		Psi:            id,
		Theta:          id,
		EggDelay:       1,
		FledglingDelay: 2,
		K:              k,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	_ = m.Seed(bird.Egg, cohort.Susceptible, 0, 10)

	for m.Step() < m.Horizon() {
		if err := m.Update(bird.StepParams{}); err != nil {
			fmt.Println(err)
			return
		}
		snap := m.Snapshot()
		fmt.Printf("step %d: eggs %.0f fledglings %.0f juveniles %.0f\n",
			snap.Step, snap.Egg[0], snap.Fledgling.S[0], snap.Juvenile.S[0])
	}
	err = m.Update(bird.StepParams{})
	fmt.Println(err)
	// Output:
	// step 1: eggs 0 fledglings 10 juveniles 0
	// step 2: eggs 0 fledglings 10 juveniles 0
	// step 3: eggs 0 fledglings 0 juveniles 10
	// step 4: eggs 0 fledglings 0 juveniles 10
	// step 4: carrying capacity: bird: out of bounds: no column for step 4, horizon 4: matrix: index out of range
}
