package dispersal_test

import (
	"fmt"

	"github.com/dd-harp/birds-sim/dispersal"
	"github.com/dd-harp/birds-sim/matrix"
)

// Half of patch 0 moves to patch 1; patch 1 stays put.
func ExampleOperator_Vector() {
	m, _ := matrix.NewDenseFrom([][]float64{
		{0.5, 0.5},
		{0, 1},
	})
	op, _ := dispersal.New(m, matrix.DefaultEpsilon)

	dst := make([]float64, 2)
	_ = op.Vector(dst, []float64{100, 20})
	fmt.Println(dst)
	// Output: [50 70]
}
