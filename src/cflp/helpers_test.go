package cflp

import (
	"math"
	"math/rand"
	"testing"
)

func mustInstance(t *testing.T, capacity, fixed, demand []float64, costs [][]float64) *Instance {
	t.Helper()
	inst, err := NewInstance(capacity, fixed, demand, costs)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	return inst
}

// randomInstance draws an instance whose total capacity is about twice the
// total demand, so every construction completes.
func randomInstance(t *testing.T, numFacilities, numClients int, rng *rand.Rand) *Instance {
	t.Helper()
	demand := make([]float64, numClients)
	total := 0.0
	for c := range demand {
		demand[c] = float64(1 + rng.Intn(20))
		total += demand[c]
	}
	capacity := make([]float64, numFacilities)
	fixed := make([]float64, numFacilities)
	for f := range capacity {
		capacity[f] = math.Ceil(2 * total / float64(numFacilities) * (0.5 + rng.Float64()))
		fixed[f] = float64(rng.Intn(200))
	}
	costs := make([][]float64, numClients)
	for c := range costs {
		costs[c] = make([]float64, numFacilities)
		for f := range costs[c] {
			costs[c][f] = float64(1 + rng.Intn(30))
		}
	}
	return mustInstance(t, capacity, fixed, demand, costs)
}

func assertFeasible(t *testing.T, inst *Instance, sol *Solution) {
	t.Helper()
	if !inst.IsComplete(sol) {
		for c := range inst.NumClients {
			t.Logf("client %d: received %f, demand %f", c, sol.ColSum(c), inst.InitialDemand.AtVec(c))
		}
		t.Fatalf("solution does not cover every demand")
	}
	if !inst.WithinCapacity(sol) {
		for f := range inst.NumFacilities {
			t.Logf("facility %d: ships %f, capacity %f", f, sol.RowSum(f), inst.InitialCapacity.AtVec(f))
		}
		t.Fatalf("solution exceeds a capacity")
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6*math.Max(1, math.Abs(b))
}
