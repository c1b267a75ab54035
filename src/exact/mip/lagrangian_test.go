package mip

import (
	"math"
	"math/rand"
	"testing"

	"cflp_grasp/src/cflp"
)

func TestLagrangianBoundSingleFacility(t *testing.T) {
	inst := mustInstance(t, []float64{10}, []float64{5}, []float64{10}, [][]float64{{2}})

	b := LagrangianBound(inst, 25)
	if math.Abs(b.Value-25) > 1e-6 {
		t.Errorf("bound = %f, want 25", b.Value)
	}
	if b.Multipliers == nil || b.Multipliers.Len() != 1 {
		t.Fatalf("multipliers = %v", b.Multipliers)
	}

	free := LagrangianBound(inst, math.Inf(1))
	if free.Value < 20-1e-9 || free.Value > 25+1e-6 {
		t.Errorf("bound without upper = %f, want within [20, 25]", free.Value)
	}
}

func TestLagrangianBoundBelowGRASP(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	for i := range 10 {
		inst := randomInstance(t, 3+rng.Intn(5), 5+rng.Intn(15), rng)
		cfg := cflp.DefaultConfig()
		cfg.Iterations = 10
		cfg.Seed = int64(i)
		res, err := inst.SolveGRASP(cfg)
		if err != nil {
			t.Fatal(err)
		}

		start := 0.0
		for c := range inst.NumClients {
			cheapest := math.Inf(1)
			for f := range inst.NumFacilities {
				cheapest = math.Min(cheapest, inst.Cost(f, c))
			}
			start += cheapest * inst.InitialDemand.AtVec(c)
		}

		for _, upper := range []float64{res.Best.TotalCost, math.Inf(1)} {
			b := LagrangianBound(inst, upper)
			if b.Value < start-1e-6 {
				t.Errorf("instance %d: bound %f below its starting value %f", i, b.Value, start)
			}
			if b.Value > res.Best.TotalCost+1e-6 {
				t.Errorf("instance %d: bound %f above a feasible cost %f", i, b.Value, res.Best.TotalCost)
			}
		}
	}
}
