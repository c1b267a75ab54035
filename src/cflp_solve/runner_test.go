package main

import (
	"strings"
	"testing"

	"cflp_grasp/src/cflp"
)

func TestRunMany(t *testing.T) {
	inst, err := cflp.NewInstance(
		[]float64{10, 10},
		[]float64{5, 7},
		[]float64{4, 6},
		[][]float64{{1, 2}, {3, 1}},
	)
	if err != nil {
		t.Fatal(err)
	}
	cfg := cflp.DefaultConfig()
	cfg.Iterations = 5
	cfg.Seed = 40

	s, err := runMany(inst, cfg, 3)
	if err != nil {
		t.Fatal(err)
	}
	if s.Runs != 3 || s.Feasible != 3 || len(s.Records) != 3 {
		t.Fatalf("runs=%d feasible=%d records=%d", s.Runs, s.Feasible, len(s.Records))
	}
	for i, r := range s.Records {
		if r.Seed != cfg.Seed+int64(i) {
			t.Errorf("record %d seed = %d", i, r.Seed)
		}
		if r.Cost < s.Best.TotalCost {
			t.Errorf("record %d cost %f below best %f", i, r.Cost, s.Best.TotalCost)
		}
	}
	if !strings.Contains(s.String(), "Runs: 3 (feasible 3)") {
		t.Errorf("summary = %q", s.String())
	}
}
