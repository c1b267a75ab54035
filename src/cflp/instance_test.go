package cflp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleInstance = `3 2

param capacity :=
1 10
2 20
3 15
;

param in_cost :=
1 100
2 150
3 not-a-number
3 120
;

param demand :=
1 8
2 12
extra tokens on this line
;

param cost : 1 2 3 :=
1 1.5 2 3
2 4 1 2.5
;
`

func TestParseInstance(t *testing.T) {
	inst, err := ParseInstance(strings.NewReader(sampleInstance))
	if err != nil {
		t.Fatalf("ParseInstance: %v", err)
	}
	if inst.NumFacilities != 3 || inst.NumClients != 2 {
		t.Fatalf("dimensions = %dx%d, want 3x2", inst.NumFacilities, inst.NumClients)
	}
	if got := inst.FixedCosts.AtVec(2); got != 120 {
		t.Errorf("fixed cost[2] = %f, want 120 (malformed line must be skipped)", got)
	}
	if got := inst.Cost(0, 0); got != 1.5 {
		t.Errorf("cost(0,0) = %f, want 1.5", got)
	}
	if got := inst.Cost(2, 1); got != 2.5 {
		t.Errorf("cost(2,1) = %f, want 2.5", got)
	}
	if got := inst.TotalCapacity(); got != 45 {
		t.Errorf("total capacity = %f, want 45", got)
	}
	if got := inst.TotalDemand(); got != 20 {
		t.Errorf("total demand = %f, want 20", got)
	}
	for f := range inst.NumFacilities {
		if inst.Capacity.AtVec(f) != inst.InitialCapacity.AtVec(f) {
			t.Errorf("remaining capacity %d differs from the snapshot", f)
		}
	}
}

func TestParseInstanceDimensionMismatch(t *testing.T) {
	bad := strings.Replace(sampleInstance, "2 4 1 2.5", "2 4 1", 1)
	if _, err := ParseInstance(strings.NewReader(bad)); err == nil {
		t.Fatal("expected an error for a short cost row")
	}
}

func TestNewInstanceValidation(t *testing.T) {
	tests := []struct {
		name     string
		capacity []float64
		fixed    []float64
		demand   []float64
		costs    [][]float64
	}{
		{"no facilities", nil, nil, []float64{1}, [][]float64{{}}},
		{"no clients", []float64{1}, []float64{1}, nil, nil},
		{"fixed length", []float64{1, 2}, []float64{1}, []float64{1}, [][]float64{{1, 1}}},
		{"negative capacity", []float64{-1}, []float64{1}, []float64{1}, [][]float64{{1}}},
		{"negative demand", []float64{1}, []float64{1}, []float64{-1}, [][]float64{{1}}},
		{"negative cost", []float64{1}, []float64{1}, []float64{1}, [][]float64{{-1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewInstance(tt.capacity, tt.fixed, tt.demand, tt.costs); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestFreshIsIndependent(t *testing.T) {
	inst := mustInstance(t, []float64{10}, []float64{5}, []float64{10}, [][]float64{{2}})
	inst.Capacity.SetVec(0, 3)
	inst.Demand.SetVec(0, 4)

	cp := inst.Fresh()
	if cp.Capacity.AtVec(0) != 10 || cp.Demand.AtVec(0) != 10 {
		t.Fatalf("fresh copy was not reset: capacity %f demand %f", cp.Capacity.AtVec(0), cp.Demand.AtVec(0))
	}
	cp.Capacity.SetVec(0, 0)
	cp.TransportCosts.Set(0, 0, 99)
	if inst.Capacity.AtVec(0) != 3 || inst.Cost(0, 0) != 2 {
		t.Fatal("mutating the copy changed the original")
	}
}

func TestLoadInstance(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "small.txt")
	if err := os.WriteFile(path, []byte(sampleInstance), 0o644); err != nil {
		t.Fatal(err)
	}
	inst, err := LoadInstance(path)
	if err != nil {
		t.Fatalf("LoadInstance: %v", err)
	}
	if inst.NumFacilities != 3 {
		t.Errorf("facilities = %d, want 3", inst.NumFacilities)
	}

	if _, err := LoadInstance(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
