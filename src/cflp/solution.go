package cflp

import (
	"cmp"
	"math"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/maps"
)

func NewSolution(numFacilities, numClients int) *Solution {
	return &Solution{
		Quantities: make(map[Assignment]float64),
		rowSums:    make([]float64, numFacilities),
		colSums:    make([]float64, numClients),
	}
}

// NoSolution is the result reported when every trial failed.
func NoSolution(inst *Instance) *Solution {
	sol := NewSolution(inst.NumFacilities, inst.NumClients)
	sol.TotalCost = math.Inf(1)
	return sol
}

func (sol *Solution) Clone() *Solution {
	return &Solution{
		Quantities: maps.Clone(sol.Quantities),
		TotalCost:  sol.TotalCost,
		rowSums:    slices.Clone(sol.rowSums),
		colSums:    slices.Clone(sol.colSums),
	}
}

func (sol *Solution) At(f, c int) float64 {
	return sol.Quantities[Assignment{Facility: f, Client: c}]
}

// Set overwrites the quantity of (f, c). Values within eps of zero remove
// the entry.
func (sol *Solution) Set(f, c int, q float64) {
	key := Assignment{Facility: f, Client: c}
	old := sol.Quantities[key]
	if almostZero(q) {
		q = 0
		delete(sol.Quantities, key)
	} else {
		sol.Quantities[key] = q
	}
	sol.rowSums[f] += q - old
	sol.colSums[c] += q - old
	if almostZero(sol.rowSums[f]) {
		sol.rowSums[f] = 0
	}
	if almostZero(sol.colSums[c]) {
		sol.colSums[c] = 0
	}
}

func (sol *Solution) Add(f, c int, delta float64) {
	sol.Set(f, c, sol.At(f, c)+delta)
}

func (sol *Solution) RowSum(f int) float64 {
	return sol.rowSums[f]
}

func (sol *Solution) ColSum(c int) float64 {
	return sol.colSums[c]
}

func (sol *Solution) IsOpen(f int) bool {
	return sol.rowSums[f] > eps
}

func (sol *Solution) Len() int {
	return len(sol.Quantities)
}

func (sol *Solution) OpenFacilities() mapset.Set[int] {
	open := mapset.NewThreadUnsafeSet[int]()
	for a := range sol.Quantities {
		open.Add(a.Facility)
	}
	return open
}

// Assignments returns the non-zero cells sorted facility-major,
// client-minor.
func (sol *Solution) Assignments() []Assignment {
	keys := maps.Keys(sol.Quantities)
	slices.SortFunc(keys, func(x, y Assignment) int {
		if x.Facility != y.Facility {
			return cmp.Compare(x.Facility, y.Facility)
		}
		return cmp.Compare(x.Client, y.Client)
	})
	return keys
}

// Evaluate computes the full cost of sol and stores it in TotalCost. An
// empty solution has no cost and yields NaN.
func (inst *Instance) Evaluate(sol *Solution) float64 {
	if sol.Len() == 0 {
		sol.TotalCost = math.NaN()
		return sol.TotalCost
	}

	// Summed in a fixed order so equal solutions get bit-identical costs.
	cost := 0.0
	for f := range inst.NumFacilities {
		if sol.IsOpen(f) {
			cost += inst.FixedCosts.AtVec(f)
		}
	}
	for _, a := range sol.Assignments() {
		cost += sol.Quantities[a] * inst.Cost(a.Facility, a.Client)
	}
	sol.TotalCost = cost
	return cost
}

// IsComplete reports whether every client received its initial demand.
func (inst *Instance) IsComplete(sol *Solution) bool {
	for c := range inst.NumClients {
		if sol.ColSum(c) < inst.InitialDemand.AtVec(c)-eps {
			return false
		}
	}
	return true
}

// WithinCapacity reports whether no facility ships more than its initial
// capacity.
func (inst *Instance) WithinCapacity(sol *Solution) bool {
	for f := range inst.NumFacilities {
		if sol.RowSum(f) > inst.InitialCapacity.AtVec(f)+eps {
			return false
		}
	}
	return true
}

// residualCapacity returns a fresh per-attempt copy of the capacity left
// on each facility by sol.
func (inst *Instance) residualCapacity(sol *Solution) []float64 {
	residual := make([]float64, inst.NumFacilities)
	for f := range residual {
		residual[f] = math.Max(0, inst.InitialCapacity.AtVec(f)-sol.RowSum(f))
	}
	return residual
}

func (inst *Instance) unmetDemand(sol *Solution, c int) float64 {
	return inst.InitialDemand.AtVec(c) - sol.ColSum(c)
}
