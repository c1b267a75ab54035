package cflp

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"
)

type Instance struct {
	NumFacilities int
	NumClients    int

	// Capacity and Demand are consumed by the constructor. The Initial*
	// vectors are never written after loading.
	Capacity        *mat.VecDense
	InitialCapacity *mat.VecDense
	FixedCosts      *mat.VecDense
	Demand          *mat.VecDense
	InitialDemand   *mat.VecDense

	// TransportCosts is NumClients x NumFacilities, per unit of demand.
	TransportCosts *mat.Dense
}

// Assignment identifies a (facility, client) cell of the sparse solution.
type Assignment struct {
	Facility int
	Client   int
}

type Solution struct {
	Quantities map[Assignment]float64
	TotalCost  float64

	rowSums []float64
	colSums []float64
}

type Result struct {
	RunID    string
	Best     *Solution
	Trials   int
	Skipped  int
	Improved int
	Duration time.Duration
}

func (sol *Solution) String() string {
	s := new(strings.Builder)
	if math.IsInf(sol.TotalCost, 1) {
		s.WriteString("Total cost: +Inf (no solution)\n")
	} else {
		s.WriteString(fmt.Sprintf("Total cost: %f\n", sol.TotalCost))
	}
	s.WriteString("Open facilities: [ ")
	open := sol.OpenFacilities().ToSlice()
	slices.Sort(open)
	for _, f := range open {
		s.WriteString(fmt.Sprint(f))
		s.WriteString(" ")
	}
	s.WriteString("]\n")
	s.WriteString("Assignments:\n")
	for _, a := range sol.Assignments() {
		fmt.Fprintf(s, "  %d -> %d: %f\n", a.Facility, a.Client, sol.Quantities[a])
	}
	return s.String()
}

func (inst *Instance) String() string {
	s := new(strings.Builder)
	s.WriteString(fmt.Sprintf("N. facilities: %d\n", inst.NumFacilities))
	s.WriteString(fmt.Sprintf("N. clients: %d\n", inst.NumClients))

	for f := range inst.NumFacilities {
		fmt.Fprintf(s, "Facility %d: capacity %f, fixed cost %f\n",
			f, inst.InitialCapacity.AtVec(f), inst.FixedCosts.AtVec(f))
	}
	for c := range inst.NumClients {
		fmt.Fprintf(s, "Client %d: demand %f, costs %v\n",
			c, inst.InitialDemand.AtVec(c), inst.TransportCosts.RawRowView(c))
	}
	return s.String()
}
