// Package mip describes the mixed integer model of a CFLP instance
// independently of any solver, and bounds it from below.
package mip

import (
	"math"

	"cflp_grasp/src/cflp"
)

type Entry struct {
	Col int
	Val float64
}

type Row struct {
	Entries []Entry
	Lower   float64
	Upper   float64
}

// Model is the strong CFLP formulation. Columns are the shipped quantities
// x(f,c) at f*NumClients+c followed by the opening variables y(f).
type Model struct {
	NumFacilities int
	NumClients    int
	Costs         []float64
	ColLower      []float64
	ColUpper      []float64
	Integer       []bool
	Rows          []Row
}

func (m *Model) NumCols() int {
	return len(m.Costs)
}

func (m *Model) X(f, c int) int {
	return f*m.NumClients + c
}

func (m *Model) Y(f int) int {
	return m.NumFacilities*m.NumClients + f
}

// New builds demand equalities, aggregated capacity linking rows and
// per-assignment linking rows. With relax the y columns are continuous.
func New(inst *cflp.Instance, relax bool) *Model {
	m := &Model{
		NumFacilities: inst.NumFacilities,
		NumClients:    inst.NumClients,
	}
	numCols := inst.NumFacilities*inst.NumClients + inst.NumFacilities
	m.Costs = make([]float64, numCols)
	m.ColLower = make([]float64, numCols)
	m.ColUpper = make([]float64, numCols)
	m.Integer = make([]bool, numCols)

	for f := range inst.NumFacilities {
		for c := range inst.NumClients {
			m.Costs[m.X(f, c)] = inst.Cost(f, c)
			m.ColUpper[m.X(f, c)] = math.Inf(1)
		}
		m.Costs[m.Y(f)] = inst.FixedCosts.AtVec(f)
		m.ColUpper[m.Y(f)] = 1
		m.Integer[m.Y(f)] = !relax
	}

	for c := range inst.NumClients {
		d := inst.InitialDemand.AtVec(c)
		r := Row{Lower: d, Upper: d}
		for f := range inst.NumFacilities {
			r.Entries = append(r.Entries, Entry{Col: m.X(f, c), Val: 1})
		}
		m.Rows = append(m.Rows, r)
	}

	for f := range inst.NumFacilities {
		capacity := inst.InitialCapacity.AtVec(f)
		r := Row{Lower: math.Inf(-1), Upper: 0}
		for c := range inst.NumClients {
			r.Entries = append(r.Entries, Entry{Col: m.X(f, c), Val: 1})
		}
		r.Entries = append(r.Entries, Entry{Col: m.Y(f), Val: -capacity})
		m.Rows = append(m.Rows, r)
	}

	for f := range inst.NumFacilities {
		capacity := inst.InitialCapacity.AtVec(f)
		for c := range inst.NumClients {
			bound := math.Min(inst.InitialDemand.AtVec(c), capacity)
			m.Rows = append(m.Rows, Row{
				Entries: []Entry{
					{Col: m.X(f, c), Val: 1},
					{Col: m.Y(f), Val: -bound},
				},
				Lower: math.Inf(-1),
				Upper: 0,
			})
		}
	}
	return m
}

// ToSolution turns solved column values into a sparse solution evaluated
// on inst. Values at or below 1e-6 are solver noise and dropped.
func (m *Model) ToSolution(inst *cflp.Instance, values []float64) *cflp.Solution {
	sol := cflp.NewSolution(inst.NumFacilities, inst.NumClients)
	for f := range m.NumFacilities {
		for c := range m.NumClients {
			if q := values[m.X(f, c)]; q > 1e-6 {
				sol.Set(f, c, q)
			}
		}
	}
	if sol.Len() == 0 {
		sol.TotalCost = math.Inf(1)
		return sol
	}
	inst.Evaluate(sol)
	return sol
}

// Gap is the relative distance of cost from bound.
func Gap(cost, bound float64) float64 {
	if bound == 0 || math.IsInf(cost, 1) {
		return math.Inf(1)
	}
	return (cost - bound) / math.Abs(bound)
}
