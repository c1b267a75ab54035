package cflp

import (
	"fmt"
	"math"
	"math/rand"

	log "github.com/sirupsen/logrus"
)

// candidates lists the (facility, client) pairs that can still receive an
// assignment, facility-major.
func (inst *Instance) candidates(sol *Solution) []Assignment {
	cands := make([]Assignment, 0)
	for f := range inst.NumFacilities {
		if inst.Capacity.AtVec(f) <= eps {
			continue
		}
		if sol.RowSum(f) >= inst.InitialCapacity.AtVec(f)-eps {
			continue
		}
		for c := range inst.NumClients {
			if inst.Demand.AtVec(c) > eps {
				cands = append(cands, Assignment{Facility: f, Client: c})
			}
		}
	}
	return cands
}

func (inst *Instance) addCandidate(sol *Solution, cand Assignment) {
	demand := inst.Demand.AtVec(cand.Client)
	capacity := inst.Capacity.AtVec(cand.Facility)
	q := math.Min(demand, capacity)
	if q <= eps {
		return
	}

	sol.Add(cand.Facility, cand.Client, q)

	demand -= q
	if almostZero(demand) {
		demand = 0
	}
	capacity -= q
	if almostZero(capacity) {
		capacity = 0
	}
	inst.Demand.SetVec(cand.Client, demand)
	inst.Capacity.SetVec(cand.Facility, capacity)
}

// GreedyRandomizedConstruction consumes the remaining capacity and demand of
// inst, so callers pass a Fresh copy. The returned error wraps
// ErrInfeasibleConstruction when candidates ran out before every client was
// served; the partial solution and its cost are still returned.
func (inst *Instance) GreedyRandomizedConstruction(rng *rand.Rand) (*Solution, error) {
	sol := NewSolution(inst.NumFacilities, inst.NumClients)

	for !inst.IsComplete(sol) {
		cands := inst.candidates(sol)
		if len(cands) == 0 {
			break
		}
		inst.addCandidate(sol, cands[rng.Intn(len(cands))])
	}

	if sol.Len() == 0 {
		sol.TotalCost = math.NaN()
		return sol, fmt.Errorf("%w: empty solution", ErrInfeasibleConstruction)
	}

	inst.Evaluate(sol)
	if !inst.IsComplete(sol) {
		log.Debugf("Construction stopped with unmet demand, partial cost %f", sol.TotalCost)
		return sol, fmt.Errorf("%w: no candidates left with unmet demand", ErrInfeasibleConstruction)
	}
	return sol, nil
}
