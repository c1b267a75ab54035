package cflp

import (
	"math"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	log "github.com/sirupsen/logrus"
	"gopkg.in/dnaeon/go-priorityqueue.v1"
)

// moveDelta is the cost change of moving q units of client c from facility
// from to facility to, fixed costs included.
func (inst *Instance) moveDelta(sol *Solution, from, to, c int, q float64) float64 {
	delta := q * (inst.Cost(to, c) - inst.Cost(from, c))
	if !sol.IsOpen(to) {
		delta += inst.FixedCosts.AtVec(to)
	}
	if sol.RowSum(from)-q <= eps {
		delta -= inst.FixedCosts.AtVec(from)
	}
	return delta
}

// singleAssignmentSwap relocates whole assignments to other facilities,
// chaining every strictly improving move found during the scan.
func (inst *Instance) singleAssignmentSwap(sol *Solution) (*Solution, bool) {
	best := sol.Clone()
	if sol.Len() == 0 {
		return best, false
	}
	inst.Evaluate(best)
	improved := false

	for _, a := range sol.Assignments() {
		for alt := range inst.NumFacilities {
			if alt == a.Facility {
				continue
			}
			q := best.At(a.Facility, a.Client)
			if q <= eps {
				break
			}
			if best.RowSum(alt)+q > inst.InitialCapacity.AtVec(alt)+eps {
				continue
			}

			delta := inst.moveDelta(best, a.Facility, alt, a.Client, q)
			if delta >= -eps {
				continue
			}

			best.Set(a.Facility, a.Client, 0)
			best.Add(alt, a.Client, q)
			inst.Evaluate(best)
			improved = true
			log.Tracef("SAS: client %d moved %d -> %d, cost %f", a.Client, a.Facility, alt, best.TotalCost)
		}
	}
	return best, improved
}

// closeFacility zeroes the row of f and hands each freed client to its
// cheapest alternative facility with room left, up to that facility's
// residual capacity. It reports false when a client stays short.
func (inst *Instance) closeFacility(base *Solution, f int) (*Solution, bool) {
	tentative := base.Clone()
	for c := range inst.NumClients {
		if tentative.At(f, c) > 0 {
			tentative.Set(f, c, 0)
		}
	}
	residual := inst.residualCapacity(tentative)
	residual[f] = 0

	for c := range inst.NumClients {
		unmet := inst.unmetDemand(tentative, c)
		if unmet <= eps {
			continue
		}

		pq := priorityqueue.New[int, float64](priorityqueue.MinHeap)
		for alt := range inst.NumFacilities {
			if alt != f && residual[alt] > eps {
				pq.Put(alt, inst.Cost(alt, c))
			}
		}
		if pq.Len() == 0 {
			return nil, false
		}

		alt := pq.Get().Value
		q := math.Min(unmet, residual[alt])
		tentative.Add(alt, c, q)
		residual[alt] -= q
		if unmet-q > eps {
			return nil, false
		}
	}

	inst.Evaluate(tentative)
	return tentative, true
}

// openFacility lets a closed facility absorb the unmet demand of each
// client up to its capacity.
func (inst *Instance) openFacility(base *Solution, f int) *Solution {
	tentative := base.Clone()
	residual := inst.residualCapacity(tentative)[f]

	for c := range inst.NumClients {
		if residual <= eps {
			break
		}
		unmet := inst.unmetDemand(tentative, c)
		if unmet <= eps {
			continue
		}
		q := math.Min(unmet, residual)
		tentative.Add(f, c, q)
		residual -= q
	}

	inst.Evaluate(tentative)
	return tentative
}

func (inst *Instance) facilityOpeningClosing(sol *Solution) (*Solution, bool) {
	best := sol.Clone()
	if sol.Len() == 0 {
		return best, false
	}
	inst.Evaluate(best)
	improved := false

	for f := range inst.NumFacilities {
		if !best.IsOpen(f) {
			continue
		}
		tentative, ok := inst.closeFacility(best, f)
		if !ok {
			continue
		}
		if tentative.TotalCost < best.TotalCost-eps {
			log.Tracef("FOC: closed facility %d, cost %f -> %f", f, best.TotalCost, tentative.TotalCost)
			best = tentative
			improved = true
		}
	}

	// Opening f only adds to row f, so the closed set stays valid.
	closed := mapset.NewThreadUnsafeSet[int]()
	for f := range inst.NumFacilities {
		closed.Add(f)
	}
	closed = closed.Difference(best.OpenFacilities())
	order := closed.ToSlice()
	slices.Sort(order)

	for _, f := range order {
		tentative := inst.openFacility(best, f)
		if tentative.TotalCost < best.TotalCost-eps {
			log.Tracef("FOC: opened facility %d, cost %f -> %f", f, best.TotalCost, tentative.TotalCost)
			best = tentative
			improved = true
		}
	}
	return best, improved
}

// findImprovement runs an FOC pass every interval iterations, then an SAS
// pass on top of its result.
func (inst *Instance) findImprovement(sol *Solution, iter, interval int) (*Solution, bool) {
	current := sol
	focImproved := false
	if iter%interval == 0 {
		current, focImproved = inst.facilityOpeningClosing(sol)
	}
	next, sasImproved := inst.singleAssignmentSwap(current)
	if sasImproved || focImproved {
		return next, true
	}
	return sol, false
}

// LocalSearch improves sol until an iteration finds no improving move. The
// returned flag tells whether any move was accepted.
func (inst *Instance) LocalSearch(sol *Solution, interval int) (*Solution, bool) {
	if interval <= 0 {
		interval = DefaultFacilityMoveInterval
	}
	current := sol.Clone()
	if current.Len() == 0 {
		return current, false
	}
	inst.Evaluate(current)

	improvedAny := false
	for i := 1; ; i++ {
		next, improved := inst.findImprovement(current, i, interval)
		if !improved {
			log.Debugf("Local search stopped after %d iterations, cost %f", i, current.TotalCost)
			break
		}
		current = next
		improvedAny = true
	}
	return current, improvedAny
}
