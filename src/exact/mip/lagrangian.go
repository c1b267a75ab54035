package mip

import (
	"cmp"
	"math"
	"slices"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"cflp_grasp/src/cflp"
)

const (
	subgradBaseStep  = 2.0
	subgradCoeffStep = 0.5
	subgradMaxRounds = 500
	subgradPatience  = 5
)

// Bound is the best Lagrangian value found and the multipliers giving it.
type Bound struct {
	Value       float64
	Multipliers *mat.VecDense
	Rounds      int
}

// lagrangianPrimal solves the problem with the demand rows priced by
// lambda. Each facility is an independent fractional knapsack over the
// clients with negative reduced cost, opened only when that pays its fixed
// cost. It returns the dual value and the shipped total per client.
func lagrangianPrimal(inst *cflp.Instance, lambda *mat.VecDense) (float64, []float64) {
	value := mat.Dot(lambda, inst.InitialDemand)
	served := make([]float64, inst.NumClients)

	clients := make([]int, inst.NumClients)
	reduced := make([]float64, inst.NumClients)
	ship := make([]float64, inst.NumClients)

	for f := range inst.NumFacilities {
		for c := range inst.NumClients {
			clients[c] = c
			reduced[c] = inst.Cost(f, c) - lambda.AtVec(c)
		}
		slices.SortFunc(clients, func(a, b int) int {
			return cmp.Compare(reduced[a], reduced[b])
		})

		left := inst.InitialCapacity.AtVec(f)
		v := inst.FixedCosts.AtVec(f)
		clear(ship)
		for _, c := range clients {
			if reduced[c] >= 0 || left <= 0 {
				break
			}
			q := math.Min(inst.InitialDemand.AtVec(c), left)
			ship[c] = q
			v += q * reduced[c]
			left -= q
		}

		if v < 0 {
			value += v
			floats.Add(served, ship)
		}
	}
	return value, served
}

// LagrangianBound runs subgradient optimization on the relaxation of the
// demand rows. upper is the cost of a known solution and steers the step
// size; pass +Inf when none is known. Every returned value is a valid lower
// bound on the optimum.
func LagrangianBound(inst *cflp.Instance, upper float64) *Bound {
	lambda := mat.NewVecDense(inst.NumClients, nil)
	for c := range inst.NumClients {
		cheapest := math.Inf(1)
		for f := range inst.NumFacilities {
			cheapest = math.Min(cheapest, inst.Cost(f, c))
		}
		lambda.SetVec(c, cheapest)
	}

	best := &Bound{Value: math.Inf(-1)}
	step := subgradBaseStep
	noImprovementRounds := 0
	violations := make([]float64, inst.NumClients)

	for round := 1; round <= subgradMaxRounds; round++ {
		value, served := lagrangianPrimal(inst, lambda)
		best.Rounds = round
		if value > best.Value+1e-9 {
			best.Value = value
			best.Multipliers = mat.VecDenseCopyOf(lambda)
			noImprovementRounds = 0
		} else {
			noImprovementRounds++
			if noImprovementRounds == subgradPatience {
				step *= subgradCoeffStep
				noImprovementRounds = 0
			}
		}

		floats.SubTo(violations, inst.InitialDemand.RawVector().Data, served)
		norm := floats.Dot(violations, violations)
		if norm < 1e-12 || step < 1e-6 {
			break
		}
		if !math.IsInf(upper, 1) && upper-best.Value < 1e-9*math.Max(1, math.Abs(upper)) {
			break
		}

		var t float64
		if math.IsInf(upper, 1) {
			t = step / math.Sqrt(norm)
		} else {
			t = step * (upper - value) / norm
		}
		for c := range inst.NumClients {
			lambda.SetVec(c, lambda.AtVec(c)+t*violations[c])
		}
	}

	log.Debugf("Lagrangian bound %f after %d rounds", best.Value, best.Rounds)
	return best
}
