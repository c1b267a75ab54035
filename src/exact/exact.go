// Package exact solves the CFLP model of package mip, or its LP relaxation,
// with an external solver. It gives GRASP runs a reference optimum or a
// lower bound to measure the gap against.
package exact

import (
	"errors"
	"fmt"

	"cflp_grasp/src/cflp"
)

// ErrNoSolution is returned when the backend does not reach an optimum.
var ErrNoSolution = errors.New("no optimal solution")

// Solver computes a reference optimum or an LP lower bound.
type Solver interface {
	Solve(inst *cflp.Instance) (*cflp.Solution, error)
	LowerBound(inst *cflp.Instance) (float64, error)
}

// NewSolver returns the backend called name.
func NewSolver(name string) (Solver, error) {
	switch name {
	case "highs":
		return Highs{}, nil
	case "lpsolve":
		return LPSolve{}, nil
	default:
		return nil, fmt.Errorf("unknown exact solver %q (want highs or lpsolve)", name)
	}
}
