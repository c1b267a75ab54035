package exact

import (
	"fmt"
	"math"

	"github.com/draffensperger/golp"

	"cflp_grasp/src/cflp"
	"cflp_grasp/src/exact/mip"
)

// LPSolve solves the same model through lp_solve.
type LPSolve struct{}

func toLPSolve(m *mip.Model) (*golp.LP, error) {
	lp := golp.NewLP(0, m.NumCols())
	lp.SetObjFn(m.Costs)

	for j := range m.NumCols() {
		lp.SetInt(j, m.Integer[j])
		if !math.IsInf(m.ColUpper[j], 1) {
			bound := []golp.Entry{{Col: j, Val: 1}}
			if err := lp.AddConstraintSparse(bound, golp.LE, m.ColUpper[j]); err != nil {
				return nil, fmt.Errorf("bound on column %d: %w", j, err)
			}
		}
	}

	for i, r := range m.Rows {
		entries := make([]golp.Entry, len(r.Entries))
		for k, e := range r.Entries {
			entries[k] = golp.Entry{Col: e.Col, Val: e.Val}
		}

		var err error
		switch {
		case r.Lower == r.Upper:
			err = lp.AddConstraintSparse(entries, golp.EQ, r.Upper)
		case math.IsInf(r.Lower, -1):
			err = lp.AddConstraintSparse(entries, golp.LE, r.Upper)
		default:
			err = lp.AddConstraintSparse(entries, golp.GE, r.Lower)
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return lp, nil
}

func runLPSolve(lp *golp.LP) ([]float64, float64, error) {
	status := lp.Solve()
	if status != golp.OPTIMAL {
		return nil, 0, fmt.Errorf("%w: lp_solve status %v", ErrNoSolution, status)
	}
	return lp.Variables(), lp.Objective(), nil
}

func (LPSolve) Solve(inst *cflp.Instance) (*cflp.Solution, error) {
	m := mip.New(inst, false)
	lp, err := toLPSolve(m)
	if err != nil {
		return nil, err
	}
	values, _, err := runLPSolve(lp)
	if err != nil {
		return nil, err
	}
	return m.ToSolution(inst, values), nil
}

func (LPSolve) LowerBound(inst *cflp.Instance) (float64, error) {
	m := mip.New(inst, true)
	lp, err := toLPSolve(m)
	if err != nil {
		return 0, err
	}
	_, obj, err := runLPSolve(lp)
	return obj, err
}
