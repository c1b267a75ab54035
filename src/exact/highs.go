package exact

import (
	"fmt"

	"github.com/lanl/highs"

	"cflp_grasp/src/cflp"
	"cflp_grasp/src/exact/mip"
)

type Highs struct{}

func toHighs(m *mip.Model) *highs.Model {
	lp := new(highs.Model)
	lp.ColCosts = m.Costs
	lp.ColLower = m.ColLower
	lp.ColUpper = m.ColUpper
	lp.VarTypes = make([]highs.VariableType, m.NumCols())
	for j, integer := range m.Integer {
		if integer {
			lp.VarTypes[j] = highs.IntegerType
		} else {
			lp.VarTypes[j] = highs.ContinuousType
		}
	}

	for i, r := range m.Rows {
		for _, e := range r.Entries {
			lp.ConstMatrix = append(lp.ConstMatrix, highs.Nonzero{Row: i, Col: e.Col, Val: e.Val})
		}
		lp.RowLower = append(lp.RowLower, r.Lower)
		lp.RowUpper = append(lp.RowUpper, r.Upper)
	}
	return lp
}

func runHighsSolver(lp *highs.Model) ([]float64, float64, error) {
	solution, err := lp.Solve()
	if err != nil {
		return nil, 0, err
	}
	if solution.Status != highs.Optimal {
		return nil, 0, fmt.Errorf("%w: highs status %v", ErrNoSolution, solution.Status.String())
	}
	return solution.ColumnPrimal, solution.Objective, nil
}

func (Highs) Solve(inst *cflp.Instance) (*cflp.Solution, error) {
	m := mip.New(inst, false)
	values, _, err := runHighsSolver(toHighs(m))
	if err != nil {
		return nil, err
	}
	return m.ToSolution(inst, values), nil
}

func (Highs) LowerBound(inst *cflp.Instance) (float64, error) {
	m := mip.New(inst, true)
	_, obj, err := runHighsSolver(toHighs(m))
	return obj, err
}
