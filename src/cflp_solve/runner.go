package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"cflp_grasp/src/cflp"
)

type runRecord struct {
	RunID    string
	Seed     int64
	Cost     float64
	Skipped  int
	Duration time.Duration
}

type summary struct {
	Runs     int
	Feasible int
	Best     *cflp.Solution
	CostMean float64
	CostStd  float64
	TimeMean float64
	TimeStd  float64
	Records  []runRecord
}

// runMany repeats GRASP with seeds cfg.Seed .. cfg.Seed+runs-1.
func runMany(inst *cflp.Instance, cfg cflp.Config, runs int) (*summary, error) {
	s := &summary{Runs: runs, Best: cflp.NoSolution(inst)}
	costs := make([]float64, 0, runs)
	times := make([]float64, 0, runs)

	for i := range runs {
		runCfg := cfg
		runCfg.Seed = cfg.Seed + int64(i)

		res, err := inst.SolveGRASP(runCfg)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i, err)
		}
		s.Records = append(s.Records, runRecord{
			RunID:    res.RunID,
			Seed:     runCfg.Seed,
			Cost:     res.Best.TotalCost,
			Skipped:  res.Skipped,
			Duration: res.Duration,
		})
		times = append(times, float64(res.Duration.Microseconds())/1000.0)

		if math.IsInf(res.Best.TotalCost, 1) {
			continue
		}
		s.Feasible++
		costs = append(costs, res.Best.TotalCost)
		if res.Best.TotalCost < s.Best.TotalCost {
			s.Best = res.Best
		}
	}

	if len(costs) > 0 {
		s.CostMean, s.CostStd = stat.MeanStdDev(costs, nil)
	} else {
		s.CostMean, s.CostStd = math.Inf(1), math.NaN()
	}
	if len(times) > 0 {
		s.TimeMean, s.TimeStd = stat.MeanStdDev(times, nil)
	}
	return s, nil
}

func (s *summary) String() string {
	b := new(strings.Builder)
	for _, r := range s.Records {
		fmt.Fprintf(b, "  run %s seed=%d cost=%f skipped=%d time=%v\n", r.RunID, r.Seed, r.Cost, r.Skipped, r.Duration)
	}
	fmt.Fprintf(b, "Runs: %d (feasible %d)\n", s.Runs, s.Feasible)
	if s.Feasible > 0 {
		costs := make([]float64, 0, s.Feasible)
		for _, r := range s.Records {
			if !math.IsInf(r.Cost, 1) {
				costs = append(costs, r.Cost)
			}
		}
		fmt.Fprintf(b, "Cost: best=%f worst=%f mean=%.2f std=%.2f\n",
			s.Best.TotalCost, floats.Max(costs), s.CostMean, s.CostStd)
	}
	fmt.Fprintf(b, "Time: mean=%.2fms std=%.2fms", s.TimeMean, s.TimeStd)
	return b.String()
}
