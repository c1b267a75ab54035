package cflp

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// SolveGRASP runs cfg.Iterations independent construction and local search
// trials, each on a fresh copy of the instance, and keeps the cheapest
// result. When no trial produced a complete construction the result holds
// NoSolution, whose cost is +Inf. Only an invalid configuration is an error.
func (inst *Instance) SolveGRASP(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	rng := rand.New(rand.NewSource(cfg.Seed))
	res := &Result{
		RunID: uuid.NewString(),
		Best:  NoSolution(inst),
	}
	logger := log.WithField("run", res.RunID)

	for i := range cfg.Iterations {
		res.Trials++
		trial := inst.Fresh()

		sol, err := trial.GreedyRandomizedConstruction(rng)
		if err != nil {
			if !errors.Is(err, ErrInfeasibleConstruction) {
				return nil, err
			}
			logger.Debugf("Iteration %d: %v. Skipping...", i+1, err)
			res.Skipped++
			continue
		}
		constructed := sol.TotalCost

		sol, _ = trial.LocalSearch(sol, cfg.FacilityMoveInterval)
		logger.Debugf("Iteration %d: construction %f, local search %f", i+1, constructed, sol.TotalCost)

		if sol.TotalCost < res.Best.TotalCost {
			res.Best = sol
			res.Improved++
			logger.Debugf("Iteration %d: new incumbent %f", i+1, sol.TotalCost)
		}
	}

	res.Duration = time.Since(start)
	if math.IsInf(res.Best.TotalCost, 1) {
		logger.Info("No valid solution found in any iteration")
	} else {
		logger.Infof("Best cost %f after %d iterations (%d skipped) in %v",
			res.Best.TotalCost, res.Trials, res.Skipped, res.Duration)
	}
	return res, nil
}
