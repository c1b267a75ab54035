package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"cflp_grasp/src/cflp"
	"cflp_grasp/src/exact"
	"cflp_grasp/src/exact/mip"
)

type options struct {
	paths      []string
	dir        string
	name       string
	configPath string
	refPath    string
	exactName  string
	bound      bool
	lagrange   bool
	runs       int
	verbose    bool
	trace      bool
}

func main() {
	var opts options
	cfg := cflp.DefaultConfig()
	var iterations, interval int
	var seed int64

	flag.Func("inst", "a list of instance file paths, separated by a whitespace", func(s string) error {
		opts.paths = strings.Fields(s)
		return nil
	})
	flag.StringVar(&opts.dir, "dir", "instances", "The directory holding the instances")
	flag.StringVar(&opts.name, "name", "", "The name of an instance in -dir")
	flag.StringVar(&opts.configPath, "config", "", "A YAML file with the GRASP parameters")
	flag.IntVar(&iterations, "iter", cfg.Iterations, "The number of GRASP iterations")
	flag.Int64Var(&seed, "seed", cfg.Seed, "The seed of the random generator")
	flag.IntVar(&interval, "interval", cfg.FacilityMoveInterval, "Run a facility opening/closing pass every this many local search iterations")
	flag.IntVar(&opts.runs, "runs", 1, "Repeat GRASP with consecutive seeds and report statistics")
	flag.StringVar(&opts.exactName, "exact", "", "Also solve exactly with \"highs\" or \"lpsolve\"")
	flag.BoolVar(&opts.bound, "bound", false, "Compute the LP relaxation lower bound (with -exact backend, default highs)")
	flag.BoolVar(&opts.lagrange, "lagrange", false, "Compute the Lagrangian lower bound, no external solver needed")
	flag.StringVar(&opts.refPath, "ref", "", "A results file with a reference solution to compare against")
	flag.BoolVar(&opts.verbose, "v", false, "Log every GRASP iteration")
	flag.BoolVar(&opts.trace, "vv", false, "Log every accepted local search move")

	flag.Parse()

	switch {
	case opts.trace:
		log.SetLevel(log.TraceLevel)
	case opts.verbose:
		log.SetLevel(log.DebugLevel)
	default:
		log.SetLevel(log.WarnLevel)
	}

	if opts.configPath != "" {
		loaded, err := cflp.LoadConfig(opts.configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "iter":
			cfg.Iterations = iterations
		case "seed":
			cfg.Seed = seed
		case "interval":
			cfg.FacilityMoveInterval = interval
		}
	})

	if opts.runs <= 0 {
		fmt.Fprintln(os.Stderr, "Must specify a positive number of runs")
		os.Exit(1)
	}

	if len(opts.paths) == 0 {
		path, iter, err := selectInstance(&opts, os.Stdin, os.Stdout)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		opts.paths = []string{path}
		if iter > 0 {
			cfg.Iterations = iter
		}
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
		os.Exit(1)
	}

	var solver exact.Solver
	if opts.exactName != "" || opts.bound {
		name := opts.exactName
		if name == "" {
			name = "highs"
		}
		s, err := exact.NewSolver(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		solver = s
	}

	for _, p := range opts.paths {
		inst, err := cflp.LoadInstance(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error for instance \"%v\": %v. Skipping...\n", p, err)
			continue
		}
		solveInstance(p, inst, cfg, &opts, solver)
		fmt.Println()
	}
}

func solveInstance(path string, inst *cflp.Instance, cfg cflp.Config, opts *options, solver exact.Solver) {
	fmt.Printf("Solving %v (%d facilities, %d clients) with %d iterations...\n",
		path, inst.NumFacilities, inst.NumClients, cfg.Iterations)

	var best *cflp.Solution
	if opts.runs > 1 {
		s, err := runMany(inst, cfg, opts.runs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "An error occured while running GRASP on instance \"%v\": %v\n", path, err)
			return
		}
		fmt.Println(s)
		best = s.Best
	} else {
		res, err := inst.SolveGRASP(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "An error occured while running GRASP on instance \"%v\": %v\n", path, err)
			return
		}
		fmt.Printf("Run %s: %d iterations, %d skipped, %v\n", res.RunID, res.Trials, res.Skipped, res.Duration)
		best = res.Best
	}

	if math.IsInf(best.TotalCost, 1) {
		fmt.Println("GRASP did not find a valid solution.")
		return
	}
	fmt.Printf("Instance %v:\n%v", path, best)

	if opts.refPath != "" {
		ref, err := cflp.LoadReference(opts.refPath, inst)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error for reference \"%v\": %v\n", opts.refPath, err)
		} else if ref.Solution.Len() > 0 {
			fmt.Printf("Reference cost: %f, gap: %.4f%%\n",
				ref.Solution.TotalCost, 100*mip.Gap(best.TotalCost, ref.Solution.TotalCost))
		}
		if err == nil && len(ref.Open) > 0 {
			diff := best.OpenFacilities().SymmetricDifference(ref.OpenFacilities())
			fmt.Printf("Facilities opened differently from the reference: %d\n", diff.Cardinality())
		}
	}

	if opts.lagrange {
		b := mip.LagrangianBound(inst, best.TotalCost)
		fmt.Printf("Lagrangian lower bound: %f (%d rounds), gap: %.4f%%\n",
			b.Value, b.Rounds, 100*mip.Gap(best.TotalCost, b.Value))
	}

	if solver == nil {
		return
	}
	if opts.bound {
		lb, err := solver.LowerBound(inst)
		if err != nil {
			fmt.Fprintf(os.Stderr, "An error occured while computing the lower bound of \"%v\": %v\n", path, err)
		} else {
			fmt.Printf("LP lower bound: %f, gap: %.4f%%\n", lb, 100*mip.Gap(best.TotalCost, lb))
		}
	}
	if opts.exactName != "" {
		sol, err := solver.Solve(inst)
		if errors.Is(err, exact.ErrNoSolution) {
			fmt.Printf("Exact solver: %v\n", err)
		} else if err != nil {
			fmt.Fprintf(os.Stderr, "An error occured while solving exactly instance \"%v\": %v\n", path, err)
		} else {
			fmt.Printf("Exact optimum: %f, gap: %.4f%%\n", sol.TotalCost, 100*mip.Gap(best.TotalCost, sol.TotalCost))
		}
	}
}
