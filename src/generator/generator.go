package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strings"
)

type point struct{ X, Y float64 }

func randomPoints(n int, rng *rand.Rand) []point {
	pts := make([]point, n)
	for i := range pts {
		pts[i] = point{rng.Float64(), rng.Float64()}
	}
	return pts
}

// GenerateCFLPInstance draws facilities and clients on the unit square.
// Capacities are rescaled so their total is ratio times the total demand,
// fixed costs grow with the square root of the capacity and unit transport
// costs are ten times the euclidean distance.
func GenerateCFLPInstance(numFacilities, numClients int, ratio float64, rng *rand.Rand) string {
	facilities := randomPoints(numFacilities, rng)
	clients := randomPoints(numClients, rng)

	demand := make([]float64, numClients)
	totalDemand := 0.0
	for c := range demand {
		demand[c] = float64(5 + rng.Intn(31))
		totalDemand += demand[c]
	}

	capacity := make([]float64, numFacilities)
	totalCapacity := 0.0
	for f := range capacity {
		capacity[f] = float64(10 + rng.Intn(151))
		totalCapacity += capacity[f]
	}
	scale := ratio * totalDemand / totalCapacity
	for f := range capacity {
		capacity[f] = math.Ceil(capacity[f] * scale)
	}

	s := new(strings.Builder)
	fmt.Fprintf(s, "%d %d\n\n", numFacilities, numClients)

	s.WriteString("param capacity :=\n")
	for f, v := range capacity {
		fmt.Fprintf(s, "%d %g\n", f+1, v)
	}
	s.WriteString(";\n\n")

	s.WriteString("param in_cost :=\n")
	for f, v := range capacity {
		fixed := float64(rng.Intn(91)) + float64(100+rng.Intn(11))*math.Sqrt(v)
		fmt.Fprintf(s, "%d %.2f\n", f+1, fixed)
	}
	s.WriteString(";\n\n")

	s.WriteString("param demand :=\n")
	for c, v := range demand {
		fmt.Fprintf(s, "%d %g\n", c+1, v)
	}
	s.WriteString(";\n\n")

	s.WriteString("param cost :")
	for f := range numFacilities {
		fmt.Fprintf(s, " %d", f+1)
	}
	s.WriteString(" :=\n")
	for c, cp := range clients {
		fmt.Fprintf(s, "%d", c+1)
		for _, fp := range facilities {
			fmt.Fprintf(s, " %.4f", 10*math.Hypot(cp.X-fp.X, cp.Y-fp.Y))
		}
		s.WriteRune('\n')
	}
	s.WriteString(";\n")
	return s.String()
}

func main() {
	var outPath string
	var numFacilities, numClients int
	var ratio float64
	var seed int64

	flag.StringVar(&outPath, "out", "out.txt", "The output file")
	flag.IntVar(&numFacilities, "facilities", 0, "The number of facilities")
	flag.IntVar(&numClients, "clients", 0, "The number of clients")
	flag.Float64Var(&ratio, "ratio", 3, "The ratio between total capacity and total demand")
	flag.Int64Var(&seed, "seed", 1, "The seed of the random generator")

	flag.Parse()

	err := false
	if numFacilities == 0 {
		fmt.Fprintln(os.Stderr, "Must specify the number of facilities")
		err = true
	}
	if numClients == 0 {
		fmt.Fprintln(os.Stderr, "Must specify the number of clients")
		err = true
	}
	if ratio <= 0 {
		fmt.Fprintln(os.Stderr, "Must specify a positive capacity ratio")
		err = true
	}

	if err {
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(seed))
	if e := os.WriteFile(
		outPath,
		[]byte(GenerateCFLPInstance(numFacilities, numClients, ratio, rng)),
		0666,
	); e != nil {
		fmt.Fprintln(os.Stderr, e)
		os.Exit(1)
	}
}
