package cflp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const eps = 1e-8

var (
	ErrInfeasibleConstruction = errors.New("infeasible construction")
	ErrInvalidInstancePath    = errors.New("invalid instance path")
)

type section int

const (
	sectionNone section = iota
	sectionCapacity
	sectionFixedCost
	sectionDemand
	sectionCost
)

var sectionTags = []struct {
	prefix string
	sec    section
}{
	{"param capacity :=", sectionCapacity},
	{"param in_cost :=", sectionFixedCost},
	{"param demand :=", sectionDemand},
	{"param cost :", sectionCost},
}

func almostZero(v float64) bool {
	return v <= eps && v >= -eps
}

// NewInstance builds an instance from plain slices. costs is indexed
// [client][facility].
func NewInstance(capacity, fixedCosts, demand []float64, costs [][]float64) (*Instance, error) {
	numFacilities := len(capacity)
	numClients := len(demand)
	if numFacilities == 0 {
		return nil, fmt.Errorf("instance has no facilities")
	}
	if numClients == 0 {
		return nil, fmt.Errorf("instance has no clients")
	}
	if len(fixedCosts) != numFacilities {
		return nil, fmt.Errorf("fixed costs length must be %d (got %d)", numFacilities, len(fixedCosts))
	}
	if len(costs) != numClients {
		return nil, fmt.Errorf("cost matrix must have %d rows (got %d)", numClients, len(costs))
	}

	transport := mat.NewDense(numClients, numFacilities, nil)
	for c, row := range costs {
		if len(row) != numFacilities {
			return nil, fmt.Errorf("cost row %d must have %d values (got %d)", c, numFacilities, len(row))
		}
		transport.SetRow(c, row)
	}

	inst := &Instance{
		NumFacilities:   numFacilities,
		NumClients:      numClients,
		Capacity:        mat.NewVecDense(numFacilities, slices.Clone(capacity)),
		InitialCapacity: mat.NewVecDense(numFacilities, slices.Clone(capacity)),
		FixedCosts:      mat.NewVecDense(numFacilities, slices.Clone(fixedCosts)),
		Demand:          mat.NewVecDense(numClients, slices.Clone(demand)),
		InitialDemand:   mat.NewVecDense(numClients, slices.Clone(demand)),
		TransportCosts:  transport,
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	for f := range inst.NumFacilities {
		if inst.InitialCapacity.AtVec(f) < 0 {
			return fmt.Errorf("capacity[%d] must be >= 0 (got %f)", f, inst.InitialCapacity.AtVec(f))
		}
		if inst.FixedCosts.AtVec(f) < 0 {
			return fmt.Errorf("fixed cost[%d] must be >= 0 (got %f)", f, inst.FixedCosts.AtVec(f))
		}
	}
	for c := range inst.NumClients {
		if inst.InitialDemand.AtVec(c) < 0 {
			return fmt.Errorf("demand[%d] must be >= 0 (got %f)", c, inst.InitialDemand.AtVec(c))
		}
	}
	if floats.Min(inst.TransportCosts.RawMatrix().Data) < 0 {
		return errors.New("transport costs must be >= 0")
	}
	return nil
}

// Fresh returns a deep copy whose remaining capacity and demand are reset
// from the initial snapshots.
func (inst *Instance) Fresh() *Instance {
	cp := &Instance{
		NumFacilities:   inst.NumFacilities,
		NumClients:      inst.NumClients,
		Capacity:        mat.VecDenseCopyOf(inst.InitialCapacity),
		InitialCapacity: mat.VecDenseCopyOf(inst.InitialCapacity),
		FixedCosts:      mat.VecDenseCopyOf(inst.FixedCosts),
		Demand:          mat.VecDenseCopyOf(inst.InitialDemand),
		InitialDemand:   mat.VecDenseCopyOf(inst.InitialDemand),
		TransportCosts:  mat.DenseCopyOf(inst.TransportCosts),
	}
	return cp
}

func (inst *Instance) TotalCapacity() float64 {
	return floats.Sum(inst.InitialCapacity.RawVector().Data)
}

func (inst *Instance) TotalDemand() float64 {
	return floats.Sum(inst.InitialDemand.RawVector().Data)
}

// Cost returns the transport cost of one unit from facility f to client c.
func (inst *Instance) Cost(f, c int) float64 {
	return inst.TransportCosts.At(c, f)
}

type instanceParser struct {
	capacity   []float64
	fixedCosts []float64
	demand     []float64
	costs      [][]float64
}

// parseIndexed reads an "<index> <value>" line. Anything else is ignored.
func parseIndexed(fields []string) (float64, bool) {
	if len(fields) != 2 {
		return 0, false
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseCostRow(fields []string) ([]float64, bool) {
	if len(fields) < 2 {
		return nil, false
	}
	row := make([]float64, len(fields)-1)
	for i, tok := range fields[1:] {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, false
		}
		row[i] = v
	}
	return row, true
}

func (p *instanceParser) parse(r io.Reader) error {
	current := sectionNone
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

scan:
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		for _, tag := range sectionTags {
			if strings.HasPrefix(line, tag.prefix) {
				current = tag.sec
				continue scan
			}
		}
		if line == ";" {
			current = sectionNone
			continue
		}

		fields := strings.Fields(line)
		switch current {
		case sectionCapacity:
			if v, ok := parseIndexed(fields); ok {
				p.capacity = append(p.capacity, v)
			}
		case sectionFixedCost:
			if v, ok := parseIndexed(fields); ok {
				p.fixedCosts = append(p.fixedCosts, v)
			}
		case sectionDemand:
			if v, ok := parseIndexed(fields); ok {
				p.demand = append(p.demand, v)
			}
		case sectionCost:
			if row, ok := parseCostRow(fields); ok {
				p.costs = append(p.costs, row)
			}
		}
	}
	return scanner.Err()
}

func ParseInstance(r io.Reader) (*Instance, error) {
	p := new(instanceParser)
	if err := p.parse(r); err != nil {
		return nil, fmt.Errorf("Error while reading instance: %w", err)
	}
	return NewInstance(p.capacity, p.fixedCosts, p.demand, p.costs)
}

func LoadInstance(filename string) (*Instance, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	inst, err := ParseInstance(file)
	if err != nil {
		return nil, fmt.Errorf("instance %q: %w", filename, err)
	}
	return inst, nil
}
