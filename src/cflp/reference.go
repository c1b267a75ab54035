package cflp

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

var (
	openSectionRe       = regexp.MustCompile(`open \[\*\] :=([\s\S]*?);`)
	proportionSectionRe = regexp.MustCompile(`proportion \[\*\] :=([\s\S]*?);`)
)

// Reference is a known solution read from a results file. Indices in the
// file are 1-based; Open and Solution use the 0-based indices of Instance.
type Reference struct {
	Open     map[int]bool
	Solution *Solution
}

// ParseReference reads the "open" and "proportion" sections of a results
// file. A proportion is the fraction of a client's demand served by a
// facility, so quantities are scaled by the initial demands of inst.
func ParseReference(content string, inst *Instance) (*Reference, error) {
	ref := &Reference{
		Open:     make(map[int]bool),
		Solution: NewSolution(inst.NumFacilities, inst.NumClients),
	}

	if m := openSectionRe.FindStringSubmatch(content); m != nil {
		fields := strings.Fields(m[1])
		for i := 0; i+1 < len(fields); i += 2 {
			f, err1 := strconv.Atoi(fields[i])
			state, err2 := strconv.Atoi(fields[i+1])
			if err1 != nil || err2 != nil {
				continue
			}
			ref.Open[f-1] = state != 0
		}
	}

	if m := proportionSectionRe.FindStringSubmatch(content); m != nil {
		for _, line := range strings.Split(strings.TrimSpace(m[1]), "\n") {
			fields := strings.Fields(line)
			if len(fields) < 2 {
				continue
			}
			f, err := strconv.Atoi(fields[0])
			if err != nil {
				continue
			}
			f--
			if f < 0 || f >= inst.NumFacilities {
				return nil, fmt.Errorf("facility %d out of range [1,%d]", f+1, inst.NumFacilities)
			}
			for c, tok := range fields[1:] {
				v, err := strconv.ParseFloat(tok, 64)
				if err != nil || v <= 0 {
					continue
				}
				if c >= inst.NumClients {
					return nil, fmt.Errorf("facility %d row has more than %d clients", f+1, inst.NumClients)
				}
				ref.Solution.Add(f, c, v*inst.InitialDemand.AtVec(c))
			}
		}
	}

	if ref.Solution.Len() > 0 {
		inst.Evaluate(ref.Solution)
	}
	return ref, nil
}

// OpenFacilities returns the facilities flagged open in the results file.
func (ref *Reference) OpenFacilities() mapset.Set[int] {
	open := mapset.NewThreadUnsafeSet[int]()
	for f, isOpen := range ref.Open {
		if isOpen {
			open.Add(f)
		}
	}
	return open
}

func LoadReference(path string, inst *Instance) (*Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ref, err := ParseReference(string(data), inst)
	if err != nil {
		return nil, fmt.Errorf("reference %q: %w", path, err)
	}
	return ref, nil
}
