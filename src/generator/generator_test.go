package main

import (
	"math/rand"
	"strings"
	"testing"

	"cflp_grasp/src/cflp"
)

func TestGenerateCFLPInstance(t *testing.T) {
	const numFacilities, numClients, ratio = 6, 20, 2.5

	out := GenerateCFLPInstance(numFacilities, numClients, ratio, rand.New(rand.NewSource(3)))
	inst, err := cflp.ParseInstance(strings.NewReader(out))
	if err != nil {
		t.Fatalf("generated instance does not parse: %v", err)
	}
	if inst.NumFacilities != numFacilities || inst.NumClients != numClients {
		t.Fatalf("dims = %d x %d", inst.NumFacilities, inst.NumClients)
	}
	if err := inst.Validate(); err != nil {
		t.Fatal(err)
	}

	want := ratio * inst.TotalDemand()
	if got := inst.TotalCapacity(); got < want || got > want+numFacilities {
		t.Errorf("total capacity %f, want about %f", got, want)
	}
}

func TestGenerateCFLPInstanceReproducible(t *testing.T) {
	a := GenerateCFLPInstance(3, 5, 2, rand.New(rand.NewSource(8)))
	b := GenerateCFLPInstance(3, 5, 2, rand.New(rand.NewSource(8)))
	if a != b {
		t.Error("same seed, different instances")
	}
}
