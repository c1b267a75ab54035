package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cflp_grasp/src/cflp"
)

func TestDisplayRetriesInvalidChoices(t *testing.T) {
	instances := []cflp.Option{
		{Name: "a", Path: "a.txt", Dims: []int{2, 3}},
		{Name: "b", Path: "b.txt", Dims: []int{4, 5}},
	}
	out := new(strings.Builder)
	scanner := bufio.NewScanner(strings.NewReader("x\n0\n3\n2\n"))

	o, err := display(instances, scanner, out)
	if err != nil {
		t.Fatal(err)
	}
	if o.Name != "b" {
		t.Errorf("selected %v, want b", o)
	}
	if n := strings.Count(out.String(), "Invalid choice."); n != 3 {
		t.Errorf("%d invalid choices reported, want 3", n)
	}
}

func TestReadIterations(t *testing.T) {
	out := new(strings.Builder)
	iter, err := readIterations(bufio.NewScanner(strings.NewReader("-4\nten\n 12 \n")), out)
	if err != nil {
		t.Fatal(err)
	}
	if iter != 12 {
		t.Errorf("iter = %d, want 12", iter)
	}

	if _, err := readIterations(bufio.NewScanner(strings.NewReader("")), out); err == nil {
		t.Error("expected an error at end of input")
	}
}

func writeInstances(t *testing.T, names ...string) string {
	dir := t.TempDir()
	for _, name := range names {
		content := "1 1\nparam capacity :=\n1 10\n;\n"
		if err := os.WriteFile(filepath.Join(dir, name+".txt"), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestSelectInstance(t *testing.T) {
	dir := writeInstances(t, "first", "second")

	path, iter, err := selectInstance(&options{dir: dir, name: "second"}, strings.NewReader(""), new(strings.Builder))
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "second.txt") || iter != 0 {
		t.Errorf("got %q, %d", path, iter)
	}

	if _, _, err := selectInstance(&options{dir: dir, name: "third"}, strings.NewReader(""), new(strings.Builder)); err == nil {
		t.Error("expected an error for an unknown name")
	}

	path, iter, err = selectInstance(&options{dir: dir}, strings.NewReader("1\n30\n"), new(strings.Builder))
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "first.txt") || iter != 30 {
		t.Errorf("got %q, %d", path, iter)
	}

	if _, _, err := selectInstance(&options{dir: t.TempDir()}, strings.NewReader(""), new(strings.Builder)); err == nil {
		t.Error("expected an error for an empty directory")
	}
}
