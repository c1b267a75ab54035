package cflp

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Option is an instance file found by ReadOptions.
type Option struct {
	Name string
	Path string
	Dims []int
}

func (o Option) String() string {
	return fmt.Sprintf("%s (Dimension: %v)", o.Name, o.Dims)
}

func readDims(path string) ([]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
lines:
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] < '0' || line[0] > '9' {
			continue
		}
		fields := strings.Fields(line)
		dims := make([]int, len(fields))
		for i, tok := range fields {
			v, err := strconv.Atoi(tok)
			if err != nil {
				continue lines
			}
			dims[i] = v
		}
		return dims, nil
	}
	return nil, scanner.Err()
}

// ReadOptions lists the instance files of dir sorted by name. The dimension
// of each one is its first purely numeric line, nil when there is none.
func ReadOptions(dir string) ([]Option, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidInstancePath, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	options := make([]Option, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		dims, err := readDims(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		options = append(options, Option{
			Name: strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			Path: path,
			Dims: dims,
		})
	}
	slices.SortFunc(options, func(a, b Option) int {
		return strings.Compare(a.Name, b.Name)
	})
	return options, nil
}

// FindOption returns the option called name.
func FindOption(options []Option, name string) (Option, bool) {
	i := slices.IndexFunc(options, func(o Option) bool { return o.Name == name })
	if i < 0 {
		return Option{}, false
	}
	return options[i], true
}
