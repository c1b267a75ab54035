package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cflp_grasp/src/cflp"
)

// selectInstance resolves the instance to solve from -name, or asks the user
// to pick one from -dir. The returned iteration count is 0 when it was not
// prompted for.
func selectInstance(opts *options, in io.Reader, out io.Writer) (string, int, error) {
	instances, err := cflp.ReadOptions(opts.dir)
	if err != nil {
		return "", 0, err
	}
	if len(instances) == 0 {
		return "", 0, fmt.Errorf("no instances in %s", opts.dir)
	}

	if opts.name != "" {
		o, ok := cflp.FindOption(instances, opts.name)
		if !ok {
			return "", 0, fmt.Errorf("no instance named %q in %s", opts.name, opts.dir)
		}
		return o.Path, 0, nil
	}

	scanner := bufio.NewScanner(in)
	o, err := display(instances, scanner, out)
	if err != nil {
		return "", 0, err
	}
	iter, err := readIterations(scanner, out)
	if err != nil {
		return "", 0, err
	}
	return o.Path, iter, nil
}

func readLine(scanner *bufio.Scanner) (string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", errors.New("unexpected end of input")
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func display(instances []cflp.Option, scanner *bufio.Scanner, out io.Writer) (cflp.Option, error) {
	fmt.Fprintln(out, "Select an instance:")
	for i, o := range instances {
		fmt.Fprintf(out, "%d: %v\n", i+1, o)
	}

	for {
		fmt.Fprint(out, "Enter your choice: ")
		line, err := readLine(scanner)
		if err != nil {
			return cflp.Option{}, err
		}
		choice, err := strconv.Atoi(line)
		if err != nil || choice < 1 || choice > len(instances) {
			fmt.Fprintln(out, "Invalid choice.")
			continue
		}
		selected := instances[choice-1]
		fmt.Fprintf(out, "Selected %v\n", selected)
		return selected, nil
	}
}

func readIterations(scanner *bufio.Scanner, out io.Writer) (int, error) {
	for {
		fmt.Fprint(out, "Enter the maximum number of iterations: ")
		line, err := readLine(scanner)
		if err != nil {
			return 0, err
		}
		iter, err := strconv.Atoi(line)
		if err != nil || iter <= 0 {
			fmt.Fprintln(out, "Please enter a positive integer.")
			continue
		}
		return iter, nil
	}
}
