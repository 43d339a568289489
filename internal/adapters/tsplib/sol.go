package tsplib

import (
	"bufio"
	"cvrp-route-service/internal/domain"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseSolution reads a CVRPLIB .sol file: consecutive "Route #k: a b c"
// lines, optionally followed by "Cost N". Route entries are node indices
// with the depot omitted, the same shape the heuristics produce. Reading
// stops at the first line that is not a route. The cost is 0 when absent.
func ParseSolution(r io.Reader) (domain.Solution, float64, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	sol := domain.Solution{}
	cost := 0.0
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, "Route") {
			if f := strings.Fields(line); len(f) == 2 && strings.EqualFold(f[0], "cost") {
				c, err := strconv.ParseFloat(f[1], 64)
				if err != nil {
					return nil, 0, fmt.Errorf("%w: line %d: cost %q: %v", ErrFormat, lineNo, f[1], err)
				}
				cost = c
			}
			break
		}

		_, body, ok := strings.Cut(line, ":")
		if !ok {
			return nil, 0, fmt.Errorf("%w: line %d: route line without ':'", ErrFormat, lineNo)
		}

		route := domain.Route{}
		for _, field := range strings.Fields(body) {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, 0, fmt.Errorf("%w: line %d: node %q: %v", ErrFormat, lineNo, field, err)
			}
			route = append(route, v)
		}
		if len(route) == 0 {
			return nil, 0, fmt.Errorf("%w: line %d: empty route", ErrFormat, lineNo)
		}
		sol = append(sol, route)
	}

	if err := sc.Err(); err != nil {
		return nil, 0, fmt.Errorf("tsplib: read solution: %w", err)
	}

	return sol, cost, nil
}

func LoadSolutionFile(path string) (domain.Solution, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("load solution %q: %w", path, err)
	}
	defer f.Close()

	sol, cost, err := ParseSolution(f)
	if err != nil {
		return nil, 0, fmt.Errorf("load solution %q: %w", path, err)
	}
	return sol, cost, nil
}

// WriteSolution writes sol in the same layout ParseSolution reads.
func WriteSolution(w io.Writer, sol domain.Solution, cost float64) error {
	bw := bufio.NewWriter(w)
	for i, route := range sol {
		fmt.Fprintf(bw, "Route #%d:", i+1)
		for _, v := range route {
			fmt.Fprintf(bw, " %d", v)
		}
		bw.WriteByte('\n')
	}
	fmt.Fprintf(bw, "Cost %s\n", strconv.FormatFloat(cost, 'f', -1, 64))
	return bw.Flush()
}
