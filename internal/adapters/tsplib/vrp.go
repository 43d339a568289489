package tsplib

import (
	"bufio"
	"cvrp-route-service/internal/domain"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrFormat reports input that does not follow the CVRPLIB layout.
var ErrFormat = errors.New("tsplib: bad format")

// ParseInstance reads a CVRPLIB .vrp instance.
//
// Header lines up to NODE_COORD_SECTION may carry NAME, CAPACITY and
// EDGE_WEIGHT_TYPE (only EUC_2D is accepted when present). Node ids from the
// file are mapped to 0-based indices in order of appearance in the
// coordinate section; demands and the depot are resolved through that map.
func ParseInstance(r io.Reader) (*domain.Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inst := &domain.Instance{}
	lineNo := 0
	next := func() (string, bool) {
		for sc.Scan() {
			lineNo++
			line := strings.TrimSpace(sc.Text())
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	capacitySeen := false
	for {
		line, ok := next()
		if !ok {
			return nil, fmt.Errorf("%w: missing NODE_COORD_SECTION", ErrFormat)
		}
		if strings.HasPrefix(line, "NODE_COORD_SECTION") {
			break
		}

		key, value := headerField(line)
		switch key {
		case "NAME":
			inst.Name = value
		case "CAPACITY":
			c, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: capacity %q: %v", ErrFormat, lineNo, value, err)
			}
			inst.Capacity = c
			capacitySeen = true
		case "EDGE_WEIGHT_TYPE":
			if value != "EUC_2D" {
				return nil, fmt.Errorf("%w: line %d: unsupported edge weight type %q", ErrFormat, lineNo, value)
			}
		}
	}
	if !capacitySeen {
		return nil, fmt.Errorf("%w: missing CAPACITY", ErrFormat)
	}

	index := map[int]int{}
	var line string
	for {
		var ok bool
		line, ok = next()
		if !ok {
			return nil, fmt.Errorf("%w: missing DEMAND_SECTION", ErrFormat)
		}
		if strings.HasPrefix(line, "DEMAND_SECTION") {
			break
		}

		f := strings.Fields(line)
		if len(f) < 3 {
			return nil, fmt.Errorf("%w: line %d: coordinate row needs id x y", ErrFormat, lineNo)
		}
		id, err := strconv.Atoi(f[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: node id %q: %v", ErrFormat, lineNo, f[0], err)
		}
		x, errX := strconv.ParseFloat(f[1], 64)
		y, errY := strconv.ParseFloat(f[2], 64)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("%w: line %d: bad coordinates for node %d", ErrFormat, lineNo, id)
		}
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("%w: line %d: duplicate node id %d", ErrFormat, lineNo, id)
		}

		index[id] = len(inst.Coords)
		inst.Coords = append(inst.Coords, domain.Point{X: x, Y: y})
	}

	inst.Demand = make([]float64, len(inst.Coords))
	for {
		var ok bool
		line, ok = next()
		if !ok {
			return nil, fmt.Errorf("%w: missing DEPOT_SECTION", ErrFormat)
		}
		if strings.HasPrefix(line, "DEPOT_SECTION") {
			break
		}

		f := strings.Fields(line)
		if len(f) < 2 {
			return nil, fmt.Errorf("%w: line %d: demand row needs id demand", ErrFormat, lineNo)
		}
		pos, err := lookup(index, f[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, lineNo, err)
		}
		d, err := strconv.ParseFloat(f[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: demand %q: %v", ErrFormat, lineNo, f[1], err)
		}
		inst.Demand[pos] = d
	}

	line, ok := next()
	if !ok {
		return nil, fmt.Errorf("%w: empty DEPOT_SECTION", ErrFormat)
	}
	depot, err := lookup(index, strings.Fields(line)[0])
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: depot: %v", ErrFormat, lineNo, err)
	}
	inst.Depot = depot

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("tsplib: read instance: %w", err)
	}

	return inst, nil
}

// LoadInstanceFile parses path. The instance name falls back to the file
// name without extension when the NAME header is missing.
func LoadInstanceFile(path string) (*domain.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load instance %q: %w", path, err)
	}
	defer f.Close()

	inst, err := ParseInstance(f)
	if err != nil {
		return nil, fmt.Errorf("load instance %q: %w", path, err)
	}
	if inst.Name == "" {
		inst.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return inst, nil
}

// headerField splits "KEY : value" and "KEY: value" header lines.
func headerField(line string) (string, string) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		f := strings.Fields(line)
		if len(f) == 0 {
			return "", ""
		}
		return f[0], f[len(f)-1]
	}
	return strings.TrimSpace(key), strings.TrimSpace(value)
}

func lookup(index map[int]int, field string) (int, error) {
	id, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("node id %q: %v", field, err)
	}
	pos, ok := index[id]
	if !ok {
		return 0, fmt.Errorf("unknown node id %d", id)
	}
	return pos, nil
}
