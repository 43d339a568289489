package domain

import (
	"fmt"
	"math"
)

// Instance is a single-depot CVRP instance.
//
// Nodes are identified by their index into the parallel Coords and Demand
// arrays. The depot is one of those indices; every other index is a customer.
// An Instance is read-only while heuristics run on it.
//
// Reference optionally holds a known good solution. It is only used to
// report how far a heuristic is from it and is never read by a heuristic.
type Instance struct {
	Name      string
	Coords    []Point
	Demand    []float64
	Capacity  float64
	Depot     int
	Reference Solution
}

// Number of nodes, depot included.
func (in *Instance) Len() int { return len(in.Coords) }

// Customers returns the non-depot node indices in ascending order.
func (in *Instance) Customers() []int {
	out := make([]int, 0, len(in.Coords))
	for i := range in.Coords {
		if i != in.Depot {
			out = append(out, i)
		}
	}
	return out
}

// Load sums the demand of the given nodes in order.
func (in *Instance) Load(nodes []int) float64 {
	total := 0.0
	for _, v := range nodes {
		total += in.Demand[v]
	}
	return total
}

// Validate checks the structural invariants first and then that every
// customer fits into an empty vehicle.
func (in *Instance) Validate() error {
	if err := in.validateShape(); err != nil {
		return err
	}
	return in.CheckServiceable()
}

func (in *Instance) validateShape() error {
	n := len(in.Coords)
	if n == 0 {
		return fmt.Errorf("%w: no nodes", ErrMalformedInstance)
	}
	if len(in.Demand) != n {
		return fmt.Errorf("%w: %d coordinates but %d demands", ErrMalformedInstance, n, len(in.Demand))
	}
	if in.Depot < 0 || in.Depot >= n {
		return fmt.Errorf("%w: depot index %d out of range [0, %d)", ErrMalformedInstance, in.Depot, n)
	}
	if !(in.Capacity > 0) || math.IsInf(in.Capacity, 0) {
		return fmt.Errorf("%w: capacity must be positive and finite, got %g", ErrMalformedInstance, in.Capacity)
	}

	for i, p := range in.Coords {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return fmt.Errorf("%w: node %d has non-finite coordinates", ErrMalformedInstance, i)
		}
	}

	for i, d := range in.Demand {
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			return fmt.Errorf("%w: node %d has invalid demand %g", ErrMalformedInstance, i, d)
		}
	}

	if in.Demand[in.Depot] != 0 {
		return fmt.Errorf("%w: depot %d has non-zero demand %g", ErrMalformedInstance, in.Depot, in.Demand[in.Depot])
	}

	return nil
}

// CheckServiceable reports the lowest-indexed customer whose demand exceeds
// capacity. A demand of exactly capacity is serviceable.
func (in *Instance) CheckServiceable() error {
	for i, d := range in.Demand {
		if i == in.Depot {
			continue
		}
		if d > in.Capacity {
			return fmt.Errorf("%w: node %d demand %g exceeds capacity %g", ErrInfeasibleNode, i, d, in.Capacity)
		}
	}
	return nil
}
