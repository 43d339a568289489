package services

import (
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/ports"
	"errors"
	"fmt"
)

// TotalDistance sums, over all routes, the depot -> first leg, the legs
// between consecutive customers and the last -> depot leg.
// Empty routes contribute nothing.
func TotalDistance(inst *domain.Instance, dist ports.DistanceProvider, sol domain.Solution) float64 {
	total := 0.0
	for _, route := range sol {
		if len(route) == 0 {
			continue
		}
		d := dist.Distance(inst.Depot, route[0])
		for k := 0; k < len(route)-1; k++ {
			d += dist.Distance(route[k], route[k+1])
		}
		d += dist.Distance(route[len(route)-1], inst.Depot)
		total += d
	}
	return total
}

// CheckSolution verifies that sol partitions the customers of inst into
// non-empty routes that each respect the vehicle capacity.
func CheckSolution(inst *domain.Instance, sol domain.Solution) error {
	if inst == nil {
		return errors.New("check solution: instance must be non-nil")
	}

	seen := make([]bool, inst.Len())
	for ri, route := range sol {
		if len(route) == 0 {
			return fmt.Errorf("check solution: route %d is empty", ri)
		}

		for _, v := range route {
			if v < 0 || v >= inst.Len() {
				return fmt.Errorf("check solution: route %d: node %d out of range", ri, v)
			}
			if v == inst.Depot {
				return fmt.Errorf("check solution: route %d: depot %d inside route", ri, v)
			}
			if seen[v] {
				return fmt.Errorf("check solution: route %d: node %d visited twice", ri, v)
			}
			seen[v] = true
		}

		if load := inst.Load(route); load > inst.Capacity {
			return fmt.Errorf("check solution: route %d: load %g exceeds capacity %g", ri, load, inst.Capacity)
		}
	}

	for v, ok := range seen {
		if !ok && v != inst.Depot {
			return fmt.Errorf("check solution: node %d not visited", v)
		}
	}

	return nil
}

// Gap returns how much longer found is than reference, in percent.
// The second result is false when reference is not positive.
func Gap(found, reference float64) (float64, bool) {
	if reference <= 0 {
		return 0, false
	}
	return 100 * (found - reference) / reference, true
}
