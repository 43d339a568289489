package services

import (
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/ports"
	"errors"
	"fmt"
	"math"
)

// Build a CVRP solution using the greedy nearest-neighbour heuristic.
//
// Routes are built one at a time. Each route starts at the depot and is
// extended with the closest unassigned customer whose demand still fits the
// remaining capacity; when no customer fits, the route is closed and a new
// one is opened. Ties on distance go to the lowest node index.
func NearestNeighbor(inst *domain.Instance, dist ports.DistanceProvider) (domain.Solution, error) {
	if inst == nil || dist == nil {
		return nil, errors.New("nearest neighbor: instance and distance provider must be non-nil")
	}

	if err := inst.CheckServiceable(); err != nil {
		return nil, fmt.Errorf("nearest neighbor: %w", err)
	}

	n := inst.Len()
	assigned := make([]bool, n)
	assigned[inst.Depot] = true
	remaining := n - 1

	solution := domain.Solution{}

	for remaining > 0 {
		route := domain.Route{}
		current := inst.Depot
		capacityLeft := inst.Capacity

		for {
			next := -1
			minDistance := math.Inf(1)

			// Ascending scan with a strict comparison keeps the lowest index on ties.
			for candidate := 0; candidate < n; candidate++ {
				if assigned[candidate] || inst.Demand[candidate] > capacityLeft {
					continue
				}
				d := dist.Distance(current, candidate)
				if next == -1 || d < minDistance {
					minDistance = d
					next = candidate
				}
			}

			if next == -1 {
				break
			}

			route = append(route, next)
			assigned[next] = true
			remaining--
			capacityLeft -= inst.Demand[next]
			current = next
		}

		// Only reachable when some customer cannot fit an empty vehicle,
		// which CheckServiceable has already ruled out.
		if len(route) == 0 {
			return nil, fmt.Errorf("nearest neighbor: %w: no remaining customer fits an empty vehicle", domain.ErrInfeasibleNode)
		}

		solution = append(solution, route)
	}

	return solution, nil
}
