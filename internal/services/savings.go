package services

import (
	"cmp"
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/ports"
	"errors"
	"fmt"
	"slices"
)

// Saving scores linking customer I directly to customer J instead of
// returning to the depot in between.
type Saving struct {
	I, J  int
	Value float64
}

// savingsRoute is a live or retired route in the merge loop.
// Nodes exclude the depot at both ends.
type savingsRoute struct {
	nodes   []int
	retired bool
}

func (r *savingsRoute) first() int { return r.nodes[0] }
func (r *savingsRoute) last() int  { return r.nodes[len(r.nodes)-1] }

// ComputeSavings scores every ordered pair of distinct customers:
//
//	s(i, j) = d(i, depot) + d(depot, j) - d(i, j)
//
// and returns them sorted by descending value. The sort is stable over the
// row-major enumeration of (i, j), so equal savings keep generation order.
// Negative savings are kept.
func ComputeSavings(inst *domain.Instance, dist ports.DistanceProvider) []Saving {
	customers := inst.Customers()
	depot := inst.Depot

	pairs := make([]Saving, 0, len(customers)*(len(customers)-1))
	for _, i := range customers {
		for _, j := range customers {
			if i == j {
				continue
			}
			value := dist.Distance(i, depot) + dist.Distance(depot, j) - dist.Distance(i, j)
			pairs = append(pairs, Saving{I: i, J: j, Value: value})
		}
	}

	slices.SortStableFunc(pairs, func(a, b Saving) int {
		return cmp.Compare(b.Value, a.Value)
	})

	return pairs
}

// Build a CVRP solution using the Clarke-Wright savings heuristic.
//
// Every customer starts on its own depot round trip. Pairs are processed in
// descending savings order and two routes are concatenated when their
// combined load fits the capacity and the pair sits on the joinable ends:
// i last on its route and j first on the other (route(i) + route(j)), or
// failing that j last and i first (route(j) + route(i)). Any other pair is
// dropped for good.
//
// Routes are returned in creation order: untouched singletons in customer
// order, each merged route after every route that existed before it.
func Savings(inst *domain.Instance, dist ports.DistanceProvider) (domain.Solution, error) {
	if inst == nil || dist == nil {
		return nil, errors.New("savings: instance and distance provider must be non-nil")
	}

	if err := inst.CheckServiceable(); err != nil {
		return nil, fmt.Errorf("savings: %w", err)
	}

	sol, _ := mergeSavings(inst, ComputeSavings(inst, dist))
	return sol, nil
}

// mergeSavings runs the merge loop over pairs and also reports how many
// merges took place.
func mergeSavings(inst *domain.Instance, pairs []Saving) (domain.Solution, int) {
	customers := inst.Customers()

	routes := make([]*savingsRoute, 0, 2*len(customers))
	owner := make([]*savingsRoute, inst.Len())
	for _, c := range customers {
		r := &savingsRoute{nodes: []int{c}}
		routes = append(routes, r)
		owner[c] = r
	}

	merges := 0
	for _, s := range pairs {
		route1, route2 := owner[s.I], owner[s.J]
		if route1 == nil || route2 == nil || route1 == route2 {
			continue
		}

		if inst.Load(route1.nodes)+inst.Load(route2.nodes) > inst.Capacity {
			continue
		}

		var merged []int
		switch {
		case route1.last() == s.I && route2.first() == s.J:
			merged = concat(route1.nodes, route2.nodes)
		case route2.last() == s.J && route1.first() == s.I:
			merged = concat(route2.nodes, route1.nodes)
		default:
			continue
		}

		route1.retired = true
		route2.retired = true
		merges++

		r := &savingsRoute{nodes: merged}
		routes = append(routes, r)
		for _, v := range merged {
			owner[v] = r
		}
	}

	solution := domain.Solution{}
	for _, r := range routes {
		if r.retired {
			continue
		}
		solution = append(solution, domain.Route(r.nodes))
	}

	return solution, merges
}

func concat(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
