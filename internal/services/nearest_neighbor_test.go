package services

import (
	"cvrp-route-service/internal/adapters/distance"
	"cvrp-route-service/internal/domain"
	"errors"
	"reflect"
	"testing"
)

func TestNearestNeighborSquareSingleRoute(t *testing.T) {
	inst := squareInstance()

	sol, err := NearestNeighbor(inst, euclid(inst))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// All corners tie from the depot, so node 1 goes first; from there 2 and 4
	// tie and the lower index wins.
	assertSolution(t, sol, domain.Solution{{1, 2, 3, 4}})
}

func TestNearestNeighborOpensRouteWhenFull(t *testing.T) {
	inst := lineInstance()

	sol, err := NearestNeighbor(inst, euclid(inst))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertSolution(t, sol, domain.Solution{{1, 2}, {3}})
}

func TestNearestNeighborSkipsCandidatesThatDoNotFit(t *testing.T) {
	// Node 1 is closest but too heavy once node 2 is loaded; node 3 still fits.
	inst := &domain.Instance{
		Coords:   []domain.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 0}, {X: 5, Y: 0}},
		Demand:   []float64{0, 8, 3, 1},
		Capacity: 10,
	}

	sol, err := NearestNeighbor(inst, euclid(inst))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertSolution(t, sol, domain.Solution{{2, 3}, {1}})
}

func TestNearestNeighborZeroDemandCustomer(t *testing.T) {
	inst := &domain.Instance{
		Coords:   []domain.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 9, Y: 0}},
		Demand:   []float64{0, 5, 0},
		Capacity: 5,
	}

	sol, err := NearestNeighbor(inst, euclid(inst))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Capacity is exhausted after node 1, yet node 2 still fits.
	assertSolution(t, sol, domain.Solution{{1, 2}})
}

func TestNearestNeighborDepotNotFirst(t *testing.T) {
	inst := &domain.Instance{
		Coords:   []domain.Point{{X: 3, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}},
		Demand:   []float64{1, 1, 0},
		Capacity: 1,
		Depot:    2,
	}

	sol, err := NearestNeighbor(inst, euclid(inst))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertSolution(t, sol, domain.Solution{{1}, {0}})
}

func TestNearestNeighborTieBreakUsesLowestIndex(t *testing.T) {
	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: 0, To: 1, Distance: 5},
		{From: 0, To: 2, Distance: 3},
		{From: 0, To: 3, Distance: 3},
		{From: 1, To: 2, Distance: 4},
		{From: 1, To: 3, Distance: 4},
		{From: 2, To: 3, Distance: 7},
	})
	inst := &domain.Instance{
		Coords:   make([]domain.Point, 4),
		Demand:   []float64{0, 1, 1, 1},
		Capacity: 3,
	}

	sol, err := NearestNeighbor(inst, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertSolution(t, sol, domain.Solution{{2, 1, 3}})
}

func TestNearestNeighborInfeasibleNode(t *testing.T) {
	inst := &domain.Instance{
		Coords:   []domain.Point{{X: 0, Y: 0}, {X: 1, Y: 0}},
		Demand:   []float64{0, 11},
		Capacity: 10,
	}

	_, err := NearestNeighbor(inst, euclid(inst))
	if !errors.Is(err, domain.ErrInfeasibleNode) {
		t.Fatalf("err = %v, want %v", err, domain.ErrInfeasibleNode)
	}
}

func TestNearestNeighborDepotOnly(t *testing.T) {
	inst := &domain.Instance{Coords: []domain.Point{{}}, Demand: []float64{0}, Capacity: 1}

	sol, err := NearestNeighbor(inst, euclid(inst))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sol) != 0 {
		t.Fatalf("solution = %v, want no routes", sol)
	}
}

func TestNearestNeighborRandomInstances(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		inst := randomInstance(seed, 30)
		dist := euclid(inst)

		first, err := NearestNeighbor(inst, dist)
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}
		if err := CheckSolution(inst, first); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}

		second, err := NearestNeighbor(inst, dist)
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("seed %d: runs differ: %v vs %v", seed, first, second)
		}
	}
}
