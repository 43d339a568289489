package services

import (
	"cvrp-route-service/internal/adapters/distance"
	"cvrp-route-service/internal/domain"
	"errors"
	"reflect"
	"testing"
)

func TestSavingsSquareCollapsesToOneRoute(t *testing.T) {
	inst := squareInstance()

	sol, err := Savings(inst, euclid(inst))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// (1,2) joins tail to head, (1,4) joins in the reverse direction,
	// (2,3) closes the loop.
	assertSolution(t, sol, domain.Solution{{4, 1, 2, 3}})
}

func TestSavingsMergesAtExactCapacity(t *testing.T) {
	inst := &domain.Instance{
		Coords:   []domain.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
		Demand:   []float64{0, 3, 2},
		Capacity: 5,
	}

	sol, err := Savings(inst, euclid(inst))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSolution(t, sol, domain.Solution{{1, 2}})

	inst.Capacity = 4.999
	sol, err = Savings(inst, euclid(inst))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSolution(t, sol, domain.Solution{{1}, {2}})
}

func TestSavingsKeepsCreationOrder(t *testing.T) {
	inst := lineInstance()

	sol, err := Savings(inst, euclid(inst))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The untouched singleton keeps its place ahead of the merged route.
	assertSolution(t, sol, domain.Solution{{3}, {1, 2}})
}

func TestSavingsForfeitsInteriorPairs(t *testing.T) {
	// Savings order: (1,2) 19, (2,3) 18, (2,4) 17, (3,4) 16, the rest 5.
	// When (2,4) comes up, 2 is interior to [1 2 3], so the pair is dropped
	// and 4 is only attached later through (3,4) at the tail.
	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: 0, To: 1, Distance: 10},
		{From: 0, To: 2, Distance: 10},
		{From: 0, To: 3, Distance: 10},
		{From: 0, To: 4, Distance: 10},
		{From: 1, To: 2, Distance: 1},
		{From: 2, To: 3, Distance: 2},
		{From: 2, To: 4, Distance: 3},
		{From: 3, To: 4, Distance: 4},
		{From: 1, To: 3, Distance: 15},
		{From: 1, To: 4, Distance: 15},
	})
	inst := &domain.Instance{
		Coords:   make([]domain.Point, 5),
		Demand:   []float64{0, 1, 1, 1, 1},
		Capacity: 4,
	}

	sol, err := Savings(inst, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSolution(t, sol, domain.Solution{{1, 2, 3, 4}})
}

func TestSavingsNoMergeLeavesSingletons(t *testing.T) {
	inst := &domain.Instance{
		Coords:   []domain.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}},
		Demand:   []float64{0, 4, 4, 4},
		Capacity: 5,
	}

	sol, err := Savings(inst, euclid(inst))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSolution(t, sol, domain.Solution{{1}, {2}, {3}})
}

func TestSavingsZeroDemandCustomer(t *testing.T) {
	inst := &domain.Instance{
		Coords:   []domain.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 6, Y: 0}},
		Demand:   []float64{0, 5, 0},
		Capacity: 5,
	}

	sol, err := Savings(inst, euclid(inst))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSolution(t, sol, domain.Solution{{1, 2}})
}

func TestSavingsInfeasibleNode(t *testing.T) {
	inst := &domain.Instance{
		Coords:   []domain.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
		Demand:   []float64{0, 1, 12},
		Capacity: 10,
	}

	_, err := Savings(inst, euclid(inst))
	if !errors.Is(err, domain.ErrInfeasibleNode) {
		t.Fatalf("err = %v, want %v", err, domain.ErrInfeasibleNode)
	}
}

func TestComputeSavingsOrder(t *testing.T) {
	inst := lineInstance()

	got := ComputeSavings(inst, euclid(inst))
	want := []Saving{
		{I: 1, J: 2, Value: 20},
		{I: 2, J: 1, Value: 20},
		{I: 1, J: 3, Value: 0},
		{I: 2, J: 3, Value: 0},
		{I: 3, J: 1, Value: 0},
		{I: 3, J: 2, Value: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("savings = %v, want %v", got, want)
	}
}

func TestComputeSavingsKeepsNegativeValues(t *testing.T) {
	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: 0, To: 1, Distance: 1},
		{From: 0, To: 2, Distance: 1},
		{From: 1, To: 2, Distance: 5},
	})
	inst := &domain.Instance{Coords: make([]domain.Point, 3), Demand: []float64{0, 1, 1}, Capacity: 1}

	got := ComputeSavings(inst, provider)
	if len(got) != 2 || got[0].Value != -3 || got[1].Value != -3 {
		t.Fatalf("savings = %v, want two pairs of -3", got)
	}
}

func TestSavingsRandomInstances(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		inst := randomInstance(seed, 30)
		dist := euclid(inst)

		first, err := Savings(inst, dist)
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}
		if err := CheckSolution(inst, first); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}

		second, err := Savings(inst, dist)
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("seed %d: runs differ: %v vs %v", seed, first, second)
		}
	}
}

func TestSavingsEachMergeRemovesOneRoute(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		inst := randomInstance(seed, 12)
		pairs := ComputeSavings(inst, euclid(inst))
		customers := len(inst.Customers())

		prevRoutes, prevMerges := customers, 0
		for k := 0; k <= len(pairs); k++ {
			sol, merges := mergeSavings(inst, pairs[:k])

			if sol.Customers() != customers {
				t.Fatalf("seed %d, %d pairs: %d customers routed, want %d", seed, k, sol.Customers(), customers)
			}
			if len(sol) != customers-merges {
				t.Fatalf("seed %d, %d pairs: %d routes after %d merges, want %d", seed, k, len(sol), merges, customers-merges)
			}
			if merges > prevMerges && len(sol) != prevRoutes-1 {
				t.Fatalf("seed %d, pair %d: merge went from %d to %d routes", seed, k, prevRoutes, len(sol))
			}

			prevRoutes, prevMerges = len(sol), merges
		}

		full, err := Savings(inst, euclid(inst))
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}
		merged, _ := mergeSavings(inst, pairs)
		assertSolution(t, full, merged)
	}
}

// Near-equal savings on this instance only sort the same way when distances
// are computed as sqrt(dx*dx + dy*dy).
func TestSavingsNearTieOrdering(t *testing.T) {
	inst := randomInstance(59, 24)

	sol, err := Savings(inst, euclid(inst))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.Route{{1}, {16, 13, 22, 12, 23}}
	for _, w := range want {
		found := false
		for _, r := range sol {
			if reflect.DeepEqual(r, w) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("route %v missing from %v", w, sol)
		}
	}
}
