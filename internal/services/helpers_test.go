package services

import (
	"cvrp-route-service/internal/adapters/distance"
	"cvrp-route-service/internal/domain"
	"math/rand"
	"reflect"
	"testing"
)

// squareInstance puts four unit-demand customers on the corners of a square
// centred on the depot.
func squareInstance() *domain.Instance {
	return &domain.Instance{
		Name:     "square",
		Coords:   []domain.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: -1}},
		Demand:   []float64{0, 1, 1, 1, 1},
		Capacity: 10,
		Depot:    0,
	}
}

// lineInstance has two customers east of the depot and one far west.
func lineInstance() *domain.Instance {
	return &domain.Instance{
		Name:     "line",
		Coords:   []domain.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 11, Y: 0}, {X: -10, Y: 0}},
		Demand:   []float64{0, 1, 1, 1},
		Capacity: 2,
		Depot:    0,
	}
}

// randomInstance builds a reproducible instance with the depot at a random
// index and integer demands up to capacity.
func randomInstance(seed int64, n int) *domain.Instance {
	rng := rand.New(rand.NewSource(seed))
	inst := &domain.Instance{
		Name:     "random",
		Capacity: 20,
		Depot:    rng.Intn(n),
	}
	for i := 0; i < n; i++ {
		inst.Coords = append(inst.Coords, domain.Point{X: rng.Float64() * 100, Y: rng.Float64() * 100})
		d := float64(rng.Intn(21))
		if i == inst.Depot {
			d = 0
		}
		inst.Demand = append(inst.Demand, d)
	}
	return inst
}

func assertSolution(t *testing.T, got, want domain.Solution) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("solution = %v, want %v", got, want)
	}
}

func euclid(inst *domain.Instance) *distance.Euclidean { return distance.NewEuclidean(inst) }
