package distance

import (
	"context"
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/ports"
	"fmt"
)

type MockPair struct {
	From, To int
	Distance float64
}

// MockDistanceProvider serves an explicit symmetric distance table.
// Distance panics for a pair that was not declared so tests notice.
type MockDistanceProvider struct {
	m map[[2]int]float64
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[[2]int]float64, 2*len(pairs))
	for _, p := range pairs {
		m[[2]int{p.From, p.To}] = p.Distance
		m[[2]int{p.To, p.From}] = p.Distance
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) Distance(i, j int) float64 {
	if i == j {
		return 0
	}
	d, ok := p.m[[2]int{i, j}]
	if !ok {
		panic(fmt.Sprintf("missing pair %d -> %d", i, j))
	}
	return d
}

// Build returns the provider itself for any instance.
func (p *MockDistanceProvider) Build(context.Context, *domain.Instance) (ports.DistanceProvider, error) {
	return p, nil
}
