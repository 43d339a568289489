package ports

import (
	"context"
	"cvrp-route-service/internal/domain"
)

// Contract for the distance between two nodes of an instance.
// Implementations must be symmetric and return 0 for Distance(i, i).
type DistanceProvider interface {
	Distance(i, j int) float64
}

// DistanceFunc adapts a plain function to DistanceProvider.
type DistanceFunc func(i, j int) float64

func (f DistanceFunc) Distance(i, j int) float64 { return f(i, j) }

// Builds a DistanceProvider for a specific instance.
type DistanceModel interface {
	// Return a provider covering every node index of inst.
	Build(ctx context.Context, inst *domain.Instance) (DistanceProvider, error)
}
