package ports

import (
	"context"
	"cvrp-route-service/internal/domain"
)

// Cache of heuristic output keyed by instance content and algorithm.
// Both heuristics are deterministic, so a hit is always equal to a fresh run.
type SolutionCache interface {
	Get(ctx context.Context, inst *domain.Instance, algorithm string) (domain.Solution, bool, error)
	Put(ctx context.Context, inst *domain.Instance, algorithm string, sol domain.Solution) error
}
