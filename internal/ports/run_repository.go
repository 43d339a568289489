package ports

import (
	"context"
	"cvrp-route-service/internal/domain"
)

// Port: persistence of heuristic runs.
type RunRepository interface {
	SaveRun(ctx context.Context, run *domain.Run) error
	// List the most recent runs for an instance, newest first.
	// An empty name lists runs for all instances.
	ListRuns(ctx context.Context, instanceName string, limit int) ([]*domain.Run, error)
}
