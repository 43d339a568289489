package ports

import (
	"context"
	"cvrp-route-service/internal/domain"
	"errors"
)

// ErrInstanceNotFound is returned by repositories for an unknown instance name.
var ErrInstanceNotFound = errors.New("instance not found")

// Summary of a stored instance, without node arrays.
type InstanceSummary struct {
	Name         string
	Nodes        int
	Capacity     float64
	Depot        int
	HasReference bool
}

// Port: a boundary for storing and retrieving CVRP instances.
type InstanceRepository interface {
	// Retrieve all instances available for routing, ordered by name.
	ListInstances(ctx context.Context) ([]InstanceSummary, error)
	// Retrieve one instance including its reference solution, if any.
	GetInstance(ctx context.Context, name string) (*domain.Instance, error)
	// Insert or replace an instance.
	SaveInstance(ctx context.Context, inst *domain.Instance) error
}
