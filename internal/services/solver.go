package services

import (
	"context"
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/platform/obs"
	"cvrp-route-service/internal/ports"
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/google/uuid"
)

const (
	AlgorithmNearestNeighbor = "nearest-neighbor"
	AlgorithmSavings         = "savings"
)

// ErrUnknownAlgorithm is returned for a heuristic name that is not registered.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Heuristic constructs a complete solution for a validated instance.
type Heuristic func(inst *domain.Instance, dist ports.DistanceProvider) (domain.Solution, error)

var heuristics = map[string]Heuristic{
	AlgorithmNearestNeighbor: NearestNeighbor,
	AlgorithmSavings:         Savings,
}

// Algorithms lists the registered heuristic names in sorted order.
func Algorithms() []string {
	names := make([]string, 0, len(heuristics))
	for name := range heuristics {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func LookupHeuristic(name string) (Heuristic, error) {
	h, ok := heuristics[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return h, nil
}

// Solve runs one heuristic on inst, verifies the result and evaluates it.
//
// A solution that breaks the partition or capacity property is reported as
// an error rather than returned.
func Solve(
	ctx context.Context,
	inst *domain.Instance,
	dist ports.DistanceProvider,
	algorithm string,
) (_ *domain.Run, err error) {
	defer obs.Time(ctx, "solve."+algorithm)(&err)

	if inst == nil || dist == nil {
		return nil, errors.New("solve: instance and distance provider must be non-nil")
	}

	h, err := LookupHeuristic(algorithm)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	start := time.Now()
	sol, err := h(inst, dist)
	elapsed := time.Since(start)

	obs.HeuristicDuration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
	if err != nil {
		obs.HeuristicRuns.WithLabelValues(algorithm, "error").Inc()
		return nil, fmt.Errorf("solve: %s on %q: %w", algorithm, inst.Name, err)
	}
	obs.HeuristicRuns.WithLabelValues(algorithm, "ok").Inc()
	obs.SolutionRoutes.WithLabelValues(algorithm).Observe(float64(len(sol)))

	run, err := newRun(inst, dist, algorithm, sol, elapsed)
	if err != nil {
		return nil, fmt.Errorf("solve: %s on %q: %w", algorithm, inst.Name, err)
	}
	return run, nil
}

// newRun checks sol against inst and fills in distance metrics.
func newRun(
	inst *domain.Instance,
	dist ports.DistanceProvider,
	algorithm string,
	sol domain.Solution,
	elapsed time.Duration,
) (*domain.Run, error) {
	if err := CheckSolution(inst, sol); err != nil {
		return nil, err
	}

	run := &domain.Run{
		ID:            uuid.NewString(),
		InstanceName:  inst.Name,
		Algorithm:     algorithm,
		Routes:        sol,
		TotalDistance: TotalDistance(inst, dist, sol),
		Elapsed:       elapsed,
		CreatedAt:     time.Now().UTC(),
	}

	if len(inst.Reference) > 0 {
		if err := CheckSolution(inst, inst.Reference); err != nil {
			log.Printf("instance=%s reference solution ignored: %v", inst.Name, err)
			return run, nil
		}

		ref := TotalDistance(inst, dist, inst.Reference)
		run.ReferenceDistance = &ref
		if gap, ok := Gap(run.TotalDistance, ref); ok {
			run.GapPercent = &gap
		}
	}

	return run, nil
}
