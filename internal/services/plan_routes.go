package services

import (
	"context"
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/platform/obs"
	"cvrp-route-service/internal/ports"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
)

type planResult struct {
	index int
	run   *domain.Run
	err   error
}

type PlanRoutesRequest struct {
	// InstanceName selects a stored instance. Ignored when Instance is set.
	InstanceName string
	// Instance is an inline instance supplied by the caller.
	Instance *domain.Instance
	// Algorithms to run. Empty means every registered heuristic.
	Algorithms []string
	// Persist stores every run through the run repository.
	Persist bool
	// MaxNodes rejects larger instances before any distance work. Zero disables the cap.
	MaxNodes int
}

// PlanRoutes loads (or accepts) an instance, builds its distances once and
// runs each requested heuristic on it.
//
// Heuristics run concurrently with one another; each one is single-threaded.
// Runs are returned in the order of req.Algorithms. The solution cache and the
// run repository are optional and may be nil.
func PlanRoutes(
	ctx context.Context,
	req PlanRoutesRequest,
	repo ports.InstanceRepository,
	runs ports.RunRepository,
	model ports.DistanceModel,
	cache ports.SolutionCache,
) ([]*domain.Run, error) {
	if model == nil {
		return nil, errors.New("plan routes: distance model must be non-nil")
	}

	algorithms := req.Algorithms
	if len(algorithms) == 0 {
		algorithms = Algorithms()
	}
	for _, a := range algorithms {
		if _, err := LookupHeuristic(a); err != nil {
			return nil, fmt.Errorf("plan routes: %w", err)
		}
	}

	inst := req.Instance
	if inst == nil {
		name := strings.TrimSpace(req.InstanceName)
		if name == "" {
			return nil, errors.New("plan routes: instance name or inline instance is required")
		}
		if repo == nil {
			return nil, errors.New("plan routes: instance repository must be non-nil")
		}

		var err error
		inst, err = repo.GetInstance(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("plan routes: get instance %q: %w", name, err)
		}
	}

	if inst == nil {
		return nil, errors.New("plan routes: repository returned a nil instance")
	}
	if req.MaxNodes > 0 && inst.Len() > req.MaxNodes {
		return nil, fmt.Errorf("plan routes: instance %q: %w: %d nodes exceeds the limit of %d",
			inst.Name, domain.ErrMalformedInstance, inst.Len(), req.MaxNodes)
	}

	// Malformed or infeasible input is rejected before any heuristic runs.
	if err := inst.Validate(); err != nil {
		return nil, fmt.Errorf("plan routes: instance %q: %w", inst.Name, err)
	}

	dist, err := model.Build(ctx, inst)
	if err != nil {
		return nil, fmt.Errorf("plan routes: build distances for %q: %w", inst.Name, err)
	}

	resultsCh := make(chan planResult, len(algorithms))
	var wg sync.WaitGroup

	for i, algorithm := range algorithms {
		wg.Add(1)
		go func(idx int, algo string) {
			defer wg.Done()
			run, err := planOne(ctx, inst, dist, algo, cache)
			resultsCh <- planResult{index: idx, run: run, err: err}
		}(i, algorithm)
	}

	wg.Wait()
	close(resultsCh)

	out := make([]*domain.Run, len(algorithms))
	var planErr error
	for res := range resultsCh {
		if res.err != nil {
			if planErr == nil {
				planErr = res.err
			}
			continue
		}
		out[res.index] = res.run
	}
	if planErr != nil {
		return nil, fmt.Errorf("plan routes: %w", planErr)
	}

	if req.Persist && runs != nil {
		for _, run := range out {
			if err := runs.SaveRun(ctx, run); err != nil {
				return nil, fmt.Errorf("plan routes: save run %s: %w", run.ID, err)
			}
		}
	}

	return out, nil
}

// planOne serves a heuristic from the cache when possible and solves otherwise.
// Cache failures are logged and never fail the plan.
func planOne(
	ctx context.Context,
	inst *domain.Instance,
	dist ports.DistanceProvider,
	algorithm string,
	cache ports.SolutionCache,
) (*domain.Run, error) {
	if cache != nil {
		sol, ok, err := cache.Get(ctx, inst, algorithm)
		switch {
		case err != nil:
			log.Printf("instance=%s algo=%s solution cache read failed: %v", inst.Name, algorithm, err)
		case ok:
			run, err := newRun(inst, dist, algorithm, sol, 0)
			if err == nil {
				obs.CacheLookups.WithLabelValues("hit").Inc()
				run.Cached = true
				return run, nil
			}
			log.Printf("instance=%s algo=%s cached solution rejected: %v", inst.Name, algorithm, err)
		}
		obs.CacheLookups.WithLabelValues("miss").Inc()
	}

	run, err := Solve(ctx, inst, dist, algorithm)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.Put(ctx, inst, algorithm, run.Routes); err != nil {
			log.Printf("instance=%s algo=%s solution cache write failed: %v", inst.Name, algorithm, err)
		}
	}

	return run, nil
}
