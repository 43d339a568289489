package api

import (
	"cvrp-route-service/internal/api/handlers"
	"cvrp-route-service/internal/platform/obs"
	"cvrp-route-service/internal/ports"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Deps are the adapters the HTTP layer is wired with. Cache, Runs and
// Limiter are optional.
type Deps struct {
	Instances  ports.InstanceRepository
	Runs       ports.RunRepository
	Distances  ports.DistanceModel
	Cache      ports.SolutionCache
	Algorithms []string
	Limiter    *rate.Limiter
	MaxNodes   int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	instHandler := &handlers.InstanceHandler{Repo: d.Instances}
	solveHandler := &handlers.SolveHandler{
		Repo:              d.Instances,
		Runs:              d.Runs,
		Distances:         d.Distances,
		Cache:             d.Cache,
		DefaultAlgorithms: d.Algorithms,
		MaxNodes:          d.MaxNodes,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/instances", instHandler.List)
	mux.HandleFunc("/instances/{name}", instHandler.Get)
	mux.Handle("/solve", rateLimit(d.Limiter, http.HandlerFunc(solveHandler.Solve)))
	mux.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))

	if d.Runs != nil {
		runHandler := &handlers.RunHandler{Runs: d.Runs}
		mux.HandleFunc("/runs", runHandler.List)
	}

	return loggingMiddleware(mux)
}
