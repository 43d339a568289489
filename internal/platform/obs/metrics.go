package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HeuristicRuns counts heuristic executions by algorithm and outcome.
	HeuristicRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "cvrp_heuristic_runs_total", Help: "Heuristic runs by algorithm and status."},
		[]string{"algorithm", "status"},
	)
	// HeuristicDuration records construction time in seconds.
	HeuristicDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "cvrp_heuristic_duration_seconds", Help: "Heuristic construction time in seconds.", Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10)},
		[]string{"algorithm"},
	)
	// SolutionRoutes tracks the number of routes per produced solution.
	SolutionRoutes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "cvrp_solution_routes", Help: "Routes per solution.", Buckets: []float64{1, 2, 5, 10, 20, 50, 100}},
		[]string{"algorithm"},
	)
	// CacheLookups counts solution cache hits and misses.
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "cvrp_solution_cache_total", Help: "Solution cache lookups by result."},
		[]string{"result"},
	)

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HeuristicRuns)
		Registry.MustRegister(HeuristicDuration)
		Registry.MustRegister(SolutionRoutes)
		Registry.MustRegister(CacheLookups)
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
