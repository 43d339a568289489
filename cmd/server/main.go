package main

import (
	"context"
	"cvrp-route-service/internal/adapters/cache"
	"cvrp-route-service/internal/adapters/distance"
	"cvrp-route-service/internal/adapters/repositories"
	"cvrp-route-service/internal/api"
	"cvrp-route-service/internal/config"
	"cvrp-route-service/internal/platform/db"
	"cvrp-route-service/internal/platform/obs"
	"cvrp-route-service/internal/ports"
	"cvrp-route-service/internal/services"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// main is the application composition root.
// It wires concrete adapters (SQL, Redis) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load(config.Get("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal(err)
	}

	for _, a := range cfg.Algorithms {
		if _, err := services.LookupHeuristic(a); err != nil {
			log.Fatalf("ALGORITHMS: %v", err)
		}
	}

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	repo := repositories.NewSQLRepository(conn, cfg.DBDriver)

	ctx := context.Background()
	// Initialize schema and load instance files on startup for local runs.
	if err := initAndSeed(ctx, conn, repo, cfg.SeedDir); err != nil {
		log.Fatal(err)
	}

	var solutionCache ports.SolutionCache
	if strings.TrimSpace(cfg.RedisURL) != "" {
		rc, err := cache.NewRedisSolutionCacheFromURL(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Fatal(err)
		}
		defer rc.Close()
		solutionCache = rc
		log.Printf("solution cache enabled ttl=%s", cfg.CacheTTL)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.RateBurst, 1))
	}

	obs.RegisterDefault()

	router := api.NewRouter(api.Deps{
		Instances:  repo,
		Runs:       repo,
		Distances:  distance.NewMatrixModel(),
		Cache:      solutionCache,
		Algorithms: cfg.Algorithms,
		Limiter:    limiter,
		MaxNodes:   cfg.MaxNodes,
	})

	log.Printf("Server listening addr=:%s driver=%s", cfg.Port, cfg.DBDriver)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func initAndSeed(ctx context.Context, conn *sql.DB, repo ports.InstanceRepository, seedDir string) error {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if strings.TrimSpace(seedDir) == "" {
		return nil
	}

	n, err := repositories.SeedFromDir(ctx, repo, seedDir)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Printf("seeded instances count=%d dir=%s", n, seedDir)

	return nil
}
