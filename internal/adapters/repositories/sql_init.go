package repositories

import (
	"context"
	"cvrp-route-service/internal/adapters/tsplib"
	"cvrp-route-service/internal/ports"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Initialize the database schema. The DDL is portable between SQLite and
// PostgreSQL.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createInstancesQuery := `
	CREATE TABLE IF NOT EXISTS instances (
		name TEXT PRIMARY KEY,
		capacity DOUBLE PRECISION NOT NULL,
		depot INTEGER NOT NULL,
		node_count INTEGER NOT NULL
	);
	`

	createNodesQuery := `
	CREATE TABLE IF NOT EXISTS nodes (
		instance_name TEXT NOT NULL REFERENCES instances(name) ON DELETE CASCADE,
		idx INTEGER NOT NULL,
		x DOUBLE PRECISION NOT NULL,
		y DOUBLE PRECISION NOT NULL,
		demand DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (instance_name, idx)
	);
	`

	createReferenceRoutesQuery := `
	CREATE TABLE IF NOT EXISTS reference_routes (
		instance_name TEXT NOT NULL REFERENCES instances(name) ON DELETE CASCADE,
		route_idx INTEGER NOT NULL,
		position INTEGER NOT NULL,
		node INTEGER NOT NULL,
		PRIMARY KEY (instance_name, route_idx, position)
	);
	`

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		instance_name TEXT NOT NULL,
		algorithm TEXT NOT NULL,
		total_distance DOUBLE PRECISION NOT NULL,
		reference_distance DOUBLE PRECISION,
		gap_percent DOUBLE PRECISION,
		route_count INTEGER NOT NULL,
		cached INTEGER NOT NULL,
		elapsed_us BIGINT NOT NULL,
		routes TEXT NOT NULL,
		created_at BIGINT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_runs_instance_created
	ON runs(instance_name, created_at);
	`

	statements := []string{
		createInstancesQuery,
		createNodesQuery,
		createReferenceRoutesQuery,
		createRunsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SeedFromDir loads every .vrp file in dir, attaches the reference solution
// from a sibling .sol file when one exists, and saves the instances.
// It returns the number of instances saved.
func SeedFromDir(ctx context.Context, repo ports.InstanceRepository, dir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.vrp"))
	if err != nil {
		return 0, fmt.Errorf("seed instances: glob %q: %w", dir, err)
	}
	sort.Strings(paths)

	for i, path := range paths {
		inst, err := tsplib.LoadInstanceFile(path)
		if err != nil {
			return i, fmt.Errorf("seed instances: %w", err)
		}

		solPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".sol"
		if _, err := os.Stat(solPath); err == nil {
			ref, _, err := tsplib.LoadSolutionFile(solPath)
			if err != nil {
				return i, fmt.Errorf("seed instances: %w", err)
			}
			inst.Reference = ref
		}

		if err := inst.Validate(); err != nil {
			return i, fmt.Errorf("seed instances: %q: %w", path, err)
		}

		if err := repo.SaveInstance(ctx, inst); err != nil {
			return i, fmt.Errorf("seed instances: save %q: %w", inst.Name, err)
		}
	}

	return len(paths), nil
}
