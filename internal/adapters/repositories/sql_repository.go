package repositories

import (
	"context"
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/platform/obs"
	"cvrp-route-service/internal/ports"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SQLRepository implements InstanceRepository and RunRepository over
// database/sql. Queries are written with '?' placeholders and rewritten to
// '$n' for the pgx driver.
type SQLRepository struct {
	DB     *sql.DB
	Driver string
}

func NewSQLRepository(db *sql.DB, driver string) *SQLRepository {
	return &SQLRepository{DB: db, Driver: driver}
}

func (s *SQLRepository) rebind(q string) string {
	if s.Driver != "pgx" {
		return q
	}

	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Return a summary of every stored instance.
func (s *SQLRepository) ListInstances(ctx context.Context) (_ []ports.InstanceSummary, err error) {
	defer obs.Time(ctx, "repo.ListInstances")(&err)

	if s.DB == nil {
		return nil, errors.New("sql repository: DB is nil")
	}

	query := `
	SELECT
		i.name,
		i.node_count,
		i.capacity,
		i.depot,
		EXISTS (SELECT 1 FROM reference_routes r WHERE r.instance_name = i.name)
	FROM instances i
	ORDER BY i.name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list instances: query instances table: %w", err)
	}
	defer rows.Close()

	out := make([]ports.InstanceSummary, 0, 16)
	for rows.Next() {
		var sum ports.InstanceSummary
		if err := rows.Scan(&sum.Name, &sum.Nodes, &sum.Capacity, &sum.Depot, &sum.HasReference); err != nil {
			return nil, fmt.Errorf("list instances: scan row: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list instances: row iteration: %w", err)
	}

	return out, nil
}

// Load one instance with its nodes and reference routes.
func (s *SQLRepository) GetInstance(ctx context.Context, name string) (_ *domain.Instance, err error) {
	defer obs.Time(ctx, "repo.GetInstance")(&err)

	if s.DB == nil {
		return nil, errors.New("sql repository: DB is nil")
	}

	inst := &domain.Instance{Name: name}
	var nodeCount int

	row := s.DB.QueryRowContext(ctx, s.rebind(`
	SELECT capacity, depot, node_count
	FROM instances
	WHERE name = ?;
	`), name)
	if err := row.Scan(&inst.Capacity, &inst.Depot, &nodeCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get instance %q: %w", name, ports.ErrInstanceNotFound)
		}
		return nil, fmt.Errorf("get instance %q: %w", name, err)
	}

	rows, err := s.DB.QueryContext(ctx, s.rebind(`
	SELECT idx, x, y, demand
	FROM nodes
	WHERE instance_name = ?
	ORDER BY idx;
	`), name)
	if err != nil {
		return nil, fmt.Errorf("get instance %q: query nodes: %w", name, err)
	}
	defer rows.Close()

	inst.Coords = make([]domain.Point, 0, nodeCount)
	inst.Demand = make([]float64, 0, nodeCount)
	for rows.Next() {
		var idx int
		var p domain.Point
		var demand float64
		if err := rows.Scan(&idx, &p.X, &p.Y, &demand); err != nil {
			return nil, fmt.Errorf("get instance %q: scan node: %w", name, err)
		}
		if idx != len(inst.Coords) {
			return nil, fmt.Errorf("get instance %q: node index gap at %d", name, idx)
		}
		inst.Coords = append(inst.Coords, p)
		inst.Demand = append(inst.Demand, demand)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get instance %q: node iteration: %w", name, err)
	}
	if len(inst.Coords) != nodeCount {
		return nil, fmt.Errorf("get instance %q: expected %d nodes, found %d", name, nodeCount, len(inst.Coords))
	}

	refRows, err := s.DB.QueryContext(ctx, s.rebind(`
	SELECT route_idx, node
	FROM reference_routes
	WHERE instance_name = ?
	ORDER BY route_idx, position;
	`), name)
	if err != nil {
		return nil, fmt.Errorf("get instance %q: query reference routes: %w", name, err)
	}
	defer refRows.Close()

	current := -1
	for refRows.Next() {
		var routeIdx, node int
		if err := refRows.Scan(&routeIdx, &node); err != nil {
			return nil, fmt.Errorf("get instance %q: scan reference route: %w", name, err)
		}
		if routeIdx != current {
			inst.Reference = append(inst.Reference, domain.Route{})
			current = routeIdx
		}
		last := len(inst.Reference) - 1
		inst.Reference[last] = append(inst.Reference[last], node)
	}
	if err := refRows.Err(); err != nil {
		return nil, fmt.Errorf("get instance %q: reference iteration: %w", name, err)
	}

	return inst, nil
}

// Insert or replace an instance, its nodes and its reference routes.
func (s *SQLRepository) SaveInstance(ctx context.Context, inst *domain.Instance) (err error) {
	defer obs.Time(ctx, "repo.SaveInstance")(&err)

	if s.DB == nil {
		return errors.New("sql repository: DB is nil")
	}
	if inst == nil || strings.TrimSpace(inst.Name) == "" {
		return errors.New("save instance: instance name must not be empty")
	}
	if len(inst.Demand) != len(inst.Coords) {
		return fmt.Errorf("save instance %q: %w: %d coordinates but %d demands",
			inst.Name, domain.ErrMalformedInstance, len(inst.Coords), len(inst.Demand))
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save instance: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, s.rebind(`
	INSERT INTO instances (name, capacity, depot, node_count)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (name) DO UPDATE
	SET capacity = EXCLUDED.capacity,
		depot = EXCLUDED.depot,
		node_count = EXCLUDED.node_count;
	`), inst.Name, inst.Capacity, inst.Depot, len(inst.Coords)); err != nil {
		return fmt.Errorf("save instance %q: upsert: %w", inst.Name, err)
	}

	for _, table := range []string{"nodes", "reference_routes"} {
		q := s.rebind("DELETE FROM " + table + " WHERE instance_name = ?;")
		if _, err := tx.ExecContext(ctx, q, inst.Name); err != nil {
			return fmt.Errorf("save instance %q: clear %s: %w", inst.Name, table, err)
		}
	}

	nodeStmt, err := tx.PrepareContext(ctx, s.rebind(`
	INSERT INTO nodes (instance_name, idx, x, y, demand)
	VALUES (?, ?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save instance %q: prepare nodes: %w", inst.Name, err)
	}
	defer nodeStmt.Close()

	for i, p := range inst.Coords {
		if _, err := nodeStmt.ExecContext(ctx, inst.Name, i, p.X, p.Y, inst.Demand[i]); err != nil {
			return fmt.Errorf("save instance %q: insert node %d: %w", inst.Name, i, err)
		}
	}

	refStmt, err := tx.PrepareContext(ctx, s.rebind(`
	INSERT INTO reference_routes (instance_name, route_idx, position, node)
	VALUES (?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save instance %q: prepare reference routes: %w", inst.Name, err)
	}
	defer refStmt.Close()

	for ri, route := range inst.Reference {
		for pos, v := range route {
			if _, err := refStmt.ExecContext(ctx, inst.Name, ri, pos, v); err != nil {
				return fmt.Errorf("save instance %q: insert reference route %d: %w", inst.Name, ri, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save instance %q: commit: %w", inst.Name, err)
	}

	return nil
}

// Persist a single run.
func (s *SQLRepository) SaveRun(ctx context.Context, run *domain.Run) (err error) {
	defer obs.Time(ctx, "repo.SaveRun")(&err)

	if s.DB == nil {
		return errors.New("sql repository: DB is nil")
	}
	if run == nil || run.ID == "" {
		return errors.New("save run: run id must not be empty")
	}

	routes, err := json.Marshal(run.Routes)
	if err != nil {
		return fmt.Errorf("save run %s: encode routes: %w", run.ID, err)
	}

	cached := 0
	if run.Cached {
		cached = 1
	}

	_, err = s.DB.ExecContext(ctx, s.rebind(`
	INSERT INTO runs (
		id, instance_name, algorithm, total_distance, reference_distance,
		gap_percent, route_count, cached, elapsed_us, routes, created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`),
		run.ID, run.InstanceName, run.Algorithm, run.TotalDistance, run.ReferenceDistance,
		run.GapPercent, len(run.Routes), cached, run.Elapsed.Microseconds(), string(routes),
		run.CreatedAt.UnixMicro(),
	)
	if err != nil {
		return fmt.Errorf("save run %s: insert: %w", run.ID, err)
	}

	return nil
}

// Return the newest runs first, optionally filtered by instance.
func (s *SQLRepository) ListRuns(ctx context.Context, instanceName string, limit int) (_ []*domain.Run, err error) {
	defer obs.Time(ctx, "repo.ListRuns")(&err)

	if s.DB == nil {
		return nil, errors.New("sql repository: DB is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT id, instance_name, algorithm, total_distance, reference_distance,
		gap_percent, cached, elapsed_us, routes, created_at
	FROM runs
	`
	args := []any{}
	if instanceName != "" {
		query += "WHERE instance_name = ?\n"
		args = append(args, instanceName)
	}
	query += "ORDER BY created_at DESC, id\nLIMIT ?;"
	args = append(args, limit)

	rows, err := s.DB.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: query runs table: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Run, 0, limit)
	for rows.Next() {
		var (
			run       domain.Run
			ref, gap  sql.NullFloat64
			cached    int
			elapsedUS int64
			routes    string
			createdUS int64
		)
		if err := rows.Scan(
			&run.ID, &run.InstanceName, &run.Algorithm, &run.TotalDistance, &ref,
			&gap, &cached, &elapsedUS, &routes, &createdUS,
		); err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}

		if err := json.Unmarshal([]byte(routes), &run.Routes); err != nil {
			return nil, fmt.Errorf("list runs: decode routes of %s: %w", run.ID, err)
		}
		if ref.Valid {
			v := ref.Float64
			run.ReferenceDistance = &v
		}
		if gap.Valid {
			v := gap.Float64
			run.GapPercent = &v
		}
		run.Cached = cached != 0
		run.Elapsed = time.Duration(elapsedUS) * time.Microsecond
		run.CreatedAt = time.UnixMicro(createdUS).UTC()

		out = append(out, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return out, nil
}
