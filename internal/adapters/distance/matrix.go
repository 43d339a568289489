package distance

import (
	"context"
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/platform/obs"
	"cvrp-route-service/internal/ports"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Matrix is a precomputed, read-only N x N distance table.
type Matrix struct {
	n    int
	data []float64
}

func (m *Matrix) Distance(i, j int) float64 { return m.data[i*m.n+j] }

// Size returns the number of nodes covered.
func (m *Matrix) Size() int { return m.n }

// NewMatrix fills an N x N table from src. Rows are computed concurrently;
// each cell is written exactly once, so the result does not depend on
// scheduling. Only the upper triangle is evaluated and mirrored.
func NewMatrix(ctx context.Context, n int, src ports.DistanceProvider, workers int) (*Matrix, error) {
	if n < 0 {
		return nil, fmt.Errorf("new matrix: negative size %d", n)
	}
	if src == nil {
		return nil, errors.New("new matrix: source provider must be non-nil")
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	m := &Matrix{n: n, data: make([]float64, n*n)}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for j := i + 1; j < n; j++ {
				d := src.Distance(i, j)
				m.data[i*n+j] = d
				m.data[j*n+i] = d
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("new matrix: %w", err)
	}

	return m, nil
}

// MatrixModel implements ports.DistanceModel with Euclidean distances
// precomputed into a Matrix. Instances below MinNodes are served by
// Euclidean directly.
type MatrixModel struct {
	Workers  int
	MinNodes int
}

func NewMatrixModel() *MatrixModel {
	return &MatrixModel{MinNodes: 16}
}

func (mm *MatrixModel) Build(ctx context.Context, inst *domain.Instance) (_ ports.DistanceProvider, err error) {
	defer obs.Time(ctx, "distance.matrix.Build")(&err)

	if inst == nil {
		return nil, errors.New("build distance matrix: instance must be non-nil")
	}

	e := NewEuclidean(inst)
	if inst.Len() < mm.MinNodes {
		return e, nil
	}

	m, err := NewMatrix(ctx, inst.Len(), e, mm.Workers)
	if err != nil {
		return nil, fmt.Errorf("build distance matrix for %q: %w", inst.Name, err)
	}
	return m, nil
}
