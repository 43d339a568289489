package distance

import (
	"cvrp-route-service/internal/domain"
	"math"
)

// Euclidean computes straight-line distances on demand from an instance's
// coordinates. It holds no state beyond the coordinate slice.
type Euclidean struct {
	coords []domain.Point
}

func NewEuclidean(inst *domain.Instance) *Euclidean {
	return &Euclidean{coords: inst.Coords}
}

func (e *Euclidean) Distance(i, j int) float64 {
	if i == j {
		return 0
	}
	a, b := e.coords[i], e.coords[j]
	// Must equal sqrt(dx*dx + dy*dy) bit for bit; math.Hypot does not.
	dx, dy := b.X-a.X, b.Y-a.Y
	return math.Sqrt(dx*dx + dy*dy)
}
