package domain

// Planar coordinates of a node in an instance.
type Point struct {
	X float64
	Y float64
}

// Return the point as [x, y] for JSON and geometry libraries.
func (p Point) ToList() []float64 { return []float64{p.X, p.Y} }
