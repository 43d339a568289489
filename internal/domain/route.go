package domain

import "time"

// Route is an ordered sequence of customer indices. The depot is implicit
// at both ends and never stored.
type Route []int

// Solution is an ordered collection of routes whose customers partition the
// instance's non-depot nodes.
type Solution []Route

// Number of customers visited across all routes.
func (s Solution) Customers() int {
	n := 0
	for _, r := range s {
		n += len(r)
	}
	return n
}

// Clone returns a deep copy so callers can hand out a solution without
// sharing backing arrays.
func (s Solution) Clone() Solution {
	out := make(Solution, len(s))
	for i, r := range s {
		out[i] = append(Route(nil), r...)
	}
	return out
}

// Run is the recorded outcome of one heuristic on one instance.
// ReferenceDistance and GapPercent are nil when the instance has no
// reference solution.
type Run struct {
	ID                string
	InstanceName      string
	Algorithm         string
	Routes            Solution
	TotalDistance     float64
	ReferenceDistance *float64
	GapPercent        *float64
	Cached            bool
	Elapsed           time.Duration
	CreatedAt         time.Time
}
