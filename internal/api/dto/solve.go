package dto

import "time"

type SolveRequest struct {
	// Instance names a stored instance.
	Instance string `json:"instance"`
	// Inline supplies the instance in the request body instead.
	Inline     *InstanceJSON `json:"inline_instance"`
	Algorithms []string      `json:"algorithms"`
	Persist    bool          `json:"persist"`
}

type RunResponse struct {
	ID                string    `json:"id"`
	Instance          string    `json:"instance"`
	Algorithm         string    `json:"algorithm"`
	Routes            [][]int   `json:"routes"`
	TotalDistance     float64   `json:"total_distance"`
	ReferenceDistance *float64  `json:"reference_distance"`
	GapPercent        *float64  `json:"gap_percent"`
	Cached            bool      `json:"cached"`
	ElapsedMicros     int64     `json:"elapsed_us"`
	CreatedAt         time.Time `json:"created_at"`
}

type SolveResponse struct {
	Runs []RunResponse `json:"runs"`
}

type ListRunsResponse struct {
	Runs []RunResponse `json:"runs"`
}
