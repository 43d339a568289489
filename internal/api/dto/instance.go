package dto

type PointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type InstanceSummaryResponse struct {
	Name         string  `json:"name"`
	Nodes        int     `json:"nodes"`
	Capacity     float64 `json:"capacity"`
	Depot        int     `json:"depot"`
	HasReference bool    `json:"has_reference"`
}

type ListInstancesResponse struct {
	Instances []InstanceSummaryResponse `json:"instances"`
}

// InstanceJSON is the wire form of an instance, used both for responses and
// for inline instances in a solve request.
type InstanceJSON struct {
	Name      string      `json:"name"`
	Coords    []PointJSON `json:"coords"`
	Demand    []float64   `json:"demand"`
	Capacity  float64     `json:"capacity"`
	Depot     int         `json:"depot"`
	Reference [][]int     `json:"reference,omitempty"`
}
