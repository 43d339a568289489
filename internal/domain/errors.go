package domain

import "errors"

var (
	// ErrMalformedInstance reports structurally invalid instance data:
	// mismatched array lengths, an out-of-range depot, a negative demand
	// or a non-positive capacity.
	ErrMalformedInstance = errors.New("malformed instance")

	// ErrInfeasibleNode reports a customer whose demand exceeds the vehicle
	// capacity. No route can ever serve it.
	ErrInfeasibleNode = errors.New("infeasible node")
)
