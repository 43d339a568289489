package domain

import (
	"errors"
	"math"
	"testing"
)

func validInstance() *Instance {
	return &Instance{
		Name:     "square",
		Coords:   []Point{{0, 0}, {1, 1}, {-1, 1}, {-1, -1}, {1, -1}},
		Demand:   []float64{0, 1, 2, 3, 4},
		Capacity: 10,
		Depot:    0,
	}
}

func TestInstanceValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *Instance)
		wantErr error
	}{
		{name: "valid", mutate: func(in *Instance) {}},
		{name: "zero demand customer", mutate: func(in *Instance) { in.Demand[2] = 0 }},
		{name: "demand equals capacity", mutate: func(in *Instance) { in.Demand[4] = 10 }},
		{name: "no nodes", mutate: func(in *Instance) { in.Coords = nil; in.Demand = nil }, wantErr: ErrMalformedInstance},
		{name: "length mismatch", mutate: func(in *Instance) { in.Demand = in.Demand[:3] }, wantErr: ErrMalformedInstance},
		{name: "depot out of range", mutate: func(in *Instance) { in.Depot = 5 }, wantErr: ErrMalformedInstance},
		{name: "negative depot", mutate: func(in *Instance) { in.Depot = -1 }, wantErr: ErrMalformedInstance},
		{name: "zero capacity", mutate: func(in *Instance) { in.Capacity = 0 }, wantErr: ErrMalformedInstance},
		{name: "nan capacity", mutate: func(in *Instance) { in.Capacity = math.NaN() }, wantErr: ErrMalformedInstance},
		{name: "negative demand", mutate: func(in *Instance) { in.Demand[1] = -1 }, wantErr: ErrMalformedInstance},
		{name: "depot demand", mutate: func(in *Instance) { in.Demand[0] = 1 }, wantErr: ErrMalformedInstance},
		{name: "infinite coordinate", mutate: func(in *Instance) { in.Coords[3].X = math.Inf(1) }, wantErr: ErrMalformedInstance},
		{name: "over capacity", mutate: func(in *Instance) { in.Demand[3] = 10.5 }, wantErr: ErrInfeasibleNode},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInstance()
			tc.mutate(in)

			err := in.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestInstanceCustomersSkipsDepot(t *testing.T) {
	in := validInstance()
	in.Depot = 2

	got := in.Customers()
	want := []int{0, 1, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("customers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("customers = %v, want %v", got, want)
		}
	}
}

func TestSolutionClone(t *testing.T) {
	sol := Solution{{1, 2}, {3}}
	cp := sol.Clone()
	cp[0][0] = 9

	if sol[0][0] != 1 {
		t.Errorf("clone shares backing array with original")
	}
	if cp.Customers() != 3 {
		t.Errorf("customers = %d, want 3", cp.Customers())
	}
}
