package services

import (
	"cvrp-route-service/internal/domain"
	"math"
	"strings"
	"testing"
)

func TestTotalDistance(t *testing.T) {
	inst := squareInstance()

	got := TotalDistance(inst, euclid(inst), domain.Solution{{1, 2, 3, 4}})
	want := 6 + 2*math.Sqrt2
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("total distance = %v, want %v", got, want)
	}

	got = TotalDistance(inst, euclid(inst), domain.Solution{{1}, {3}, {}})
	want = 4 * math.Sqrt2
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("total distance = %v, want %v", got, want)
	}
}

func TestCheckSolution(t *testing.T) {
	tests := []struct {
		name    string
		sol     domain.Solution
		wantErr string
	}{
		{name: "valid", sol: domain.Solution{{1, 2}, {3, 4}}},
		{name: "empty route", sol: domain.Solution{{}, {1, 2}, {3, 4}}, wantErr: "empty"},
		{name: "depot inside", sol: domain.Solution{{1, 0, 2}, {3, 4}}, wantErr: "depot"},
		{name: "duplicate", sol: domain.Solution{{1, 2}, {2, 3, 4}}, wantErr: "twice"},
		{name: "missing", sol: domain.Solution{{1, 2}, {3}}, wantErr: "not visited"},
		{name: "out of range", sol: domain.Solution{{1, 2, 3, 4, 9}}, wantErr: "out of range"},
		{name: "over capacity", sol: domain.Solution{{1, 2, 3, 4}}, wantErr: "exceeds capacity"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inst := squareInstance()
			inst.Capacity = 3

			err := CheckSolution(inst, tc.sol)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestGap(t *testing.T) {
	if g, ok := Gap(110, 100); !ok || math.Abs(g-10) > 1e-12 {
		t.Fatalf("Gap(110, 100) = %v, %v", g, ok)
	}
	if _, ok := Gap(10, 0); ok {
		t.Fatalf("Gap with zero reference must not be ok")
	}
}
