package tsplib

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cvrp-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleVRP = `NAME : tiny-n5-k2
COMMENT : (hand made)
TYPE : CVRP
DIMENSION : 5
EDGE_WEIGHT_TYPE : EUC_2D
CAPACITY : 10
NODE_COORD_SECTION
 1 50 50
 2 60 50
 3 40 50
 4 50 60
 5 50 40
DEMAND_SECTION
1 0
2 4
3 6
4 0
5 10
DEPOT_SECTION
 1
 -1
EOF
`

const sampleSOL = `Route #1: 1 2
Route #2: 4
Route #3: 3
Cost 60
`

func TestParseInstance(t *testing.T) {
	inst, err := ParseInstance(strings.NewReader(sampleVRP))
	require.NoError(t, err)

	assert.Equal(t, "tiny-n5-k2", inst.Name)
	assert.Equal(t, 10.0, inst.Capacity)
	assert.Equal(t, 0, inst.Depot)
	assert.Equal(t, []domain.Point{{X: 50, Y: 50}, {X: 60, Y: 50}, {X: 40, Y: 50}, {X: 50, Y: 60}, {X: 50, Y: 40}}, inst.Coords)
	assert.Equal(t, []float64{0, 4, 6, 0, 10}, inst.Demand)
	require.NoError(t, inst.Validate())
}

func TestParseInstanceDepotNotFirst(t *testing.T) {
	in := strings.Replace(sampleVRP, "DEPOT_SECTION\n 1", "DEPOT_SECTION\n 4", 1)

	inst, err := ParseInstance(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 3, inst.Depot)
}

func TestParseInstanceErrors(t *testing.T) {
	tests := map[string]string{
		"no coords":       "NAME : x\nCAPACITY : 5\n",
		"no capacity":     strings.Replace(sampleVRP, "CAPACITY : 10\n", "", 1),
		"bad edge type":   strings.Replace(sampleVRP, "EUC_2D", "GEO", 1),
		"unknown demand":  strings.Replace(sampleVRP, "5 10", "9 10", 1),
		"bad coordinate":  strings.Replace(sampleVRP, " 2 60 50", " 2 sixty 50", 1),
		"duplicate id":    strings.Replace(sampleVRP, " 3 40 50", " 2 40 50", 1),
		"missing depot":   strings.Split(sampleVRP, "DEPOT_SECTION")[0],
		"truncated depot": strings.Split(sampleVRP, " 1\n -1")[0],
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseInstance(strings.NewReader(input))
			require.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestParseSolution(t *testing.T) {
	sol, cost, err := ParseSolution(strings.NewReader(sampleSOL))
	require.NoError(t, err)
	assert.Equal(t, domain.Solution{{1, 2}, {4}, {3}}, sol)
	assert.Equal(t, 60.0, cost)
}

func TestParseSolutionRejectsBadNode(t *testing.T) {
	_, _, err := ParseSolution(strings.NewReader("Route #1: 1 x\n"))
	require.ErrorIs(t, err, ErrFormat)
}

func TestWriteSolutionRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSolution(&buf, domain.Solution{{3, 1}, {2}}, 12.5))
	assert.Equal(t, "Route #1: 3 1\nRoute #2: 2\nCost 12.5\n", buf.String())
}

func TestLoadInstanceFileNameFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fallback.vrp")
	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(sampleVRP, "NAME : tiny-n5-k2\n", "", 1)), 0o644))

	inst, err := LoadInstanceFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fallback", inst.Name)
}
