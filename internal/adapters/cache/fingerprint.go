package cache

import (
	"cvrp-route-service/internal/domain"
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes everything a heuristic reads from an instance:
// coordinates, demands, capacity and depot. Name and reference solution
// are excluded, so renamed copies share cache entries.
func Fingerprint(inst *domain.Instance) uint64 {
	h := xxhash.New()
	var buf [8]byte

	put := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}

	binary.LittleEndian.PutUint64(buf[:], uint64(len(inst.Coords)))
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(inst.Depot))
	_, _ = h.Write(buf[:])
	put(inst.Capacity)

	for i, p := range inst.Coords {
		put(p.X)
		put(p.Y)
		if i < len(inst.Demand) {
			put(inst.Demand[i])
		}
	}

	return h.Sum64()
}
