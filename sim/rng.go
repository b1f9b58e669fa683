package sim

import "math/rand"

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible replication. Two
// replications with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// rng returns a fresh generator owned by one replication. No global or
// shared random state exists anywhere in the engine; every stochastic
// decision inside a replication draws from this single generator in a
// pinned order (noise, hazard, safety car, overtakes).
func (k SimulationKey) rng() *rand.Rand {
	return rand.New(rand.NewSource(int64(k)))
}

// === Seed derivation ===

// raceSeedStride separates race seeds within a season. With stride 1000
// and any calendar shorter than 1000 races, no race seed collides across
// a season or across seasons for season counts below the stride.
const raceSeedStride = 1000

// ReplicationSeed derives the seed for race-level Monte Carlo replication i.
func ReplicationSeed(baseSeed int64, i int) SimulationKey {
	return SimulationKey(baseSeed + int64(i))
}

// RaceSeed derives the seed for one race inside one season replication,
// using the two-level scheme
//
//	raceSeed = (baseSeed + seasonIndex) + raceIndex * 1000
func RaceSeed(baseSeed int64, seasonIndex, raceIndex int) SimulationKey {
	return SimulationKey(baseSeed + int64(seasonIndex) + int64(raceIndex)*raceSeedStride)
}
