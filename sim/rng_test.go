package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimulationKey_SameKeySameStream(t *testing.T) {
	k := NewSimulationKey(12345)
	r1 := k.rng()
	r2 := k.rng()
	for i := 0; i < 10; i++ {
		assert.Equal(t, r1.Float64(), r2.Float64(), "draw %d", i)
	}
}

func TestReplicationSeed_OffsetsFromBase(t *testing.T) {
	assert.Equal(t, NewSimulationKey(100), ReplicationSeed(100, 0))
	assert.Equal(t, NewSimulationKey(107), ReplicationSeed(100, 7))
}

func TestRaceSeed_TwoLevelScheme(t *testing.T) {
	assert.Equal(t, NewSimulationKey(42), RaceSeed(42, 0, 0))
	assert.Equal(t, NewSimulationKey(45), RaceSeed(42, 3, 0))
	assert.Equal(t, NewSimulationKey(2042), RaceSeed(42, 0, 2))
}

func TestRaceSeed_NoCollisionsAcrossCalendar(t *testing.T) {
	// A realistic grid: 50 season replications over a 24-race calendar
	// must never reuse a seed.
	seen := make(map[SimulationKey]bool)
	for season := 0; season < 50; season++ {
		for race := 0; race < 24; race++ {
			key := RaceSeed(7, season, race)
			assert.False(t, seen[key], "seed collision at season %d race %d", season, race)
			seen[key] = true
		}
	}
}
