package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateRaceMonteCarlo_ProbabilitiesNormalize(t *testing.T) {
	teams := sampleTeams(t, 3, 0.95)
	dist, err := SimulateRaceMonteCarlo(testTrack(), teams, 10, 50, 100, 0.05)
	require.NoError(t, err)

	winSum := 0.0
	for _, p := range dist.WinnerProbabilities {
		winSum += p
	}
	assert.InDelta(t, 1.0, winSum, 1e-9, "exactly one winner per replication")

	podiumSum := 0.0
	for _, p := range dist.PodiumProbabilities {
		podiumSum += p
	}
	assert.InDelta(t, 3.0, podiumSum, 1e-9, "exactly three podium places per replication")

	for name, hist := range dist.FinishDistribution {
		histSum := 0.0
		for _, p := range hist {
			histSum += p
		}
		assert.InDelta(t, 1.0, histSum, 1e-9, "finish histogram for %s", name)
	}
}

func TestSimulateRaceMonteCarlo_ExpectationsInRange(t *testing.T) {
	teams := sampleTeams(t, 3, 0.95)
	dist, err := SimulateRaceMonteCarlo(testTrack(), teams, 10, 30, 7, 0.05)
	require.NoError(t, err)

	require.Len(t, dist.ExpectedPosition, 6)
	for name, pos := range dist.ExpectedPosition {
		assert.GreaterOrEqual(t, pos, 1.0, "driver %s", name)
		assert.LessOrEqual(t, pos, 6.0, "driver %s", name)
	}
	for name, pts := range dist.ExpectedPoints {
		assert.GreaterOrEqual(t, pts, 0.0, "driver %s", name)
		assert.LessOrEqual(t, pts, pointsTable[0], "driver %s", name)
	}
}

func TestSimulateRaceMonteCarlo_SeedDeterminism(t *testing.T) {
	teams := sampleTeams(t, 2, 0.95)
	d1, err := SimulateRaceMonteCarlo(testTrack(), teams, 8, 20, 55, 0.05)
	require.NoError(t, err)
	d2, err := SimulateRaceMonteCarlo(testTrack(), teams, 8, 20, 55, 0.05)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

func TestSimulateRaceMonteCarlo_FasterCarWinsMore(t *testing.T) {
	// Half a second a lap over ten laps dwarfs the 0.05s noise: the quick
	// team should take the bulk of the wins.
	teams := []*Team{
		testTeam(t, "Quick", 80.0, 1.0),
		testTeam(t, "Slow", 80.5, 1.0),
	}
	dist, err := SimulateRaceMonteCarlo(testTrack(), teams, 10, 40, 3, 0.05)
	require.NoError(t, err)

	quick := dist.WinnerProbabilities["Quick_D1"] + dist.WinnerProbabilities["Quick_D2"]
	slow := dist.WinnerProbabilities["Slow_D1"] + dist.WinnerProbabilities["Slow_D2"]
	assert.Greater(t, quick, slow)
}

func TestSimulateRaceMonteCarlo_RejectsBadInput(t *testing.T) {
	teams := sampleTeams(t, 2, 0.95)
	_, err := SimulateRaceMonteCarlo(testTrack(), teams, 10, 0, 1, 0.05)
	assert.Error(t, err)
	_, err = SimulateRaceMonteCarlo(testTrack(), nil, 10, 10, 1, 0.05)
	assert.Error(t, err)
}
