package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// pointsTable awards championship points to the top ten finishers.
var pointsTable = [10]float64{25, 18, 15, 12, 10, 8, 6, 4, 2, 1}

// RaceDistribution aggregates many race replications into probability
// distributions and expectations, keyed by driver name. Each driver's
// FinishDistribution sums to 1 (every driver is classified exactly once
// per replication).
type RaceDistribution struct {
	WinnerProbabilities map[string]float64
	PodiumProbabilities map[string]float64
	ExpectedPosition    map[string]float64
	ExpectedPoints      map[string]float64
	FinishDistribution  map[string]map[int]float64
}

// SimulateRaceMonteCarlo runs `simulations` seeded replications of one
// race (replication i uses seed baseSeed+i) and normalizes the collected
// counts into probabilities and expectations.
func SimulateRaceMonteCarlo(track Track, teams []*Team, laps, simulations int, baseSeed int64, noiseStd float64) (RaceDistribution, error) {
	if simulations < 1 {
		return RaceDistribution{}, fmt.Errorf("simulations must be >= 1, got %d", simulations)
	}
	if len(teams) == 0 {
		return RaceDistribution{}, fmt.Errorf("teams list must not be empty")
	}

	driverNames := collectDriverNames(teams)
	winCounts := make(map[string]int, len(driverNames))
	podiumCounts := make(map[string]int, len(driverNames))
	positionSums := make(map[string]int, len(driverNames))
	pointsSums := make(map[string]float64, len(driverNames))
	positionCounts := make(map[string]map[int]int, len(driverNames))
	for _, name := range driverNames {
		positionCounts[name] = make(map[int]int)
	}

	logrus.Debugf("race monte carlo: %d replications of %q (%d laps)", simulations, track.Name, laps)
	for i := 0; i < simulations; i++ {
		result, err := SimulateRace(track, teams, laps, noiseStd, ReplicationSeed(baseSeed, i), nil)
		if err != nil {
			return RaceDistribution{}, err
		}
		for posIdx, name := range result.FinalClassification {
			position := posIdx + 1
			if position == 1 {
				winCounts[name]++
			}
			if position <= 3 {
				podiumCounts[name]++
			}
			positionSums[name] += position
			if posIdx < len(pointsTable) {
				pointsSums[name] += pointsTable[posIdx]
			}
			positionCounts[name][position]++
		}
	}

	inv := 1.0 / float64(simulations)
	dist := RaceDistribution{
		WinnerProbabilities: make(map[string]float64, len(driverNames)),
		PodiumProbabilities: make(map[string]float64, len(driverNames)),
		ExpectedPosition:    make(map[string]float64, len(driverNames)),
		ExpectedPoints:      make(map[string]float64, len(driverNames)),
		FinishDistribution:  make(map[string]map[int]float64, len(driverNames)),
	}
	for _, name := range driverNames {
		dist.WinnerProbabilities[name] = float64(winCounts[name]) * inv
		dist.PodiumProbabilities[name] = float64(podiumCounts[name]) * inv
		dist.ExpectedPosition[name] = float64(positionSums[name]) * inv
		dist.ExpectedPoints[name] = pointsSums[name] * inv
		hist := make(map[int]float64, len(positionCounts[name]))
		for pos, count := range positionCounts[name] {
			hist[pos] = float64(count) * inv
		}
		dist.FinishDistribution[name] = hist
	}
	return dist, nil
}

func collectDriverNames(teams []*Team) []string {
	names := make([]string, 0, 2*len(teams))
	for _, team := range teams {
		for _, drv := range team.Drivers {
			names = append(names, drv.Name)
		}
	}
	return names
}
