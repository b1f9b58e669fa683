package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// SeasonDistribution aggregates many full-season replications into
// drivers' (WDC) and constructors' (WCC) championship statistics.
type SeasonDistribution struct {
	WDCProbabilities     map[string]float64
	WCCProbabilities     map[string]float64
	ExpectedDriverPoints map[string]float64
	ExpectedTeamPoints   map[string]float64
	DriverStandings      map[string]map[int]float64
	TeamStandings        map[string]map[int]float64
}

// SimulateSeasonMonteCarlo runs `seasons` replications of the full
// calendar. Race seeds follow the two-level scheme of RaceSeed, so no
// race seed collides within or across season replications.
//
// After every race the top ten finishers score per the standard points
// table; driver totals decide the WDC and per-team sums the WCC. Season
// rankings sort by descending points with ties broken by the original
// team/driver insertion order (stable sort).
func SimulateSeasonMonteCarlo(calendar []Track, teams []*Team, lapsPerRace, seasons int, baseSeed int64, noiseStd float64) (SeasonDistribution, error) {
	if seasons < 1 {
		return SeasonDistribution{}, fmt.Errorf("seasons must be >= 1, got %d", seasons)
	}
	if len(calendar) == 0 {
		return SeasonDistribution{}, fmt.Errorf("calendar must not be empty")
	}
	if len(teams) == 0 {
		return SeasonDistribution{}, fmt.Errorf("teams list must not be empty")
	}

	driverNames := collectDriverNames(teams)
	teamNames := make([]string, 0, len(teams))
	driverToTeam := make(map[string]string, len(driverNames))
	for _, team := range teams {
		teamNames = append(teamNames, team.Name)
		for _, drv := range team.Drivers {
			driverToTeam[drv.Name] = team.Name
		}
	}

	wdcCounts := make(map[string]int, len(driverNames))
	drvPointsSums := make(map[string]float64, len(driverNames))
	drvStandingsCounts := make(map[string]map[int]int, len(driverNames))
	for _, name := range driverNames {
		drvStandingsCounts[name] = make(map[int]int)
	}
	wccCounts := make(map[string]int, len(teamNames))
	teamPointsSums := make(map[string]float64, len(teamNames))
	teamStandingsCounts := make(map[string]map[int]int, len(teamNames))
	for _, name := range teamNames {
		teamStandingsCounts[name] = make(map[int]int)
	}

	logrus.Debugf("season monte carlo: %d seasons x %d races", seasons, len(calendar))
	for season := 0; season < seasons; season++ {
		drvSeasonPts := make(map[string]float64, len(driverNames))
		teamSeasonPts := make(map[string]float64, len(teamNames))

		for raceIdx, track := range calendar {
			result, err := SimulateRace(track, teams, lapsPerRace, noiseStd, RaceSeed(baseSeed, season, raceIdx), nil)
			if err != nil {
				return SeasonDistribution{}, err
			}
			for posIdx, name := range result.FinalClassification {
				if posIdx < len(pointsTable) {
					pts := pointsTable[posIdx]
					drvSeasonPts[name] += pts
					teamSeasonPts[driverToTeam[name]] += pts
				}
			}
		}

		drvRanked := rankByPoints(driverNames, drvSeasonPts)
		wdcCounts[drvRanked[0]]++
		for posIdx, name := range drvRanked {
			drvPointsSums[name] += drvSeasonPts[name]
			drvStandingsCounts[name][posIdx+1]++
		}

		teamRanked := rankByPoints(teamNames, teamSeasonPts)
		wccCounts[teamRanked[0]]++
		for posIdx, name := range teamRanked {
			teamPointsSums[name] += teamSeasonPts[name]
			teamStandingsCounts[name][posIdx+1]++
		}
	}

	inv := 1.0 / float64(seasons)
	dist := SeasonDistribution{
		WDCProbabilities:     make(map[string]float64, len(driverNames)),
		WCCProbabilities:     make(map[string]float64, len(teamNames)),
		ExpectedDriverPoints: make(map[string]float64, len(driverNames)),
		ExpectedTeamPoints:   make(map[string]float64, len(teamNames)),
		DriverStandings:      make(map[string]map[int]float64, len(driverNames)),
		TeamStandings:        make(map[string]map[int]float64, len(teamNames)),
	}
	for _, name := range driverNames {
		dist.WDCProbabilities[name] = float64(wdcCounts[name]) * inv
		dist.ExpectedDriverPoints[name] = drvPointsSums[name] * inv
		dist.DriverStandings[name] = normalizeHistogram(drvStandingsCounts[name], inv)
	}
	for _, name := range teamNames {
		dist.WCCProbabilities[name] = float64(wccCounts[name]) * inv
		dist.ExpectedTeamPoints[name] = teamPointsSums[name] * inv
		dist.TeamStandings[name] = normalizeHistogram(teamStandingsCounts[name], inv)
	}
	return dist, nil
}

// rankByPoints sorts names by descending points. The sort is stable, so
// ties preserve the caller's insertion order.
func rankByPoints(names []string, points map[string]float64) []string {
	ranked := append([]string(nil), names...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return points[ranked[i]] > points[ranked[j]]
	})
	return ranked
}

func normalizeHistogram(counts map[int]int, inv float64) map[int]float64 {
	hist := make(map[int]float64, len(counts))
	for pos, count := range counts {
		hist[pos] = float64(count) * inv
	}
	return hist
}
