package sim

import "testing"

// Shared fixtures for the engine tests. Numbers mirror a plausible 2026
// midfield: base lap around 80s, two drivers per team with neutral skill.

func testTrack() Track {
	return Track{
		Name:                  "Test Circuit",
		StraightRatio:         0.6,
		OvertakeCoefficient:   0.5,
		EnergyHarvestFactor:   0.7,
		TyreDegradationFactor: 0.05,
		DownforceSensitivity:  2.5,
	}
}

func scTrack(lambda, resumeLambda float64) Track {
	t := testTrack()
	t.Name = "SC Circuit"
	t.SafetyCarLambda = lambda
	t.SafetyCarResumeLambda = resumeLambda
	return t
}

func testCar(teamName string, baseSpeed, reliability float64) Car {
	return Car{
		TeamName:       teamName,
		BaseSpeed:      baseSpeed,
		ERSEfficiency:  0.8,
		AeroEfficiency: 0.85,
		TyreWearRate:   1.0,
		Reliability:    reliability,
	}
}

func testTeam(t *testing.T, name string, baseSpeed, reliability float64) *Team {
	t.Helper()
	car := testCar(name, baseSpeed, reliability)
	drivers := []Driver{
		{Name: name + "_D1", TeamName: name, SkillOffset: 0.0, Consistency: 1.0},
		{Name: name + "_D2", TeamName: name, SkillOffset: 0.0, Consistency: 1.0},
	}
	team, err := NewTeam(name, car, drivers)
	if err != nil {
		t.Fatalf("building fixture team %s: %v", name, err)
	}
	return team
}

func sampleTeams(t *testing.T, n int, reliability float64) []*Team {
	t.Helper()
	teams := make([]*Team, 0, n)
	for i := 0; i < n; i++ {
		name := string(rune('A'+i)) + " Racing"
		teams = append(teams, testTeam(t, name, 80.0+float64(i)*0.5, reliability))
	}
	return teams
}

// fakeRand feeds scripted draws into helpers that take a randSource.
type fakeRand struct {
	vals []float64
	i    int
}

func (f *fakeRand) Float64() float64 {
	if f.i >= len(f.vals) {
		return 0.5
	}
	v := f.vals[f.i]
	f.i++
	return v
}
