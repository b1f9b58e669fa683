package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGrid = `
teams:
  - name: "Apex GP"
    car:
      base_speed: 79.8
      ers_efficiency: 0.85
      aero_efficiency: 0.9
      tyre_wear_rate: 1.0
      reliability: 0.96
    drivers:
      - name: "R. Vance"
        skill_offset: -0.15
        consistency: 0.9
      - name: "L. Okafor"
        skill_offset: 0.05
        consistency: 1.1
  - name: "Borealis"
    car:
      base_speed: 80.4
      ers_efficiency: 0.78
      aero_efficiency: 0.84
      tyre_wear_rate: 1.1
      reliability: 0.92
    drivers:
      - name: "M. Sato"
        skill_offset: 0.0
        consistency: 1.0
      - name: "T. Lindqvist"
        skill_offset: 0.1
        consistency: 1.2
`

func TestLoadTeams(t *testing.T) {
	path := writeConfig(t, "teams.yaml", sampleGrid)
	teams, err := LoadTeams(path)
	require.NoError(t, err)
	require.Len(t, teams, 2)

	apex := teams[0]
	assert.Equal(t, "Apex GP", apex.Name)
	assert.Equal(t, "Apex GP", apex.Car.TeamName, "team name is stamped onto the car")
	assert.Equal(t, 79.8, apex.Car.BaseSpeed)
	require.Len(t, apex.Drivers, 2)
	assert.Equal(t, "R. Vance", apex.Drivers[0].Name)
	assert.Equal(t, "Apex GP", apex.Drivers[0].TeamName)
	assert.Equal(t, -0.15, apex.Drivers[0].SkillOffset)
}

func TestLoadTeams_RejectsWrongDriverCount(t *testing.T) {
	path := writeConfig(t, "teams.yaml", `
teams:
  - name: "Solo"
    car:
      base_speed: 80.0
      ers_efficiency: 0.8
      aero_efficiency: 0.85
      tyre_wear_rate: 1.0
      reliability: 0.95
    drivers:
      - name: "Only One"
        consistency: 1.0
`)
	_, err := LoadTeams(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly 2 drivers")
}

func TestLoadTeams_RejectsInvalidCar(t *testing.T) {
	path := writeConfig(t, "teams.yaml", `
teams:
  - name: "Bad Car"
    car:
      base_speed: -1.0
      ers_efficiency: 0.8
      aero_efficiency: 0.85
      tyre_wear_rate: 1.0
      reliability: 0.95
    drivers:
      - name: "A"
        consistency: 1.0
      - name: "B"
        consistency: 1.0
`)
	_, err := LoadTeams(path)
	assert.Error(t, err)
}

func TestLoadTeams_RejectsEmptyAndMissing(t *testing.T) {
	path := writeConfig(t, "teams.yaml", "teams: []\n")
	_, err := LoadTeams(path)
	assert.Error(t, err)

	_, err = LoadTeams(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyCalibration(t *testing.T) {
	path := writeConfig(t, "teams.yaml", sampleGrid)
	teams, err := LoadTeams(path)
	require.NoError(t, err)

	calPath := writeConfig(t, "calibration.yaml", `
"Apex GP":
  base_speed: 79.2
  reliability: 0.98
  ers_efficiency: 0.88
`)
	calibration, err := LoadCalibration(calPath)
	require.NoError(t, err)

	updated, err := ApplyCalibration(teams, calibration)
	require.NoError(t, err)
	require.Len(t, updated, 2)

	assert.Equal(t, 79.2, updated[0].Car.BaseSpeed)
	assert.Equal(t, 0.98, updated[0].Car.Reliability)
	assert.Equal(t, 0.88, updated[0].Car.ERSEfficiency)
	assert.Equal(t, 0.9, updated[0].Car.AeroEfficiency, "untracked parameters pass through")
	assert.Equal(t, teams[1].Car, updated[1].Car, "teams without an entry are unchanged")
}

func TestApplyCalibration_RejectsUnknownTeam(t *testing.T) {
	path := writeConfig(t, "teams.yaml", sampleGrid)
	teams, err := LoadTeams(path)
	require.NoError(t, err)

	_, err = ApplyCalibration(teams, map[string]CalibrationEntry{
		"Phantom": {BaseSpeed: 80, Reliability: 0.9, ERSEfficiency: 0.8},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Phantom")
}

func TestApplyCalibration_RejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "teams.yaml", sampleGrid)
	teams, err := LoadTeams(path)
	require.NoError(t, err)

	_, err = ApplyCalibration(teams, map[string]CalibrationEntry{
		"Apex GP": {BaseSpeed: 79.2, Reliability: 1.7, ERSEfficiency: 0.8},
	})
	assert.Error(t, err)
}
