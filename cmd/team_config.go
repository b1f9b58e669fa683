package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/gridsim/gridsim/sim"
)

// Define structs for the grid YAML
type GridConfig struct {
	Teams []TeamConfig `yaml:"teams"`
}

type TeamConfig struct {
	Name    string         `yaml:"name"`
	Car     CarConfig      `yaml:"car"`
	Drivers []DriverConfig `yaml:"drivers"`
}

type CarConfig struct {
	BaseSpeed      float64 `yaml:"base_speed"`
	ERSEfficiency  float64 `yaml:"ers_efficiency"`
	AeroEfficiency float64 `yaml:"aero_efficiency"`
	TyreWearRate   float64 `yaml:"tyre_wear_rate"`
	Reliability    float64 `yaml:"reliability"`
}

type DriverConfig struct {
	Name        string  `yaml:"name"`
	SkillOffset float64 `yaml:"skill_offset"`
	Consistency float64 `yaml:"consistency"`
}

// LoadTeams reads a grid YAML into validated Team values. The team name is
// stamped onto the car and drivers, so the name-match rule of the engine
// cannot be violated by a config file.
func LoadTeams(path string) ([]*sim.Team, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grid %s: %w", path, err)
	}

	var cfg GridConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing grid %s: %w", path, err)
	}
	if len(cfg.Teams) == 0 {
		return nil, fmt.Errorf("grid %s: no teams defined", path)
	}

	teams := make([]*sim.Team, 0, len(cfg.Teams))
	for _, tc := range cfg.Teams {
		car, err := sim.NewCar(sim.Car{
			TeamName:       tc.Name,
			BaseSpeed:      tc.Car.BaseSpeed,
			ERSEfficiency:  tc.Car.ERSEfficiency,
			AeroEfficiency: tc.Car.AeroEfficiency,
			TyreWearRate:   tc.Car.TyreWearRate,
			Reliability:    tc.Car.Reliability,
		})
		if err != nil {
			return nil, fmt.Errorf("grid %s: %w", path, err)
		}
		drivers := make([]sim.Driver, 0, len(tc.Drivers))
		for _, dc := range tc.Drivers {
			driver, err := sim.NewDriver(sim.Driver{
				Name:        dc.Name,
				TeamName:    tc.Name,
				SkillOffset: dc.SkillOffset,
				Consistency: dc.Consistency,
			})
			if err != nil {
				return nil, fmt.Errorf("grid %s: %w", path, err)
			}
			drivers = append(drivers, driver)
		}
		team, err := sim.NewTeam(tc.Name, car, drivers)
		if err != nil {
			return nil, fmt.Errorf("grid %s: %w", path, err)
		}
		teams = append(teams, team)
	}
	return teams, nil
}

// CalibrationEntry carries externally estimated car parameters, produced
// by a separate parameter-estimation step from observed session data.
type CalibrationEntry struct {
	BaseSpeed     float64 `yaml:"base_speed"`
	Reliability   float64 `yaml:"reliability"`
	ERSEfficiency float64 `yaml:"ers_efficiency"`
}

// LoadCalibration reads a {team_name: {base_speed, reliability,
// ers_efficiency}} YAML mapping.
func LoadCalibration(path string) (map[string]CalibrationEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading calibration %s: %w", path, err)
	}
	var calibration map[string]CalibrationEntry
	if err := yaml.Unmarshal(data, &calibration); err != nil {
		return nil, fmt.Errorf("parsing calibration %s: %w", path, err)
	}
	return calibration, nil
}

// ApplyCalibration rebuilds each named team with the calibrated base
// speed, reliability and ERS efficiency. Calibration for an unknown team
// is an error; teams without an entry pass through unchanged.
func ApplyCalibration(teams []*sim.Team, calibration map[string]CalibrationEntry) ([]*sim.Team, error) {
	byName := make(map[string]bool, len(teams))
	for _, team := range teams {
		byName[team.Name] = true
	}
	for name := range calibration {
		if !byName[name] {
			return nil, fmt.Errorf("calibration for unknown team %q", name)
		}
	}

	updated := make([]*sim.Team, 0, len(teams))
	for _, team := range teams {
		entry, ok := calibration[team.Name]
		if !ok {
			updated = append(updated, team)
			continue
		}
		car := team.Car
		car.BaseSpeed = entry.BaseSpeed
		car.Reliability = entry.Reliability
		car.ERSEfficiency = entry.ERSEfficiency
		car, err := sim.NewCar(car)
		if err != nil {
			return nil, fmt.Errorf("calibration for team %q: %w", team.Name, err)
		}
		rebuilt, err := sim.NewTeam(team.Name, car, team.Drivers)
		if err != nil {
			return nil, err
		}
		updated = append(updated, rebuilt)
	}
	return updated, nil
}
