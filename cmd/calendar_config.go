package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/gridsim/gridsim/sim"
)

// Define structs for the calendar YAML
type CalendarConfig struct {
	Races []TrackConfig `yaml:"races"`
}

type TrackConfig struct {
	Name                  string  `yaml:"name"`
	StraightRatio         float64 `yaml:"straight_ratio"`
	OvertakeCoefficient   float64 `yaml:"overtake_coefficient"`
	EnergyHarvestFactor   float64 `yaml:"energy_harvest_factor"`
	TyreDegradationFactor float64 `yaml:"tyre_degradation_factor"`
	DownforceSensitivity  float64 `yaml:"downforce_sensitivity"`
	SafetyCarLambda       float64 `yaml:"safety_car_lambda"`
	SafetyCarResumeLambda float64 `yaml:"safety_car_resume_lambda"`
}

// LoadCalendar reads a calendar YAML and validates every circuit through
// the engine's descriptor constructor, so a malformed file fails here and
// never reaches a simulation.
func LoadCalendar(path string) ([]sim.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading calendar %s: %w", path, err)
	}

	var cfg CalendarConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing calendar %s: %w", path, err)
	}
	if len(cfg.Races) == 0 {
		return nil, fmt.Errorf("calendar %s: no races defined", path)
	}

	calendar := make([]sim.Track, 0, len(cfg.Races))
	for _, tc := range cfg.Races {
		track, err := sim.NewTrack(sim.Track{
			Name:                  tc.Name,
			StraightRatio:         tc.StraightRatio,
			OvertakeCoefficient:   tc.OvertakeCoefficient,
			EnergyHarvestFactor:   tc.EnergyHarvestFactor,
			TyreDegradationFactor: tc.TyreDegradationFactor,
			DownforceSensitivity:  tc.DownforceSensitivity,
			SafetyCarLambda:       tc.SafetyCarLambda,
			SafetyCarResumeLambda: tc.SafetyCarResumeLambda,
		})
		if err != nil {
			return nil, fmt.Errorf("calendar %s: %w", path, err)
		}
		calendar = append(calendar, track)
	}
	return calendar, nil
}

// findTrack resolves a --track flag value against the calendar; an empty
// name selects the first race.
func findTrack(calendar []sim.Track, name string) (sim.Track, error) {
	if name == "" {
		return calendar[0], nil
	}
	for _, track := range calendar {
		if track.Name == name {
			return track, nil
		}
	}
	return sim.Track{}, fmt.Errorf("track %q not found in calendar", name)
}
