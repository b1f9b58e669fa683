package sim

import "fmt"

// Track is an immutable description of a circuit. All ratio and coefficient
// fields are fractions in [0, 1]; degradation and downforce sensitivity are
// unbounded non-negative scalars.
//
// SafetyCarLambda and SafetyCarResumeLambda are per-lap Bernoulli
// probabilities for deploying and withdrawing the safety car. Both default
// to zero, which disables the safety-car regime entirely (and consumes no
// random draws, preserving seed compatibility with green-flag scenarios).
type Track struct {
	Name                  string
	StraightRatio         float64
	OvertakeCoefficient   float64
	EnergyHarvestFactor   float64
	TyreDegradationFactor float64
	DownforceSensitivity  float64
	SafetyCarLambda       float64
	SafetyCarResumeLambda float64
}

// NewTrack validates the descriptor fields and returns a Track.
// Validation is eager: a malformed descriptor never reaches the simulator.
func NewTrack(t Track) (Track, error) {
	if t.Name == "" {
		return Track{}, fmt.Errorf("track name must not be empty")
	}
	if t.StraightRatio < 0 || t.StraightRatio > 1 {
		return Track{}, fmt.Errorf("track %q: straight_ratio must be in [0, 1], got %v", t.Name, t.StraightRatio)
	}
	if t.OvertakeCoefficient < 0 || t.OvertakeCoefficient > 1 {
		return Track{}, fmt.Errorf("track %q: overtake_coefficient must be in [0, 1], got %v", t.Name, t.OvertakeCoefficient)
	}
	if t.EnergyHarvestFactor < 0 || t.EnergyHarvestFactor > 1 {
		return Track{}, fmt.Errorf("track %q: energy_harvest_factor must be in [0, 1], got %v", t.Name, t.EnergyHarvestFactor)
	}
	if t.TyreDegradationFactor < 0 {
		return Track{}, fmt.Errorf("track %q: tyre_degradation_factor must be >= 0, got %v", t.Name, t.TyreDegradationFactor)
	}
	if t.DownforceSensitivity < 0 {
		return Track{}, fmt.Errorf("track %q: downforce_sensitivity must be >= 0, got %v", t.Name, t.DownforceSensitivity)
	}
	if t.SafetyCarLambda < 0 || t.SafetyCarLambda > 1 {
		return Track{}, fmt.Errorf("track %q: safety_car_lambda must be in [0, 1], got %v", t.Name, t.SafetyCarLambda)
	}
	if t.SafetyCarResumeLambda < 0 || t.SafetyCarResumeLambda > 1 {
		return Track{}, fmt.Errorf("track %q: safety_car_resume_lambda must be in [0, 1], got %v", t.Name, t.SafetyCarResumeLambda)
	}
	return t, nil
}
