package sim

import "fmt"

// Car is the deterministic performance profile shared by both drivers of a
// team. BaseSpeed is a baseline lap time in seconds (lower is faster).
type Car struct {
	TeamName       string
	BaseSpeed      float64
	ERSEfficiency  float64
	AeroEfficiency float64
	TyreWearRate   float64
	Reliability    float64
}

// NewCar validates the descriptor fields and returns a Car.
func NewCar(c Car) (Car, error) {
	if c.TeamName == "" {
		return Car{}, fmt.Errorf("car team_name must not be empty")
	}
	if c.BaseSpeed <= 0 {
		return Car{}, fmt.Errorf("car %q: base_speed must be > 0, got %v", c.TeamName, c.BaseSpeed)
	}
	if c.ERSEfficiency < 0 || c.ERSEfficiency > 1 {
		return Car{}, fmt.Errorf("car %q: ers_efficiency must be in [0, 1], got %v", c.TeamName, c.ERSEfficiency)
	}
	if c.AeroEfficiency < 0 || c.AeroEfficiency > 1 {
		return Car{}, fmt.Errorf("car %q: aero_efficiency must be in [0, 1], got %v", c.TeamName, c.AeroEfficiency)
	}
	if c.TyreWearRate < 0 {
		return Car{}, fmt.Errorf("car %q: tyre_wear_rate must be >= 0, got %v", c.TeamName, c.TyreWearRate)
	}
	if c.Reliability < 0 || c.Reliability > 1 {
		return Car{}, fmt.Errorf("car %q: reliability must be in [0, 1], got %v", c.TeamName, c.Reliability)
	}
	return c, nil
}
