package sim

import "fmt"

// Driver modifies the shared car performance through an individual additive
// skill offset (negative = faster than the car baseline) and a consistency
// multiplier applied to the Gaussian lap-time noise standard deviation.
type Driver struct {
	Name        string
	TeamName    string
	SkillOffset float64
	Consistency float64
}

// NewDriver validates the descriptor fields and returns a Driver.
func NewDriver(d Driver) (Driver, error) {
	if d.Name == "" {
		return Driver{}, fmt.Errorf("driver name must not be empty")
	}
	if d.TeamName == "" {
		return Driver{}, fmt.Errorf("driver %q: team_name must not be empty", d.Name)
	}
	if d.Consistency <= 0 {
		return Driver{}, fmt.Errorf("driver %q: consistency must be > 0, got %v", d.Name, d.Consistency)
	}
	return d, nil
}
