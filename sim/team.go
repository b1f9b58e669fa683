package sim

import "fmt"

// Team pairs one Car with exactly two Drivers. Teams are immutable value
// objects shared read-only across replications; per-replication driver
// state holds a reference to the team rather than a copy.
type Team struct {
	Name    string
	Car     Car
	Drivers []Driver
}

// NewTeam enforces the two-driver rule and the team-name match between the
// drivers, the car, and the team itself.
func NewTeam(name string, car Car, drivers []Driver) (*Team, error) {
	if name == "" {
		return nil, fmt.Errorf("team name must not be empty")
	}
	if len(drivers) != 2 {
		return nil, fmt.Errorf("team %q must have exactly 2 drivers, got %d", name, len(drivers))
	}
	if car.TeamName != name {
		return nil, fmt.Errorf("team %q: car team_name %q does not match", name, car.TeamName)
	}
	for _, d := range drivers {
		if d.TeamName != name {
			return nil, fmt.Errorf("team %q: driver %q has team_name %q", name, d.Name, d.TeamName)
		}
	}
	return &Team{Name: name, Car: car, Drivers: append([]Driver(nil), drivers...)}, nil
}
