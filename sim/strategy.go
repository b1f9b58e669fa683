package sim

import "fmt"

// Strategy is an immutable driving plan: constant ERS deploy and harvest
// levels, the compound fitted per stint, and the 1-based laps on which to
// pit. Compounds has exactly one more entry than PitLaps; the first entry
// is the starting compound.
type Strategy struct {
	DeployLevel  float64
	HarvestLevel float64
	Compounds    []Compound
	PitLaps      []int
}

// NewStrategy validates and returns a Strategy. PitLaps must be sorted
// ascending with no duplicates.
func NewStrategy(deployLevel, harvestLevel float64, compounds []Compound, pitLaps []int) (Strategy, error) {
	s := Strategy{
		DeployLevel:  deployLevel,
		HarvestLevel: harvestLevel,
		Compounds:    append([]Compound(nil), compounds...),
		PitLaps:      append([]int(nil), pitLaps...),
	}
	if err := s.Validate(); err != nil {
		return Strategy{}, err
	}
	return s, nil
}

// DefaultStrategy is a single medium-compound stint with no stops.
func DefaultStrategy(deployLevel, harvestLevel float64) Strategy {
	return Strategy{
		DeployLevel:  deployLevel,
		HarvestLevel: harvestLevel,
		Compounds:    []Compound{Medium},
	}
}

// Validate checks the Strategy invariants.
func (s Strategy) Validate() error {
	if s.DeployLevel < 0 || s.DeployLevel > 1 {
		return fmt.Errorf("deploy level must be in [0, 1], got %v", s.DeployLevel)
	}
	if s.HarvestLevel < 0 || s.HarvestLevel > 1 {
		return fmt.Errorf("harvest level must be in [0, 1], got %v", s.HarvestLevel)
	}
	if len(s.Compounds) != len(s.PitLaps)+1 {
		return fmt.Errorf("compound sequence length must be len(pit laps)+1, got %d compounds for %d stops",
			len(s.Compounds), len(s.PitLaps))
	}
	for _, c := range s.Compounds {
		if !c.valid() {
			return fmt.Errorf("invalid tyre compound %d in sequence", int(c))
		}
	}
	for i, lap := range s.PitLaps {
		if i > 0 && lap <= s.PitLaps[i-1] {
			return fmt.Errorf("pit laps must be sorted ascending without duplicates, got %v", s.PitLaps)
		}
	}
	return nil
}

// Stops returns the number of planned pit stops.
func (s Strategy) Stops() int { return len(s.PitLaps) }
