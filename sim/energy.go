package sim

import "fmt"

// DefaultMaxCharge is the battery capacity in MJ used for per-driver
// energy state unless a scenario overrides it.
const DefaultMaxCharge = 4.0

// EnergyState tracks ERS battery charge over a race. It is mutable,
// created fresh per driver per replication, and never shared.
//
// Harvest and deploy are fully deterministic: both are bounded by the
// physical limits [0, MaxCharge] with no stochastic component.
type EnergyState struct {
	CurrentCharge float64
	MaxCharge     float64
}

// NewEnergyState returns a battery at full charge.
func NewEnergyState(maxCharge float64) (*EnergyState, error) {
	if maxCharge <= 0 {
		return nil, fmt.Errorf("max charge must be > 0, got %v", maxCharge)
	}
	return &EnergyState{CurrentCharge: maxCharge, MaxCharge: maxCharge}, nil
}

// NewEnergyStateWithCharge returns a battery with an explicit initial charge.
func NewEnergyStateWithCharge(maxCharge, currentCharge float64) (*EnergyState, error) {
	if maxCharge <= 0 {
		return nil, fmt.Errorf("max charge must be > 0, got %v", maxCharge)
	}
	if currentCharge < 0 || currentCharge > maxCharge {
		return nil, fmt.Errorf("current charge must be in [0, %v], got %v", maxCharge, currentCharge)
	}
	return &EnergyState{CurrentCharge: currentCharge, MaxCharge: maxCharge}, nil
}

// Deploy removes min(amount, CurrentCharge) from the battery and returns
// the amount actually deployed.
func (e *EnergyState) Deploy(amount float64) (float64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("deploy amount must be >= 0, got %v", amount)
	}
	actual := min(amount, e.CurrentCharge)
	e.CurrentCharge -= actual
	return actual, nil
}

// Harvest adds min(amount, headroom) to the battery and returns the amount
// actually harvested.
func (e *EnergyState) Harvest(amount float64) (float64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("harvest amount must be >= 0, got %v", amount)
	}
	actual := min(amount, e.MaxCharge-e.CurrentCharge)
	e.CurrentCharge += actual
	return actual, nil
}
