package sim

import "fmt"

// Compound is the closed set of tyre classes. Each compound carries a fixed
// pace delta (negative = faster) and a degradation-rate multiplier relative
// to the medium baseline.
type Compound int

const (
	Soft Compound = iota
	Medium
	Hard

	numCompounds = 3
)

type compoundSpec struct {
	name      string
	paceDelta float64
	degRate   float64
}

var compoundTable = [numCompounds]compoundSpec{
	Soft:   {name: "SOFT", paceDelta: -0.6, degRate: 1.5},
	Medium: {name: "MEDIUM", paceDelta: -0.3, degRate: 1.0},
	Hard:   {name: "HARD", paceDelta: 0.0, degRate: 0.7},
}

// Compounds lists every compound in registry order.
func Compounds() [numCompounds]Compound {
	return [numCompounds]Compound{Soft, Medium, Hard}
}

func (c Compound) valid() bool {
	return c >= 0 && c < numCompounds
}

func (c Compound) String() string {
	if !c.valid() {
		return fmt.Sprintf("Compound(%d)", int(c))
	}
	return compoundTable[c].name
}

// PaceDelta is the additive lap-time offset in seconds.
func (c Compound) PaceDelta() float64 { return compoundTable[c].paceDelta }

// DegradationRate is the multiplier applied to the track/car degradation
// term. 1.0 is the medium baseline.
func (c Compound) DegradationRate() float64 { return compoundTable[c].degRate }

// ParseCompound maps a compound name ("SOFT", "MEDIUM", "HARD") to its enum
// value.
func ParseCompound(name string) (Compound, error) {
	for _, c := range Compounds() {
		if compoundTable[c].name == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown tyre compound %q", name)
}

// TyreState tracks wear over a stint. Age increments are strictly
// integer-based and deterministic. Like EnergyState, it is owned by a
// single replication.
type TyreState struct {
	Age      int
	WearRate float64
	Compound Compound
}

// NewTyreState returns a fresh tyre set of the given compound.
func NewTyreState(wearRate float64, compound Compound) (*TyreState, error) {
	if wearRate < 0 {
		return nil, fmt.Errorf("wear rate must be >= 0, got %v", wearRate)
	}
	if !compound.valid() {
		return nil, fmt.Errorf("invalid tyre compound %d", int(compound))
	}
	return &TyreState{Age: 0, WearRate: wearRate, Compound: compound}, nil
}

// IncrementAge advances tyre age by one lap.
func (t *TyreState) IncrementAge() { t.Age++ }

// Reset zeroes tyre age after a pit stop, keeping the current compound.
func (t *TyreState) Reset() { t.Age = 0 }

// ResetTo zeroes tyre age and fits a new compound.
func (t *TyreState) ResetTo(compound Compound) {
	t.Age = 0
	t.Compound = compound
}
