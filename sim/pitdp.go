package sim

import "fmt"

// Finite-horizon dynamic-programming pit-stop optimizer.
//
// State space: (lap, tyreAge, compound) with lap in [0, totalLaps],
// tyreAge in [0, totalLaps], compound in the closed three-member registry.
// Backward induction fills cost-to-go and the minimizing action per state;
// a forward pass replays the stored policy into a concrete Strategy.
//
// Energy state and safety-car effects are deliberately excluded to keep
// the state space tractable. Deploy level is assumed zero throughout,
// matching the conservative zero-deploy baseline of the grid search.
// Complexity is O(totalLaps^2 * 3) in both time and space.

// continueAction marks a state whose optimal move is to stay out.
const continueAction = -1

// dpLapCost is the deterministic cost of one lap on the given tyres:
// zero-age physics lap plus compound-scaled degradation plus the compound
// pace delta. Mirrors the race-engine lap calculation with deploy = 0.
func dpLapCost(track Track, car Car, tyreAge int, compound Compound) float64 {
	base := car.BaseSpeed + track.DownforceSensitivity*(1.0-car.AeroEfficiency)
	deg := float64(tyreAge) * track.TyreDegradationFactor * car.TyreWearRate * compound.DegradationRate()
	return base + deg + compound.PaceDelta()
}

// ComputeOptimalStrategyDP solves for the globally optimal pit/compound
// policy via backward induction and returns it as a Strategy with
// deploy and harvest levels of zero. Pit stops are only permitted on laps
// 0 < lap < totalLaps-1 to avoid degenerate first- or last-lap stops.
// Pit laps in the result are 1-based.
func ComputeOptimalStrategyDP(track Track, car Car, totalLaps int, startingCompound Compound) (Strategy, error) {
	if totalLaps < 1 {
		return Strategy{}, fmt.Errorf("total laps must be >= 1, got %d", totalLaps)
	}
	if !startingCompound.valid() {
		return Strategy{}, fmt.Errorf("invalid starting compound %d", int(startingCompound))
	}

	// cost[lap][age][compound] is the cost-to-go; action holds the
	// minimizing move (continueAction or the compound index to pit to).
	cost := make([][][numCompounds]float64, totalLaps+1)
	action := make([][][numCompounds]int, totalLaps+1)
	for lap := 0; lap <= totalLaps; lap++ {
		cost[lap] = make([][numCompounds]float64, totalLaps+1)
		action[lap] = make([][numCompounds]int, totalLaps+1)
	}

	// Base case: cost-to-go is zero past the final lap (the zero value of
	// cost already encodes it); actions default to continue.
	for age := 0; age <= totalLaps; age++ {
		for c := 0; c < numCompounds; c++ {
			action[totalLaps][age][c] = continueAction
		}
	}

	for lap := totalLaps - 1; lap >= 0; lap-- {
		for age := 0; age <= totalLaps; age++ {
			for _, c := range Compounds() {
				nextAge := min(age+1, totalLaps)
				bestCost := dpLapCost(track, car, age, c) + cost[lap+1][nextAge][c]
				bestAction := continueAction

				if 0 < lap && lap < totalLaps-1 {
					for _, next := range Compounds() {
						pitCost := PitLoss + dpLapCost(track, car, 0, next) + cost[lap+1][1][next]
						if pitCost < bestCost {
							bestCost = pitCost
							bestAction = int(next)
						}
					}
				}
				cost[lap][age][c] = bestCost
				action[lap][age][c] = bestAction
			}
		}
	}

	// Forward pass: replay the stored policy from the starting state.
	pitLaps := make([]int, 0, 2)
	compounds := []Compound{startingCompound}
	current := startingCompound
	age := 0
	for lap := 0; lap < totalLaps; lap++ {
		if a := action[lap][age][current]; a != continueAction {
			pitLaps = append(pitLaps, lap+1)
			current = Compound(a)
			compounds = append(compounds, current)
			age = 1 // the pit lap is driven on fresh tyres
		} else {
			age++
		}
	}

	return NewStrategy(0.0, 0.0, compounds, pitLaps)
}
