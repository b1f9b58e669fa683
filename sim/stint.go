package sim

import "fmt"

// StintResult is the telemetry trace of a deterministic stint simulation.
type StintResult struct {
	TotalTime   float64
	LapTimes    []float64
	EnergyTrace []float64
	TyreTrace   []int
}

// SimulateStint runs a deterministic stint of the given length. Per lap:
// harvest (scaled by track and strategy), deploy (bounded by battery),
// physics lap time, tyre aging.
func SimulateStint(track Track, car Car, strategy Strategy, laps int, initialCharge, maxCharge float64) (StintResult, error) {
	if laps < 1 {
		return StintResult{}, fmt.Errorf("laps must be >= 1, got %d", laps)
	}
	energy, err := NewEnergyStateWithCharge(maxCharge, initialCharge)
	if err != nil {
		return StintResult{}, err
	}
	tyre, err := NewTyreState(car.TyreWearRate, Medium)
	if err != nil {
		return StintResult{}, err
	}

	res := StintResult{
		LapTimes:    make([]float64, 0, laps),
		EnergyTrace: make([]float64, 0, laps),
		TyreTrace:   make([]int, 0, laps),
	}
	for lap := 0; lap < laps; lap++ {
		if _, err := energy.Harvest(track.EnergyHarvestFactor * strategy.HarvestLevel); err != nil {
			return StintResult{}, err
		}
		actualDeploy, err := energy.Deploy(strategy.DeployLevel)
		if err != nil {
			return StintResult{}, err
		}
		t, err := LapTime(track, car, float64(tyre.Age), actualDeploy)
		if err != nil {
			return StintResult{}, err
		}
		tyre.IncrementAge()

		res.TotalTime += t
		res.LapTimes = append(res.LapTimes, t)
		res.EnergyTrace = append(res.EnergyTrace, energy.CurrentCharge)
		res.TyreTrace = append(res.TyreTrace, tyre.Age)
	}
	return res, nil
}

// deployCandidates is the fixed grid evaluated by FindBestConstantDeploy.
var deployCandidates = []float64{0.0, 0.2, 0.4, 0.6, 0.8}

// FindBestConstantDeploy evaluates each candidate deploy level at harvest
// level 1.0 over a full stint and returns the strategy with the lowest
// total time. Ties break toward the first candidate tested, so the result
// is deterministic.
func FindBestConstantDeploy(track Track, car Car, laps int) (Strategy, float64, error) {
	var best Strategy
	bestTime := 0.0
	found := false

	for _, dl := range deployCandidates {
		strat := DefaultStrategy(dl, 1.0)
		res, err := SimulateStint(track, car, strat, laps, DefaultMaxCharge, DefaultMaxCharge)
		if err != nil {
			return Strategy{}, 0, err
		}
		if !found || res.TotalTime < bestTime {
			best = strat
			bestTime = res.TotalTime
			found = true
		}
	}
	return best, bestTime, nil
}

// compoundStintTime returns the total time of a single-compound stint,
// applying the compound pace delta and compound-scaled degradation on top
// of the zero-age physics lap, exactly as the race engine does.
func compoundStintTime(track Track, car Car, laps int, compound Compound, deployLevel, harvestLevel float64) (float64, error) {
	energy, err := NewEnergyState(DefaultMaxCharge)
	if err != nil {
		return 0, err
	}
	tyre, err := NewTyreState(car.TyreWearRate, compound)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for lap := 0; lap < laps; lap++ {
		if _, err := energy.Harvest(track.EnergyHarvestFactor * harvestLevel); err != nil {
			return 0, err
		}
		actualDeploy, err := energy.Deploy(deployLevel)
		if err != nil {
			return 0, err
		}
		t, err := LapTime(track, car, 0, actualDeploy)
		if err != nil {
			return 0, err
		}
		baseDeg := float64(tyre.Age) * track.TyreDegradationFactor * car.TyreWearRate
		t += baseDeg * compound.DegradationRate()
		t += compound.PaceDelta()
		total += t
		tyre.IncrementAge()
	}
	return total, nil
}

// FindBestPitStrategy sweeps a limited grid of 1-stop and 2-stop plans:
// pit-lap offsets of +-5 laps around the stint midpoints, and every
// compound combination per stint. Total cost is the sum of per-stint
// costs (tyre age resets at each boundary) plus pitLoss per stop. Ties
// resolve to the first enumerated combination.
//
// This is the cheap alternative to the DP optimizer in pitdp.go: it
// covers a small candidate set rather than the full policy space.
func FindBestPitStrategy(track Track, car Car, totalLaps int, pitLoss float64) (Strategy, float64, error) {
	if totalLaps < 1 {
		return Strategy{}, 0, fmt.Errorf("total laps must be >= 1, got %d", totalLaps)
	}
	baseStrat, baseTime, err := FindBestConstantDeploy(track, car, totalLaps)
	if err != nil {
		return Strategy{}, 0, err
	}
	deploy, harvest := baseStrat.DeployLevel, baseStrat.HarvestLevel

	var best Strategy
	bestTime := 0.0
	found := false
	consider := func(total float64, compounds []Compound, pitLaps []int) error {
		if found && total >= bestTime {
			return nil
		}
		strat, err := NewStrategy(deploy, harvest, compounds, pitLaps)
		if err != nil {
			return err
		}
		best = strat
		bestTime = total
		found = true
		return nil
	}

	// 1-stop candidates around the half-distance mark.
	pit1 := max(2, min(totalLaps-1, totalLaps/2))
	for off := -5; off <= 5; off++ {
		plap := pit1 + off
		if plap < 2 || plap >= totalLaps {
			continue
		}
		for _, c1 := range Compounds() {
			t1, err := compoundStintTime(track, car, plap, c1, deploy, harvest)
			if err != nil {
				return Strategy{}, 0, err
			}
			for _, c2 := range Compounds() {
				t2, err := compoundStintTime(track, car, totalLaps-plap, c2, deploy, harvest)
				if err != nil {
					return Strategy{}, 0, err
				}
				if err := consider(t1+pitLoss+t2, []Compound{c1, c2}, []int{plap}); err != nil {
					return Strategy{}, 0, err
				}
			}
		}
	}

	// 2-stop candidates around the third-distance marks.
	p1Base := max(2, totalLaps/3)
	p2Base := max(p1Base+1, 2*totalLaps/3)
	for off1 := -5; off1 <= 5; off1++ {
		for off2 := -5; off2 <= 5; off2++ {
			p1 := p1Base + off1
			p2 := p2Base + off2
			if p1 < 2 || p2 <= p1 || p2 >= totalLaps {
				continue
			}
			for _, c1 := range Compounds() {
				t1, err := compoundStintTime(track, car, p1, c1, deploy, harvest)
				if err != nil {
					return Strategy{}, 0, err
				}
				for _, c2 := range Compounds() {
					t2, err := compoundStintTime(track, car, p2-p1, c2, deploy, harvest)
					if err != nil {
						return Strategy{}, 0, err
					}
					for _, c3 := range Compounds() {
						t3, err := compoundStintTime(track, car, totalLaps-p2, c3, deploy, harvest)
						if err != nil {
							return Strategy{}, 0, err
						}
						if err := consider(t1+pitLoss+t2+pitLoss+t3, []Compound{c1, c2, c3}, []int{p1, p2}); err != nil {
							return Strategy{}, 0, err
						}
					}
				}
			}
		}
	}

	if !found {
		// Races too short for any pit window fall back to a single stint.
		return baseStrat, baseTime, nil
	}
	return best, bestTime, nil
}
