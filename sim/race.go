package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
)

// Race-engine constants, shared with the strategy optimizers.
const (
	// PitLoss is the time penalty in seconds added to cumulative time on
	// every green-flag pit stop.
	PitLoss = 20.0

	// PassTimeDelta is the time transferred between two cars on a
	// successful overtake, making the pass persistent across laps.
	PassTimeDelta = 0.2

	// overtakeGapThreshold is the cumulative-time gap below which an
	// adjacent pair is evaluated for an overtake.
	overtakeGapThreshold = 1.0

	// SCLapTimeFactor scales the field-average base lap into the fixed
	// safety-car pace every car runs while the regime is active.
	SCLapTimeFactor = 1.4

	// SCGapInterval is the gap the field is compressed to after each
	// safety-car lap.
	SCGapInterval = 0.2

	// SCPitMultiplier discounts PitLoss for stops made under the safety
	// car (the field is slowed, so less relative time is lost).
	SCPitMultiplier = 0.6
)

// RaceResult is the outcome of one seeded replication.
//
// FinalClassification lists finishers by ascending cumulative time,
// followed by retired drivers in the order they retired. Every driver
// appears exactly once. LapTimes and CumulativeTimes are keyed by driver
// name.
type RaceResult struct {
	FinalClassification []string
	DNFs                []string
	LapTimes            map[string][]float64
	CumulativeTimes     map[string]float64
}

// driverState is the mutable per-driver bookkeeping owned by a single
// replication. Team and Car are read-only references into shared value
// objects; everything else is replication-local.
type driverState struct {
	driver      Driver
	car         Car
	energy      *EnergyState
	tyre        *TyreState
	strategy    Strategy
	cumulative  float64
	lapTimes    []float64
	active      bool
	lastLapTime float64
	stintIndex  int
}

func (ds *driverState) pitScheduledAt(lap int) bool {
	for _, p := range ds.strategy.PitLaps {
		if p == lap {
			return true
		}
	}
	return false
}

// SimulateRace runs one seeded race replication.
//
// Per lap, for every still-active driver, in order: harvest, deploy,
// deterministic lap time (zero-age physics plus compound-scaled
// degradation, compound pace delta, and driver skill offset), Gaussian
// noise (skipped entirely when noiseStd == 0), reliability hazard check,
// tyre aging, scheduled pit stop. After all drivers are updated, active
// drivers are re-ranked and adjacent pairs evaluated for overtaking —
// unless the safety car is out, in which case the whole field runs a
// fixed pace and is compressed to SCGapInterval gaps instead.
//
// Drivers without an entry in strategies fall back to the team's best
// constant-deploy plan on a single medium stint.
func SimulateRace(track Track, teams []*Team, laps int, noiseStd float64, key SimulationKey, strategies map[string]Strategy) (RaceResult, error) {
	if laps < 1 {
		return RaceResult{}, fmt.Errorf("laps must be >= 1, got %d", laps)
	}
	if len(teams) == 0 {
		return RaceResult{}, fmt.Errorf("teams list must not be empty")
	}

	rng := key.rng()

	states := make([]*driverState, 0, 2*len(teams))
	for _, team := range teams {
		defaultStrat, _, err := FindBestConstantDeploy(track, team.Car, laps)
		if err != nil {
			return RaceResult{}, err
		}
		for _, drv := range team.Drivers {
			strat, ok := strategies[drv.Name]
			if !ok {
				strat = defaultStrat
			} else if err := strat.Validate(); err != nil {
				return RaceResult{}, fmt.Errorf("strategy for driver %q: %w", drv.Name, err)
			}
			energy, err := NewEnergyState(DefaultMaxCharge)
			if err != nil {
				return RaceResult{}, err
			}
			tyre, err := NewTyreState(team.Car.TyreWearRate, strat.Compounds[0])
			if err != nil {
				return RaceResult{}, err
			}
			states = append(states, &driverState{
				driver:   drv,
				car:      team.Car,
				energy:   energy,
				tyre:     tyre,
				strategy: strat,
				lapTimes: make([]float64, 0, laps),
				active:   true,
			})
		}
	}

	scPace := safetyCarPace(track, states)
	scEnabled := track.SafetyCarLambda > 0 || track.SafetyCarResumeLambda > 0
	scActive := false
	dnfOrder := make([]string, 0)

	for lap := 1; lap <= laps; lap++ {
		// Safety-car regime switch. The draw is skipped entirely on
		// tracks without safety-car rates so their seeds stay compatible
		// with pre-safety-car scenarios.
		if scEnabled {
			if !scActive {
				scActive = rng.Float64() < track.SafetyCarLambda
				if scActive {
					logrus.Debugf("[lap %03d] safety car deployed", lap)
				}
			} else if rng.Float64() < track.SafetyCarResumeLambda {
				scActive = false
				logrus.Debugf("[lap %03d] safety car in, racing resumes", lap)
			}
		}

		for _, ds := range states {
			if !ds.active {
				continue
			}
			if scActive {
				if err := safetyCarLap(ds, lap, scPace); err != nil {
					return RaceResult{}, err
				}
				continue
			}

			// 1. Harvest.
			if _, err := ds.energy.Harvest(track.EnergyHarvestFactor * ds.strategy.HarvestLevel); err != nil {
				return RaceResult{}, err
			}
			// 2. Deploy, bounded by the battery.
			actualDeploy, err := ds.energy.Deploy(ds.strategy.DeployLevel)
			if err != nil {
				return RaceResult{}, err
			}
			// 3. Deterministic lap time. The physics call runs at zero
			// tyre age so the degradation term can be rescaled by the
			// fitted compound here.
			t, err := LapTime(track, ds.car, 0, actualDeploy)
			if err != nil {
				return RaceResult{}, err
			}
			baseDeg := float64(ds.tyre.Age) * track.TyreDegradationFactor * ds.car.TyreWearRate
			t += baseDeg * ds.tyre.Compound.DegradationRate()
			t += ds.tyre.Compound.PaceDelta()
			t += ds.driver.SkillOffset

			// 4. Gaussian noise scaled by driver consistency.
			if noiseStd > 0 {
				t += rng.NormFloat64() * noiseStd * ds.driver.Consistency
			}

			ds.lastLapTime = t
			ds.cumulative += t
			ds.lapTimes = append(ds.lapTimes, t)

			// 5. Reliability hazard.
			hazard := 1.0 - math.Exp(-(1.0 - ds.car.Reliability))
			if rng.Float64() < hazard {
				ds.active = false
				dnfOrder = append(dnfOrder, ds.driver.Name)
				logrus.Debugf("[lap %03d] %s retires (mechanical)", lap, ds.driver.Name)
				continue
			}

			// 6. Tyre aging.
			ds.tyre.IncrementAge()

			// 7. Scheduled pit stop.
			if ds.pitScheduledAt(lap) {
				ds.pit(PitLoss)
			}
		}

		active := activeByCumulative(states)
		if scActive {
			compressField(active)
		} else {
			applyOvertakes(active, track, rng)
		}
	}

	return buildResult(states, dnfOrder), nil
}

// safetyCarPace is the fixed lap time every car runs under the safety
// car: SCLapTimeFactor times the field-average zero-age, zero-deploy
// physics lap. It is car-independent by construction.
func safetyCarPace(track Track, states []*driverState) float64 {
	if len(states) == 0 {
		return 0
	}
	sum := 0.0
	for _, ds := range states {
		sum += ds.car.BaseSpeed + track.DownforceSensitivity*(1.0-ds.car.AeroEfficiency)
	}
	return SCLapTimeFactor * sum / float64(len(states))
}

// safetyCarLap advances one driver through a lap behind the safety car:
// fixed pace, no noise, no hazard, tyres still age, and scheduled stops
// happen at the discounted loss.
func safetyCarLap(ds *driverState, lap int, scPace float64) error {
	ds.lastLapTime = scPace
	ds.cumulative += scPace
	ds.lapTimes = append(ds.lapTimes, scPace)
	ds.tyre.IncrementAge()
	if ds.pitScheduledAt(lap) {
		ds.pit(PitLoss * SCPitMultiplier)
	}
	return nil
}

func (ds *driverState) pit(loss float64) {
	ds.cumulative += loss
	ds.stintIndex++
	if ds.stintIndex < len(ds.strategy.Compounds) {
		ds.tyre.ResetTo(ds.strategy.Compounds[ds.stintIndex])
	} else {
		ds.tyre.Reset()
	}
}

func activeByCumulative(states []*driverState) []*driverState {
	active := make([]*driverState, 0, len(states))
	for _, ds := range states {
		if ds.active {
			active = append(active, ds)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].cumulative < active[j].cumulative
	})
	return active
}

// compressField pulls the running order together behind the safety car:
// each car ends the lap SCGapInterval behind the one ahead.
func compressField(ranked []*driverState) {
	for i := 1; i < len(ranked); i++ {
		ranked[i].cumulative = ranked[0].cumulative + float64(i)*SCGapInterval
	}
}

// applyOvertakes evaluates adjacent pairs of the ranked field for a
// logistic pass. For a pair closer than overtakeGapThreshold, the pass
// probability is
//
//	1 / (1 + exp(-3 * delta * track.OvertakeCoefficient))
//
// with delta the previous-lap time difference (trailer minus leader). A
// successful pass swaps the pair and transfers PassTimeDelta between
// their cumulative times so the new order persists into the next lap;
// the following pair is then skipped to prevent an immediate re-swap.
func applyOvertakes(ranked []*driverState, track Track, rng randSource) {
	i := 0
	for i < len(ranked)-1 {
		leader := ranked[i]
		trailer := ranked[i+1]

		gap := math.Abs(trailer.cumulative - leader.cumulative)
		if gap < overtakeGapThreshold {
			delta := trailer.lastLapTime - leader.lastLapTime
			passProb := 1.0 / (1.0 + math.Exp(-3.0*delta*track.OvertakeCoefficient))

			if rng.Float64() < passProb {
				trailer.cumulative = math.Max(0, leader.cumulative-PassTimeDelta)
				leader.cumulative += PassTimeDelta
				ranked[i], ranked[i+1] = ranked[i+1], ranked[i]
				i += 2
				continue
			}
		}
		i++
	}
}

// randSource is the subset of *math/rand.Rand the overtake model needs;
// it keeps the helper directly testable with scripted draws.
type randSource interface {
	Float64() float64
}

func buildResult(states []*driverState, dnfOrder []string) RaceResult {
	finishers := activeByCumulative(states)

	classification := make([]string, 0, len(states))
	for _, ds := range finishers {
		classification = append(classification, ds.driver.Name)
	}
	classification = append(classification, dnfOrder...)

	lapTimes := make(map[string][]float64, len(states))
	cumulative := make(map[string]float64, len(states))
	for _, ds := range states {
		lapTimes[ds.driver.Name] = ds.lapTimes
		cumulative[ds.driver.Name] = ds.cumulative
	}

	return RaceResult{
		FinalClassification: classification,
		DNFs:                append([]string(nil), dnfOrder...),
		LapTimes:            lapTimes,
		CumulativeTimes:     cumulative,
	}
}
