package sim

import (
	"fmt"
	"math"
)

// CarParameter selects which latent car parameter a sensitivity analysis
// perturbs.
type CarParameter int

const (
	ParamReliability CarParameter = iota
	ParamERSEfficiency
)

func (p CarParameter) String() string {
	switch p {
	case ParamReliability:
		return "reliability"
	case ParamERSEfficiency:
		return "ers_efficiency"
	default:
		return fmt.Sprintf("CarParameter(%d)", int(p))
	}
}

// SensitivityConfig bundles the knobs for a central-difference elasticity
// estimate.
type SensitivityConfig struct {
	LapsPerRace int
	Seasons     int
	Delta       float64 // perturbation magnitude
	BaseSeed    int64
	NoiseStd    float64
}

// ComputeSensitivity estimates the elasticity of a driver's WDC
// probability with respect to one car parameter of their team:
//
//	(wdcPlus - wdcMinus) / (paramPlus - paramMinus)
//
// Both perturbed values are clamped to [0, 1]; the matched baseSeed makes
// the plus and minus season ensembles share their random draws. If the
// clamp collapses the effective denominator to zero, the elasticity is
// reported as 0.
func ComputeSensitivity(calendar []Track, team *Team, otherTeams []*Team, driverName string, param CarParameter, cfg SensitivityConfig) (float64, error) {
	current, err := paramValue(team.Car, param)
	if err != nil {
		return 0, err
	}
	plus := math.Min(1.0, current+cfg.Delta)
	minus := math.Max(0.0, current-cfg.Delta)
	if plus == minus {
		return 0, nil
	}

	wdcPlus, err := perturbedWDC(calendar, team, otherTeams, driverName, param, plus, cfg)
	if err != nil {
		return 0, err
	}
	wdcMinus, err := perturbedWDC(calendar, team, otherTeams, driverName, param, minus, cfg)
	if err != nil {
		return 0, err
	}
	return (wdcPlus - wdcMinus) / (plus - minus), nil
}

func paramValue(car Car, param CarParameter) (float64, error) {
	switch param {
	case ParamReliability:
		return car.Reliability, nil
	case ParamERSEfficiency:
		return car.ERSEfficiency, nil
	default:
		return 0, fmt.Errorf("unknown car parameter %d", int(param))
	}
}

func withParam(car Car, param CarParameter, value float64) Car {
	switch param {
	case ParamReliability:
		car.Reliability = value
	case ParamERSEfficiency:
		car.ERSEfficiency = value
	}
	return car
}

func perturbedWDC(calendar []Track, team *Team, otherTeams []*Team, driverName string, param CarParameter, value float64, cfg SensitivityConfig) (float64, error) {
	perturbed, err := NewTeam(team.Name, withParam(team.Car, param, value), team.Drivers)
	if err != nil {
		return 0, err
	}
	field := append([]*Team{perturbed}, otherTeams...)
	dist, err := SimulateSeasonMonteCarlo(calendar, field, cfg.LapsPerRace, cfg.Seasons, cfg.BaseSeed, cfg.NoiseStd)
	if err != nil {
		return 0, err
	}
	return dist.WDCProbabilities[driverName], nil
}

// ChampionshipEntropy is the Shannon entropy (in nats) of a championship
// probability mapping: -sum(p*ln(p)) over entries with p > 0. A dominant
// champion yields entropy near 0; a uniform field of n entries yields
// ln(n).
func ChampionshipEntropy(probabilities map[string]float64) float64 {
	entropy := 0.0
	for _, p := range probabilities {
		if p > 0 {
			entropy -= p * math.Log(p)
		}
	}
	return entropy
}
