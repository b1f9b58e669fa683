package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSensitivity_FiniteElasticity(t *testing.T) {
	teams := sampleTeams(t, 2, 0.95)
	cfg := SensitivityConfig{
		LapsPerRace: 4,
		Seasons:     5,
		Delta:       0.2,
		BaseSeed:    17,
		NoiseStd:    0.05,
	}
	elasticity, err := ComputeSensitivity(testCalendar(), teams[0], teams[1:], teams[0].Drivers[0].Name, ParamERSEfficiency, cfg)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(elasticity))
	assert.False(t, math.IsInf(elasticity, 0))
}

func TestComputeSensitivity_ZeroDeltaReportsZero(t *testing.T) {
	teams := sampleTeams(t, 2, 0.95)
	cfg := SensitivityConfig{LapsPerRace: 4, Seasons: 2, Delta: 0, BaseSeed: 1, NoiseStd: 0.05}
	elasticity, err := ComputeSensitivity(testCalendar(), teams[0], teams[1:], teams[0].Drivers[0].Name, ParamReliability, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0.0, elasticity)
}

func TestComputeSensitivity_RejectsUnknownParameter(t *testing.T) {
	teams := sampleTeams(t, 2, 0.95)
	cfg := SensitivityConfig{LapsPerRace: 4, Seasons: 2, Delta: 0.1, BaseSeed: 1, NoiseStd: 0.05}
	_, err := ComputeSensitivity(testCalendar(), teams[0], teams[1:], teams[0].Drivers[0].Name, CarParameter(9), cfg)
	assert.Error(t, err)
}

func TestCarParameter_String(t *testing.T) {
	assert.Equal(t, "reliability", ParamReliability.String())
	assert.Equal(t, "ers_efficiency", ParamERSEfficiency.String())
}

func TestChampionshipEntropy_CertainChampionIsZero(t *testing.T) {
	probs := map[string]float64{"dominant": 1.0, "rest": 0.0}
	assert.Equal(t, 0.0, ChampionshipEntropy(probs))
}

func TestChampionshipEntropy_UniformFieldIsLogN(t *testing.T) {
	probs := map[string]float64{"a": 0.25, "b": 0.25, "c": 0.25, "d": 0.25}
	assert.InDelta(t, math.Log(4), ChampionshipEntropy(probs), 1e-12)
}

func TestChampionshipEntropy_SkewBetweenExtremes(t *testing.T) {
	probs := map[string]float64{"favourite": 0.9, "outsider": 0.1}
	entropy := ChampionshipEntropy(probs)
	assert.Greater(t, entropy, 0.0)
	assert.Less(t, entropy, math.Log(2))
}
