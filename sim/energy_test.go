package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergyState_DeployBoundedByCharge(t *testing.T) {
	e, err := NewEnergyState(4.0)
	require.NoError(t, err)

	got, err := e.Deploy(1.5)
	require.NoError(t, err)
	assert.Equal(t, 1.5, got)
	assert.Equal(t, 2.5, e.CurrentCharge)

	// Request more than remains: only the remainder is deployed.
	got, err = e.Deploy(10.0)
	require.NoError(t, err)
	assert.Equal(t, 2.5, got)
	assert.Equal(t, 0.0, e.CurrentCharge)
}

func TestEnergyState_HarvestBoundedByCapacity(t *testing.T) {
	e, err := NewEnergyStateWithCharge(4.0, 3.0)
	require.NoError(t, err)

	got, err := e.Harvest(2.0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
	assert.Equal(t, 4.0, e.CurrentCharge)
}

func TestEnergyState_RejectsNegativeRequests(t *testing.T) {
	e, err := NewEnergyState(4.0)
	require.NoError(t, err)

	_, err = e.Deploy(-0.1)
	assert.Error(t, err)
	_, err = e.Harvest(-0.1)
	assert.Error(t, err)
}

func TestEnergyState_ChargeStaysInBounds(t *testing.T) {
	e, err := NewEnergyState(4.0)
	require.NoError(t, err)

	// Arbitrary deploy/harvest sequence never escapes [0, max].
	ops := []struct {
		deploy bool
		amount float64
	}{
		{true, 3.0}, {false, 0.5}, {true, 2.0}, {false, 9.0},
		{true, 0.0}, {false, 0.0}, {true, 5.0}, {false, 1.0},
	}
	for _, op := range ops {
		if op.deploy {
			_, err = e.Deploy(op.amount)
		} else {
			_, err = e.Harvest(op.amount)
		}
		require.NoError(t, err)
		assert.GreaterOrEqual(t, e.CurrentCharge, 0.0)
		assert.LessOrEqual(t, e.CurrentCharge, e.MaxCharge)
	}
}

func TestEnergyState_ConstructorValidation(t *testing.T) {
	_, err := NewEnergyState(0)
	assert.Error(t, err)
	_, err = NewEnergyStateWithCharge(4.0, -1)
	assert.Error(t, err)
	_, err = NewEnergyStateWithCharge(4.0, 4.5)
	assert.Error(t, err)
}

func TestTyreState_AgeAndReset(t *testing.T) {
	tyre, err := NewTyreState(1.0, Soft)
	require.NoError(t, err)
	assert.Equal(t, 0, tyre.Age)
	assert.Equal(t, Soft, tyre.Compound)

	for i := 0; i < 12; i++ {
		tyre.IncrementAge()
	}
	assert.Equal(t, 12, tyre.Age)

	tyre.ResetTo(Hard)
	assert.Equal(t, 0, tyre.Age)
	assert.Equal(t, Hard, tyre.Compound)

	tyre.IncrementAge()
	tyre.Reset()
	assert.Equal(t, 0, tyre.Age)
	assert.Equal(t, Hard, tyre.Compound, "plain reset keeps the fitted compound")
}

func TestTyreState_ConstructorValidation(t *testing.T) {
	_, err := NewTyreState(-0.5, Medium)
	assert.Error(t, err)
	_, err = NewTyreState(1.0, Compound(9))
	assert.Error(t, err)
}

func TestCompound_Registry(t *testing.T) {
	tests := []struct {
		compound  Compound
		name      string
		paceDelta float64
		degRate   float64
	}{
		{Soft, "SOFT", -0.6, 1.5},
		{Medium, "MEDIUM", -0.3, 1.0},
		{Hard, "HARD", 0.0, 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.compound.String())
			assert.Equal(t, tt.paceDelta, tt.compound.PaceDelta())
			assert.Equal(t, tt.degRate, tt.compound.DegradationRate())

			parsed, err := ParseCompound(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.compound, parsed)
		})
	}

	_, err := ParseCompound("INTERMEDIATE")
	assert.Error(t, err)
}
