package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStrategy_Validation(t *testing.T) {
	t.Run("one stop with two compounds validates", func(t *testing.T) {
		s, err := NewStrategy(0.4, 1.0, []Compound{Soft, Medium}, []int{5})
		require.NoError(t, err)
		assert.Equal(t, 1, s.Stops())
	})

	t.Run("length mismatch fails", func(t *testing.T) {
		_, err := NewStrategy(0.4, 1.0, []Compound{Soft}, []int{5})
		assert.Error(t, err)
	})

	tests := []struct {
		name      string
		deploy    float64
		harvest   float64
		compounds []Compound
		pitLaps   []int
	}{
		{"deploy above one", 1.2, 1.0, []Compound{Medium}, nil},
		{"negative harvest", 0.4, -0.1, []Compound{Medium}, nil},
		{"unsorted pit laps", 0.4, 1.0, []Compound{Soft, Medium, Hard}, []int{20, 10}},
		{"duplicate pit laps", 0.4, 1.0, []Compound{Soft, Medium, Hard}, []int{10, 10}},
		{"invalid compound", 0.4, 1.0, []Compound{Compound(7)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStrategy(tt.deploy, tt.harvest, tt.compounds, tt.pitLaps)
			assert.Error(t, err)
		})
	}
}

func TestDefaultStrategy(t *testing.T) {
	s := DefaultStrategy(0.6, 1.0)
	require.NoError(t, s.Validate())
	assert.Equal(t, []Compound{Medium}, s.Compounds)
	assert.Empty(t, s.PitLaps)
}
