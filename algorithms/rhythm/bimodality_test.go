package rhythm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func repeat(value float64, count int) []float64 {
	intervals := make([]float64, count)
	for i := range intervals {
		intervals[i] = value
	}
	return intervals
}

func TestBimodality_TwoPopulations(t *testing.T) {
	b := NewBimodality()

	intervals := append(repeat(0.8, 10), repeat(4.35, 8)...)
	result := b.Compute(intervals)

	assert.True(t, result.Bimodal)
	assert.InDelta(t, 0.8, result.FastMean, 1e-9)
	assert.InDelta(t, 4.35, result.SlowMean, 1e-9)
	assert.InDelta(t, 4.35/0.8, result.SeparationRatio, 1e-9)
	assert.Equal(t, 10, result.FastCount)
	assert.Equal(t, 8, result.SlowCount)
}

func TestBimodality_UniformIntervals(t *testing.T) {
	b := NewBimodality()

	result := b.Compute(repeat(0.5, 6))
	assert.False(t, result.Bimodal)
}

func TestBimodality_OutlierMinority(t *testing.T) {
	b := NewBimodality()

	// Coda-gap pattern: 15 fast intervals against 4 long silences. The
	// silences are well separated but hold under a quarter of the mass,
	// so they must not register as a second oscillator.
	intervals := append(repeat(0.25, 15), repeat(2.0, 4)...)
	result := b.Compute(intervals)

	assert.False(t, result.Bimodal)
	assert.Greater(t, result.SeparationRatio, 2.0, "populations are separated, only the share test fails")
}

func TestBimodality_TooFewIntervals(t *testing.T) {
	b := NewBimodality()

	result := b.Compute([]float64{0.2, 0.2, 2.0})
	assert.False(t, result.Bimodal)
	assert.Zero(t, result.SeparationRatio)
}

func TestBimodality_NearbyPopulations(t *testing.T) {
	b := NewBimodality()

	// Split exists but the means are under 2x apart
	intervals := append(repeat(0.5, 3), repeat(0.8, 3)...)
	result := b.Compute(intervals)

	assert.False(t, result.Bimodal)
	assert.InDelta(t, 1.6, result.SeparationRatio, 1e-9)
}
