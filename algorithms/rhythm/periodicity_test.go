package rhythm

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mergedTrains interleaves two regular click trains over the given span,
// offsetting the second to avoid coincident timestamps
func mergedTrains(rateA, rateB, span float64) []float64 {
	var events []float64
	for t := 0.0; t <= span; t += 1.0 / rateA {
		events = append(events, t)
	}
	for t := 0.2; t <= span; t += 1.0 / rateB {
		events = append(events, t)
	}
	sort.Float64s(events)
	return events
}

func TestSecondaryPeriodicity_TwoOscillators(t *testing.T) {
	sp := NewSecondaryPeriodicity()

	result, err := sp.Compute(mergedTrains(0.5, 0.75, 60.0))
	require.NoError(t, err)

	assert.True(t, result.SecondaryDetected)

	var near05, near075 bool
	for _, p := range result.Peaks {
		if p.FrequencyHz > 0.45 && p.FrequencyHz < 0.55 {
			near05 = true
		}
		if p.FrequencyHz > 0.70 && p.FrequencyHz < 0.80 {
			near075 = true
		}
	}
	assert.True(t, near05, "expected a peak near 0.5 Hz, got %+v", result.Peaks)
	assert.True(t, near075, "expected a peak near 0.75 Hz, got %+v", result.Peaks)
}

func TestSecondaryPeriodicity_SingleOscillator(t *testing.T) {
	sp := NewSecondaryPeriodicity()

	// A lone regular train produces comb harmonics at integer multiples
	// of its rate; none of them may count as a second oscillator
	result, err := sp.Compute(regularTrain(0.5, 31))
	require.NoError(t, err)

	assert.False(t, result.SecondaryDetected)

	var nearFundamental bool
	for _, p := range result.Peaks {
		if p.FrequencyHz > 0.45 && p.FrequencyHz < 0.55 {
			nearFundamental = true
		}
	}
	assert.True(t, nearFundamental, "expected a peak near 0.5 Hz, got %+v", result.Peaks)
}

func TestSecondaryPeriodicity_TooFewEvents(t *testing.T) {
	sp := NewSecondaryPeriodicity()

	result, err := sp.Compute(regularTrain(0.5, 5))
	require.NoError(t, err)
	assert.False(t, result.SecondaryDetected)
	assert.Empty(t, result.Peaks)
}

func TestHarmonicRelated(t *testing.T) {
	assert.True(t, harmonicRelated(1.0, 0.5, 0.08))
	assert.True(t, harmonicRelated(0.5, 1.0, 0.08), "direction must not matter")
	assert.True(t, harmonicRelated(1.51, 0.5, 0.08), "tolerance absorbs leakage drift")
	assert.False(t, harmonicRelated(0.75, 0.5, 0.08))
	assert.False(t, harmonicRelated(0.7, 1.0, 0.08))
}
