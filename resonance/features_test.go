package resonance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeEventSeries_Validate(t *testing.T) {
	assert.NoError(t, TimeEventSeries{}.Validate())
	assert.NoError(t, TimeEventSeries{Events: []float64{0, 1, 2}}.Validate())
	assert.Error(t, TimeEventSeries{Events: []float64{0, 1, 1}}.Validate())
	assert.Error(t, TimeEventSeries{Events: []float64{2, 1}}.Validate())
}

func TestTimeEventSeries_Span(t *testing.T) {
	s := TimeEventSeries{Events: []float64{1.0, 2.0, 5.0}}
	assert.InDelta(t, 4.0, s.Span(), 1e-9)

	s.Duration = 10.0
	assert.InDelta(t, 10.0, s.Span(), 1e-9, "declared duration wins over event span")

	assert.Zero(t, TimeEventSeries{Events: []float64{3.0}}.Span())
}
