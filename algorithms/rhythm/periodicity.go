package rhythm

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

// SecondaryPeriodicityParams contains parameters for the spectral test
type SecondaryPeriodicityParams struct {
	// BinHz is the sampling rate (Hz) of the binned event-rate function
	BinHz float64 `json:"bin_hz"`

	// MinHz and MaxHz bound the rhythm band searched for peaks
	MinHz float64 `json:"min_hz"`
	MaxHz float64 `json:"max_hz"`

	// PeakFloor is the minimum magnitude, relative to the dominant peak,
	// for a local maximum to register as a peak at all
	PeakFloor float64 `json:"peak_floor"`

	// SecondaryThreshold is the minimum relative magnitude a non-harmonic
	// peak needs to count as a second oscillator
	SecondaryThreshold float64 `json:"secondary_threshold"`

	// HarmonicTolerance is how far a peak-to-dominant frequency ratio may
	// sit from an integer and still be dismissed as a harmonic
	HarmonicTolerance float64 `json:"harmonic_tolerance"`

	// MinEvents is the minimum number of events required for a usable spectrum
	MinEvents int `json:"min_events"`
}

// PeriodicityPeak describes one spectral peak of the event-rate function
type PeriodicityPeak struct {
	FrequencyHz float64 `json:"frequency_hz"`
	Magnitude   float64 `json:"magnitude"`
	Relative    float64 `json:"relative"` // Magnitude / dominant magnitude
}

// SecondaryPeriodicityResult contains the outcome of the spectral test
type SecondaryPeriodicityResult struct {
	DominantHz        float64           `json:"dominant_hz"`
	Peaks             []PeriodicityPeak `json:"peaks"`
	SecondaryDetected bool              `json:"secondary_detected"`
}

// SecondaryPeriodicity detects a concurrent second rhythm in an event
// sequence by examining the spectrum of its binned event-rate function.
//
// The event timestamps are accumulated into a fixed-rate impulse train,
// mean-removed, and transformed with an FFT. Peaks in the rhythm band are
// compared against the dominant peak; a peak at or above
// SecondaryThreshold whose frequency ratio to the dominant is not close to
// an integer (in either direction) indicates a genuinely independent
// oscillator. The harmonic guard matters: a single regular click train
// produces comb harmonics at every integer multiple of its rate, none of
// which are evidence of biphonation.
type SecondaryPeriodicity struct {
	params SecondaryPeriodicityParams
}

// NewSecondaryPeriodicity creates a spectral periodicity analyzer with
// default parameters covering the 0.05-1.0 Hz coda rhythm band
func NewSecondaryPeriodicity() *SecondaryPeriodicity {
	return &SecondaryPeriodicity{
		params: SecondaryPeriodicityParams{
			BinHz:              6.0,
			MinHz:              0.05,
			MaxHz:              1.0,
			PeakFloor:          0.1,
			SecondaryThreshold: 0.5,
			HarmonicTolerance:  0.08,
			MinEvents:          8,
		},
	}
}

// NewSecondaryPeriodicityWithParams creates an analyzer with custom parameters
func NewSecondaryPeriodicityWithParams(params SecondaryPeriodicityParams) *SecondaryPeriodicity {
	return &SecondaryPeriodicity{params: params}
}

// Compute analyzes the given strictly increasing event timestamps (seconds)
func (sp *SecondaryPeriodicity) Compute(events []float64) (*SecondaryPeriodicityResult, error) {
	result := &SecondaryPeriodicityResult{}

	if len(events) < sp.params.MinEvents {
		return result, nil
	}

	if sp.params.BinHz <= 0 {
		return nil, fmt.Errorf("bin rate must be positive: %f", sp.params.BinHz)
	}

	first := events[0]
	last := events[len(events)-1]
	span := last - first
	if span <= 0 {
		return nil, fmt.Errorf("event span must be positive")
	}

	numBins := int(math.Ceil(span*sp.params.BinHz)) + 1
	train := make([]float64, numBins)
	for _, t := range events {
		idx := int(math.Round((t - first) * sp.params.BinHz))
		if idx >= numBins {
			idx = numBins - 1
		}
		train[idx]++
	}

	mean := stat.Mean(train, nil)
	for i := range train {
		train[i] -= mean
	}

	spectrum := fft.FFTReal(train)

	magnitudes := make([]float64, numBins/2)
	for k := 1; k < numBins/2; k++ {
		magnitudes[k] = cmplx.Abs(spectrum[k])
	}
	binToHz := sp.params.BinHz / float64(numBins)

	// Local maxima inside the rhythm band
	var peaks []PeriodicityPeak
	maxMag := 0.0
	for k := 2; k < len(magnitudes)-1; k++ {
		freq := float64(k) * binToHz
		if freq < sp.params.MinHz || freq > sp.params.MaxHz {
			continue
		}
		if magnitudes[k] > magnitudes[k-1] && magnitudes[k] > magnitudes[k+1] {
			peaks = append(peaks, PeriodicityPeak{FrequencyHz: freq, Magnitude: magnitudes[k]})
			if magnitudes[k] > maxMag {
				maxMag = magnitudes[k]
				result.DominantHz = freq
			}
		}
	}

	if maxMag == 0 {
		return result, nil
	}

	filtered := peaks[:0]
	for _, p := range peaks {
		p.Relative = p.Magnitude / maxMag
		if p.Relative >= sp.params.PeakFloor {
			filtered = append(filtered, p)
		}
	}
	result.Peaks = filtered

	for _, p := range result.Peaks {
		if p.FrequencyHz == result.DominantHz {
			continue
		}
		if p.Relative >= sp.params.SecondaryThreshold &&
			!harmonicRelated(p.FrequencyHz, result.DominantHz, sp.params.HarmonicTolerance) {
			result.SecondaryDetected = true
			break
		}
	}

	return result, nil
}

// harmonicRelated reports whether the frequency ratio between f and dom,
// taken in whichever direction is >= 1, sits within tol of an integer
func harmonicRelated(f, dom, tol float64) bool {
	if f <= 0 || dom <= 0 {
		return false
	}
	ratio := f / dom
	if ratio < 1 {
		ratio = 1 / ratio
	}
	nearest := math.Round(ratio)
	return math.Abs(ratio-nearest) <= tol
}
