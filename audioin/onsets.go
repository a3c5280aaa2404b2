package audioin

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/seaspect/coda-resonance/logging"
	"github.com/seaspect/coda-resonance/resonance"
)

// OnsetDetector locates click onsets in PCM audio using positive spectral
// flux with local-maximum peak picking
type OnsetDetector struct {
	// WindowSize is the STFT frame length in samples
	WindowSize int
	// HopSize is the STFT frame advance in samples
	HopSize int
	// Threshold is relative to the maximum flux value; peaks below
	// Threshold * max(flux) are ignored
	Threshold float64
	// MinIntervalSec suppresses peaks closer than this to the previous
	// accepted onset
	MinIntervalSec float64

	logger logging.Logger
}

// NewOnsetDetector creates an onset detector with defaults suited to
// broadband click trains
func NewOnsetDetector() *OnsetDetector {
	return &OnsetDetector{
		WindowSize:     1024,
		HopSize:        512,
		Threshold:      0.3,
		MinIntervalSec: 0.2,
		logger: logging.WithFields(logging.Fields{
			"component": "onset_detector",
		}),
	}
}

// Detect extracts an event series of onset times from the recording
func (od *OnsetDetector) Detect(pcm PCM) (resonance.TimeEventSeries, error) {
	if pcm.SampleRate <= 0 {
		return resonance.TimeEventSeries{}, fmt.Errorf("invalid sample rate: %d", pcm.SampleRate)
	}
	if od.WindowSize <= 0 || od.HopSize <= 0 {
		return resonance.TimeEventSeries{}, fmt.Errorf("invalid frame parameters: window=%d hop=%d",
			od.WindowSize, od.HopSize)
	}

	series := resonance.TimeEventSeries{Duration: pcm.Duration()}
	if len(pcm.Samples) < od.WindowSize {
		return series, nil
	}

	flux := od.spectralFlux(pcm.Samples)
	peaks := od.findFluxPeaks(flux, pcm.SampleRate)

	events := make([]float64, len(peaks))
	for i, frameIdx := range peaks {
		events[i] = float64(frameIdx*od.HopSize) / float64(pcm.SampleRate)
	}
	series.Events = events

	od.logger.Debug("Onset detection completed", logging.Fields{
		"samples": len(pcm.Samples),
		"frames":  len(flux),
		"onsets":  len(events),
	})

	return series, nil
}

// spectralFlux computes the positive spectral flux per frame: the sum of
// magnitude increases between consecutive Hann-windowed spectra
func (od *OnsetDetector) spectralFlux(samples []float64) []float64 {
	window := hann(od.WindowSize)
	numFrames := 1 + (len(samples)-od.WindowSize)/od.HopSize
	numBins := od.WindowSize/2 + 1

	frame := make([]float64, od.WindowSize)
	prevMag := make([]float64, numBins)
	flux := make([]float64, 0, numFrames)

	for f := 0; f < numFrames; f++ {
		start := f * od.HopSize
		for i := range frame {
			frame[i] = samples[start+i] * window[i]
		}

		spectrum := fft.FFTReal(frame)

		var sum float64
		for bin := 0; bin < numBins; bin++ {
			mag := cmplx.Abs(spectrum[bin])
			if diff := mag - prevMag[bin]; diff > 0 && f > 0 {
				sum += diff
			}
			prevMag[bin] = mag
		}
		flux = append(flux, sum)
	}

	return flux
}

// findFluxPeaks returns frame indices of local flux maxima above the
// relative threshold, at least MinIntervalSec apart
func (od *OnsetDetector) findFluxPeaks(flux []float64, sampleRate int) []int {
	if len(flux) < 3 {
		return nil
	}

	var maxFlux float64
	for _, v := range flux {
		if v > maxFlux {
			maxFlux = v
		}
	}
	if maxFlux <= 0 {
		return nil
	}
	threshold := od.Threshold * maxFlux

	minIntervalFrames := int(od.MinIntervalSec * float64(sampleRate) / float64(od.HopSize))
	lastPeak := -minIntervalFrames - 1

	var peaks []int
	for i := 1; i < len(flux)-1; i++ {
		if flux[i] > flux[i-1] &&
			flux[i] >= flux[i+1] &&
			flux[i] >= threshold &&
			i-lastPeak > minIntervalFrames {
			peaks = append(peaks, i)
			lastPeak = i
		}
	}

	return peaks
}

// hann returns an n-point Hann window
func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}
