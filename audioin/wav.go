package audioin

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/wav"
)

// PCM is a decoded mono recording normalized to [-1, 1]
type PCM struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the recording length in seconds
func (p PCM) Duration() float64 {
	if p.SampleRate <= 0 {
		return 0
	}
	return float64(len(p.Samples)) / float64(p.SampleRate)
}

// DecodeWAV reads a WAV file into normalized mono PCM. Multi-channel
// recordings are downmixed by averaging; hydrophone captures are usually
// mono already.
func DecodeWAV(path string) (PCM, error) {
	f, err := os.Open(path)
	if err != nil {
		return PCM{}, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return PCM{}, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return PCM{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if buf.Format == nil || buf.Format.NumChannels <= 0 {
		return PCM{}, fmt.Errorf("missing format info in %s", path)
	}

	channels := buf.Format.NumChannels
	bitDepth := int(decoder.BitDepth)
	if bitDepth == 0 {
		bitDepth = buf.SourceBitDepth
	}
	maxVal := math.Pow(2, float64(bitDepth-1))

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch])
		}
		samples[i] = sum / float64(channels) / maxVal
	}

	return PCM{
		Samples:    samples,
		SampleRate: buf.Format.SampleRate,
	}, nil
}
