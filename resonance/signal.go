package resonance

import (
	"fmt"

	"github.com/seaspect/coda-resonance/algorithms/rhythm"
	"github.com/seaspect/coda-resonance/logging"
	"github.com/seaspect/coda-resonance/resonance/config"
)

// SignalExtractor turns a click/coda event series into timing features:
// rhythm frequency, coherence, multi-oscillator flag, recovery flag.
// Extraction is a pure function of the series; the extractor holds no
// cross-call state and may be shared across goroutines.
type SignalExtractor struct {
	cfg         *config.Config
	intervals   *rhythm.IntervalAnalysis
	grouping    *rhythm.CodaGrouping
	bimodality  *rhythm.Bimodality
	recovery    *rhythm.RecoveryDetection
	periodicity *rhythm.SecondaryPeriodicity
	logger      logging.Logger
}

// NewSignalExtractor creates a signal feature extractor. A nil config gets
// the defaults.
func NewSignalExtractor(cfg *config.Config) *SignalExtractor {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	recoveryParams := rhythm.RecoveryParams{
		SlowdownRatio:     0.75,
		TargetHz:          cfg.Bands.GriefBaselineHz,
		TargetToleranceHz: 0.12,
		MaxSettleCV:       0.35,
		MinIntervals:      4,
	}

	return &SignalExtractor{
		cfg:         cfg,
		intervals:   rhythm.NewIntervalAnalysis(),
		grouping:    rhythm.NewCodaGrouping(),
		bimodality:  rhythm.NewBimodality(),
		recovery:    rhythm.NewRecoveryDetectionWithParams(recoveryParams),
		periodicity: rhythm.NewSecondaryPeriodicity(),
		logger: logging.WithFields(logging.Fields{
			"component": "signal_extractor",
		}),
	}
}

// Extract computes the ocean-domain feature record for the given event
// series. The series must be strictly increasing; a series with fewer than
// two events yields a degraded record, not an error.
func (se *SignalExtractor) Extract(series TimeEventSeries, species string) (FeatureRecord, error) {
	if err := series.Validate(); err != nil {
		return FeatureRecord{}, fmt.Errorf("malformed event series: %w", err)
	}

	meta := FeatureMeta{
		Species:     species,
		EventCount:  len(series.Events),
		DurationSec: series.Span(),
	}

	if len(series.Events) < 2 {
		se.logger.Debug("Insufficient events, returning degraded record", logging.Fields{
			"events": len(series.Events),
		})
		return degradedRecord(DomainOcean, meta), nil
	}

	clickStats, err := se.intervals.Compute(series.Events)
	if err != nil {
		return FeatureRecord{}, err
	}

	// Rhythm and coherence come from the coarser grouping level when the
	// train splits into codas; otherwise the click level stands in
	rhythmHz := clickStats.RhythmHz
	coherence := clickStats.Coherence

	codas := se.grouping.Compute(series.Events)
	if codas.Grouped && len(codas.InterCodaIntervals) >= 2 {
		codaStats, err := se.intervals.Compute(codas.CodaOnsets)
		if err != nil {
			return FeatureRecord{}, err
		}
		rhythmHz = codaStats.RhythmHz
		coherence = codaStats.Coherence
	}

	multiOsc := se.bimodality.Compute(clickStats.Intervals).Bimodal

	if !multiOsc && se.cfg.EnableSpectralBiphonation {
		spectral, err := se.periodicity.Compute(series.Events)
		if err != nil {
			return FeatureRecord{}, err
		}
		multiOsc = spectral.SecondaryDetected
	}

	recovered := se.recovery.Compute(clickStats.Intervals).Detected

	record := FeatureRecord{
		Domain:          DomainOcean,
		RhythmHz:        rhythmHz,
		Coherence:       coherence,
		MultiOscillator: multiOsc,
		Recovery:        recovered,
		Meta:            meta,
	}

	se.logger.Debug("Signal features extracted", logging.Fields{
		"species":          species,
		"events":           len(series.Events),
		"codas":            codas.NumCodas,
		"rhythm_hz":        record.RhythmHz,
		"coherence":        record.Coherence,
		"multi_oscillator": record.MultiOscillator,
		"recovery":         record.Recovery,
	})

	return record, nil
}
