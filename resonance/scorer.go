package resonance

import (
	"fmt"
	"math"

	"github.com/seaspect/coda-resonance/logging"
	"github.com/seaspect/coda-resonance/resonance/config"
)

// Interpretation is the qualitative label derived from score thresholds
type Interpretation string

const (
	InterpretationHigh     Interpretation = "high resonance"
	InterpretationModerate Interpretation = "moderate resonance"
	InterpretationLow      Interpretation = "low resonance"
)

// ScoreComponents holds the weighted contribution of each factor, kept for
// traceability alongside the combined score
type ScoreComponents struct {
	Rhythm          float64 `json:"rhythm"`
	Coherence       float64 `json:"coherence"`
	MultiOscillator float64 `json:"multi_oscillator"`
	Recovery        float64 `json:"recovery"`
}

// ResonanceResult is the outcome of scoring one feature record. Results
// carry no identifiers or timestamps: scoring identical input must yield
// bit-identical output.
type ResonanceResult struct {
	Domain         Domain          `json:"domain"`
	Score          float64         `json:"resonance_score"`
	Interpretation Interpretation  `json:"interpretation"`
	Description    string          `json:"description"`
	RhythmCredit   float64         `json:"rhythm_credit"`
	Components     ScoreComponents `json:"components"`
	Features       FeatureRecord   `json:"features"`
}

// Scorer maps a feature record through the fixed four-factor weighted sum
// into a normalized resonance score with an interpretation label
type Scorer struct {
	cfg    *config.Config
	logger logging.Logger
}

// NewScorer creates a resonance scorer. A nil config gets the defaults.
func NewScorer(cfg *config.Config) *Scorer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scorer{
		cfg: cfg,
		logger: logging.WithFields(logging.Fields{
			"component": "resonance_scorer",
		}),
	}
}

// Score computes the resonance score for the given feature record. The
// configured weight vector for the record's domain must sum to 1.0; a bad
// vector is an error, never silently renormalized.
func (s *Scorer) Score(record FeatureRecord) (ResonanceResult, error) {
	var weights config.Weights
	var band config.Band
	switch record.Domain {
	case DomainOcean:
		weights = s.cfg.OceanWeights
		band = s.cfg.OceanBand
	case DomainConversation:
		weights = s.cfg.ConversationWeights
		band = s.cfg.ConversationBand
	default:
		return ResonanceResult{}, fmt.Errorf("unknown domain: %q", record.Domain)
	}

	if err := weights.Validate(); err != nil {
		return ResonanceResult{}, fmt.Errorf("%s domain: %w", record.Domain, err)
	}
	if record.RhythmHz < 0 {
		return ResonanceResult{}, fmt.Errorf("rhythm must be non-negative: %f", record.RhythmHz)
	}
	if record.Coherence < 0 || record.Coherence > 1 {
		return ResonanceResult{}, fmt.Errorf("coherence must be in [0,1]: %f", record.Coherence)
	}

	rhythmCredit := rhythmInRange(record.RhythmHz, band)

	components := ScoreComponents{
		Rhythm:          weights.Rhythm * rhythmCredit,
		Coherence:       weights.Coherence * record.Coherence,
		MultiOscillator: weights.MultiOscillator * boolCredit(record.MultiOscillator),
		Recovery:        weights.Recovery * boolCredit(record.Recovery),
	}

	score := components.Rhythm + components.Coherence + components.MultiOscillator + components.Recovery
	score = math.Max(0.0, math.Min(1.0, score))

	interpretation := s.interpret(score)

	result := ResonanceResult{
		Domain:         record.Domain,
		Score:          score,
		Interpretation: interpretation,
		Description:    describe(record.Domain, interpretation),
		RhythmCredit:   rhythmCredit,
		Components:     components,
		Features:       record,
	}

	s.logger.Debug("Scored feature record", logging.Fields{
		"domain":         record.Domain,
		"score":          score,
		"rhythm_credit":  rhythmCredit,
		"interpretation": interpretation,
	})

	return result, nil
}

// rhythmInRange gives full credit inside the band and linear falloff
// outside it, reaching zero one band-width beyond the nearest edge. A
// rhythm of exactly 0 Hz is the degraded-record sentinel and earns no
// proximity credit.
func rhythmInRange(rhythmHz float64, band config.Band) float64 {
	if rhythmHz == 0 {
		return 0.0
	}
	if band.Contains(rhythmHz) {
		return 1.0
	}

	var dist float64
	if rhythmHz < band.Low {
		dist = band.Low - rhythmHz
	} else {
		dist = rhythmHz - band.High
	}

	return math.Max(0.0, 1.0-dist/band.Width())
}

func boolCredit(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

func (s *Scorer) interpret(score float64) Interpretation {
	switch {
	case score >= s.cfg.ScoreThresholds.High:
		return InterpretationHigh
	case score >= s.cfg.ScoreThresholds.Moderate:
		return InterpretationModerate
	default:
		return InterpretationLow
	}
}

// describe returns the domain flavor text for an interpretation
func describe(domain Domain, interpretation Interpretation) string {
	if domain == DomainOcean {
		switch interpretation {
		case InterpretationHigh:
			return "pod in synchronized state"
		case InterpretationModerate:
			return "pod communicating"
		default:
			return "individual or distressed signals"
		}
	}
	switch interpretation {
	case InterpretationHigh:
		return "generative collaboration"
	case InterpretationModerate:
		return "building connection"
	default:
		return "transactional or extractive"
	}
}
