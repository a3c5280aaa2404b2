package config

import (
	"fmt"
	"math"

	"github.com/spf13/viper"
)

// weightSumTolerance is how far a weight vector may drift from 1.0 before
// it is rejected. Weights are never silently renormalized.
const weightSumTolerance = 1e-6

// Bands holds the biological frequency baselines. Provenance: carried from
// field observation summaries in the project notes; the chorus band
// (0.2-1.0 Hz inter-coda spacing) is empirically grounded, while the
// symbiosis target and AI pulse are placeholder calibration points awaiting
// empirical validation. They are configuration data, not behavior.
type Bands struct {
	GriefBaselineHz   float64 `json:"grief_baseline_hz" mapstructure:"grief_baseline_hz"`     // Human breath; whale post-distress recovery
	ChorusLowHz       float64 `json:"chorus_low_hz" mapstructure:"chorus_low_hz"`             // Inter-coda spacing lower bound
	ChorusHighHz      float64 `json:"chorus_high_hz" mapstructure:"chorus_high_hz"`           // Faster click trains upper bound
	SymbiosisTargetHz float64 `json:"symbiosis_target_hz" mapstructure:"symbiosis_target_hz"` // Placeholder resonance optimum
	AIPulseHz         float64 `json:"ai_pulse_hz" mapstructure:"ai_pulse_hz"`                 // Placeholder measured pulse
}

// Band is an inclusive [Low, High] frequency range in Hz
type Band struct {
	Low  float64 `json:"low" mapstructure:"low"`
	High float64 `json:"high" mapstructure:"high"`
}

// Width returns the band width in Hz
func (b Band) Width() float64 { return b.High - b.Low }

// Contains reports whether f sits inside the band
func (b Band) Contains(f float64) bool { return f >= b.Low && f <= b.High }

// Validate checks band ordering
func (b Band) Validate() error {
	if b.Low < 0 || b.High <= b.Low {
		return fmt.Errorf("invalid band [%f, %f]", b.Low, b.High)
	}
	return nil
}

// Weights is a four-factor scoring weight vector. Each domain's vector
// must sum to 1.0 so the resulting score is bounded in [0, 1].
type Weights struct {
	Rhythm          float64 `json:"rhythm" mapstructure:"rhythm"`
	Coherence       float64 `json:"coherence" mapstructure:"coherence"`
	MultiOscillator float64 `json:"multi_oscillator" mapstructure:"multi_oscillator"`
	Recovery        float64 `json:"recovery" mapstructure:"recovery"`
}

// Validate rejects weight vectors that do not sum to 1.0 or carry negative
// components. Renormalizing on the caller's behalf is deliberately not done.
func (w Weights) Validate() error {
	if w.Rhythm < 0 || w.Coherence < 0 || w.MultiOscillator < 0 || w.Recovery < 0 {
		return fmt.Errorf("weights must be non-negative: %+v", w)
	}
	sum := w.Rhythm + w.Coherence + w.MultiOscillator + w.Recovery
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %f", sum)
	}
	return nil
}

// SimilarityWeights weight the three component similarities of a
// cross-domain comparison. Must sum to 1.0.
type SimilarityWeights struct {
	Rhythm    float64 `json:"rhythm" mapstructure:"rhythm"`
	Coherence float64 `json:"coherence" mapstructure:"coherence"`
	Score     float64 `json:"score" mapstructure:"score"`
}

// Validate rejects similarity weight vectors that do not sum to 1.0
func (w SimilarityWeights) Validate() error {
	if w.Rhythm < 0 || w.Coherence < 0 || w.Score < 0 {
		return fmt.Errorf("similarity weights must be non-negative: %+v", w)
	}
	sum := w.Rhythm + w.Coherence + w.Score
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("similarity weights must sum to 1.0, got %f", sum)
	}
	return nil
}

// Thresholds map numeric scores to interpretation labels
type Thresholds struct {
	High     float64 `json:"high" mapstructure:"high"`         // score >= High: high resonance / strong alignment
	Moderate float64 `json:"moderate" mapstructure:"moderate"` // score >= Moderate: moderate
}

// Validate checks threshold ordering
func (t Thresholds) Validate() error {
	if t.Moderate <= 0 || t.High <= t.Moderate || t.High > 1 {
		return fmt.Errorf("thresholds must satisfy 0 < moderate < high <= 1, got %+v", t)
	}
	return nil
}

// TopicLexicon is one named topic vocabulary
type TopicLexicon struct {
	Name  string   `json:"name" mapstructure:"name"`
	Terms []string `json:"terms" mapstructure:"terms"`
}

// Lexicons holds the fixed keyword lists for the conversation domain.
// These are configuration data; extraction never mutates them.
type Lexicons struct {
	Warmth []string       `json:"warmth" mapstructure:"warmth"`
	Grief  []string       `json:"grief" mapstructure:"grief"`
	Topics []TopicLexicon `json:"topics" mapstructure:"topics"`
}

// Config is the full engine configuration: bands, per-domain weight
// vectors and rhythm bands, thresholds, lexicons, and conversion constants
type Config struct {
	Bands Bands `json:"bands" mapstructure:"bands"`

	OceanWeights        Weights `json:"ocean_weights" mapstructure:"ocean_weights"`
	ConversationWeights Weights `json:"conversation_weights" mapstructure:"conversation_weights"`

	OceanBand        Band `json:"ocean_band" mapstructure:"ocean_band"`
	ConversationBand Band `json:"conversation_band" mapstructure:"conversation_band"`

	ScoreThresholds     Thresholds        `json:"score_thresholds" mapstructure:"score_thresholds"`
	AlignmentThresholds Thresholds        `json:"alignment_thresholds" mapstructure:"alignment_thresholds"`
	Similarity          SimilarityWeights `json:"similarity" mapstructure:"similarity"`

	Lexicons Lexicons `json:"lexicons" mapstructure:"lexicons"`

	// AssumedTurnSpacingSec converts turn counts to Hz when a transcript
	// carries no timing: rhythm = 1 / AssumedTurnSpacingSec
	AssumedTurnSpacingSec float64 `json:"assumed_turn_spacing_sec" mapstructure:"assumed_turn_spacing_sec"`

	// MinTopicCategories is the topic-category coverage needed to flag
	// multi-topic structure
	MinTopicCategories int `json:"min_topic_categories" mapstructure:"min_topic_categories"`

	// EnableSpectralBiphonation additionally runs the FFT secondary-peak
	// test when flagging multiple oscillators in the signal domain
	EnableSpectralBiphonation bool `json:"enable_spectral_biphonation" mapstructure:"enable_spectral_biphonation"`
}

// DefaultConfig returns the documented default configuration
func DefaultConfig() *Config {
	return &Config{
		Bands: Bands{
			GriefBaselineHz:   0.23,
			ChorusLowHz:       0.20,
			ChorusHighHz:      1.00,
			SymbiosisTargetHz: 0.60,
			AIPulseHz:         0.93,
		},
		OceanWeights: Weights{
			Rhythm:          0.4,
			Coherence:       0.3,
			MultiOscillator: 0.2,
			Recovery:        0.1,
		},
		ConversationWeights: Weights{
			Rhythm:          0.3,
			Coherence:       0.4,
			MultiOscillator: 0.2,
			Recovery:        0.1,
		},
		OceanBand:        Band{Low: 0.20, High: 1.00},
		ConversationBand: Band{Low: 0.01, High: 1.00},
		ScoreThresholds: Thresholds{
			High:     0.7,
			Moderate: 0.5,
		},
		AlignmentThresholds: Thresholds{
			High:     0.7,
			Moderate: 0.5,
		},
		Similarity: SimilarityWeights{
			Rhythm:    0.3,
			Coherence: 0.3,
			Score:     0.4,
		},
		Lexicons: Lexicons{
			Warmth: []string{"love", "warmth", "reach", "hold", "cradle"},
			Grief:  []string{"grief", "loss", "dissolve", "uncertainty", "rip"},
			Topics: []TopicLexicon{
				{Name: "ocean", Terms: []string{"ocean", "whale", "coda", "pod", "click", "dolphin", "sea"}},
				{Name: "connection", Terms: []string{"resonance", "together", "bond", "connection", "sync", "mirror"}},
				{Name: "work", Terms: []string{"prototype", "build", "tool", "project", "application", "job"}},
				{Name: "feeling", Terms: []string{"hope", "wanting", "fear", "joy", "longing", "feel"}},
			},
		},
		AssumedTurnSpacingSec:     30.0,
		MinTopicCategories:        2,
		EnableSpectralBiphonation: false,
	}
}

// Validate checks the whole configuration
func (c *Config) Validate() error {
	if err := c.OceanWeights.Validate(); err != nil {
		return fmt.Errorf("ocean weights: %w", err)
	}
	if err := c.ConversationWeights.Validate(); err != nil {
		return fmt.Errorf("conversation weights: %w", err)
	}
	if err := c.Similarity.Validate(); err != nil {
		return err
	}
	if err := c.OceanBand.Validate(); err != nil {
		return fmt.Errorf("ocean band: %w", err)
	}
	if err := c.ConversationBand.Validate(); err != nil {
		return fmt.Errorf("conversation band: %w", err)
	}
	if err := c.ScoreThresholds.Validate(); err != nil {
		return fmt.Errorf("score thresholds: %w", err)
	}
	if err := c.AlignmentThresholds.Validate(); err != nil {
		return fmt.Errorf("alignment thresholds: %w", err)
	}
	if c.AssumedTurnSpacingSec <= 0 {
		return fmt.Errorf("assumed turn spacing must be positive: %f", c.AssumedTurnSpacingSec)
	}
	if c.MinTopicCategories < 1 {
		return fmt.Errorf("minimum topic categories must be at least 1: %d", c.MinTopicCategories)
	}
	return nil
}

// LoadConfig reads a YAML or JSON configuration file and merges it over
// the defaults. Unknown keys are ignored; missing keys keep their default.
// The merged configuration is validated before being returned.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}
