package resonance

import (
	"math"

	"github.com/seaspect/coda-resonance/logging"
	"github.com/seaspect/coda-resonance/resonance/config"
)

// similarityEpsilon guards the relative-difference denominator when both
// values are zero. Kept negligible so the comparison arithmetic is exactly
// 1 - |a-b| / max(a,b) whenever either value is nonzero.
const similarityEpsilon = 1e-9

// Alignment is the qualitative label for a cross-domain comparison
type Alignment string

const (
	AlignmentStrong   Alignment = "strong alignment"
	AlignmentModerate Alignment = "moderate alignment"
	AlignmentWeak     Alignment = "weak alignment"
)

// SideSummary is the compact per-input view retained inside a comparison
// result. Comparisons keep no reference to the full results they were
// derived from.
type SideSummary struct {
	Domain    Domain  `json:"domain"`
	RhythmHz  float64 `json:"rhythm_hz"`
	Coherence float64 `json:"coherence"`
	Score     float64 `json:"resonance_score"`
}

// ComparisonResult is the outcome of comparing two resonance results
type ComparisonResult struct {
	A SideSummary `json:"a"`
	B SideSummary `json:"b"`

	RhythmSimilarity    float64 `json:"rhythm_similarity"`
	CoherenceSimilarity float64 `json:"coherence_similarity"`
	ScoreSimilarity     float64 `json:"score_similarity"`
	PatternSimilarity   float64 `json:"pattern_similarity"`

	Interpretation Alignment `json:"interpretation"`
	Description    string    `json:"description"`
}

// Comparator measures cross-domain pattern similarity between two scored
// results. Domain-agnostic and symmetric: Compare(a, b) and Compare(b, a)
// yield the same similarities.
type Comparator struct {
	cfg    *config.Config
	logger logging.Logger
}

// NewComparator creates a cross-domain comparator. A nil config gets the
// defaults.
func NewComparator(cfg *config.Config) *Comparator {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Comparator{
		cfg: cfg,
		logger: logging.WithFields(logging.Fields{
			"component": "cross_domain_comparator",
		}),
	}
}

// Compare computes the pattern similarity between two results
func (c *Comparator) Compare(a, b ResonanceResult) (ComparisonResult, error) {
	if err := c.cfg.Similarity.Validate(); err != nil {
		return ComparisonResult{}, err
	}

	result := ComparisonResult{
		A: summarize(a),
		B: summarize(b),
	}

	result.RhythmSimilarity = boundedSimilarity(a.Features.RhythmHz, b.Features.RhythmHz)
	result.CoherenceSimilarity = boundedSimilarity(a.Features.Coherence, b.Features.Coherence)
	result.ScoreSimilarity = boundedSimilarity(a.Score, b.Score)

	w := c.cfg.Similarity
	result.PatternSimilarity = w.Rhythm*result.RhythmSimilarity +
		w.Coherence*result.CoherenceSimilarity +
		w.Score*result.ScoreSimilarity
	result.PatternSimilarity = math.Max(0.0, math.Min(1.0, result.PatternSimilarity))

	result.Interpretation = c.interpret(result.PatternSimilarity)
	result.Description = describeAlignment(result.Interpretation)

	c.logger.Debug("Cross-domain comparison completed", logging.Fields{
		"rhythm_similarity":    result.RhythmSimilarity,
		"coherence_similarity": result.CoherenceSimilarity,
		"score_similarity":     result.ScoreSimilarity,
		"pattern_similarity":   result.PatternSimilarity,
		"interpretation":       result.Interpretation,
	})

	return result, nil
}

// boundedSimilarity is the symmetric normalized difference
// 1 - |a-b| / max(a, b, epsilon): 1.0 for equal values, bounded in [0, 1]
func boundedSimilarity(a, b float64) float64 {
	denom := math.Max(math.Max(a, b), similarityEpsilon)
	sim := 1.0 - math.Abs(a-b)/denom
	return math.Max(0.0, math.Min(1.0, sim))
}

func summarize(r ResonanceResult) SideSummary {
	return SideSummary{
		Domain:    r.Domain,
		RhythmHz:  r.Features.RhythmHz,
		Coherence: r.Features.Coherence,
		Score:     r.Score,
	}
}

func (c *Comparator) interpret(similarity float64) Alignment {
	switch {
	case similarity > c.cfg.AlignmentThresholds.High:
		return AlignmentStrong
	case similarity >= c.cfg.AlignmentThresholds.Moderate:
		return AlignmentModerate
	default:
		return AlignmentWeak
	}
}

func describeAlignment(a Alignment) string {
	switch a {
	case AlignmentStrong:
		return "the two patterns mirror each other closely"
	case AlignmentModerate:
		return "some shared resonance structure is present"
	default:
		return "the patterns lack shared resonance signatures"
	}
}
