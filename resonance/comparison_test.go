package resonance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seaspect/coda-resonance/resonance/config"
)

func oceanResult(rhythm, coherence, score float64) ResonanceResult {
	return ResonanceResult{
		Domain: DomainOcean,
		Score:  score,
		Features: FeatureRecord{
			Domain:    DomainOcean,
			RhythmHz:  rhythm,
			Coherence: coherence,
		},
	}
}

func chatResult(rhythm, coherence, score float64) ResonanceResult {
	r := oceanResult(rhythm, coherence, score)
	r.Domain = DomainConversation
	r.Features.Domain = DomainConversation
	return r
}

func TestComparator_CrossDomain(t *testing.T) {
	c := NewComparator(nil)

	whale := oceanResult(0.58, 0.82, 0.78)
	chat := chatResult(1.0/30.0, 0.51, 0.51)

	result, err := c.Compare(whale, chat)
	require.NoError(t, err)

	wantRhythm := 1.0 - (0.58-1.0/30.0)/0.58
	wantCoherence := 1.0 - (0.82-0.51)/0.82
	wantScore := 1.0 - (0.78-0.51)/0.78
	wantPattern := 0.3*wantRhythm + 0.3*wantCoherence + 0.4*wantScore

	assert.InDelta(t, wantRhythm, result.RhythmSimilarity, 1e-9)
	assert.InDelta(t, wantCoherence, result.CoherenceSimilarity, 1e-9)
	assert.InDelta(t, wantScore, result.ScoreSimilarity, 1e-9)
	assert.InDelta(t, wantPattern, result.PatternSimilarity, 1e-9)

	// Wildly different rhythms drag the pattern similarity below 0.5
	assert.Equal(t, AlignmentWeak, result.Interpretation)

	assert.Equal(t, DomainOcean, result.A.Domain)
	assert.Equal(t, DomainConversation, result.B.Domain)
	assert.InDelta(t, 0.78, result.A.Score, 1e-9)
	assert.InDelta(t, 0.51, result.B.Score, 1e-9)
}

func TestComparator_Symmetric(t *testing.T) {
	c := NewComparator(nil)

	a := oceanResult(0.58, 0.9, 0.7)
	b := chatResult(0.4, 0.6, 0.55)

	ab, err := c.Compare(a, b)
	require.NoError(t, err)
	ba, err := c.Compare(b, a)
	require.NoError(t, err)

	assert.InDelta(t, ab.PatternSimilarity, ba.PatternSimilarity, 1e-12)
	assert.InDelta(t, ab.RhythmSimilarity, ba.RhythmSimilarity, 1e-12)
	assert.Equal(t, ab.Interpretation, ba.Interpretation)
}

func TestComparator_SelfComparison(t *testing.T) {
	c := NewComparator(nil)

	a := oceanResult(0.58, 1.0, 0.7)
	result, err := c.Compare(a, a)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.PatternSimilarity, 1e-9)
	assert.Equal(t, AlignmentStrong, result.Interpretation)
}

func TestComparator_BothZero(t *testing.T) {
	c := NewComparator(nil)

	// Two degraded results agree perfectly: 0 vs 0 is full similarity,
	// not a division blowup
	a := oceanResult(0, 0, 0)
	b := chatResult(0, 0, 0)

	result, err := c.Compare(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, result.PatternSimilarity, 1e-9)
}

func TestComparator_RejectsBadWeights(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Similarity.Score = 0.9
	c := NewComparator(cfg)

	_, err := c.Compare(oceanResult(0.5, 0.5, 0.5), chatResult(0.5, 0.5, 0.5))
	assert.Error(t, err)
}
