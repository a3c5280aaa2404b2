package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTurnOverlap_SharedVocabulary(t *testing.T) {
	to := NewTurnOverlap()

	// {the, ocean, sings} vs {the, ocean, listens}: 2 shared of 4 distinct
	result := to.Compute([]Utterance{
		{Speaker: "a", Text: "the ocean sings"},
		{Speaker: "b", Text: "the ocean listens"},
	})

	assert.Equal(t, 1, result.PairCount)
	assert.InDelta(t, 0.5, result.MeanOverlap, 1e-9)
}

func TestTurnOverlap_NoSharedVocabulary(t *testing.T) {
	to := NewTurnOverlap()

	result := to.Compute([]Utterance{
		{Speaker: "a", Text: "whale coda rhythm"},
		{Speaker: "b", Text: "quarterly revenue review"},
	})

	assert.Equal(t, 1, result.PairCount)
	assert.InDelta(t, 0.0, result.MeanOverlap, 1e-9)
}

func TestTurnOverlap_SameSpeakerPairsSkipped(t *testing.T) {
	to := NewTurnOverlap()

	result := to.Compute([]Utterance{
		{Speaker: "a", Text: "the ocean sings"},
		{Speaker: "a", Text: "the ocean sings"},
		{Speaker: "b", Text: "the ocean sings"},
	})

	// Only the a->b transition is compared
	assert.Equal(t, 1, result.PairCount)
	assert.InDelta(t, 1.0, result.MeanOverlap, 1e-9)
}

func TestTurnOverlap_EmptyTurnsSkipped(t *testing.T) {
	to := NewTurnOverlap()

	result := to.Compute([]Utterance{
		{Speaker: "a", Text: "the ocean sings"},
		{Speaker: "b", Text: "..."},
		{Speaker: "a", Text: "the ocean sings"},
	})

	assert.Equal(t, 0, result.PairCount)
	assert.Zero(t, result.MeanOverlap)
}

func TestTurnOverlap_NoUtterances(t *testing.T) {
	to := NewTurnOverlap()

	result := to.Compute(nil)
	assert.Equal(t, 0, result.PairCount)
	assert.Zero(t, result.MeanOverlap)
}
