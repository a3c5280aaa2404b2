package resonance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextExtractor_AssumedTurnSpacing(t *testing.T) {
	te := NewTextExtractor(nil)

	turns := []Turn{
		{Speaker: "Mara", Text: "the ocean sings"},
		{Speaker: "Iris", Text: "the ocean listens"},
	}

	record, err := te.Extract(turns, "Mara", "Iris")
	require.NoError(t, err)

	assert.Equal(t, DomainConversation, record.Domain)
	assert.InDelta(t, 1.0/30.0, record.RhythmHz, 1e-9)
	assert.InDelta(t, 0.5, record.Coherence, 1e-9)
	assert.Equal(t, []string{"Mara", "Iris"}, record.Meta.Participants)
	assert.Equal(t, 2, record.Meta.TurnCount)
}

func TestTextExtractor_ExplicitDuration(t *testing.T) {
	te := NewTextExtractor(nil)

	turns := []Turn{
		{Speaker: "Mara", Text: "the ocean sings"},
		{Speaker: "Iris", Text: "the ocean listens"},
		{Speaker: "Mara", Text: "the ocean waits"},
	}

	record, err := te.ExtractWithDuration(turns, "Mara", "Iris", 40.0)
	require.NoError(t, err)

	// 2 transitions over 40 seconds
	assert.InDelta(t, 0.05, record.RhythmHz, 1e-9)
	assert.InDelta(t, 40.0, record.Meta.DurationSec, 1e-9)
}

func TestTextExtractor_TopicsAndRecovery(t *testing.T) {
	te := NewTextExtractor(nil)

	turns := []Turn{
		{Speaker: "Mara", Text: "the whale resonance holds love"},
		{Speaker: "Iris", Text: "love and warmth hold the whale bond"},
	}

	record, err := te.Extract(turns, "Mara", "Iris")
	require.NoError(t, err)

	assert.True(t, record.MultiOscillator, "ocean and connection topics should both register")
	assert.Equal(t, []string{"connection", "ocean"}, record.Meta.Topics)

	assert.Equal(t, 4, record.Meta.WarmthCount)
	assert.Equal(t, 0, record.Meta.GriefCount)
	assert.True(t, record.Recovery)
}

func TestTextExtractor_GriefOutweighsWarmth(t *testing.T) {
	te := NewTextExtractor(nil)

	turns := []Turn{
		{Speaker: "Mara", Text: "grief and loss dissolve everything"},
		{Speaker: "Iris", Text: "the loss holds uncertainty, not love"},
	}

	record, err := te.Extract(turns, "Mara", "Iris")
	require.NoError(t, err)

	assert.False(t, record.Recovery)
	assert.Equal(t, 5, record.Meta.GriefCount)
	assert.Equal(t, 1, record.Meta.WarmthCount)
}

func TestTextExtractor_NoOverlapNoKeywords(t *testing.T) {
	te := NewTextExtractor(nil)

	turns := []Turn{
		{Speaker: "Mara", Text: "quarterly numbers arrived yesterday"},
		{Speaker: "Iris", Text: "weather stays dry this week"},
	}

	record, err := te.Extract(turns, "Mara", "Iris")
	require.NoError(t, err)

	assert.Zero(t, record.Coherence)
	assert.False(t, record.MultiOscillator)
	assert.False(t, record.Recovery)
	assert.InDelta(t, 1.0/30.0, record.RhythmHz, 1e-9)
}

func TestTextExtractor_DegradedInput(t *testing.T) {
	te := NewTextExtractor(nil)

	record, err := te.Extract([]Turn{{Speaker: "Mara", Text: "hello"}}, "Mara", "Iris")
	require.NoError(t, err)

	assert.True(t, record.Meta.Degraded)
	assert.Zero(t, record.RhythmHz)
	assert.Zero(t, record.Coherence)
	assert.False(t, record.MultiOscillator)
	assert.False(t, record.Recovery)
}

func TestTextExtractor_Validation(t *testing.T) {
	te := NewTextExtractor(nil)

	turns := []Turn{{Speaker: "Mara", Text: "hi"}, {Speaker: "Iris", Text: "hi"}}

	_, err := te.Extract(turns, "", "Iris")
	assert.Error(t, err)

	_, err = te.Extract([]Turn{{Speaker: "", Text: "hi"}}, "Mara", "Iris")
	assert.Error(t, err)

	_, err = te.Extract([]Turn{{Speaker: "Eve", Text: "hi"}}, "Mara", "Iris")
	assert.Error(t, err, "unknown speakers must be rejected")
}
