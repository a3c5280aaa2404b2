package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seaspect/coda-resonance/resonance"
)

func sampleResult() resonance.ResonanceResult {
	return resonance.ResonanceResult{
		Domain:         resonance.DomainOcean,
		Score:          0.7,
		Interpretation: resonance.InterpretationHigh,
		Description:    "pod in synchronized state",
		RhythmCredit:   1.0,
		Features: resonance.FeatureRecord{
			Domain:    resonance.DomainOcean,
			RhythmHz:  0.58,
			Coherence: 1.0,
			Meta:      resonance.FeatureMeta{Species: "sperm_whale", EventCount: 21},
		},
	}
}

func TestNew_StampsIdentity(t *testing.T) {
	r := New(nil)

	assert.NotEmpty(t, r.ID)
	assert.False(t, r.GeneratedAt.IsZero())
	assert.Equal(t, ToolVersion, r.ToolVersion)
	assert.InDelta(t, 0.23, r.Baselines.GriefBaselineHz, 1e-9)

	other := New(nil)
	assert.NotEqual(t, r.ID, other.ID, "every report gets a fresh identifier")
}

func TestReport_JSONRoundtrip(t *testing.T) {
	r := New(nil)
	r.AddAnalysis(sampleResult())

	comparator := resonance.NewComparator(nil)
	comparison, err := comparator.Compare(sampleResult(), sampleResult())
	require.NoError(t, err)
	r.AddComparison(comparison)

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, r.ID, decoded.ID)
	require.Len(t, decoded.Analyses, 1)
	assert.InDelta(t, 0.7, decoded.Analyses[0].Score, 1e-9)
	require.Len(t, decoded.Comparisons, 1)
	assert.InDelta(t, 1.0, decoded.Comparisons[0].PatternSimilarity, 1e-9)
}

func TestReport_RenderText(t *testing.T) {
	r := New(nil)
	r.AddAnalysis(sampleResult())

	var buf bytes.Buffer
	require.NoError(t, r.RenderText(&buf))

	out := buf.String()
	assert.Contains(t, out, "RESONANCE REPORT")
	assert.Contains(t, out, "pod in synchronized state")
	assert.Contains(t, out, "high resonance")
	assert.Contains(t, out, "0.5800 Hz")
}

func TestReport_SaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	r := New(nil)
	r.AddAnalysis(sampleResult())
	require.NoError(t, r.SaveJSON(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, r.ID, decoded.ID)
}
