package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/seaspect/coda-resonance/resonance"
	"github.com/seaspect/coda-resonance/resonance/config"
)

// ToolVersion identifies the engine release stamped into reports
const ToolVersion = "1.2.0"

// Report collects analyses and comparisons from one session into a single
// renderable document. Identity and timestamps live here, never in the
// results themselves.
type Report struct {
	ID          string                       `json:"id"`
	GeneratedAt time.Time                    `json:"generated_at"`
	ToolVersion string                       `json:"tool_version"`
	Baselines   config.Bands                 `json:"baselines"`
	Analyses    []resonance.ResonanceResult  `json:"analyses"`
	Comparisons []resonance.ComparisonResult `json:"comparisons"`
}

// New creates an empty report stamped with the configured frequency
// baselines. A nil config gets the defaults.
func New(cfg *config.Config) *Report {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		ToolVersion: ToolVersion,
		Baselines:   cfg.Bands,
	}
}

// AddAnalysis appends a scored result to the report
func (r *Report) AddAnalysis(result resonance.ResonanceResult) {
	r.Analyses = append(r.Analyses, result)
}

// AddComparison appends a cross-domain comparison to the report
func (r *Report) AddComparison(comparison resonance.ComparisonResult) {
	r.Comparisons = append(r.Comparisons, comparison)
}

// RenderText writes the human-readable report
func (r *Report) RenderText(w io.Writer) error {
	var err error
	p := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	p("RESONANCE REPORT %s\n", r.ID)
	p("generated: %s  version: %s\n", r.GeneratedAt.Format(time.RFC3339), r.ToolVersion)
	p("baselines: grief %.2f Hz | chorus %.2f-%.2f Hz | symbiosis %.2f Hz | ai pulse %.2f Hz\n",
		r.Baselines.GriefBaselineHz, r.Baselines.ChorusLowHz, r.Baselines.ChorusHighHz,
		r.Baselines.SymbiosisTargetHz, r.Baselines.AIPulseHz)

	for i, a := range r.Analyses {
		p("\nanalysis %d [%s]\n", i+1, a.Domain)
		p("  resonance score: %.4f (%s)\n", a.Score, a.Interpretation)
		p("  %s\n", a.Description)
		p("  rhythm: %.4f Hz (credit %.2f)  coherence: %.4f\n",
			a.Features.RhythmHz, a.RhythmCredit, a.Features.Coherence)
		p("  multi-oscillator: %t  recovery: %t\n",
			a.Features.MultiOscillator, a.Features.Recovery)
		if a.Features.Meta.Degraded {
			p("  note: insufficient input, degraded analysis\n")
		}
	}

	for i, c := range r.Comparisons {
		p("\ncomparison %d [%s vs %s]\n", i+1, c.A.Domain, c.B.Domain)
		p("  pattern similarity: %.4f (%s)\n", c.PatternSimilarity, c.Interpretation)
		p("  %s\n", c.Description)
		p("  rhythm: %.4f  coherence: %.4f  score: %.4f\n",
			c.RhythmSimilarity, c.CoherenceSimilarity, c.ScoreSimilarity)
	}

	return err
}

// WriteJSON writes the report as indented JSON
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// SaveJSON writes the report to a file
func (r *Report) SaveJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := r.WriteJSON(f); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
