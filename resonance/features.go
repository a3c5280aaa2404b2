package resonance

import "fmt"

// Domain tags which extractor produced a feature record
type Domain string

const (
	DomainOcean        Domain = "ocean"
	DomainConversation Domain = "conversation"
)

// TimeEventSeries is an ordered sequence of discrete event timestamps
// (seconds), typically click onsets detected in a recording. The series is
// owned by the caller; extraction reads it and never mutates it.
type TimeEventSeries struct {
	Events []float64 `json:"events"`
	// Duration is the total recording length in seconds, when known.
	// Zero means unknown; the event span stands in.
	Duration float64 `json:"duration_sec,omitempty"`
}

// Validate rejects series whose timestamps are not strictly increasing
func (s TimeEventSeries) Validate() error {
	for i := 1; i < len(s.Events); i++ {
		if s.Events[i] <= s.Events[i-1] {
			return fmt.Errorf("event series not monotonically increasing at index %d: %f <= %f",
				i, s.Events[i], s.Events[i-1])
		}
	}
	return nil
}

// Span returns the time covered by the series: the declared duration if
// set, otherwise last minus first event
func (s TimeEventSeries) Span() float64 {
	if s.Duration > 0 {
		return s.Duration
	}
	if len(s.Events) < 2 {
		return 0
	}
	return s.Events[len(s.Events)-1] - s.Events[0]
}

// Turn is one attributed message in a two-party transcript
type Turn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// FeatureMeta carries domain-specific descriptive fields alongside the
// scored features. Informational only; the scorer never reads it.
type FeatureMeta struct {
	Species      string   `json:"species,omitempty"`
	Participants []string `json:"participants,omitempty"`
	EventCount   int      `json:"event_count,omitempty"`
	TurnCount    int      `json:"turn_count,omitempty"`
	DurationSec  float64  `json:"duration_sec,omitempty"`
	Topics       []string `json:"topics,omitempty"`
	WarmthCount  int      `json:"warmth_count,omitempty"`
	GriefCount   int      `json:"grief_count,omitempty"`
	// Degraded marks a record produced from insufficient input
	// (fewer than 2 events or turns)
	Degraded bool `json:"degraded,omitempty"`
}

// FeatureRecord is the fixed-shape result of feature extraction in either
// domain. Records are value objects: fully determined by extractor input,
// immutable once produced.
type FeatureRecord struct {
	Domain          Domain      `json:"domain"`
	RhythmHz        float64     `json:"rhythm_hz"`
	Coherence       float64     `json:"coherence"`
	MultiOscillator bool        `json:"multi_oscillator_detected"`
	Recovery        bool        `json:"recovery_detected"`
	Meta            FeatureMeta `json:"meta"`
}

// degradedRecord is the documented insufficient-data branch: zero rhythm,
// zero coherence, both flags false. Downstream scoring degrades to a
// minimal score instead of failing.
func degradedRecord(domain Domain, meta FeatureMeta) FeatureRecord {
	meta.Degraded = true
	return FeatureRecord{
		Domain: domain,
		Meta:   meta,
	}
}
