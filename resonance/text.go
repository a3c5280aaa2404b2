package resonance

import (
	"fmt"
	"strings"

	"github.com/seaspect/coda-resonance/algorithms/lexical"
	"github.com/seaspect/coda-resonance/logging"
	"github.com/seaspect/coda-resonance/resonance/config"
)

// TextExtractor turns a two-party transcript into the conversation-domain
// analog of the signal features: turn rate as rhythm, lexical mirroring as
// coherence, topic-category coverage as the multi-oscillator flag, and
// warmth-versus-grief balance as the recovery flag. Pure function of the
// transcript; the lexicons are fixed configuration data.
type TextExtractor struct {
	cfg     *config.Config
	overlap *lexical.TurnOverlap
	topics  *lexical.TopicCoverage
	warmth  lexical.Lexicon
	grief   lexical.Lexicon
	logger  logging.Logger
}

// NewTextExtractor creates a text feature extractor. A nil config gets the
// defaults.
func NewTextExtractor(cfg *config.Config) *TextExtractor {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	topicLexicons := make([]lexical.Lexicon, len(cfg.Lexicons.Topics))
	for i, t := range cfg.Lexicons.Topics {
		topicLexicons[i] = lexical.Lexicon{Name: t.Name, Terms: t.Terms}
	}

	return &TextExtractor{
		cfg:     cfg,
		overlap: lexical.NewTurnOverlap(),
		topics:  lexical.NewTopicCoverage(topicLexicons),
		warmth:  lexical.Lexicon{Name: "warmth", Terms: cfg.Lexicons.Warmth},
		grief:   lexical.Lexicon{Name: "grief", Terms: cfg.Lexicons.Grief},
		logger: logging.WithFields(logging.Fields{
			"component": "text_extractor",
		}),
	}
}

// Extract computes the conversation-domain feature record for a transcript
// with no timing context. Turn count stands in for rhythm through the
// configured assumed turn spacing.
func (te *TextExtractor) Extract(turns []Turn, humanName, agentName string) (FeatureRecord, error) {
	return te.ExtractWithDuration(turns, humanName, agentName, 0)
}

// ExtractWithDuration computes the conversation-domain feature record. If
// elapsedSec is positive it is used as the real conversation length and the
// turn rate becomes (turns-1)/elapsedSec; otherwise the assumed spacing
// constant applies. Fewer than two turns yields a degraded record.
func (te *TextExtractor) ExtractWithDuration(turns []Turn, humanName, agentName string, elapsedSec float64) (FeatureRecord, error) {
	if strings.TrimSpace(humanName) == "" || strings.TrimSpace(agentName) == "" {
		return FeatureRecord{}, fmt.Errorf("participant names must be non-empty")
	}

	for i, turn := range turns {
		if strings.TrimSpace(turn.Speaker) == "" {
			return FeatureRecord{}, fmt.Errorf("turn %d has an empty speaker tag", i)
		}
		if turn.Speaker != humanName && turn.Speaker != agentName {
			return FeatureRecord{}, fmt.Errorf("turn %d speaker %q is neither %q nor %q",
				i, turn.Speaker, humanName, agentName)
		}
	}

	meta := FeatureMeta{
		Participants: []string{humanName, agentName},
		TurnCount:    len(turns),
		DurationSec:  elapsedSec,
	}

	if len(turns) < 2 {
		te.logger.Debug("Insufficient turns, returning degraded record", logging.Fields{
			"turns": len(turns),
		})
		return degradedRecord(DomainConversation, meta), nil
	}

	var rhythmHz float64
	if elapsedSec > 0 {
		rhythmHz = float64(len(turns)-1) / elapsedSec
	} else {
		rhythmHz = 1.0 / te.cfg.AssumedTurnSpacingSec
	}

	utterances := make([]lexical.Utterance, len(turns))
	for i, turn := range turns {
		utterances[i] = lexical.Utterance{Speaker: turn.Speaker, Text: turn.Text}
	}
	coherence := te.overlap.Compute(utterances).MeanOverlap

	var allText strings.Builder
	for _, turn := range turns {
		allText.WriteString(turn.Text)
		allText.WriteString(" ")
	}
	tokens := lexical.Tokenize(allText.String())

	coverage := te.topics.Compute(tokens)
	multiTopic := coverage.Count >= te.cfg.MinTopicCategories

	warmthCount := te.warmth.Count(tokens)
	griefCount := te.grief.Count(tokens)
	recovered := warmthCount > griefCount

	meta.Topics = coverage.Categories
	meta.WarmthCount = warmthCount
	meta.GriefCount = griefCount

	record := FeatureRecord{
		Domain:          DomainConversation,
		RhythmHz:        rhythmHz,
		Coherence:       coherence,
		MultiOscillator: multiTopic,
		Recovery:        recovered,
		Meta:            meta,
	}

	te.logger.Debug("Text features extracted", logging.Fields{
		"turns":       len(turns),
		"rhythm_hz":   record.RhythmHz,
		"coherence":   record.Coherence,
		"multi_topic": record.MultiOscillator,
		"recovery":    record.Recovery,
		"topics":      coverage.Categories,
	})

	return record, nil
}
