package lexical

import (
	"gonum.org/v1/gonum/stat"
)

// Utterance is one attributed chunk of text in a conversation
type Utterance struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// OverlapResult contains lexical mirroring measurements for a conversation
type OverlapResult struct {
	PairOverlaps []float64 `json:"pair_overlaps"` // Jaccard overlap per compared pair
	PairCount    int       `json:"pair_count"`
	MeanOverlap  float64   `json:"mean_overlap"` // [0, 1]
}

// TurnOverlap measures lexical mirroring between consecutive utterances
// from different speakers: the Jaccard ratio of shared to total distinct
// tokens, averaged over every cross-speaker adjacent pair. High overlap is
// the text-domain proxy for phase locking.
type TurnOverlap struct{}

// NewTurnOverlap creates a new overlap analyzer
func NewTurnOverlap() *TurnOverlap {
	return &TurnOverlap{}
}

// Compute measures mirroring across the given utterance sequence. Pairs
// where either side has no tokens are skipped; a conversation with no
// comparable pairs scores 0.
func (to *TurnOverlap) Compute(utterances []Utterance) *OverlapResult {
	result := &OverlapResult{}

	for i := 0; i+1 < len(utterances); i++ {
		if utterances[i].Speaker == utterances[i+1].Speaker {
			continue
		}

		a := TokenSet(utterances[i].Text)
		b := TokenSet(utterances[i+1].Text)
		if len(a) == 0 || len(b) == 0 {
			continue
		}

		shared := 0
		for tok := range a {
			if _, ok := b[tok]; ok {
				shared++
			}
		}
		total := len(a) + len(b) - shared

		result.PairOverlaps = append(result.PairOverlaps, float64(shared)/float64(total))
	}

	result.PairCount = len(result.PairOverlaps)
	if result.PairCount > 0 {
		result.MeanOverlap = stat.Mean(result.PairOverlaps, nil)
	}

	return result
}
