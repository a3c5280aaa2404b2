package lexical

import "sort"

// TopicCoverageResult contains which topic vocabularies a text touched
type TopicCoverageResult struct {
	Categories []string `json:"categories"` // Covered category names, sorted
	Count      int      `json:"count"`
}

// TopicCoverage detects multi-topic structure by keyword-category
// coverage: a category counts as present when at least one of its
// vocabulary terms occurs in the text. This is deliberately not topic
// modeling; the vocabularies are fixed configuration data.
type TopicCoverage struct {
	lexicons []Lexicon
}

// NewTopicCoverage creates a coverage analyzer over the given topic vocabularies
func NewTopicCoverage(lexicons []Lexicon) *TopicCoverage {
	return &TopicCoverage{lexicons: lexicons}
}

// Compute reports the covered categories for the given tokens. Category
// order in the result is alphabetical so identical input always yields an
// identical result.
func (tc *TopicCoverage) Compute(tokens []string) *TopicCoverageResult {
	result := &TopicCoverageResult{}

	for _, lex := range tc.lexicons {
		if lex.Count(tokens) > 0 {
			result.Categories = append(result.Categories, lex.Name)
		}
	}

	sort.Strings(result.Categories)
	result.Count = len(result.Categories)

	return result
}
