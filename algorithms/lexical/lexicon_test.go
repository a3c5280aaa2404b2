package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexicon_Count(t *testing.T) {
	warmth := Lexicon{Name: "warmth", Terms: []string{"love", "warmth", "reach", "hold", "cradle"}}

	tokens := Tokenize("Love and warmth hold us. Love again.")
	assert.Equal(t, 4, warmth.Count(tokens))
}

func TestLexicon_ExactTokenMatch(t *testing.T) {
	grief := Lexicon{Name: "grief", Terms: []string{"rip", "loss"}}

	// "rip" inside "describe" and "loss" inside "glossary" must not match
	assert.Equal(t, 0, grief.CountText("describe the glossary"))
	assert.Equal(t, 2, grief.CountText("the rip, the loss"))
}

func TestLexicon_CaseInsensitive(t *testing.T) {
	lex := Lexicon{Name: "test", Terms: []string{"Ocean"}}
	assert.Equal(t, 2, lex.CountText("OCEAN ocean"))
}

func TestTopicCoverage(t *testing.T) {
	tc := NewTopicCoverage([]Lexicon{
		{Name: "ocean", Terms: []string{"whale", "coda", "sea"}},
		{Name: "work", Terms: []string{"prototype", "build"}},
		{Name: "feeling", Terms: []string{"hope", "fear"}},
	})

	result := tc.Compute(Tokenize("we build a prototype while the whale sings"))
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, []string{"ocean", "work"}, result.Categories)

	result = tc.Compute(Tokenize("nothing relevant here"))
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Categories)
}
