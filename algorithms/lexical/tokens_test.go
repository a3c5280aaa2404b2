package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and strips punctuation",
			text: "The Ocean keeps its secrets, alive and specific.",
			want: []string{"the", "ocean", "keeps", "its", "secrets", "alive", "and", "specific"},
		},
		{
			name: "apostrophes split words",
			text: "it's the whale's coda",
			want: []string{"it", "s", "the", "whale", "s", "coda"},
		},
		{
			name: "empty text",
			text: "   \n\t ",
			want: []string{},
		},
		{
			name: "digits survive",
			text: "coda type 1+3",
			want: []string{"coda", "type", "1", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("the whale, the whale, the WHALE")
	assert.Len(t, set, 2)
	assert.Contains(t, set, "whale")
	assert.Contains(t, set, "the")
}
