package lexical

import (
	"strings"
	"unicode"
)

// Tokenize lowercases the given text and splits it into word tokens.
// Anything that is not a letter or digit separates tokens, so punctuation
// and apostrophes never leak into comparisons.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// TokenSet returns the distinct tokens of the given text
func TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		set[tok] = struct{}{}
	}
	return set
}
