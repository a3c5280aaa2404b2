package lexical

// Lexicon is a named, fixed list of single-word terms. Lexicons are
// configuration data: counting never mutates them.
type Lexicon struct {
	Name  string   `json:"name"`
	Terms []string `json:"terms"`
}

// Count returns the number of token occurrences matching any term in the
// lexicon. Matching is exact on lowercased word tokens, so "rip" does not
// match inside "describe".
func (l Lexicon) Count(tokens []string) int {
	terms := make(map[string]struct{}, len(l.Terms))
	for _, t := range l.Terms {
		for _, tok := range Tokenize(t) {
			terms[tok] = struct{}{}
		}
	}

	count := 0
	for _, tok := range tokens {
		if _, ok := terms[tok]; ok {
			count++
		}
	}
	return count
}

// CountText tokenizes the given text and counts matches
func (l Lexicon) CountText(text string) int {
	return l.Count(Tokenize(text))
}
