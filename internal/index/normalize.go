package index

import (
	"strings"
	"unicode"
)

// Normalize converts text into searchable terms: lowercase, punctuation
// stripped, split on whitespace. Stop-words are kept so behaviour stays
// predictable and testable. The same normalisation is applied to
// indexed text, filenames and queries.
func Normalize(text string) []string {
	if text == "" {
		return nil
	}

	mapped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		default:
			return ' '
		}
	}, text)

	fields := strings.Fields(mapped)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// TermFrequencies counts occurrences of each normalised term in text.
func TermFrequencies(text string) map[string]int {
	terms := Normalize(text)
	if len(terms) == 0 {
		return nil
	}
	freqs := make(map[string]int, len(terms))
	for _, t := range terms {
		freqs[t]++
	}
	return freqs
}
