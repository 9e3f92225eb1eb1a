package textanalysis

import (
	"regexp"
	"strings"
)

// MinWordLength is the default minimum token length kept by ExtractWords.
const MinWordLength = 2

// wordPattern matches a leading alphanumeric character followed by word
// characters or hyphens. Input is lowercased before matching, so uppercase
// ranges are not needed. \w and \b are ASCII here: a non-ASCII letter ends
// the token, so "café" tokenizes as "caf".
var wordPattern = regexp.MustCompile(`\b[a-z0-9][\w-]*\b`)

// Stopwords is a set of lowercase tokens excluded from word extraction.
type Stopwords map[string]struct{}

// NewStopwords builds a stopword set from a list of words, lowercasing each.
func NewStopwords(words []string) Stopwords {
	set := make(Stopwords, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// Contains reports whether the set contains the given token.
func (s Stopwords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// ExtractWords extracts tokens from free-form text, lowercased and filtered.
// Tokens shorter than minLength or present in stopwords are dropped; the
// original occurrence order is preserved. Empty input yields an empty slice.
func ExtractWords(text string, stopwords Stopwords, minLength int) []string {
	if text == "" {
		return nil
	}

	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	filtered := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) < minLength || stopwords.Contains(word) {
			continue
		}
		filtered = append(filtered, word)
	}
	return filtered
}

// ExtractPositivePrompt returns the positive-prompt portion of a generation
// metadata blob: everything before the first "Negative prompt:" line, or
// failing that, before the first "Steps:" line. If neither marker exists the
// blob is returned unchanged.
//
// The precedence is deliberate and matches the stored metadata format
// ("positive prompt\nNegative prompt: ...\nSteps: ..."). A caption that
// happens to contain a "Steps:" line inside an otherwise positive prompt is
// truncated too eagerly; that is a known limitation of the heuristic, not
// something to fix here.
func ExtractPositivePrompt(raw string) string {
	if idx := strings.Index(raw, "\nNegative prompt:"); idx >= 0 {
		return raw[:idx]
	}
	if idx := strings.Index(raw, "\nSteps:"); idx >= 0 {
		return raw[:idx]
	}
	return raw
}
