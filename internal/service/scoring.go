package service

import (
	"strings"
	"unicode"
)

// tokenize lowercases text and splits it on non-alphanumeric boundaries,
// returning the set of unique tokens.
func tokenize(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		tokens[f] = struct{}{}
	}
	return tokens
}

// scoreChunk returns the number of unique query tokens present in the chunk.
// The score is the raw intersection size, deliberately not normalized by
// chunk length; ties are broken by original chunk order in the retriever.
// Empty inputs score 0.
func scoreChunk(queryTokens map[string]struct{}, chunk string) int {
	if len(queryTokens) == 0 || chunk == "" {
		return 0
	}

	score := 0
	for token := range tokenize(chunk) {
		if _, ok := queryTokens[token]; ok {
			score++
		}
	}
	return score
}
