// Package extractor turns a sentence into candidate vocabulary words.
package extractor

import (
	"errors"
	"regexp"
	"strings"

	"github.com/at-ishikawa/langcards/internal/mastery"
	"github.com/at-ishikawa/langcards/internal/vocabulary"
)

// ErrNothingToExtract is returned for text that has no words in it.
var ErrNothingToExtract = errors.New("no text to extract words from")

var punctuation = regexp.MustCompile("[.,/#!$%^&*;:{}=\\-_`~()]")

// Tokens lowercases text, drops punctuation and splits on whitespace.
// Repeated tokens are kept once, in order of first appearance.
func Tokens(text string) []string {
	cleaned := punctuation.ReplaceAllString(strings.ToLower(text), "")
	fields := strings.Fields(cleaned)

	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, ok := seen[field]; ok {
			continue
		}
		seen[field] = struct{}{}
		tokens = append(tokens, field)
	}
	return tokens
}

// Extract returns one unknown-level candidate per distinct token of sourceText.
// The translation of each candidate is the token itself; translatedText is
// accepted for callers that later pair words up and is not aligned here.
func Extract(sourceText, translatedText string, language vocabulary.Language) []vocabulary.Candidate {
	tokens := Tokens(sourceText)
	candidates := make([]vocabulary.Candidate, 0, len(tokens))
	for _, token := range tokens {
		candidates = append(candidates, vocabulary.Candidate{
			Text:        token,
			Translation: token,
			Level:       mastery.LevelUnknown,
			Language:    language,
		})
	}
	return candidates
}

// IsEmpty reports whether text has nothing to extract.
func IsEmpty(text string) bool {
	return len(Tokens(text)) == 0
}
