// Package capture translates Portuguese text and turns it into vocabulary.
package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/langcards/internal/extractor"
	"github.com/at-ishikawa/langcards/internal/mastery"
	"github.com/at-ishikawa/langcards/internal/translation"
	"github.com/at-ishikawa/langcards/internal/vocabulary"
)

var ErrTranslationFailed = errors.New("translation failed")

// WordAdder is the part of the vocabulary store capture writes to.
type WordAdder interface {
	AddWord(ctx context.Context, candidate vocabulary.Candidate) (vocabulary.Word, bool, error)
}

type Service struct {
	provider translation.Provider
	words    WordAdder
}

func NewService(provider translation.Provider, words WordAdder) *Service {
	return &Service{provider: provider, words: words}
}

type Result struct {
	Source      string
	Translation string
	Language    vocabulary.Language
	Candidates  []vocabulary.Candidate
}

// Decision is the learner's verdict on one candidate.
type Decision struct {
	Candidate vocabulary.Candidate
	Known     bool
}

// Summary counts what Commit did. Skipped words were already in the store.
type Summary struct {
	Added   []vocabulary.Word
	Skipped int
}

// Translate translates text and extracts candidates from it. Text without any
// word gives extractor.ErrNothingToExtract and the provider is not called.
// Provider errors are wrapped in ErrTranslationFailed and are not retried.
func (s *Service) Translate(ctx context.Context, text string, language vocabulary.Language) (Result, error) {
	if extractor.IsEmpty(text) {
		return Result{}, extractor.ErrNothingToExtract
	}
	if !language.Valid() {
		return Result{}, fmt.Errorf("%w: %q", vocabulary.ErrInvalidLanguage, language)
	}

	translated, err := s.provider.Translate(ctx, text, language)
	if err != nil {
		slog.Default().Warn("translation failed", "language", language, "error", err)
		return Result{}, fmt.Errorf("%w: %w", ErrTranslationFailed, err)
	}

	result := Result{
		Source:      text,
		Translation: translated,
		Language:    language,
		Candidates:  []vocabulary.Candidate{},
	}
	if strings.TrimSpace(translated) == "" {
		return result, nil
	}
	result.Candidates = extractor.Extract(text, translated, language)
	return result, nil
}

// Commit adds known words as mastered and the rest as unknown.
func (s *Service) Commit(ctx context.Context, decisions []Decision) (Summary, error) {
	summary := Summary{Added: []vocabulary.Word{}}
	for _, decision := range decisions {
		candidate := decision.Candidate
		candidate.Level = mastery.LevelUnknown
		if decision.Known {
			candidate.Level = mastery.LevelMastered
		}

		word, added, err := s.words.AddWord(ctx, candidate)
		if err != nil {
			return summary, fmt.Errorf("AddWord(%s) > %w", candidate.Text, err)
		}
		if !added {
			summary.Skipped++
			continue
		}
		summary.Added = append(summary.Added, word)
	}
	return summary, nil
}

// Decide marks every candidate with the same verdict.
func Decide(candidates []vocabulary.Candidate, known bool) []Decision {
	decisions := make([]Decision, 0, len(candidates))
	for _, candidate := range candidates {
		decisions = append(decisions, Decision{Candidate: candidate, Known: known})
	}
	return decisions
}

// CaptureAll translates text and stores every extracted word as unknown.
func (s *Service) CaptureAll(ctx context.Context, text string, language vocabulary.Language) (Result, Summary, error) {
	result, err := s.Translate(ctx, text, language)
	if err != nil {
		return Result{}, Summary{}, err
	}
	summary, err := s.Commit(ctx, Decide(result.Candidates, false))
	if err != nil {
		return result, summary, err
	}
	return result, summary, nil
}
