// Package settings stores user preferences that outlive a single command.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/langcards/internal/storage"
	"github.com/at-ishikawa/langcards/internal/vocabulary"
)

const targetLanguageKey = "targetLanguage"

type Settings struct {
	kv storage.KeyValue
}

func New(kv storage.KeyValue) *Settings {
	return &Settings{kv: kv}
}

// TargetLanguage returns the saved target language, falling back to the default
// when none is saved or the saved value is not a supported language.
func (s *Settings) TargetLanguage(ctx context.Context) (vocabulary.Language, error) {
	data, ok, err := s.kv.Get(ctx, targetLanguageKey)
	if err != nil {
		return "", fmt.Errorf("kv.Get(%s) > %w", targetLanguageKey, err)
	}
	if !ok {
		return vocabulary.DefaultLanguage, nil
	}

	var language vocabulary.Language
	if err := json.Unmarshal(data, &language); err != nil || !language.Valid() {
		slog.Default().Warn("ignoring saved target language", "value", string(data), "error", err)
		return vocabulary.DefaultLanguage, nil
	}
	return language, nil
}

func (s *Settings) SetTargetLanguage(ctx context.Context, language vocabulary.Language) error {
	if !language.Valid() {
		return fmt.Errorf("%w: %q", vocabulary.ErrInvalidLanguage, language)
	}
	data, err := json.Marshal(language)
	if err != nil {
		return fmt.Errorf("json.Marshal > %w", err)
	}
	if err := s.kv.Set(ctx, targetLanguageKey, data); err != nil {
		return fmt.Errorf("kv.Set(%s) > %w", targetLanguageKey, err)
	}
	return nil
}
