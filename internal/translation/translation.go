// Package translation defines how source text reaches the learner's target language.
package translation

import (
	"context"

	"github.com/at-ishikawa/langcards/internal/vocabulary"
)

//go:generate mockgen -source=translation.go -destination=../mocks/translation/mock_provider.go -package=mock_translation

// Provider translates Portuguese text into a target language.
type Provider interface {
	Translate(ctx context.Context, text string, language vocabulary.Language) (string, error)
}
