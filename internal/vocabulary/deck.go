package vocabulary

import (
	"context"

	"github.com/at-ishikawa/langcards/internal/mastery"
)

// Card is what a practice session shows. Context is empty for plain words.
type Card struct {
	ID                 string
	Text               string
	Translation        string
	Context            string
	ContextTranslation string
	Language           Language
	Level              mastery.Level
}

func (w Word) Card() Card {
	return Card{
		ID:          w.ID,
		Text:        w.Text,
		Translation: w.Translation,
		Language:    w.Language,
		Level:       w.Level,
	}
}

func (f Flashcard) Card() Card {
	card := f.Word.Card()
	card.Context = f.Context
	card.ContextTranslation = f.ContextTranslation
	return card
}

// WordDeck practices plain words.
type WordDeck struct {
	store *Store
}

func (s *Store) WordDeck() WordDeck {
	return WordDeck{store: s}
}

func (d WordDeck) Cards(language Language) []Card {
	words := d.store.WordsByLanguage(language)
	cards := make([]Card, 0, len(words))
	for _, w := range words {
		cards = append(cards, w.Card())
	}
	return cards
}

func (d WordDeck) Review(ctx context.Context, id string, level mastery.Level) error {
	return d.store.UpdateWordMastery(ctx, id, level)
}

// FlashcardDeck practices flashcards; reviews also update the matching word.
type FlashcardDeck struct {
	store *Store
}

func (s *Store) FlashcardDeck() FlashcardDeck {
	return FlashcardDeck{store: s}
}

func (d FlashcardDeck) Cards(language Language) []Card {
	flashcards := d.store.FlashcardsByLanguage(language)
	cards := make([]Card, 0, len(flashcards))
	for _, f := range flashcards {
		cards = append(cards, f.Card())
	}
	return cards
}

func (d FlashcardDeck) Review(ctx context.Context, id string, level mastery.Level) error {
	return d.store.UpdateFlashcardMastery(ctx, id, level)
}
