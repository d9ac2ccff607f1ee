// Package practice runs a single pass over the cards a learner has not mastered yet.
package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/at-ishikawa/langcards/internal/mastery"
	"github.com/at-ishikawa/langcards/internal/vocabulary"
)

var ErrNoCard = errors.New("no card to review")

// Deck is the source of cards and the sink for review results.
type Deck interface {
	Cards(language vocabulary.Language) []vocabulary.Card
	Review(ctx context.Context, id string, level mastery.Level) error
}

// Shuffler permutes n elements in place through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewShuffler returns a deterministic shuffler for seed.
func NewShuffler(seed uint64) Shuffler {
	return rand.New(rand.NewPCG(seed, seed))
}

type randomShuffler struct{}

func (randomShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// Session is an ordered queue of cards fixed at start. Reviews recorded during
// the session never add or remove cards from the queue.
type Session struct {
	deck     Deck
	language vocabulary.Language
	cards    []vocabulary.Card
	position int
	finished bool
}

// Start snapshots the non-mastered cards of deck for language and shuffles them.
// A nil shuffler uses a randomly seeded one.
func Start(deck Deck, language vocabulary.Language, shuffler Shuffler) *Session {
	if shuffler == nil {
		shuffler = randomShuffler{}
	}

	cards := []vocabulary.Card{}
	for _, card := range deck.Cards(language) {
		if card.Level == mastery.LevelMastered {
			continue
		}
		cards = append(cards, card)
	}
	shuffler.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	slog.Default().Debug("practice session started", "language", language, "cards", len(cards))
	return &Session{
		deck:     deck,
		language: language,
		cards:    cards,
		finished: len(cards) == 0,
	}
}

func (s *Session) Language() vocabulary.Language {
	return s.language
}

// Current returns the card at the current position, or false when there is none.
func (s *Session) Current() (vocabulary.Card, bool) {
	if s.finished || len(s.cards) == 0 {
		return vocabulary.Card{}, false
	}
	return s.cards[s.position], true
}

// Advance moves to the next card, or finishes the session on the last one.
func (s *Session) Advance() {
	if s.finished {
		return
	}
	if s.position < len(s.cards)-1 {
		s.position++
		return
	}
	s.finished = true
}

// Retreat moves to the previous card. A finished session stays finished.
func (s *Session) Retreat() {
	if s.position > 0 {
		s.position--
	}
}

// Record stores level for the current card and advances.
// The position does not move when the deck fails to store the review.
func (s *Session) Record(ctx context.Context, level mastery.Level) error {
	card, ok := s.Current()
	if !ok {
		return ErrNoCard
	}
	if err := s.deck.Review(ctx, card.ID, level); err != nil {
		return fmt.Errorf("deck.Review(%s) > %w", card.ID, err)
	}
	s.cards[s.position].Level = level
	s.Advance()
	return nil
}

// Progress returns the rounded percentage of the queue reached, counting the current card.
func (s *Session) Progress() (int, bool) {
	if len(s.cards) == 0 {
		return 0, false
	}
	return int(math.Round(float64(s.position+1) / float64(len(s.cards)) * 100)), true
}

func (s *Session) Position() int {
	return s.position
}

func (s *Session) Len() int {
	return len(s.cards)
}

func (s *Session) Finished() bool {
	return s.finished
}
