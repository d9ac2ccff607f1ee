package vocabulary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/at-ishikawa/langcards/internal/mastery"
	"github.com/at-ishikawa/langcards/internal/storage"
)

const (
	WordsCollection      = "words"
	FlashcardsCollection = "flashcards"
)

var (
	ErrEmptyText       = errors.New("word text is empty")
	ErrInvalidLanguage = errors.New("invalid language")
)

// Store owns a user's words and flashcards. Every mutation is applied in memory
// and then written back to the key-value store; a failed write undoes the change.
type Store struct {
	mu         sync.RWMutex
	kv         storage.KeyValue
	userID     string
	clock      *mastery.Clock
	newID      func() string
	seed       bool
	words      []Word
	flashcards []Flashcard
}

type Option func(*Store)

func WithClock(clock *mastery.Clock) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithoutDemoSeed starts first-time users with empty collections.
func WithoutDemoSeed() Option {
	return func(s *Store) {
		s.seed = false
	}
}

// Open loads the user's collections. A collection that was never saved is
// initialized with the demo seed and saved immediately.
func Open(ctx context.Context, kv storage.KeyValue, userID string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id is required")
	}
	s := &Store{
		kv:     kv,
		userID: userID,
		clock:  mastery.NewClock(nil),
		newID:  uuid.NewString,
		seed:   true,
	}
	for _, opt := range opts {
		opt(s)
	}

	words, err := load(ctx, s, WordsCollection, demoWords)
	if err != nil {
		return nil, err
	}
	flashcards, err := load(ctx, s, FlashcardsCollection, demoFlashcards)
	if err != nil {
		return nil, err
	}
	s.words = words
	s.flashcards = flashcards

	for _, w := range s.words {
		s.observe(w)
	}
	for _, f := range s.flashcards {
		s.observe(f.Word)
	}
	return s, nil
}

func load[T any](ctx context.Context, s *Store, collection string, demo func(now mastery.Timestamp) []T) ([]T, error) {
	key := storage.Key(collection, s.userID)
	data, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("kv.Get(%s) > %w", key, err)
	}
	if ok {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("json.Unmarshal(%s) > %w", key, err)
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	}

	items := []T{}
	if s.seed {
		items = demo(s.clock.Now())
		slog.Default().Info("installing demo vocabulary", "collection", collection, "user", s.userID, "count", len(items))
	}
	if err := save(ctx, s.kv, key, items); err != nil {
		return nil, err
	}
	return items, nil
}

func save[T any](ctx context.Context, kv storage.KeyValue, key string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("json.Marshal(%s) > %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("kv.Set(%s) > %w", key, err)
	}
	return nil
}

func (s *Store) observe(w Word) {
	s.clock.Observe(w.CreatedAt)
	if w.LastReviewedAt != nil {
		s.clock.Observe(*w.LastReviewedAt)
	}
}

func (s *Store) saveWords(ctx context.Context) error {
	return save(ctx, s.kv, storage.Key(WordsCollection, s.userID), s.words)
}

func (s *Store) saveFlashcards(ctx context.Context) error {
	return save(ctx, s.kv, storage.Key(FlashcardsCollection, s.userID), s.flashcards)
}

func (s *Store) UserID() string {
	return s.userID
}

func (s *Store) newWord(c Candidate) (Word, error) {
	text := strings.TrimSpace(c.Text)
	if text == "" {
		return Word{}, ErrEmptyText
	}
	if !c.Language.Valid() {
		return Word{}, fmt.Errorf("%w: %q", ErrInvalidLanguage, c.Language)
	}
	level := c.Level
	if level == "" {
		level = mastery.LevelUnknown
	}
	if !level.Valid() {
		return Word{}, fmt.Errorf("%w: %q", mastery.ErrInvalidLevel, level)
	}
	return Word{
		ID:          s.newID(),
		Text:        text,
		Translation: c.Translation,
		Language:    c.Language,
		State:       mastery.State{Level: level},
		CreatedAt:   s.clock.Now(),
	}, nil
}

// AddWord inserts a word unless one with the same normalized text and language
// already exists, in which case nothing changes and false is returned.
func (s *Store) AddWord(ctx context.Context, c Candidate) (Word, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.findWord(keyOf(c.Text, c.Language)); exists {
		slog.Default().Debug("skipping duplicate word", "word", c.Text, "language", c.Language)
		return Word{}, false, nil
	}

	word, err := s.newWord(c)
	if err != nil {
		return Word{}, false, err
	}

	s.words = append(s.words, word)
	if err := s.saveWords(ctx); err != nil {
		s.words = s.words[:len(s.words)-1]
		return Word{}, false, err
	}
	return word, true, nil
}

// AddFlashcard always appends; flashcards are not deduplicated.
func (s *Store) AddFlashcard(ctx context.Context, draft FlashcardDraft) (Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	word, err := s.newWord(draft.Candidate)
	if err != nil {
		return Flashcard{}, err
	}
	card := Flashcard{
		Word:               word,
		Context:            draft.Context,
		ContextTranslation: draft.ContextTranslation,
	}

	s.flashcards = append(s.flashcards, card)
	if err := s.saveFlashcards(ctx); err != nil {
		s.flashcards = s.flashcards[:len(s.flashcards)-1]
		return Flashcard{}, err
	}
	return card, nil
}

// UpdateWordMastery moves a word to level. An empty or unknown id is ignored.
func (s *Store) UpdateWordMastery(ctx context.Context, id string, level mastery.Level) error {
	if !level.Valid() {
		return fmt.Errorf("%w: %q", mastery.ErrInvalidLevel, level)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateWord(ctx, s.wordIndex(id), level)
}

func (s *Store) updateWord(ctx context.Context, index int, level mastery.Level) error {
	if index < 0 {
		return nil
	}
	previous := s.words[index]
	if err := s.words[index].Transition(level, s.clock.Now()); err != nil {
		return err
	}
	if err := s.saveWords(ctx); err != nil {
		s.words[index] = previous
		return err
	}
	return nil
}

// UpdateFlashcardMastery moves a flashcard to level and, when a word with the
// same normalized text and language exists, moves that word as well. Both
// collections are written together; when either write fails neither change is kept.
func (s *Store) UpdateFlashcardMastery(ctx context.Context, id string, level mastery.Level) error {
	if !level.Valid() {
		return fmt.Errorf("%w: %q", mastery.ErrInvalidLevel, level)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.flashcardIndex(id)
	if index < 0 {
		slog.Default().Debug("flashcard not found", "id", id)
		return nil
	}
	previous := s.flashcards[index]
	if err := s.flashcards[index].Transition(level, s.clock.Now()); err != nil {
		return err
	}
	card := s.flashcards[index]

	wordIndex, hasWord := s.findWord(keyOf(card.Text, card.Language))
	var previousWord Word
	if hasWord {
		previousWord = s.words[wordIndex]
		if err := s.words[wordIndex].Transition(level, s.clock.Now()); err != nil {
			s.flashcards[index] = previous
			return err
		}
	}

	entries := make([]storage.Entry, 0, 2)
	entry, err := s.entry(FlashcardsCollection, s.flashcards)
	if err == nil {
		entries = append(entries, entry)
		if hasWord {
			entry, err = s.entry(WordsCollection, s.words)
			entries = append(entries, entry)
		}
	}
	if err == nil {
		err = storage.SetAll(ctx, s.kv, entries)
		if err != nil {
			err = fmt.Errorf("storage.SetAll(%s) > %w", card.ID, err)
		}
	}
	if err == nil {
		return nil
	}

	s.flashcards[index] = previous
	if hasWord {
		s.words[wordIndex] = previousWord
		// A store without batch writes may already hold the new flashcards.
		if restoreErr := s.saveFlashcards(ctx); restoreErr != nil {
			slog.Default().Warn("failed to restore flashcards", "user", s.userID, "error", restoreErr)
		}
	}
	return err
}

func (s *Store) entry(collection string, items any) (storage.Entry, error) {
	key := storage.Key(collection, s.userID)
	data, err := json.Marshal(items)
	if err != nil {
		return storage.Entry{}, fmt.Errorf("json.Marshal(%s) > %w", key, err)
	}
	return storage.Entry{Key: key, Value: data}, nil
}

func (s *Store) wordIndex(id string) int {
	if id == "" {
		return -1
	}
	for i, w := range s.words {
		if w.ID == id {
			return i
		}
	}
	slog.Default().Debug("word not found", "id", id)
	return -1
}

func (s *Store) flashcardIndex(id string) int {
	if id == "" {
		return -1
	}
	for i, f := range s.flashcards {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) findWord(k key) (int, bool) {
	for i, w := range s.words {
		if keyOf(w.Text, w.Language) == k {
			return i, true
		}
	}
	return -1, false
}

// FindWord looks a word up by its normalized text and language.
func (s *Store) FindWord(text string, language Language) (Word, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index, ok := s.findWord(keyOf(text, language))
	if !ok {
		return Word{}, false
	}
	return s.words[index], true
}

func (s *Store) Words() []Word {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Word{}, s.words...)
}

func (s *Store) Flashcards() []Flashcard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Flashcard{}, s.flashcards...)
}

func (s *Store) WordsByLanguage(language Language) []Word {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []Word{}
	for _, w := range s.words {
		if w.Language == language {
			result = append(result, w)
		}
	}
	return result
}

func (s *Store) FlashcardsByLanguage(language Language) []Flashcard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []Flashcard{}
	for _, f := range s.flashcards {
		if f.Language == language {
			result = append(result, f)
		}
	}
	return result
}

// Stats counts all words regardless of language.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return CountLevels(s.words)
}
