// Package notebook moves vocabulary in and out of portable files:
// YAML notebooks, rendered markdown and PDF, and spreadsheets.
package notebook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/langcards/internal/mastery"
	"github.com/at-ishikawa/langcards/internal/vocabulary"
)

// Notebook is the YAML form of a learner's vocabulary.
type Notebook struct {
	Title      string              `yaml:"title"`
	Language   vocabulary.Language `yaml:"language,omitempty"`
	ExportedAt Date                `yaml:"exported_at"`
	Words      []Entry             `yaml:"words"`
	Flashcards []Entry             `yaml:"flashcards,omitempty"`
}

type Entry struct {
	Word               string              `yaml:"word"`
	Translation        string              `yaml:"translation"`
	Language           vocabulary.Language `yaml:"language"`
	Level              mastery.Level       `yaml:"level"`
	Context            string              `yaml:"context,omitempty"`
	ContextTranslation string              `yaml:"context_translation,omitempty"`
	LastReviewedAt     *Date               `yaml:"last_reviewed_at,omitempty"`
}

// Date represents a date in YYYY-MM-DD format for YAML serialization
type Date struct {
	time.Time
}

// MarshalYAML implements the yaml.Marshaler interface
func (d Date) MarshalYAML() (interface{}, error) {
	return d.Format("2006-01-02"), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	for _, layout := range []string{"2006-01-02", time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, value.Value); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unable to parse date '%s': expected YYYY-MM-DD, RFC3339, or RFC3339Nano format", value.Value)
}

func NewDateFromTime(t time.Time) Date {
	return Date{Time: t}
}

func entryOf(w vocabulary.Word) Entry {
	entry := Entry{
		Word:        w.Text,
		Translation: w.Translation,
		Language:    w.Language,
		Level:       w.Level,
	}
	if w.LastReviewedAt != nil {
		reviewed := NewDateFromTime(w.LastReviewedAt.Time.UTC())
		entry.LastReviewedAt = &reviewed
	}
	return entry
}

// Export builds a notebook from the store contents. An empty language keeps every language.
func Export(title string, language vocabulary.Language, words []vocabulary.Word, flashcards []vocabulary.Flashcard, now time.Time) Notebook {
	nb := Notebook{
		Title:      title,
		Language:   language,
		ExportedAt: NewDateFromTime(now),
		Words:      []Entry{},
	}
	for _, w := range words {
		if language != "" && w.Language != language {
			continue
		}
		nb.Words = append(nb.Words, entryOf(w))
	}
	for _, f := range flashcards {
		if language != "" && f.Language != language {
			continue
		}
		entry := entryOf(f.Word)
		entry.Context = f.Context
		entry.ContextTranslation = f.ContextTranslation
		nb.Flashcards = append(nb.Flashcards, entry)
	}
	return nb
}

func WriteYAML(path string, nb Notebook) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(nb); err != nil {
		return fmt.Errorf("yaml.Encode(%s) > %w", path, err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoder.Close() > %w", err)
	}
	return nil
}

func ReadYAML(path string) (Notebook, error) {
	file, err := os.Open(path)
	if err != nil {
		return Notebook{}, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var nb Notebook
	if err := yaml.NewDecoder(file).Decode(&nb); err != nil {
		return Notebook{}, fmt.Errorf("yaml.Decode(%s) > %w", path, err)
	}
	return nb, nil
}

// Store is the part of the vocabulary store an import writes to.
type Store interface {
	AddWord(ctx context.Context, candidate vocabulary.Candidate) (vocabulary.Word, bool, error)
	AddFlashcard(ctx context.Context, draft vocabulary.FlashcardDraft) (vocabulary.Flashcard, error)
	Flashcards() []vocabulary.Flashcard
}

type ImportResult struct {
	AddedWords        int
	SkippedWords      int
	AddedFlashcards   int
	SkippedFlashcards int
}

type flashcardKey struct {
	text     string
	language vocabulary.Language
	context  string
}

// Import adds the notebook entries to store. Words already in the store and
// flashcards with the same word, language and context are skipped.
// Review dates are not imported.
func Import(ctx context.Context, store Store, nb Notebook) (ImportResult, error) {
	var result ImportResult
	for _, entry := range nb.Words {
		_, added, err := store.AddWord(ctx, candidateOf(entry, nb.Language))
		if err != nil {
			return result, fmt.Errorf("AddWord(%s) > %w", entry.Word, err)
		}
		if added {
			result.AddedWords++
		} else {
			result.SkippedWords++
		}
	}

	existing := make(map[flashcardKey]struct{})
	for _, f := range store.Flashcards() {
		existing[flashcardKey{vocabulary.NormalizeText(f.Text), f.Language, f.Context}] = struct{}{}
	}
	for _, entry := range nb.Flashcards {
		candidate := candidateOf(entry, nb.Language)
		key := flashcardKey{vocabulary.NormalizeText(candidate.Text), candidate.Language, entry.Context}
		if _, ok := existing[key]; ok {
			result.SkippedFlashcards++
			continue
		}
		if _, err := store.AddFlashcard(ctx, vocabulary.FlashcardDraft{
			Candidate:          candidate,
			Context:            entry.Context,
			ContextTranslation: entry.ContextTranslation,
		}); err != nil {
			return result, fmt.Errorf("AddFlashcard(%s) > %w", entry.Word, err)
		}
		existing[key] = struct{}{}
		result.AddedFlashcards++
	}
	return result, nil
}

func candidateOf(entry Entry, fallback vocabulary.Language) vocabulary.Candidate {
	language := entry.Language
	if language == "" {
		language = fallback
	}
	return vocabulary.Candidate{
		Text:        entry.Word,
		Translation: entry.Translation,
		Level:       entry.Level,
		Language:    language,
	}
}
