// Package vocabulary owns the learner's words and flashcards and their mastery states.
package vocabulary

import (
	"strings"

	"github.com/at-ishikawa/langcards/internal/mastery"
)

// Word is a vocabulary entry.
type Word struct {
	ID          string   `json:"id"`
	Text        string   `json:"word"`
	Translation string   `json:"translation"`
	Language    Language `json:"language"`
	mastery.State
	CreatedAt mastery.Timestamp `json:"createdAt"`
}

// Flashcard is a word together with an example sentence.
type Flashcard struct {
	Word
	Context            string `json:"context"`
	ContextTranslation string `json:"contextTranslation"`
}

// Candidate is a word that has not been committed to the store yet.
type Candidate struct {
	Text        string
	Translation string
	Level       mastery.Level
	Language    Language
}

// FlashcardDraft is a flashcard that has not been committed to the store yet.
type FlashcardDraft struct {
	Candidate
	Context            string
	ContextTranslation string
}

// Stats counts words per mastery level.
type Stats struct {
	Mastered int `json:"mastered"`
	Learning int `json:"learning"`
	Unknown  int `json:"unknown"`
}

func (s Stats) Total() int {
	return s.Mastered + s.Learning + s.Unknown
}

func (s *Stats) add(level mastery.Level) {
	switch level {
	case mastery.LevelMastered:
		s.Mastered++
	case mastery.LevelLearning:
		s.Learning++
	case mastery.LevelUnknown:
		s.Unknown++
	}
}

// key identifies a word within the store: two words with the same key are duplicates.
type key struct {
	text     string
	language Language
}

func keyOf(text string, language Language) key {
	return key{text: NormalizeText(text), language: language}
}

// NormalizeText returns the form used to compare words for duplicates.
func NormalizeText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// CountLevels computes Stats over words.
func CountLevels(words []Word) Stats {
	var stats Stats
	for _, w := range words {
		stats.add(w.Level)
	}
	return stats
}
