// Package mastery defines the learner-reported mastery lifecycle shared by words and flashcards.
package mastery

import (
	"errors"
	"fmt"
	"strings"
)

// Level is the tri-state confidence a learner reports for a vocabulary item.
type Level string

const (
	LevelUnknown  Level = "unknown"
	LevelLearning Level = "learning"
	LevelMastered Level = "mastered"
)

// ErrInvalidLevel is returned when a level outside the three known ones is used.
var ErrInvalidLevel = errors.New("invalid mastery level")

// Levels returns every level in lifecycle order.
func Levels() []Level {
	return []Level{LevelUnknown, LevelLearning, LevelMastered}
}

func (l Level) Valid() bool {
	switch l {
	case LevelUnknown, LevelLearning, LevelMastered:
		return true
	}
	return false
}

func (l Level) String() string {
	return string(l)
}

// ParseLevel parses a level name case-insensitively.
func ParseLevel(s string) (Level, error) {
	level := Level(strings.ToLower(strings.TrimSpace(s)))
	if !level.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return level, nil
}
