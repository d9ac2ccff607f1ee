package mastery

import (
	"fmt"
)

// State is the mastery part of a vocabulary entry.
type State struct {
	Level          Level      `json:"masteryLevel"`
	LastReviewedAt *Timestamp `json:"lastReviewedAt"`
}

// Transition moves the state to level and stamps the review time.
// Any level is reachable from any other; applying the same level twice only advances LastReviewedAt.
func (s *State) Transition(level Level, now Timestamp) error {
	if !level.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
	s.Level = level
	reviewedAt := now
	s.LastReviewedAt = &reviewedAt
	return nil
}

// Reviewed reports whether the entry has gone through at least one transition.
func (s State) Reviewed() bool {
	return s.LastReviewedAt != nil
}
