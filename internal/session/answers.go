package session

import (
	"github.com/careerforge/assessment-engine/internal/models"
)

// AnswerStore holds the user's current selection for every question visited.
// Last write wins; no history is kept, and two different questions may hold
// the same option text. The store is not safe for concurrent use on its own;
// the owning Session serializes all access.
type AnswerStore struct {
	allowed    map[uint]map[string]struct{}
	selections map[uint]string
}

func newAnswerStore(questions []*models.StudentQuestion) *AnswerStore {
	allowed := make(map[uint]map[string]struct{}, len(questions))
	for _, q := range questions {
		options := make(map[string]struct{}, len(q.Options))
		for _, opt := range q.Options {
			options[opt] = struct{}{}
		}
		allowed[q.ID] = options
	}

	return &AnswerStore{
		allowed:    allowed,
		selections: make(map[uint]string),
	}
}

// Select records option as the answer for questionID, overwriting any prior
// selection.
func (s *AnswerStore) Select(questionID uint, option string) error {
	options, ok := s.allowed[questionID]
	if !ok {
		return ErrUnknownQuestion
	}
	if _, ok := options[option]; !ok {
		return ErrInvalidOption
	}

	s.selections[questionID] = option
	return nil
}

// Get returns the current selection for questionID, if any.
func (s *AnswerStore) Get(questionID uint) (string, bool) {
	option, ok := s.selections[questionID]
	return option, ok
}

// Len returns the number of answered questions.
func (s *AnswerStore) Len() int {
	return len(s.selections)
}

// Reset drops every selection. Called when the test stage begins.
func (s *AnswerStore) Reset() {
	s.selections = make(map[uint]string)
}

// Snapshot returns a copy of the current selections.
func (s *AnswerStore) Snapshot() map[uint]string {
	out := make(map[uint]string, len(s.selections))
	for id, option := range s.selections {
		out[id] = option
	}
	return out
}
