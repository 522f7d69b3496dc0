package events

import (
	"time"

	"github.com/careerforge/assessment-engine/internal/models"
	"github.com/google/uuid"
)

type EventType string

const (
	EventAttemptSubmitted EventType = "attempt.submitted"
	EventAttemptTimedOut  EventType = "attempt.timed_out"
)

// AttemptEvent is the envelope published for every scored submission.
type AttemptEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// AttemptSubmittedEvent carries the outcome of one scored attempt.
type AttemptSubmittedEvent struct {
	AttemptID      uint                    `json:"attempt_id"`
	TestID         uint                    `json:"test_id"`
	UserID         string                  `json:"user_id"`
	Score          int                     `json:"score"`
	TotalMarks     int                     `json:"total_marks"`
	CorrectCount   int                     `json:"correct_count"`
	TotalQuestions int                     `json:"total_questions"`
	EndReason      models.AttemptEndReason `json:"end_reason"`
	SubmittedAt    time.Time               `json:"submitted_at"`
}

// NewAttemptSubmittedEvent wraps an attempt outcome in the event envelope.
func NewAttemptSubmittedEvent(data AttemptSubmittedEvent) *AttemptEvent {
	eventType := EventAttemptSubmitted
	if data.EndReason == models.AttemptEndReasonTimeout {
		eventType = EventAttemptTimedOut
	}

	return &AttemptEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    "assessment-engine",
		Version:   "1.0",
		Timestamp: time.Now(),
		Data:      data,
	}
}
