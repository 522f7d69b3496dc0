package models

import (
	"time"

	"gorm.io/datatypes"
)

type AttemptEndReason string

const (
	AttemptEndReasonManual  AttemptEndReason = "manual"
	AttemptEndReasonTimeout AttemptEndReason = "timeout"
)

// AttemptRecord is the persisted outcome of one submitted session. Live
// sessions themselves are never persisted; only the scored result survives
// the session's lifetime.
type AttemptRecord struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	TestID uint   `json:"test_id" gorm:"not null;index"`
	UserID string `json:"user_id" gorm:"not null;size:255;index"`

	Score          int              `json:"score" gorm:"not null"`
	TotalMarks     int              `json:"total_marks" gorm:"not null"`
	CorrectCount   int              `json:"correct_count" gorm:"not null"`
	TotalQuestions int              `json:"total_questions" gorm:"not null"`
	EndReason      AttemptEndReason `json:"end_reason" gorm:"size:20;default:manual"`

	// Snapshots of what was submitted and how it was scored.
	Answers datatypes.JSON `json:"answers" gorm:"type:jsonb"` // []AnswerSubmission
	Results datatypes.JSON `json:"results" gorm:"type:jsonb"` // []QuestionResult

	TimeSpent   *int      `json:"time_spent,omitempty"` // seconds
	SubmittedAt time.Time `json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`

	Test Test `json:"-" gorm:"foreignKey:TestID"`
}

func (AttemptRecord) TableName() string {
	return "attempt_records"
}
