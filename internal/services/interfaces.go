package services

import (
	"context"

	"github.com/careerforge/assessment-engine/internal/models"
	"github.com/careerforge/assessment-engine/internal/report"
	"github.com/careerforge/assessment-engine/internal/repositories"
	"github.com/careerforge/assessment-engine/internal/session"
)

// ===== REQUEST / RESPONSE TYPES =====

// TestResponse is the metadata view of a test definition, without questions.
type TestResponse struct {
	ID             uint                    `json:"id"`
	Title          string                  `json:"title"`
	Category       string                  `json:"category"`
	Difficulty     *models.DifficultyLevel `json:"difficulty,omitempty"`
	Type           models.TestType         `json:"type"`
	Duration       int                     `json:"duration"` // minutes
	Status         models.TestStatus       `json:"status"`
	QuestionsCount int                     `json:"questions_count"`
	TotalMarks     int                     `json:"total_marks"`
}

// CreateSessionRequest opens a new test session for a user.
type CreateSessionRequest struct {
	TestID uint   `json:"test_id" validate:"required"`
	UserID string `json:"user_id" validate:"required"`
}

// PerformanceReport is the finished report handed to the UI: the authoritative
// scored result plus the derived topic classification.
type PerformanceReport struct {
	Score          int                     `json:"score"`
	TotalMarks     int                     `json:"total_marks"`
	CorrectCount   int                     `json:"correct_count"`
	TotalQuestions int                     `json:"total_questions"`
	Results        []models.QuestionResult `json:"results"`
	TopicReport    *report.TopicReport     `json:"topic_report"`
}

// ===== SERVICE INTERFACES =====

// TestService serves test definitions and their redacted question lists.
type TestService interface {
	GetByID(ctx context.Context, id uint) (*TestResponse, error)
	// GetQuestions returns the ordered question list without correct answers
	// or explanations; those never reach a client before submission.
	GetQuestions(ctx context.Context, testID uint) ([]*models.StudentQuestion, error)
	List(ctx context.Context, filters repositories.TestFilters) ([]*TestResponse, int64, error)
}

// ScoringService is the authoritative scoring collaborator. It implements
// session.Submitter and additionally records every scored attempt.
type ScoringService interface {
	session.Submitter

	GetAttempt(ctx context.Context, id uint) (*models.AttemptRecord, error)
	GetAttemptsByTest(ctx context.Context, testID uint, filters repositories.AttemptFilters) ([]*models.AttemptRecord, int64, error)
	GetAttemptsByUser(ctx context.Context, userID string, filters repositories.AttemptFilters) ([]*models.AttemptRecord, int64, error)
}

// SessionService owns every live session and exposes the session callbacks to
// the HTTP surface.
type SessionService interface {
	Create(ctx context.Context, req *CreateSessionRequest) (*session.State, error)
	Get(id string) (*session.State, error)
	Questions(id string) ([]*models.StudentQuestion, error)
	SelectDifficulty(id string, level models.DifficultyLevel) (*session.State, error)
	FinishLoading(id string) (*session.State, error)
	Start(id string) (*session.State, error)
	SelectOption(id string, questionID uint, option string) (*session.State, error)
	Navigate(id string, index int) (*session.State, error)
	Submit(ctx context.Context, id string) (*session.State, error)
	Report(id string) (*PerformanceReport, error)
	Close(id string) error

	// RunSweeper drops sessions idle past the configured timeout until ctx is
	// cancelled.
	RunSweeper(ctx context.Context)
}

// ExportService renders a test's attempt records for download.
type ExportService interface {
	ExportAttemptsToCSV(ctx context.Context, testID uint) ([]byte, error)
	ExportAttemptsToExcel(ctx context.Context, testID uint) ([]byte, error)
}

// ServiceManager aggregates all services behind one handle.
type ServiceManager interface {
	Test() TestService
	Scoring() ScoringService
	Session() SessionService
	Export() ExportService
}
