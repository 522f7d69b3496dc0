package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/careerforge/assessment-engine/internal/events"
	"github.com/careerforge/assessment-engine/internal/models"
	"github.com/careerforge/assessment-engine/internal/repositories"
	"github.com/careerforge/assessment-engine/internal/session"
)

type scoringService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewScoringService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger) ScoringService {
	return &scoringService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Submit performs the authoritative scoring for one attempt. The correct
// answer comparison happens here and nowhere client-visible; the session
// engine guarantees at most one call per legitimate attempt, and every call
// that reaches this point is recorded.
func (s *scoringService) Submit(ctx context.Context, req session.SubmitRequest) (*models.ScoredResult, error) {
	s.logger.Info("Scoring submission",
		"test_id", req.TestID,
		"user_id", req.UserID,
		"answers_count", len(req.Answers),
		"end_reason", req.EndReason)

	questions, err := s.repo.Question().GetByTest(ctx, req.TestID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrTestHasNoQuestions
	}

	selected := make(map[uint]string, len(req.Answers))
	for _, answer := range req.Answers {
		selected[answer.QuestionID] = answer.SelectedOption
	}

	result := &models.ScoredResult{
		TotalQuestions: len(questions),
		Results:        make([]models.QuestionResult, 0, len(questions)),
	}

	for _, q := range questions {
		qr := models.QuestionResult{
			QuestionID:    q.ID,
			QuestionText:  q.Text,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Marks:         q.Marks,
		}
		result.TotalMarks += q.Marks

		// Unanswered questions are scored as skipped, never as an error.
		if option, ok := selected[q.ID]; ok {
			opt := option
			qr.SelectedOption = &opt
			qr.IsCorrect = strings.TrimSpace(option) == strings.TrimSpace(q.CorrectAnswer)
		}

		if qr.IsCorrect {
			result.Score += q.Marks
			result.CorrectCount++
		}

		result.Results = append(result.Results, qr)
	}

	record, err := s.recordAttempt(ctx, req, result)
	if err != nil {
		return nil, err
	}

	s.publishAttemptEvent(ctx, record)

	s.logger.Info("Submission scored",
		"attempt_id", record.ID,
		"test_id", req.TestID,
		"score", result.Score,
		"correct_count", result.CorrectCount)

	return result, nil
}

func (s *scoringService) recordAttempt(ctx context.Context, req session.SubmitRequest, result *models.ScoredResult) (*models.AttemptRecord, error) {
	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal answers snapshot: %w", err)
	}
	resultsJSON, err := json.Marshal(result.Results)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal results snapshot: %w", err)
	}

	timeSpent := req.TimeSpent
	record := &models.AttemptRecord{
		TestID:         req.TestID,
		UserID:         req.UserID,
		Score:          result.Score,
		TotalMarks:     result.TotalMarks,
		CorrectCount:   result.CorrectCount,
		TotalQuestions: result.TotalQuestions,
		EndReason:      req.EndReason,
		Answers:        answersJSON,
		Results:        resultsJSON,
		TimeSpent:      &timeSpent,
		SubmittedAt:    time.Now(),
	}

	if err := s.repo.Attempt().Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	return record, nil
}

// publishAttemptEvent is best-effort: the student already has their result,
// so a broker outage must not fail the submission.
func (s *scoringService) publishAttemptEvent(ctx context.Context, record *models.AttemptRecord) {
	if s.publisher == nil {
		return
	}

	event := events.NewAttemptSubmittedEvent(events.AttemptSubmittedEvent{
		AttemptID:      record.ID,
		TestID:         record.TestID,
		UserID:         record.UserID,
		Score:          record.Score,
		TotalMarks:     record.TotalMarks,
		CorrectCount:   record.CorrectCount,
		TotalQuestions: record.TotalQuestions,
		EndReason:      record.EndReason,
		SubmittedAt:    record.SubmittedAt,
	})

	if err := s.publisher.PublishAttemptEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish attempt event",
			"attempt_id", record.ID,
			"error", err)
	}
}

func (s *scoringService) GetAttempt(ctx context.Context, id uint) (*models.AttemptRecord, error) {
	record, err := s.repo.Attempt().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	return record, nil
}

func (s *scoringService) GetAttemptsByTest(ctx context.Context, testID uint, filters repositories.AttemptFilters) ([]*models.AttemptRecord, int64, error) {
	records, total, err := s.repo.Attempt().GetByTest(ctx, testID, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get attempts by test: %w", err)
	}
	return records, total, nil
}

func (s *scoringService) GetAttemptsByUser(ctx context.Context, userID string, filters repositories.AttemptFilters) ([]*models.AttemptRecord, int64, error) {
	records, total, err := s.repo.Attempt().GetByUser(ctx, userID, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get attempts by user: %w", err)
	}
	return records, total, nil
}
