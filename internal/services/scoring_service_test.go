package services

import (
	"context"
	"testing"

	"github.com/careerforge/assessment-engine/internal/events"
	"github.com/careerforge/assessment-engine/internal/models"
	"github.com/careerforge/assessment-engine/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func scoringQuestions() []*models.Question {
	explanation := "Paris has been the capital since 987."
	return []*models.Question{
		{ID: 1, TestID: 7, Order: 1, Text: "Capital of France?", CorrectAnswer: "Paris", Explanation: &explanation, Marks: 2},
		{ID: 2, TestID: 7, Order: 2, Text: "2 + 2?", CorrectAnswer: "4", Marks: 1},
		{ID: 3, TestID: 7, Order: 3, Text: "Largest ocean?", CorrectAnswer: "Pacific", Marks: 2},
	}
}

func TestScoringService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("scores answers against correct answers", func(t *testing.T) {
		repo := NewMockRepository()
		publisher := events.NewMockEventPublisher(testLogger())
		service := NewScoringService(repo, publisher, testLogger())

		repo.question.On("GetByTest", ctx, uint(7)).Return(scoringQuestions(), nil)
		repo.attempt.On("Create", ctx, mock.AnythingOfType("*models.AttemptRecord")).Return(nil)

		result, err := service.Submit(ctx, session.SubmitRequest{
			TestID: 7,
			UserID: "user-1",
			Answers: []models.AnswerSubmission{
				{QuestionID: 1, SelectedOption: "Paris"},
				{QuestionID: 2, SelectedOption: "5"},
				{QuestionID: 3, SelectedOption: "Pacific"},
			},
			EndReason: models.AttemptEndReasonManual,
			TimeSpent: 120,
		})

		assert.NoError(t, err)
		assert.Equal(t, 4, result.Score)
		assert.Equal(t, 5, result.TotalMarks)
		assert.Equal(t, 2, result.CorrectCount)
		assert.Equal(t, 3, result.TotalQuestions)

		assert.True(t, result.Results[0].IsCorrect)
		assert.False(t, result.Results[1].IsCorrect)
		assert.Equal(t, "5", *result.Results[1].SelectedOption)
		assert.Equal(t, "4", result.Results[1].CorrectAnswer)

		repo.AssertExpectations(t)
	})

	t.Run("unanswered questions are skipped not errors", func(t *testing.T) {
		repo := NewMockRepository()
		service := NewScoringService(repo, events.NewMockEventPublisher(testLogger()), testLogger())

		repo.question.On("GetByTest", ctx, uint(7)).Return(scoringQuestions(), nil)
		repo.attempt.On("Create", ctx, mock.AnythingOfType("*models.AttemptRecord")).Return(nil)

		result, err := service.Submit(ctx, session.SubmitRequest{
			TestID: 7,
			UserID: "user-1",
			Answers: []models.AnswerSubmission{
				{QuestionID: 2, SelectedOption: "4"},
			},
			EndReason: models.AttemptEndReasonTimeout,
			TimeSpent: 600,
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Score)
		assert.Equal(t, 1, result.CorrectCount)
		// Every question appears in the results, answered or not.
		assert.Len(t, result.Results, 3)
		assert.Nil(t, result.Results[0].SelectedOption)
		assert.False(t, result.Results[0].IsCorrect)
		assert.NotNil(t, result.Results[1].SelectedOption)
	})

	t.Run("empty submission scores zero", func(t *testing.T) {
		repo := NewMockRepository()
		service := NewScoringService(repo, events.NewMockEventPublisher(testLogger()), testLogger())

		repo.question.On("GetByTest", ctx, uint(7)).Return(scoringQuestions(), nil)
		repo.attempt.On("Create", ctx, mock.AnythingOfType("*models.AttemptRecord")).Return(nil)

		result, err := service.Submit(ctx, session.SubmitRequest{
			TestID:    7,
			UserID:    "user-1",
			EndReason: models.AttemptEndReasonTimeout,
		})

		assert.NoError(t, err)
		assert.Equal(t, 0, result.Score)
		assert.Equal(t, 5, result.TotalMarks)
		assert.Len(t, result.Results, 3)
	})

	t.Run("whitespace around options is ignored", func(t *testing.T) {
		repo := NewMockRepository()
		service := NewScoringService(repo, events.NewMockEventPublisher(testLogger()), testLogger())

		repo.question.On("GetByTest", ctx, uint(7)).Return(scoringQuestions(), nil)
		repo.attempt.On("Create", ctx, mock.AnythingOfType("*models.AttemptRecord")).Return(nil)

		result, err := service.Submit(ctx, session.SubmitRequest{
			TestID: 7,
			UserID: "user-1",
			Answers: []models.AnswerSubmission{
				{QuestionID: 1, SelectedOption: "  Paris "},
			},
			EndReason: models.AttemptEndReasonManual,
		})

		assert.NoError(t, err)
		assert.True(t, result.Results[0].IsCorrect)
	})

	t.Run("missing test maps to not found", func(t *testing.T) {
		repo := NewMockRepository()
		service := NewScoringService(repo, events.NewMockEventPublisher(testLogger()), testLogger())

		repo.question.On("GetByTest", ctx, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Submit(ctx, session.SubmitRequest{TestID: 99, UserID: "user-1"})
		assert.ErrorIs(t, err, ErrTestNotFound)
	})

	t.Run("records attempt with snapshots", func(t *testing.T) {
		repo := NewMockRepository()
		service := NewScoringService(repo, events.NewMockEventPublisher(testLogger()), testLogger())

		var captured *models.AttemptRecord
		repo.question.On("GetByTest", ctx, uint(7)).Return(scoringQuestions(), nil)
		repo.attempt.On("Create", ctx, mock.AnythingOfType("*models.AttemptRecord")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*models.AttemptRecord)
			}).Return(nil)

		_, err := service.Submit(ctx, session.SubmitRequest{
			TestID: 7,
			UserID: "user-1",
			Answers: []models.AnswerSubmission{
				{QuestionID: 1, SelectedOption: "Paris"},
			},
			EndReason: models.AttemptEndReasonManual,
			TimeSpent: 45,
		})

		assert.NoError(t, err)
		assert.NotNil(t, captured)
		assert.Equal(t, uint(7), captured.TestID)
		assert.Equal(t, "user-1", captured.UserID)
		assert.Equal(t, models.AttemptEndReasonManual, captured.EndReason)
		assert.Equal(t, 45, *captured.TimeSpent)
		assert.NotEmpty(t, captured.Answers)
		assert.NotEmpty(t, captured.Results)
	})

	t.Run("publishes attempt event", func(t *testing.T) {
		repo := NewMockRepository()
		publisher := events.NewMockEventPublisher(testLogger())
		service := NewScoringService(repo, publisher, testLogger())

		repo.question.On("GetByTest", ctx, uint(7)).Return(scoringQuestions(), nil)
		repo.attempt.On("Create", ctx, mock.AnythingOfType("*models.AttemptRecord")).Return(nil)

		_, err := service.Submit(ctx, session.SubmitRequest{
			TestID:    7,
			UserID:    "user-1",
			EndReason: models.AttemptEndReasonTimeout,
		})
		assert.NoError(t, err)

		published := publisher.GetPublishedEvents()
		assert.Len(t, published, 1)
		assert.Equal(t, events.EventAttemptTimedOut, published[0].Type)
	})
}

func TestScoringService_GetAttempt(t *testing.T) {
	ctx := context.Background()
	repo := NewMockRepository()
	service := NewScoringService(repo, nil, testLogger())

	t.Run("found", func(t *testing.T) {
		repo.attempt.On("GetByID", ctx, uint(1)).Return(&models.AttemptRecord{ID: 1, TestID: 7}, nil)

		record, err := service.GetAttempt(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, uint(7), record.TestID)
	})

	t.Run("not found", func(t *testing.T) {
		repo.attempt.On("GetByID", ctx, uint(2)).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.GetAttempt(ctx, 2)
		assert.ErrorIs(t, err, ErrAttemptNotFound)
	})
}
