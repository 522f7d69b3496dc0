package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/careerforge/assessment-engine/internal/cache"
	"github.com/careerforge/assessment-engine/internal/models"
	"github.com/careerforge/assessment-engine/internal/repositories"
)

type testService struct {
	repo     repositories.Repository
	cache    cache.CacheService
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewTestService(repo repositories.Repository, cacheService cache.CacheService, cacheTTL time.Duration, logger *slog.Logger) TestService {
	return &testService{
		repo:     repo,
		cache:    cacheService,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func testCacheKey(id uint) string {
	return fmt.Sprintf("test:%d", id)
}

func (s *testService) GetByID(ctx context.Context, id uint) (*TestResponse, error) {
	if s.cache != nil {
		var cached TestResponse
		err := s.cache.Get(ctx, testCacheKey(id), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Test cache read failed", "test_id", id, "error", err)
		}
	}

	test, err := s.repo.Test().GetByIDWithQuestions(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("failed to get test: %w", err)
	}

	response := buildTestResponse(test)

	if s.cache != nil {
		if err := s.cache.Set(ctx, testCacheKey(id), response, s.cacheTTL); err != nil {
			s.logger.Warn("Test cache write failed", "test_id", id, "error", err)
		}
	}

	return response, nil
}

func (s *testService) GetQuestions(ctx context.Context, testID uint) ([]*models.StudentQuestion, error) {
	if _, err := s.repo.Test().GetByID(ctx, testID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("failed to get test: %w", err)
	}

	questions, err := s.repo.Question().GetByTest(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrTestHasNoQuestions
	}

	views := make([]*models.StudentQuestion, len(questions))
	for i, q := range questions {
		view, err := q.ForStudent()
		if err != nil {
			return nil, fmt.Errorf("failed to decode options for question %d: %w", q.ID, err)
		}
		views[i] = view
	}

	return views, nil
}

func (s *testService) List(ctx context.Context, filters repositories.TestFilters) ([]*TestResponse, int64, error) {
	tests, total, err := s.repo.Test().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tests: %w", err)
	}

	responses := make([]*TestResponse, len(tests))
	for i, test := range tests {
		responses[i] = buildTestResponse(test)
	}

	return responses, total, nil
}

func buildTestResponse(test *models.Test) *TestResponse {
	totalMarks := 0
	for _, q := range test.Questions {
		totalMarks += q.Marks
	}

	return &TestResponse{
		ID:             test.ID,
		Title:          test.Title,
		Category:       test.Category,
		Difficulty:     test.Difficulty,
		Type:           test.Type,
		Duration:       test.Duration,
		Status:         test.Status,
		QuestionsCount: len(test.Questions),
		TotalMarks:     totalMarks,
	}
}
