package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/careerforge/assessment-engine/internal/models"
	"github.com/careerforge/assessment-engine/internal/repositories"
	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockTestRepository is a mock implementation of TestRepository
type MockTestRepository struct {
	mock.Mock
}

func (m *MockTestRepository) Create(ctx context.Context, test *models.Test) error {
	args := m.Called(ctx, test)
	return args.Error(0)
}

func (m *MockTestRepository) GetByID(ctx context.Context, id uint) (*models.Test, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Test), args.Error(1)
}

func (m *MockTestRepository) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Test, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Test), args.Error(1)
}

func (m *MockTestRepository) List(ctx context.Context, filters repositories.TestFilters) ([]*models.Test, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Test), args.Get(1).(int64), args.Error(2)
}

func (m *MockTestRepository) Update(ctx context.Context, test *models.Test) error {
	args := m.Called(ctx, test)
	return args.Error(0)
}

func (m *MockTestRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockQuestionRepository is a mock implementation of QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) CreateBatch(ctx context.Context, questions []*models.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByTest(ctx context.Context, testID uint) ([]*models.Question, error) {
	args := m.Called(ctx, testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) CountByTest(ctx context.Context, testID uint) (int64, error) {
	args := m.Called(ctx, testID)
	return args.Get(0).(int64), args.Error(1)
}

// MockAttemptRepository is a mock implementation of AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(ctx context.Context, record *models.AttemptRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetByID(ctx context.Context, id uint) (*models.AttemptRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttemptRecord), args.Error(1)
}

func (m *MockAttemptRepository) GetByTest(ctx context.Context, testID uint, filters repositories.AttemptFilters) ([]*models.AttemptRecord, int64, error) {
	args := m.Called(ctx, testID, filters)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.AttemptRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockAttemptRepository) GetByUser(ctx context.Context, userID string, filters repositories.AttemptFilters) ([]*models.AttemptRecord, int64, error) {
	args := m.Called(ctx, userID, filters)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.AttemptRecord), args.Get(1).(int64), args.Error(2)
}

// MockRepository aggregates the repository mocks behind one handle.
type MockRepository struct {
	test     *MockTestRepository
	question *MockQuestionRepository
	attempt  *MockAttemptRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		test:     &MockTestRepository{},
		question: &MockQuestionRepository{},
		attempt:  &MockAttemptRepository{},
	}
}

func (m *MockRepository) Test() repositories.TestRepository         { return m.test }
func (m *MockRepository) Question() repositories.QuestionRepository { return m.question }
func (m *MockRepository) Attempt() repositories.AttemptRepository   { return m.attempt }

func (m *MockRepository) AssertExpectations(t *testing.T) {
	m.test.AssertExpectations(t)
	m.question.AssertExpectations(t)
	m.attempt.AssertExpectations(t)
}
