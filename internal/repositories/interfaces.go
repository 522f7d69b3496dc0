package repositories

import (
	"context"
	"errors"

	"github.com/careerforge/assessment-engine/internal/models"
	"gorm.io/gorm"
)

// ===== FILTERS =====

type TestFilters struct {
	Category   *string
	Difficulty *models.DifficultyLevel
	Status     *models.TestStatus
	Type       *models.TestType
	Limit      int
	Offset     int
}

type AttemptFilters struct {
	TestID *uint
	UserID *string
	Limit  int
	Offset int
}

// ===== REPOSITORY INTERFACES =====

type TestRepository interface {
	Create(ctx context.Context, test *models.Test) error
	GetByID(ctx context.Context, id uint) (*models.Test, error)
	GetByIDWithQuestions(ctx context.Context, id uint) (*models.Test, error)
	List(ctx context.Context, filters TestFilters) ([]*models.Test, int64, error)
	Update(ctx context.Context, test *models.Test) error
	Delete(ctx context.Context, id uint) error
}

type QuestionRepository interface {
	CreateBatch(ctx context.Context, questions []*models.Question) error
	GetByTest(ctx context.Context, testID uint) ([]*models.Question, error)
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	CountByTest(ctx context.Context, testID uint) (int64, error)
}

type AttemptRepository interface {
	Create(ctx context.Context, record *models.AttemptRecord) error
	GetByID(ctx context.Context, id uint) (*models.AttemptRecord, error)
	GetByTest(ctx context.Context, testID uint, filters AttemptFilters) ([]*models.AttemptRecord, int64, error)
	GetByUser(ctx context.Context, userID string, filters AttemptFilters) ([]*models.AttemptRecord, int64, error)
}

// Repository aggregates all repositories behind one handle.
type Repository interface {
	Test() TestRepository
	Question() QuestionRepository
	Attempt() AttemptRepository
}

// IsNotFoundError checks whether err represents a missing record.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
