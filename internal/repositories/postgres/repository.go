package postgres

import (
	"github.com/careerforge/assessment-engine/internal/repositories"
	"gorm.io/gorm"
)

type gormRepository struct {
	test     repositories.TestRepository
	question repositories.QuestionRepository
	attempt  repositories.AttemptRepository
}

// NewRepository builds the gorm-backed repository aggregate.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &gormRepository{
		test:     NewTestPostgreSQL(db),
		question: NewQuestionPostgreSQL(db),
		attempt:  NewAttemptPostgreSQL(db),
	}
}

func (r *gormRepository) Test() repositories.TestRepository {
	return r.test
}

func (r *gormRepository) Question() repositories.QuestionRepository {
	return r.question
}

func (r *gormRepository) Attempt() repositories.AttemptRepository {
	return r.attempt
}
