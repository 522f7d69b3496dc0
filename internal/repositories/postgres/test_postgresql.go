package postgres

import (
	"context"

	"github.com/careerforge/assessment-engine/internal/models"
	"github.com/careerforge/assessment-engine/internal/repositories"
	"gorm.io/gorm"
)

type TestPostgreSQL struct {
	db *gorm.DB
}

func NewTestPostgreSQL(db *gorm.DB) repositories.TestRepository {
	return &TestPostgreSQL{db: db}
}

func (t TestPostgreSQL) Create(ctx context.Context, test *models.Test) error {
	return t.db.WithContext(ctx).Create(test).Error
}

func (t TestPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Test, error) {
	var test models.Test
	if err := t.db.WithContext(ctx).First(&test, id).Error; err != nil {
		return nil, err
	}

	return &test, nil
}

func (t TestPostgreSQL) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Test, error) {
	var test models.Test
	if err := t.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.\"order\" ASC")
		}).
		First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (t TestPostgreSQL) List(ctx context.Context, filters repositories.TestFilters) ([]*models.Test, int64, error) {
	var tests []*models.Test
	var total int64

	query := t.db.WithContext(ctx).Model(&models.Test{})
	query = t.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Order("created_at DESC").Find(&tests).Error; err != nil {
		return nil, 0, err
	}

	return tests, total, nil
}

func (t TestPostgreSQL) Update(ctx context.Context, test *models.Test) error {
	return t.db.WithContext(ctx).Save(test).Error
}

func (t TestPostgreSQL) Delete(ctx context.Context, id uint) error {
	return t.db.WithContext(ctx).Delete(&models.Test{}, id).Error
}

func (t TestPostgreSQL) applyFilters(query *gorm.DB, filters repositories.TestFilters) *gorm.DB {
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.Difficulty != nil {
		query = query.Where("difficulty = ?", *filters.Difficulty)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	return query
}
