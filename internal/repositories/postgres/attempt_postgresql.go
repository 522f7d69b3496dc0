package postgres

import (
	"context"

	"github.com/careerforge/assessment-engine/internal/models"
	"github.com/careerforge/assessment-engine/internal/repositories"
	"gorm.io/gorm"
)

type AttemptPostgreSQL struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{db: db}
}

func (a AttemptPostgreSQL) Create(ctx context.Context, record *models.AttemptRecord) error {
	return a.db.WithContext(ctx).Create(record).Error
}

func (a AttemptPostgreSQL) GetByID(ctx context.Context, id uint) (*models.AttemptRecord, error) {
	var record models.AttemptRecord
	if err := a.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (a AttemptPostgreSQL) GetByTest(ctx context.Context, testID uint, filters repositories.AttemptFilters) ([]*models.AttemptRecord, int64, error) {
	filters.TestID = &testID
	return a.list(ctx, filters)
}

func (a AttemptPostgreSQL) GetByUser(ctx context.Context, userID string, filters repositories.AttemptFilters) ([]*models.AttemptRecord, int64, error) {
	filters.UserID = &userID
	return a.list(ctx, filters)
}

func (a AttemptPostgreSQL) list(ctx context.Context, filters repositories.AttemptFilters) ([]*models.AttemptRecord, int64, error) {
	var records []*models.AttemptRecord
	var total int64

	// apply filters first
	query := a.db.WithContext(ctx).Model(&models.AttemptRecord{})
	query = a.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then pagination and sorting
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Order("submitted_at DESC").Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (a AttemptPostgreSQL) applyFilters(query *gorm.DB, filters repositories.AttemptFilters) *gorm.DB {
	if filters.TestID != nil {
		query = query.Where("test_id = ?", *filters.TestID)
	}
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	return query
}
