package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/careerforge/assessment-engine/internal/models"
	"github.com/careerforge/assessment-engine/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func exportAttempts() []*models.AttemptRecord {
	timeSpent := 300
	return []*models.AttemptRecord{
		{
			ID: 1, TestID: 7, UserID: "user-1",
			Score: 4, TotalMarks: 5, CorrectCount: 2, TotalQuestions: 3,
			EndReason: models.AttemptEndReasonManual, TimeSpent: &timeSpent,
			SubmittedAt: time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			ID: 2, TestID: 7, UserID: "user-2",
			Score: 0, TotalMarks: 5, CorrectCount: 0, TotalQuestions: 3,
			EndReason:   models.AttemptEndReasonTimeout,
			SubmittedAt: time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC),
		},
	}
}

func TestExportService_CSV(t *testing.T) {
	ctx := context.Background()
	repo := NewMockRepository()
	service := NewExportService(repo, testLogger())

	repo.test.On("GetByID", ctx, uint(7)).Return(sessionTest(), nil)
	repo.attempt.On("GetByTest", ctx, uint(7), repositories.AttemptFilters{}).Return(exportAttempts(), int64(2), nil)

	data, err := service.ExportAttemptsToCSV(ctx, 7)
	assert.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 3) // header + 2 rows

	assert.Equal(t, attemptExportHeaders, records[0])
	assert.Equal(t, "user-1", records[1][1])
	assert.Equal(t, "80.0", records[1][4]) // 4/5
	assert.Equal(t, "manual", records[1][7])
	assert.Equal(t, "5", records[1][8]) // 300s -> 5 minutes
	assert.Equal(t, "timeout", records[2][7])
	assert.Equal(t, "", records[2][8]) // no recorded time spent
}

func TestExportService_Excel(t *testing.T) {
	ctx := context.Background()
	repo := NewMockRepository()
	service := NewExportService(repo, testLogger())

	repo.test.On("GetByID", ctx, uint(7)).Return(sessionTest(), nil)
	repo.attempt.On("GetByTest", ctx, uint(7), repositories.AttemptFilters{}).Return(exportAttempts(), int64(2), nil)

	data, err := service.ExportAttemptsToExcel(ctx, 7)
	assert.NoError(t, err)
	assert.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Results")
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, "Attempt ID", rows[0][0])
	assert.Equal(t, "user-1", rows[1][1])
}

func TestExportService_UnknownTest(t *testing.T) {
	ctx := context.Background()
	repo := NewMockRepository()
	service := NewExportService(repo, testLogger())

	repo.test.On("GetByID", ctx, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.ExportAttemptsToCSV(ctx, 99)
	assert.ErrorIs(t, err, ErrTestNotFound)
}
