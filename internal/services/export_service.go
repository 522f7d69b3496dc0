package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/careerforge/assessment-engine/internal/models"
	"github.com/careerforge/assessment-engine/internal/repositories"
	"github.com/xuri/excelize/v2"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

var attemptExportHeaders = []string{
	"Attempt ID", "User ID", "Score", "Total Marks", "Percentage",
	"Correct", "Questions", "End Reason", "Time Spent (minutes)", "Submitted At",
}

func (s *exportService) ExportAttemptsToCSV(ctx context.Context, testID uint) ([]byte, error) {
	attempts, err := s.getAttemptsForExport(ctx, testID)
	if err != nil {
		return nil, err
	}

	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	if err := writer.Write(attemptExportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, attempt := range attempts {
		row := make([]string, len(attemptExportHeaders))
		for i, value := range attemptToExportRow(attempt) {
			row[i] = fmt.Sprintf("%v", value)
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return []byte(buf.String()), nil
}

func (s *exportService) ExportAttemptsToExcel(ctx context.Context, testID uint) ([]byte, error) {
	attempts, err := s.getAttemptsForExport(ctx, testID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Results"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for i, header := range attemptExportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, attempt := range attempts {
		for colIndex, value := range attemptToExportRow(attempt) {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Exported attempts to Excel", "test_id", testID, "count", len(attempts))
	return buf.Bytes(), nil
}

func (s *exportService) getAttemptsForExport(ctx context.Context, testID uint) ([]*models.AttemptRecord, error) {
	if _, err := s.repo.Test().GetByID(ctx, testID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("failed to get test: %w", err)
	}

	attempts, _, err := s.repo.Attempt().GetByTest(ctx, testID, repositories.AttemptFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to get attempts: %w", err)
	}
	return attempts, nil
}

func attemptToExportRow(attempt *models.AttemptRecord) []interface{} {
	percentage := 0.0
	if attempt.TotalMarks > 0 {
		percentage = float64(attempt.Score) / float64(attempt.TotalMarks) * 100
	}

	timeSpent := ""
	if attempt.TimeSpent != nil {
		timeSpent = strconv.Itoa(*attempt.TimeSpent / 60)
	}

	return []interface{}{
		attempt.ID,
		attempt.UserID,
		attempt.Score,
		attempt.TotalMarks,
		fmt.Sprintf("%.1f", percentage),
		attempt.CorrectCount,
		attempt.TotalQuestions,
		string(attempt.EndReason),
		timeSpent,
		attempt.SubmittedAt.Format("2006-01-02 15:04:05"),
	}
}
