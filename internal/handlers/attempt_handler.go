package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/careerforge/assessment-engine/internal/repositories"
	"github.com/careerforge/assessment-engine/internal/services"
	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	BaseHandler
	scoringService services.ScoringService
	exportService  services.ExportService
}

func NewAttemptHandler(scoringService services.ScoringService, exportService services.ExportService, logger *slog.Logger) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler:    NewBaseHandler(logger),
		scoringService: scoringService,
		exportService:  exportService,
	}
}

// GetAttempt returns a single recorded attempt.
func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	attempt, err := h.scoringService.GetAttempt(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, attempt)
}

// GetAttemptsByTest lists recorded attempts for a test.
func (h *AttemptHandler) GetAttemptsByTest(c *gin.Context) {
	testID := h.parseIDParam(c, "test_id")
	if testID == 0 {
		return
	}

	attempts, total, err := h.scoringService.GetAttemptsByTest(c.Request.Context(), testID, h.parseAttemptFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attempts": attempts,
		"total":    total,
	})
}

// GetAttemptsByUser lists a user's recorded attempts across tests.
func (h *AttemptHandler) GetAttemptsByUser(c *gin.Context) {
	userID := ParseStringIDParam(c, "user_id")
	if userID == "" {
		return
	}

	attempts, total, err := h.scoringService.GetAttemptsByUser(c.Request.Context(), userID, h.parseAttemptFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attempts": attempts,
		"total":    total,
	})
}

// ExportAttempts streams a test's attempts as a CSV or Excel download. The
// format query parameter defaults to csv.
func (h *AttemptHandler) ExportAttempts(c *gin.Context) {
	testID := h.parseIDParam(c, "test_id")
	if testID == 0 {
		return
	}

	format := c.DefaultQuery("format", "csv")
	h.LogRequest(c, "Exporting attempts", "test_id", testID, "format", format)

	switch format {
	case "csv":
		data, err := h.exportService.ExportAttemptsToCSV(c.Request.Context(), testID)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		filename := fmt.Sprintf("attempts_test_%d.csv", testID)
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, "text/csv", data)
	case "xlsx":
		data, err := h.exportService.ExportAttemptsToExcel(c.Request.Context(), testID)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		filename := fmt.Sprintf("attempts_test_%d.xlsx", testID)
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unsupported export format",
			Details: format,
		})
	}
}

func (h *AttemptHandler) parseAttemptFilters(c *gin.Context) repositories.AttemptFilters {
	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", 10)

	filters := repositories.AttemptFilters{
		Limit:  size,
		Offset: (page - 1) * size,
	}

	if userID := c.Query("user_id"); userID != "" {
		filters.UserID = &userID
	}

	return filters
}
