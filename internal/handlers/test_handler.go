package handlers

import (
	"log/slog"
	"net/http"

	"github.com/careerforge/assessment-engine/internal/models"
	"github.com/careerforge/assessment-engine/internal/repositories"
	"github.com/careerforge/assessment-engine/internal/services"
	"github.com/gin-gonic/gin"
)

type TestHandler struct {
	BaseHandler
	testService services.TestService
}

func NewTestHandler(testService services.TestService, logger *slog.Logger) *TestHandler {
	return &TestHandler{
		BaseHandler: NewBaseHandler(logger),
		testService: testService,
	}
}

// ListTests returns test definitions matching the query filters.
func (h *TestHandler) ListTests(c *gin.Context) {
	filters := h.parseTestFilters(c)

	tests, total, err := h.testService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tests": tests,
		"total": total,
	})
}

// GetTest returns a single test's metadata.
func (h *TestHandler) GetTest(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	test, err := h.testService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, test)
}

// GetTestQuestions returns the test's questions with the correct answers and
// explanations stripped.
func (h *TestHandler) GetTestQuestions(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	questions, err := h.testService.GetQuestions(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questions": questions,
		"count":     len(questions),
	})
}

func (h *TestHandler) parseTestFilters(c *gin.Context) repositories.TestFilters {
	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", 10)

	filters := repositories.TestFilters{
		Limit:  size,
		Offset: (page - 1) * size,
	}

	if category := c.Query("category"); category != "" {
		filters.Category = &category
	}
	if difficulty := c.Query("difficulty"); difficulty != "" {
		level := models.DifficultyLevel(difficulty)
		filters.Difficulty = &level
	}
	if status := c.Query("status"); status != "" {
		testStatus := models.TestStatus(status)
		filters.Status = &testStatus
	}
	if testType := c.Query("type"); testType != "" {
		tt := models.TestType(testType)
		filters.Type = &tt
	}

	return filters
}
