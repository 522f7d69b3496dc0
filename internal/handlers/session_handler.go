package handlers

import (
	"log/slog"
	"net/http"

	"github.com/careerforge/assessment-engine/internal/models"
	"github.com/careerforge/assessment-engine/internal/services"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	BaseHandler
	sessionService services.SessionService
}

func NewSessionHandler(sessionService services.SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
	}
}

// ===== REQUEST STRUCTURES =====

type SelectDifficultyRequest struct {
	Difficulty models.DifficultyLevel `json:"difficulty" binding:"required"`
}

type SelectOptionRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Option     string `json:"option" binding:"required"`
}

type NavigateRequest struct {
	Index int `json:"index"`
}

// CreateSession opens a new session for one attempt at a test.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req services.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating session", "test_id", req.TestID, "user_id", req.UserID)

	state, err := h.sessionService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, state)
}

// GetSession returns the current session state.
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	state, err := h.sessionService.Get(id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// GetSessionQuestions returns the redacted question list for the session.
func (h *SessionHandler) GetSessionQuestions(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	questions, err := h.sessionService.Questions(id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questions": questions,
		"count":     len(questions),
	})
}

// SelectDifficulty records the difficulty choice and advances to loading.
func (h *SessionHandler) SelectDifficulty(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req SelectDifficultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	state, err := h.sessionService.SelectDifficulty(id, req.Difficulty)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// FinishLoading marks question preparation complete, moving the session to
// the guidelines screen.
func (h *SessionHandler) FinishLoading(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	state, err := h.sessionService.FinishLoading(id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// StartTest confirms the guidelines and starts the countdown.
func (h *SessionHandler) StartTest(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Starting test", "session_id", id)

	state, err := h.sessionService.Start(id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// SelectOption records an answer for a question.
func (h *SessionHandler) SelectOption(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req SelectOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	state, err := h.sessionService.SelectOption(id, req.QuestionID, req.Option)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// Navigate moves the question cursor. Out-of-range indexes are clamped.
func (h *SessionHandler) Navigate(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	state, err := h.sessionService.Navigate(id, req.Index)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// SubmitSession is the manual submission trigger. Repeated calls after a
// submission is pending or done return the current state unchanged.
func (h *SessionHandler) SubmitSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Submitting session", "session_id", id)

	state, err := h.sessionService.Submit(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// GetReport returns the scored result with the topic breakdown. Only
// available once the session has reached its result.
func (h *SessionHandler) GetReport(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	performanceReport, err := h.sessionService.Report(id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, performanceReport)
}

// CloseSession discards the session and cancels its countdown.
func (h *SessionHandler) CloseSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.sessionService.Close(id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Session closed",
	})
}
