package handlers

import (
	"log/slog"
	"net/http"

	"github.com/careerforge/assessment-engine/internal/services"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	testHandler    *TestHandler
	sessionHandler *SessionHandler
	attemptHandler *AttemptHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger *slog.Logger) *HandlerManager {
	return &HandlerManager{
		testHandler:    NewTestHandler(serviceManager.Test(), logger),
		sessionHandler: NewSessionHandler(serviceManager.Session(), logger),
		attemptHandler: NewAttemptHandler(serviceManager.Scoring(), serviceManager.Export(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Test routes
		tests := v1.Group("/tests")
		{
			tests.GET("", hm.testHandler.ListTests)
			tests.GET("/:id", hm.testHandler.GetTest)
			tests.GET("/:id/questions", hm.testHandler.GetTestQuestions)
		}

		// Session routes
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.sessionHandler.CreateSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.GET("/:id/questions", hm.sessionHandler.GetSessionQuestions)
			sessions.POST("/:id/difficulty", hm.sessionHandler.SelectDifficulty)
			sessions.POST("/:id/ready", hm.sessionHandler.FinishLoading)
			sessions.POST("/:id/start", hm.sessionHandler.StartTest)
			sessions.POST("/:id/answer", hm.sessionHandler.SelectOption)
			sessions.POST("/:id/navigate", hm.sessionHandler.Navigate)
			sessions.POST("/:id/submit", hm.sessionHandler.SubmitSession)
			sessions.GET("/:id/report", hm.sessionHandler.GetReport)
			sessions.DELETE("/:id", hm.sessionHandler.CloseSession)
		}

		// Attempt routes
		attempts := v1.Group("/attempts")
		{
			attempts.GET("/:id", hm.attemptHandler.GetAttempt)
			attempts.GET("/test/:test_id", hm.attemptHandler.GetAttemptsByTest)
			attempts.GET("/test/:test_id/export", hm.attemptHandler.ExportAttempts)
			attempts.GET("/user/:user_id", hm.attemptHandler.GetAttemptsByUser)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "assessment-engine",
		})
	})
}
