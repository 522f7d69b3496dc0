package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/careerforge/assessment-engine/internal/cache"
	"github.com/careerforge/assessment-engine/internal/config"
	"github.com/careerforge/assessment-engine/internal/handlers"
	"github.com/careerforge/assessment-engine/internal/models"
	"github.com/careerforge/assessment-engine/internal/repositories/postgres"
	"github.com/careerforge/assessment-engine/internal/services"
	"github.com/careerforge/assessment-engine/internal/utils"
	"github.com/careerforge/assessment-engine/internal/validator"
	"github.com/careerforge/assessment-engine/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger := utils.NewLogger(cfg.Environment)
	logger.Info("Starting assessment engine",
		"port", cfg.Port,
		"environment", cfg.Environment)

	// Database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(&models.Test{}, &models.Question{}, &models.AttemptRecord{}); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Redis
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	cacheService := cache.NewRedisCache(redisClient, logger)

	// Event publisher
	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	// Services
	repo := postgres.NewRepository(db)
	v := validator.New()

	serviceManager := services.NewServiceManager(repo, cacheService, publisher, v, logger, services.ManagerConfig{
		TestCacheTTL:       cfg.TestCacheTTL,
		SessionIdleTimeout: cfg.SessionIdleTimeout,
		SessionSweep:       cfg.SessionSweepInterval,
	})

	// Idle-session sweeper
	sweeperCtx, sweeperCancel := context.WithCancel(context.Background())
	go serviceManager.Session().RunSweeper(sweeperCtx)

	// Router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.RequestLogger(logger), gin.Recovery())

	handlerManager := handlers.NewHandlerManager(serviceManager, logger)
	handlerManager.SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("Shutting down gracefully", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	sweeperCancel()

	logger.Info("Shutdown complete")
}
