package services

import (
	"log/slog"
	"time"

	"github.com/careerforge/assessment-engine/internal/cache"
	"github.com/careerforge/assessment-engine/internal/events"
	"github.com/careerforge/assessment-engine/internal/report"
	"github.com/careerforge/assessment-engine/internal/repositories"
	"github.com/careerforge/assessment-engine/internal/validator"
)

// ManagerConfig carries the knobs the service layer needs beyond its
// collaborators.
type ManagerConfig struct {
	TestCacheTTL       time.Duration
	SessionIdleTimeout time.Duration
	SessionSweep       time.Duration
}

type serviceManager struct {
	testService    TestService
	scoringService ScoringService
	sessionService SessionService
	exportService  ExportService
}

// NewServiceManager wires every service with shared collaborators. The
// scoring service doubles as the session submitter so manual and timer
// submissions flow through the same authoritative path.
func NewServiceManager(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	v *validator.Validator,
	logger *slog.Logger,
	cfg ManagerConfig,
) ServiceManager {
	scoring := NewScoringService(repo, publisher, logger)

	return &serviceManager{
		testService:    NewTestService(repo, cacheService, cfg.TestCacheTTL, logger),
		scoringService: scoring,
		sessionService: NewSessionService(repo, scoring, report.NewAnalyzer(nil), logger, v, SessionServiceConfig{
			IdleTimeout:   cfg.SessionIdleTimeout,
			SweepInterval: cfg.SessionSweep,
		}),
		exportService: NewExportService(repo, logger),
	}
}

func (m *serviceManager) Test() TestService       { return m.testService }
func (m *serviceManager) Scoring() ScoringService { return m.scoringService }
func (m *serviceManager) Session() SessionService { return m.sessionService }
func (m *serviceManager) Export() ExportService   { return m.exportService }
