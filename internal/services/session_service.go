package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/careerforge/assessment-engine/internal/models"
	"github.com/careerforge/assessment-engine/internal/report"
	"github.com/careerforge/assessment-engine/internal/repositories"
	"github.com/careerforge/assessment-engine/internal/session"
	"github.com/careerforge/assessment-engine/internal/validator"
	"github.com/google/uuid"
)

// SessionServiceConfig tunes the in-memory session registry.
type SessionServiceConfig struct {
	// IdleTimeout is how long an untouched session lives before the sweeper
	// drops it. Zero disables sweeping.
	IdleTimeout time.Duration
	// SweepInterval is the sweeper cadence.
	SweepInterval time.Duration
	// TickInterval overrides the countdown granularity; tests use this,
	// production leaves it at the default one second.
	TickInterval time.Duration
}

type sessionService struct {
	repo      repositories.Repository
	submitter session.Submitter
	analyzer  *report.Analyzer
	logger    *slog.Logger
	validator *validator.Validator
	cfg       SessionServiceConfig

	mu       sync.RWMutex
	sessions map[string]*session.Session
}

func NewSessionService(
	repo repositories.Repository,
	submitter session.Submitter,
	analyzer *report.Analyzer,
	logger *slog.Logger,
	v *validator.Validator,
	cfg SessionServiceConfig,
) SessionService {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 5 * time.Minute
	}

	return &sessionService{
		repo:      repo,
		submitter: submitter,
		analyzer:  analyzer,
		logger:    logger,
		validator: v,
		cfg:       cfg,
		sessions:  make(map[string]*session.Session),
	}
}

// Create opens a session for one attempt at a test. Sessions exist only in
// this process's memory; a reload or restart discards them and a retake means
// a brand new session.
func (s *sessionService) Create(ctx context.Context, req *CreateSessionRequest) (*session.State, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	test, err := s.repo.Test().GetByIDWithQuestions(ctx, req.TestID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("failed to get test: %w", err)
	}
	if test.Status != models.TestStatusActive {
		return nil, ErrTestNotActive
	}
	if len(test.Questions) == 0 {
		return nil, ErrTestHasNoQuestions
	}

	questions := make([]*models.StudentQuestion, len(test.Questions))
	for i := range test.Questions {
		view, err := test.Questions[i].ForStudent()
		if err != nil {
			return nil, fmt.Errorf("failed to decode options for question %d: %w", test.Questions[i].ID, err)
		}
		questions[i] = view
	}

	info := session.TestInfo{
		ID:              test.ID,
		Title:           test.Title,
		Category:        test.Category,
		Type:            test.Type,
		Difficulty:      test.Difficulty,
		DurationSeconds: test.Duration * 60,
		Questions:       questions,
	}

	var opts []session.Option
	if s.cfg.TickInterval > 0 {
		opts = append(opts, session.WithTickInterval(s.cfg.TickInterval))
	}

	id := uuid.New().String()
	sess := session.New(id, req.UserID, info, s.submitter, s.logger, opts...)

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.logger.Info("Session created",
		"session_id", id,
		"test_id", test.ID,
		"user_id", req.UserID,
		"test_type", test.Type)

	state := sess.State()
	return &state, nil
}

func (s *sessionService) get(id string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *sessionService) Get(id string) (*session.State, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	state := sess.State()
	return &state, nil
}

func (s *sessionService) Questions(id string) ([]*models.StudentQuestion, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return sess.Questions(), nil
}

func (s *sessionService) SelectDifficulty(id string, level models.DifficultyLevel) (*session.State, error) {
	switch level {
	case models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced:
	default:
		return nil, ErrInvalidDifficulty
	}

	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	sess.SelectDifficulty(level)
	state := sess.State()
	return &state, nil
}

func (s *sessionService) FinishLoading(id string) (*session.State, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	sess.FinishLoading()
	state := sess.State()
	return &state, nil
}

func (s *sessionService) Start(id string) (*session.State, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	sess.StartTest()
	state := sess.State()
	return &state, nil
}

func (s *sessionService) SelectOption(id string, questionID uint, option string) (*session.State, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if err := sess.SelectOption(questionID, option); err != nil {
		switch {
		case errors.Is(err, session.ErrUnknownQuestion):
			return nil, ErrQuestionNotInTest
		case errors.Is(err, session.ErrInvalidOption):
			return nil, ErrInvalidOption
		default:
			return nil, fmt.Errorf("failed to select option: %w", err)
		}
	}

	state := sess.State()
	return &state, nil
}

func (s *sessionService) Navigate(id string, index int) (*session.State, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	sess.GoToQuestion(index)
	state := sess.State()
	return &state, nil
}

func (s *sessionService) Submit(ctx context.Context, id string) (*session.State, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if err := sess.Submit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	state := sess.State()
	return &state, nil
}

func (s *sessionService) Report(id string) (*PerformanceReport, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}

	result, err := sess.Result()
	if err != nil {
		if errors.Is(err, session.ErrNoResult) {
			return nil, ErrSessionNotScored
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	return &PerformanceReport{
		Score:          result.Score,
		TotalMarks:     result.TotalMarks,
		CorrectCount:   result.CorrectCount,
		TotalQuestions: result.TotalQuestions,
		Results:        result.Results,
		TopicReport:    s.analyzer.Analyze(result.Results),
	}, nil
}

func (s *sessionService) Close(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	sess.Close()
	s.logger.Info("Session closed", "session_id", id)
	return nil
}

// RunSweeper periodically drops sessions idle past the configured timeout so
// abandoned timers cannot linger. Runs until ctx is cancelled.
func (s *sessionService) RunSweeper(ctx context.Context) {
	if s.cfg.IdleTimeout <= 0 {
		return
	}

	s.logger.Info("Session sweeper started",
		"idle_timeout", s.cfg.IdleTimeout,
		"sweep_interval", s.cfg.SweepInterval)

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Session sweeper stopped")
			return
		case <-ticker.C:
			if dropped := s.sweepIdle(time.Now().Add(-s.cfg.IdleTimeout)); dropped > 0 {
				s.logger.Info("Dropped idle sessions", "count", dropped)
			}
		}
	}
}

func (s *sessionService) sweepIdle(cutoff time.Time) int {
	s.mu.Lock()
	var expired []*session.Session
	for id, sess := range s.sessions {
		if sess.LastActive().Before(cutoff) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Close()
	}
	return len(expired)
}
