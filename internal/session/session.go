package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/careerforge/assessment-engine/internal/models"
)

// Submitter is the external scoring collaborator. The session guarantees it
// is invoked at most once per session regardless of how many submit triggers
// race; implementations do the authoritative correct-answer comparison.
type Submitter interface {
	Submit(ctx context.Context, req SubmitRequest) (*models.ScoredResult, error)
}

// SubmitRequest carries the snapshot of a session's answers to scoring.
// Answers are ordered by question order; questions the user never answered
// have no entry and are scored as unanswered, never as an error.
type SubmitRequest struct {
	TestID    uint                      `json:"test_id"`
	UserID    string                    `json:"user_id"`
	Answers   []models.AnswerSubmission `json:"answers"`
	EndReason models.AttemptEndReason   `json:"end_reason"`
	TimeSpent int                       `json:"time_spent"` // seconds
}

// TestInfo is the immutable definition a session runs against. Question and
// option order is stable for the session's lifetime.
type TestInfo struct {
	ID              uint
	Title           string
	Category        string
	Type            models.TestType
	Difficulty      *models.DifficultyLevel
	DurationSeconds int
	Questions       []*models.StudentQuestion
}

type submitState int

const (
	submitIdle submitState = iota
	submitPending
	submitDone
)

// Session is one user attempt at a single test, from difficulty selection
// through result. It owns the countdown timer and the answer store, and holds
// the single pending|submitted flag both submit triggers (manual action and
// timer expiry) check synchronously before any asynchronous work begins.
//
// Sessions live purely in memory and are never resumed across restarts.
type Session struct {
	ID     string
	UserID string

	test      TestInfo
	submitter Submitter
	logger    *slog.Logger
	timer     *TimerController

	mu                 sync.Mutex
	stage              Stage
	selectedDifficulty *models.DifficultyLevel
	currentIndex       int
	answers            *AnswerStore
	timeRemaining      int
	submitSt           submitState
	result             *models.ScoredResult
	lastActive         time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithTickInterval overrides the 1-second countdown granularity. Used by
// tests; production sessions tick once per second.
func WithTickInterval(d time.Duration) Option {
	return func(s *Session) {
		s.timer = newTimerController(d)
	}
}

// New creates a session in its initial stage. Standard tests carry a fixed
// difficulty, so their sessions skip the manual choice and begin loading
// immediately.
func New(id, userID string, test TestInfo, submitter Submitter, logger *slog.Logger, opts ...Option) *Session {
	s := &Session{
		ID:         id,
		UserID:     userID,
		test:       test,
		submitter:  submitter,
		logger:     logger,
		timer:      newTimerController(time.Second),
		stage:      StageDifficulty,
		answers:    newAnswerStore(test.Questions),
		lastActive: time.Now(),
	}

	if test.Type == models.TestTypeStandard {
		s.selectedDifficulty = test.Difficulty
		s.stage = StageLoading
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// State is a copy of the session's observable fields, safe to hand to the
// rendering layer.
type State struct {
	ID                   string                  `json:"id"`
	TestID               uint                    `json:"test_id"`
	TestTitle            string                  `json:"test_title"`
	Stage                Stage                   `json:"stage"`
	SelectedDifficulty   *models.DifficultyLevel `json:"selected_difficulty,omitempty"`
	CurrentQuestionIndex int                     `json:"current_question_index"`
	QuestionCount        int                     `json:"question_count"`
	Answers              map[uint]string         `json:"answers"`
	AnsweredCount        int                     `json:"answered_count"`
	TimeRemaining        int                     `json:"time_remaining"`
	Submitting           bool                    `json:"submitting"`
	Submitted            bool                    `json:"submitted"`
}

// State returns a snapshot of the session for rendering.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		ID:                   s.ID,
		TestID:               s.test.ID,
		TestTitle:            s.test.Title,
		Stage:                s.stage,
		SelectedDifficulty:   s.selectedDifficulty,
		CurrentQuestionIndex: s.currentIndex,
		QuestionCount:        len(s.test.Questions),
		Answers:              s.answers.Snapshot(),
		AnsweredCount:        s.answers.Len(),
		TimeRemaining:        s.timeRemaining,
		Submitting:           s.submitSt == submitPending,
		Submitted:            s.submitSt == submitDone,
	}
}

// Questions returns the redacted question list in presentation order.
func (s *Session) Questions() []*models.StudentQuestion {
	return s.test.Questions
}

// SelectDifficulty records the user's difficulty choice and advances to
// loading. Outside the difficulty stage this is a benign no-op: standard
// tests resolve their difficulty at creation.
func (s *Session) SelectDifficulty(level models.DifficultyLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if s.stage != StageDifficulty {
		return
	}
	s.selectedDifficulty = &level
	s.stage = StageLoading
}

// FinishLoading advances from loading to the guidelines screen.
func (s *Session) FinishLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if s.stage != StageLoading {
		return
	}
	s.stage = StageGuidelines
}

// StartTest confirms the guidelines, enters the test stage and starts the
// countdown. The question index resets to 0 and any stale answers are
// cleared. Calling it from any other stage is a no-op, which also enforces
// the one-timer-per-session rule.
func (s *Session) StartTest() {
	s.mu.Lock()
	if s.stage != StageGuidelines {
		s.mu.Unlock()
		return
	}

	s.stage = StageTest
	s.currentIndex = 0
	s.answers.Reset()
	s.timeRemaining = s.test.DurationSeconds
	s.lastActive = time.Now()
	s.mu.Unlock()

	s.timer.Start(s.onTick)

	s.logger.Info("Test started",
		"session_id", s.ID,
		"test_id", s.test.ID,
		"duration_seconds", s.test.DurationSeconds)
}

// SelectOption records the user's answer for a question. Selections outside
// the test stage, or after a submission is pending or done, have no effect:
// these reflect benign UI races, not errors. An undeclared option is a
// contract violation and is reported.
func (s *Session) SelectOption(questionID uint, option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if s.stage != StageTest || s.submitSt != submitIdle {
		return nil
	}
	return s.answers.Select(questionID, option)
}

// Answer returns the stored selection for a question, if any.
func (s *Session) Answer(questionID uint) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Get(questionID)
}

// GoToQuestion moves the cursor, clamping out-of-range indexes instead of
// failing. Navigation never validates or clears answers and never triggers
// submission.
func (s *Session) GoToQuestion(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if s.stage != StageTest {
		return
	}
	if index < 0 {
		index = 0
	}
	if max := len(s.test.Questions) - 1; index > max {
		index = max
	}
	s.currentIndex = index
}

// NextQuestion advances the cursor by one.
func (s *Session) NextQuestion() {
	s.mu.Lock()
	index := s.currentIndex + 1
	s.mu.Unlock()
	s.GoToQuestion(index)
}

// PreviousQuestion moves the cursor back by one.
func (s *Session) PreviousQuestion() {
	s.mu.Lock()
	index := s.currentIndex - 1
	s.mu.Unlock()
	s.GoToQuestion(index)
}

// Submit is the manual submission trigger.
func (s *Session) Submit(ctx context.Context) error {
	return s.trigger(ctx, models.AttemptEndReasonManual)
}

// onTick decrements the countdown once per interval while the test is live.
// When the decrement reaches zero the expiry submission fires before any
// further tick, and the loop ends.
func (s *Session) onTick() bool {
	s.mu.Lock()
	if s.stage != StageTest || s.submitSt == submitDone || s.timeRemaining <= 0 {
		s.mu.Unlock()
		return false
	}

	s.timeRemaining--
	expired := s.timeRemaining == 0
	s.mu.Unlock()

	if expired {
		if err := s.trigger(context.Background(), models.AttemptEndReasonTimeout); err != nil {
			s.logger.Error("Auto-submit on expiry failed",
				"session_id", s.ID,
				"test_id", s.test.ID,
				"error", err)
		}
		return false
	}
	return true
}

// trigger is the single submission path shared by the manual action and the
// timer expiry. The pending flag is set synchronously under the session lock
// before any asynchronous work, so across concurrent triggers exactly one
// scoring call is ever issued; every later trigger is a silent no-op.
func (s *Session) trigger(ctx context.Context, reason models.AttemptEndReason) error {
	s.mu.Lock()
	if s.stage != StageTest || s.submitSt != submitIdle {
		s.mu.Unlock()
		return nil
	}

	s.submitSt = submitPending
	answers := s.snapshotAnswersLocked()
	timeSpent := s.test.DurationSeconds - s.timeRemaining
	s.mu.Unlock()

	s.logger.Info("Submitting session",
		"session_id", s.ID,
		"test_id", s.test.ID,
		"end_reason", reason,
		"answers_count", len(answers))

	result, err := s.submitter.Submit(ctx, SubmitRequest{
		TestID:    s.test.ID,
		UserID:    s.UserID,
		Answers:   answers,
		EndReason: reason,
		TimeSpent: timeSpent,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		// Recoverable: the user's answers stay intact, the session stays in
		// the test stage and the countdown (if any time is left) keeps
		// running, so the timer may retry via expiry.
		s.submitSt = submitIdle
		s.logger.Warn("Submission failed, session remains active",
			"session_id", s.ID,
			"test_id", s.test.ID,
			"error", err)
		return fmt.Errorf("submission failed: %w", err)
	}

	s.result = result
	s.submitSt = submitDone
	s.stage = StageResult
	s.lastActive = time.Now()
	s.timer.Cancel()

	s.logger.Info("Session scored",
		"session_id", s.ID,
		"test_id", s.test.ID,
		"score", result.Score,
		"correct_count", result.CorrectCount)
	return nil
}

// snapshotAnswersLocked builds the ordered answer list for scoring. Questions
// with no selection are omitted; the scoring side treats them as skipped.
func (s *Session) snapshotAnswersLocked() []models.AnswerSubmission {
	answers := make([]models.AnswerSubmission, 0, s.answers.Len())
	for _, q := range s.test.Questions {
		if option, ok := s.answers.Get(q.ID); ok {
			answers = append(answers, models.AnswerSubmission{
				QuestionID:     q.ID,
				SelectedOption: option,
			})
		}
	}
	return answers
}

// Result returns the scored result once the session has completed.
func (s *Session) Result() (*models.ScoredResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil, ErrNoResult
	}
	return s.result, nil
}

// Submitted reports whether the session has produced its result.
func (s *Session) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitSt == submitDone
}

// LastActive returns the time of the most recent user interaction, for the
// idle sweeper.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Close cancels the countdown. Called when the session is discarded for any
// reason; an in-flight submission is allowed to finish, but its result is
// simply never read.
func (s *Session) Close() {
	s.timer.Cancel()
}
