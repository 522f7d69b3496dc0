package services

import (
	"errors"

	apperrors "github.com/careerforge/assessment-engine/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrConflict         = errors.New("resource conflict")

	// Test specific errors
	ErrTestNotFound       = errors.New("test not found")
	ErrTestNotActive      = errors.New("test is not active")
	ErrTestHasNoQuestions = errors.New("test has no questions")

	// Session specific errors
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionNotScored  = errors.New("session has not been scored yet")
	ErrSubmissionFailed  = errors.New("submission failed")
	ErrInvalidOption     = errors.New("selected option is not declared for this question")
	ErrQuestionNotInTest = errors.New("question is not part of this test")
	ErrInvalidDifficulty = errors.New("invalid difficulty level")

	// Attempt specific errors
	ErrAttemptNotFound = errors.New("attempt not found")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrTestNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrAttemptNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrInvalidOption) ||
		errors.Is(err, ErrQuestionNotInTest) ||
		errors.Is(err, ErrInvalidDifficulty) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrTestNotActive) ||
		errors.Is(err, ErrSessionNotScored)
}
