package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("duration", "must be at least 1", 0)

	if err.Field != "duration" {
		t.Errorf("Expected field to be 'duration', got '%s'", err.Field)
	}

	if err.Message != "must be at least 1" {
		t.Errorf("Expected message to be 'must be at least 1', got '%s'", err.Message)
	}

	expected := "validation error on field 'duration': must be at least 1"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("title", "is required", nil))
	expected := "validation failed: title is required"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("duration", "must be at least 1", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("difficulty", "must be a valid difficulty level", "difficulty_level", "expert")

	if err.Rule != "difficulty_level" {
		t.Errorf("Expected rule to be 'difficulty_level', got '%s'", err.Rule)
	}

	if err.Value != "expert" {
		t.Errorf("Expected value to be 'expert', got '%v'", err.Value)
	}
}
