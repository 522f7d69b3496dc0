package session

import "errors"

var (
	// ErrUnknownQuestion is returned when an answer references a question
	// that is not part of the session's test.
	ErrUnknownQuestion = errors.New("question is not part of this test")

	// ErrInvalidOption is returned when a selected option is not one of the
	// question's declared options.
	ErrInvalidOption = errors.New("option is not declared for this question")

	// ErrNoResult is returned when a result is requested before the session
	// has been scored.
	ErrNoResult = errors.New("session has no result yet")
)
