package quizzes

import "errors"

var (
	// ErrNotFound indicates no quiz exists for the (document, user) pair.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a malformed request.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAnswerRequired indicates advance was called with an empty pending answer.
	ErrAnswerRequired = errors.New("answer required")

	// ErrNoActiveAttempt indicates no attempt has been started for the quiz.
	ErrNoActiveAttempt = errors.New("no active attempt")
)
