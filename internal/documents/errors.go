package documents

import "errors"

var (
	// ErrNotFound indicates the document does not exist for the user.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a rejected upload or malformed request.
	ErrInvalidInput = errors.New("invalid input")
)
