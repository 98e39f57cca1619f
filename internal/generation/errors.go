package generation

import "errors"

var (
	// ErrInvalidInput indicates the document's content fails the pre-call gate.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInFlight indicates a generation is already running for the document.
	ErrInFlight = errors.New("generation already in progress")
)

// GenerationError reports a failed external generation attempt, carrying the
// upstream error message for display.
type GenerationError struct {
	Message string
}

func (e *GenerationError) Error() string {
	return "generation failed: " + e.Message
}
