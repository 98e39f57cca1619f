package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts LLM providers for study-aid generation.
type Client interface {
	GenerateStudyAids(ctx context.Context, input GenerateInput) (json.RawMessage, error)
}

// GenerateInput captures the inputs for a summary + quiz generation request.
type GenerateInput struct {
	Content       string
	Title         string
	QuestionCount int
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// GenerateStudyAids returns ErrNotImplemented.
func (PlaceholderClient) GenerateStudyAids(ctx context.Context, input GenerateInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}
