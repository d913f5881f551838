package ai

import (
	"context"
	"errors"
)

var ErrEmptyResponse = errors.New("ai provider returned empty response")

// Completion is the raw text of a JSON-mode completion plus its token usage.
type Completion struct {
	Text       string
	TokenUsage int
}

// Completer asks a chat model for a JSON payload.
type Completer interface {
	CompleteJSON(ctx context.Context, systemPrompt, userContent string) (Completion, error)
	Model() string
}

// Embedder returns an embedding vector for a text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
