package llm

import (
	"context"
	"errors"
)

// Client abstracts text-generation providers.
type Client interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
// Callers receive a typed error, never fabricated content.
type PlaceholderClient struct{}

func (PlaceholderClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotImplemented
}

// Func adapts a function to the Client interface, mainly for tests.
type Func func(ctx context.Context, prompt string) (string, error)

func (f Func) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
