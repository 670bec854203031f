package ai

import (
	"context"
	"errors"
)

var (
	// ErrMissingAPIKey indicates the generator was configured without a credential.
	ErrMissingAPIKey = errors.New("ai api key is required")
	// ErrEmptyCompletion indicates the endpoint answered without any content.
	ErrEmptyCompletion = errors.New("no completion returned")
)

// TextGenerator turns a prompt into generated text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to TextGenerator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
