// Package models contains shared data models used across the IdeaGauge codebase.
package models

import (
	"context"
	"errors"
)

// Sentinel errors shared by all AI provider implementations. They live here,
// next to AIProvider, so provider subpackages and their callers depend on the
// same leaf package.
var (
	ErrProviderUnavailable = errors.New("ai provider unavailable")
	ErrInferenceTimeout    = errors.New("ai inference timeout")
	ErrInvalidResponse     = errors.New("ai provider returned invalid response")
)

// AIProvider is the core interface that all AI integrations must implement.
// Never call specific AI providers directly — always inject this interface.
type AIProvider interface {
	// Generate sends a single prompt and returns the model's raw text
	// response. One request, one response, no streaming.
	Generate(ctx context.Context, prompt string) (string, error)
	// Name returns the provider identifier (e.g., "gemini", "anthropic").
	Name() string
}
