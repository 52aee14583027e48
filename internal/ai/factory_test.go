package ai_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideagauge/ideagauge/internal/ai"
	"github.com/ideagauge/ideagauge/internal/config"
	"github.com/ideagauge/ideagauge/pkg/models"
)

func TestNewProvider_Gemini(t *testing.T) {
	cfg := config.AIConfig{
		Provider: "gemini",
		Gemini: config.GeminiConfig{
			BaseURL: "https://generativelanguage.googleapis.com",
			APIKey:  "test-key",
			Model:   "gemini-2.5-flash",
		},
	}
	p, err := ai.NewProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())
}

func TestNewProvider_Anthropic(t *testing.T) {
	cfg := config.AIConfig{
		Provider:  "anthropic",
		Anthropic: config.AnthropicConfig{APIKey: "sk-ant-test", Model: "claude-sonnet-4-5-20250929"},
	}
	p, err := ai.NewProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", p.Name())
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := ai.NewProvider(config.AIConfig{Provider: "mock"})
	require.NoError(t, err)
	assert.Equal(t, "mock", p.Name())

	text, err := p.Generate(context.Background(), "anything")
	require.NoError(t, err)
	assert.Contains(t, text, "technicalScore")
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := ai.NewProvider(config.AIConfig{Provider: "watson"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown AI provider")
	assert.Contains(t, err.Error(), "watson")
}

func TestNewProvider_Empty(t *testing.T) {
	_, err := ai.NewProvider(config.AIConfig{Provider: ""})
	require.Error(t, err)
}

// Every factory-built provider must report failures through the shared
// sentinel errors in pkg/models, not package-local ones.
func TestProviderSentinelErrors(t *testing.T) {
	assert.NotNil(t, models.ErrProviderUnavailable)
	assert.NotNil(t, models.ErrInferenceTimeout)
	assert.NotNil(t, models.ErrInvalidResponse)
	assert.NotEqual(t, models.ErrProviderUnavailable, models.ErrInferenceTimeout)
}
