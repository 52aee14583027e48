package ai

import (
	"fmt"

	"github.com/ideagauge/ideagauge/internal/ai/anthropic"
	"github.com/ideagauge/ideagauge/internal/ai/gemini"
	"github.com/ideagauge/ideagauge/internal/ai/mock"
	"github.com/ideagauge/ideagauge/internal/config"
	"github.com/ideagauge/ideagauge/pkg/models"
)

// NewProvider constructs the appropriate AI provider based on config.
// Called once at server startup.
func NewProvider(cfg config.AIConfig) (models.AIProvider, error) {
	switch cfg.Provider {
	case "gemini":
		return gemini.NewProvider(cfg.Gemini), nil
	case "anthropic":
		return anthropic.NewProvider(cfg.Anthropic), nil
	case "mock":
		return mock.NewProvider(), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q: must be one of gemini, anthropic, mock", cfg.Provider)
	}
}
