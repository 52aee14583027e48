// Package anthropic implements models.AIProvider using the official
// Anthropic SDK.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ideagauge/ideagauge/internal/config"
	"github.com/ideagauge/ideagauge/pkg/models"
)

const maxTokens = 4096

// Provider implements models.AIProvider using Anthropic.
type Provider struct {
	cfg    config.AnthropicConfig
	client sdk.Client
}

func NewProvider(cfg config.AnthropicConfig) *Provider {
	return &Provider{
		cfg:    cfg,
		client: sdk.NewClient(option.WithAPIKey(cfg.APIKey)),
	}
}

func (p *Provider) Name() string { return "anthropic" }

func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(p.cfg.Model),
		MaxTokens: maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", fmt.Errorf("%w: %v", models.ErrInferenceTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", models.ErrProviderUnavailable, err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response", models.ErrInvalidResponse)
	}
	return text, nil
}

var _ models.AIProvider = (*Provider)(nil)
