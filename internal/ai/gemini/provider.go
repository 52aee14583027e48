// Package gemini implements models.AIProvider against the Google
// Generative Language REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/ideagauge/ideagauge/internal/config"
	"github.com/ideagauge/ideagauge/pkg/models"
)

// Provider implements models.AIProvider using Gemini.
type Provider struct {
	cfg    config.GeminiConfig
	client *http.Client
}

func NewProvider(cfg config.GeminiConfig) *Provider {
	return &Provider{
		// No client timeout here: the caller bounds each call through
		// its context.
		cfg:    cfg,
		client: &http.Client{},
	}
}

func (p *Provider) Name() string { return "gemini" }

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends prompt to the model's generateContent endpoint and returns
// the concatenated text of the first candidate.
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		p.cfg.BaseURL, url.PathEscape(p.cfg.Model))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.cfg.APIKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", classifyError(err)
	}
	defer resp.Body.Close()

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("%w: decoding gemini response: %v", models.ErrInvalidResponse, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if genResp.Error != nil {
			msg = genResp.Error.Message
		}
		return "", fmt.Errorf("%w: status %d: %s", models.ErrProviderUnavailable, resp.StatusCode, msg)
	}

	if len(genResp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates returned", models.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, pt := range genResp.Candidates[0].Content.Parts {
		sb.WriteString(pt.Text)
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty candidate text", models.ErrInvalidResponse)
	}
	return text, nil
}

// classifyError maps transport-level errors to sentinel errors.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", models.ErrInferenceTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%w: %v", models.ErrInferenceTimeout, err)
		}
	}

	return fmt.Errorf("%w: %v", models.ErrProviderUnavailable, err)
}

var _ models.AIProvider = (*Provider)(nil)
