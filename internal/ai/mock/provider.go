package mock

import (
	"context"

	"github.com/ideagauge/ideagauge/pkg/models"
)

// cannedResponse imitates a model that wraps its JSON in prose, which is
// exactly what the extraction layer has to cope with.
const cannedResponse = "Here is the feasibility assessment:\n" + `{
  "technicalScore": 78,
  "marketScore": 72,
  "researchScore": 65,
  "innovationScore": 81,
  "aiSummary": "Mock assessment: the idea is technically approachable with a reachable early market.",
  "metricAnalyses": {
    "technical": "Standard web and mobile tooling covers the build.",
    "market": "Competitive but growing segment.",
    "research": "Limited prior validation available.",
    "innovation": "Novel angle on an existing workflow."
  },
  "techStackSuggestion": {
    "frontend": ["React"],
    "backend": ["Go"],
    "database": ["PostgreSQL"],
    "infrastructure": ["AWS"]
  },
  "strengths": ["Clear problem statement"],
  "risks": ["Crowded market"],
  "futureScope": ["International expansion"],
  "marketTrends": ["Sustainability-driven purchasing"],
  "detailedAnalysis": "Mock detailed analysis for development and testing.",
  "verdict": "Needs Work"
}`

// Provider satisfies models.AIProvider for testing and local development.
type Provider struct {
	Name_        string
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *Provider) Name() string { return m.Name_ }

func (m *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return cannedResponse, nil
}

// NewProvider returns a Provider with a sensible default response.
func NewProvider() *Provider {
	return &Provider{
		Name_: "mock",
		GenerateFunc: func(_ context.Context, _ string) (string, error) {
			return cannedResponse, nil
		},
	}
}

// NewFailingProvider returns a Provider that always returns the given error.
func NewFailingProvider(err error) *Provider {
	return &Provider{
		Name_: "mock-failing",
		GenerateFunc: func(_ context.Context, _ string) (string, error) {
			return "", err
		},
	}
}

// NewTimeoutProvider returns a Provider that blocks until context is cancelled.
func NewTimeoutProvider() *Provider {
	return &Provider{
		Name_: "mock-timeout",
		GenerateFunc: func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", models.ErrInferenceTimeout
		},
	}
}

// Compile-time check that Provider implements AIProvider.
var _ models.AIProvider = (*Provider)(nil)
