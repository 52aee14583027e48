package feasibility

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ideagauge/ideagauge/internal/store"
	"github.com/ideagauge/ideagauge/pkg/models"
)

// Service orchestrates the analysis pipeline: prompt, reasoning call,
// extraction, normalization, shaping, and optional persistence.
type Service struct {
	provider models.AIProvider
	store    store.Store
	timeout  time.Duration
}

// NewService creates a new Service. timeout bounds each reasoning call.
func NewService(provider models.AIProvider, st store.Store, timeout time.Duration) *Service {
	return &Service{
		provider: provider,
		store:    st,
		timeout:  timeout,
	}
}

// Analyze runs one feasibility analysis. With UseAI disabled it returns a
// heuristic estimate tagged TEMP without touching the provider; otherwise it
// performs a single bounded reasoning call. Extraction and upstream failures
// propagate typed, never defaulted into fabricated scores.
func (s *Service) Analyze(ctx context.Context, req models.FeasibilityRequest) (models.FeasibilityResult, error) {
	if req.Idea == "" && req.ShortDescription == "" && req.DocumentText == "" {
		return models.FeasibilityResult{},
			fmt.Errorf("%w: idea, short description, or document content is required", ErrValidation)
	}

	if !req.UseAI {
		return Heuristic(req), nil
	}

	return s.analyzeWithAI(ctx, req, BuildIdeaPrompt(req))
}

// AnalyzeDocument runs the same pipeline on extracted document text using the
// document prompt variant, which additionally asks the model to name the idea.
func (s *Service) AnalyzeDocument(ctx context.Context, documentText, budget string) (models.FeasibilityResult, error) {
	if documentText == "" {
		return models.FeasibilityResult{},
			fmt.Errorf("%w: document content is required", ErrValidation)
	}

	req := models.FeasibilityRequest{
		DocumentText: documentText,
		Budget:       budget,
		UseAI:        true,
	}
	return s.analyzeWithAI(ctx, req, BuildDocumentPrompt(documentText))
}

func (s *Service) analyzeWithAI(ctx context.Context, req models.FeasibilityRequest, prompt string) (models.FeasibilityResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.provider.Generate(callCtx, prompt)
	if err != nil {
		return models.FeasibilityResult{}, fmt.Errorf("reasoning call: %w", err)
	}

	parsed, err := ExtractJSON(raw)
	if err != nil {
		slog.Error("model response extraction failed",
			"provider", s.provider.Name(), "error", err, "raw_len", len(raw))
		return models.FeasibilityResult{}, err
	}

	return Shape(req, parsed), nil
}

// Save persists a result and returns its generated identifier. Persisted
// results are immutable: there is no update or delete.
func (s *Service) Save(ctx context.Context, result models.FeasibilityResult) (uuid.UUID, error) {
	result.ID = uuid.New()
	result.CreatedAt = time.Now().UTC()
	ensureDefaults(&result)

	if err := s.store.CreateFeasibilityResult(ctx, &result); err != nil {
		return uuid.Nil, fmt.Errorf("saving result: %w", err)
	}
	return result.ID, nil
}

// Get fetches a previously persisted result by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.FeasibilityResult, error) {
	result, err := s.store.GetFeasibilityResult(ctx, id)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ensureDefaults fills holes in a client-supplied payload before persistence
// so the stored record honors the all-fields-present contract.
func ensureDefaults(r *models.FeasibilityResult) {
	if r.Idea == "" {
		r.Idea = "Untitled idea"
	}
	if r.Verdict == "" {
		r.Verdict = models.VerdictNeedsReview
	}
	if r.Source == "" {
		r.Source = models.SourceAI
	}
	if r.Strengths == nil {
		r.Strengths = []string{}
	}
	if r.Risks == nil {
		r.Risks = []string{}
	}
	if r.FutureScope == nil {
		r.FutureScope = []string{}
	}
	if r.MarketTrends == nil {
		r.MarketTrends = []string{}
	}
	if r.TechStack.Frontend == nil {
		r.TechStack.Frontend = []string{}
	}
	if r.TechStack.Backend == nil {
		r.TechStack.Backend = []string{}
	}
	if r.TechStack.Database == nil {
		r.TechStack.Database = []string{}
	}
	if r.TechStack.Infrastructure == nil {
		r.TechStack.Infrastructure = []string{}
	}

	scores := models.Scores{
		Technical:  Clamp(r.TechnicalScore),
		Market:     Clamp(r.MarketScore),
		Research:   Clamp(r.ResearchScore),
		Innovation: Clamp(r.InnovationScore),
	}
	r.TechnicalScore = scores.Technical
	r.MarketScore = scores.Market
	r.ResearchScore = scores.Research
	r.InnovationScore = scores.Innovation
	// The aggregate is always derived, never taken from the client.
	r.FeasibilityScore = Aggregate(scores)
}
