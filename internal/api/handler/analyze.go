package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ideagauge/ideagauge/internal/api/response"
	"github.com/ideagauge/ideagauge/internal/feasibility"
	"github.com/ideagauge/ideagauge/pkg/models"
)

// Analyzer defines the interface the handler depends on.
type Analyzer interface {
	Analyze(ctx context.Context, req models.FeasibilityRequest) (models.FeasibilityResult, error)
}

// NewAnalyzeHandler returns an http.HandlerFunc for POST /api/v1/feasibility/analyze.
func NewAnalyzeHandler(svc Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.FeasibilityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		result, err := svc.Analyze(r.Context(), req)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}

		response.Analysis(w, result.Source, result)
	}
}

func writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, feasibility.ErrValidation):
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"Provide an idea, a short description, or a document", nil)
	case errors.Is(err, feasibility.ErrExtraction):
		response.Error(w, http.StatusBadGateway, "EXTRACTION_FAILED",
			"Analysis failed, please try again", nil)
	case errors.Is(err, models.ErrInferenceTimeout):
		response.Error(w, http.StatusGatewayTimeout, "AI_INFERENCE_TIMEOUT",
			"AI analysis took too long and was cancelled", nil)
	case errors.Is(err, models.ErrProviderUnavailable):
		response.Error(w, http.StatusBadGateway, "AI_PROVIDER_UNAVAILABLE",
			"The AI provider is not available", nil)
	default:
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"An unexpected error occurred", nil)
	}
}
