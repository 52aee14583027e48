package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ideagauge/ideagauge/internal/api/response"
	"github.com/ideagauge/ideagauge/internal/store"
	"github.com/ideagauge/ideagauge/pkg/models"
)

// ResultStore defines the persistence operations the result handlers
// depend on.
type ResultStore interface {
	Save(ctx context.Context, result models.FeasibilityResult) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (*models.FeasibilityResult, error)
}

// Renderer produces a PDF report for a stored result.
type Renderer interface {
	Render(ctx context.Context, result *models.FeasibilityResult) ([]byte, error)
}

// NewSaveResultHandler returns an http.HandlerFunc for POST /api/v1/feasibility.
func NewSaveResultHandler(svc ResultStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body models.FeasibilityResult
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if body.Idea == "" && body.ShortDescription == "" {
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR",
				"idea or shortDescription is required", nil)
			return
		}

		id, err := svc.Save(r.Context(), body)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Could not save the result", nil)
			return
		}

		response.Created(w, map[string]string{"id": id.String()})
	}
}

// NewGetResultHandler returns an http.HandlerFunc for GET /api/v1/feasibility/{id}.
func NewGetResultHandler(svc ResultStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"id must be a valid UUID", nil)
			return
		}

		result, err := svc.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "NOT_FOUND",
					"No result with that id", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		response.JSON(w, result)
	}
}

// NewResultPDFHandler returns an http.HandlerFunc for GET /api/v1/feasibility/{id}/pdf.
func NewResultPDFHandler(svc ResultStore, renderer Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"id must be a valid UUID", nil)
			return
		}

		result, err := svc.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "NOT_FOUND",
					"No result with that id", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		pdf, err := renderer.Render(r.Context(), result)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "PDF_RENDER_FAILED",
				"Could not generate the PDF report", nil)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", "feasibility-report-"+id.String()+".pdf"))
		w.WriteHeader(http.StatusOK)
		w.Write(pdf)
	}
}
