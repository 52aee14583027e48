package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/ideagauge/ideagauge/internal/api/response"
	"github.com/ideagauge/ideagauge/internal/document"
	"github.com/ideagauge/ideagauge/pkg/models"
)

// DocumentAnalyzer defines the interface the document-upload handler
// depends on.
type DocumentAnalyzer interface {
	AnalyzeDocument(ctx context.Context, documentText, budget string) (models.FeasibilityResult, error)
}

// NewAnalyzeDocumentHandler returns an http.HandlerFunc for
// POST /api/v1/feasibility/analyze-document. The request is multipart form
// data with a "document" file part and an optional "budget" field.
func NewAnalyzeDocumentHandler(svc DocumentAnalyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, document.MaxUploadBytes)
		if err := r.ParseMultipartForm(document.MaxUploadBytes); err != nil {
			response.Error(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
				"Document exceeds the 10MB upload limit", nil)
			return
		}

		file, header, err := r.FormFile("document")
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"A document file is required", nil)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"Could not read the uploaded file", nil)
			return
		}

		text, err := document.ExtractText(data, header.Header.Get("Content-Type"))
		if err != nil {
			switch {
			case errors.Is(err, document.ErrUnsupportedType):
				response.Error(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_FILE_TYPE",
					"Only PDF and plain text documents are supported", nil)
			case errors.Is(err, document.ErrTooShort):
				response.Error(w, http.StatusBadRequest, "DOCUMENT_TOO_SHORT",
					"The document does not contain enough text to analyze", nil)
			default:
				response.Error(w, http.StatusBadRequest, "EXTRACTION_FAILED",
					"Could not extract text from the document", nil)
			}
			return
		}

		result, err := svc.AnalyzeDocument(r.Context(), text, r.FormValue("budget"))
		if err != nil {
			writeAnalysisError(w, err)
			return
		}

		response.Analysis(w, result.Source, result)
	}
}
