// Package document turns uploaded files into plain text for analysis.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxUploadBytes caps how much of an upload is read into memory. Documents
// here are report-length text, not bulk data.
const MaxUploadBytes = 10 << 20

// MinTextLength is the shortest extracted text considered reliable enough
// to analyze.
const MinTextLength = 100

var (
	ErrUnsupportedType = errors.New("unsupported document type")
	ErrTooShort        = errors.New("document content is too short for feasibility analysis")
)

// ExtractText pulls plain text out of an uploaded file. Only PDF and plain
// text are supported; anything else is ErrUnsupportedType. Extracted text
// shorter than MinTextLength is ErrTooShort.
func ExtractText(data []byte, contentType string) (string, error) {
	var (
		text string
		err  error
	)

	switch normalizeContentType(contentType) {
	case "application/pdf":
		text, err = extractPDF(data)
		if err != nil {
			return "", err
		}
	case "text/plain":
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %q (only PDF and TXT are supported)", ErrUnsupportedType, contentType)
	}

	text = strings.TrimSpace(text)
	if len(text) < MinTextLength {
		return "", ErrTooShort
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("reading pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}
	return sb.String(), nil
}

// normalizeContentType strips parameters like "; charset=utf-8".
func normalizeContentType(ct string) string {
	if idx := strings.Index(ct, ";"); idx != -1 {
		ct = ct[:idx]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
