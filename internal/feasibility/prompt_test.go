package feasibility

import (
	"strings"
	"testing"

	"github.com/ideagauge/ideagauge/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildIdeaPrompt(t *testing.T) {
	req := models.FeasibilityRequest{
		Idea:             "A marketplace for recycled textiles",
		ShortDescription: "Connects mills with fashion brands",
		Market:           "Sustainable fashion",
		Budget:           "$10k",
	}

	prompt := BuildIdeaPrompt(req)

	assert.Contains(t, prompt, "A marketplace for recycled textiles")
	assert.Contains(t, prompt, "SHORT DESCRIPTION (PRIMARY CONTEXT)")
	assert.Contains(t, prompt, "Connects mills with fashion brands")
	assert.Contains(t, prompt, "Sustainable fashion")
	assert.Contains(t, prompt, "$10k")
	// The response schema is embedded so the model knows the contract.
	assert.Contains(t, prompt, "technicalScore")
	assert.Contains(t, prompt, "techStackSuggestion")
}

func TestBuildIdeaPromptDefaults(t *testing.T) {
	prompt := BuildIdeaPrompt(models.FeasibilityRequest{Idea: "X"})

	assert.Contains(t, prompt, "Not provided")
	assert.Contains(t, prompt, "Not specified")
}

func TestBuildDocumentPrompt(t *testing.T) {
	prompt := BuildDocumentPrompt("The quarterly plan describes a B2B invoicing product.")

	assert.Contains(t, prompt, "The quarterly plan describes a B2B invoicing product.")
	assert.Contains(t, prompt, "technicalScore")
}

func TestBuildDocumentPromptTruncation(t *testing.T) {
	long := strings.Repeat("a", maxDocumentPromptBytes+5000)

	prompt := BuildDocumentPrompt(long)

	assert.Contains(t, prompt, strings.Repeat("a", maxDocumentPromptBytes))
	assert.NotContains(t, prompt, strings.Repeat("a", maxDocumentPromptBytes+1))
}
