package report

import (
	"strings"
	"testing"
	"time"

	"github.com/ideagauge/ideagauge/pkg/models"
	"github.com/stretchr/testify/assert"
)

func sampleResult() *models.FeasibilityResult {
	return &models.FeasibilityResult{
		Idea:             "Solar-powered bike shares",
		ShortDescription: "Dock-free solar bikes",
		FeasibilityScore: 77,
		TechnicalScore:   82,
		MarketScore:      74,
		ResearchScore:    61,
		InnovationScore:  88,
		AISummary:        "Promising with hardware risk.",
		MetricAnalyses: models.MetricAnalyses{
			Technical: "Hardware is the hard part.",
			Market:    "Urban mobility is growing.",
		},
		TechStack: models.TechStack{
			Frontend: []string{"React"},
			Backend:  []string{"Go"},
		},
		Strengths:        []string{"Clear demand"},
		Risks:            []string{"Hardware cost"},
		DetailedAnalysis: "Long form analysis.",
		Verdict:          "Viable",
		Source:           models.SourceAI,
		CreatedAt:        time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildMarkdown(t *testing.T) {
	md := BuildMarkdown(sampleResult())

	assert.Contains(t, md, "# Feasibility Report")
	assert.Contains(t, md, "## Solar-powered bike shares")
	assert.Contains(t, md, "**Verdict:** Viable")
	assert.Contains(t, md, "**Overall feasibility:** 77 / 100")
	assert.Contains(t, md, "| Technical | 82 |")
	assert.Contains(t, md, "### Technical Feasibility")
	assert.Contains(t, md, "- Clear demand")
	assert.Contains(t, md, "| Backend | Go |")
	assert.Contains(t, md, "## Detailed Analysis")
	assert.Contains(t, md, "_Generated Sat, 14 Mar 2026 12:00:00 UTC_")
}

func TestBuildMarkdownSkipsEmptySections(t *testing.T) {
	r := &models.FeasibilityResult{
		Idea:    "Bare idea",
		Verdict: "Needs Review",
	}

	md := BuildMarkdown(r)

	assert.NotContains(t, md, "## Summary")
	assert.NotContains(t, md, "### Research Feasibility")
	assert.NotContains(t, md, "## Risks")
	assert.NotContains(t, md, "## Recommended Tech Stack")
	assert.NotContains(t, md, "_Generated")
}

func TestBuildMarkdownFlagsHeuristic(t *testing.T) {
	r := sampleResult()
	r.Source = models.SourceHeuristic

	md := BuildMarkdown(r)

	assert.Contains(t, md, "> Heuristic estimate generated without AI analysis.")
	assert.True(t, strings.Contains(md, "## Scores"))
}
