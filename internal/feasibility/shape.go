package feasibility

import (
	"github.com/ideagauge/ideagauge/pkg/models"
)

// Shape merges normalized scores with defaulted narrative fields into the
// uniform result contract. Every field of the returned result is present and
// correctly typed no matter how little of the parsed response was usable,
// which is what keeps downstream rendering free of defensive code.
func Shape(req models.FeasibilityRequest, parsed map[string]any) models.FeasibilityResult {
	scores := NormalizeScores(parsed)

	idea := getString(parsed, "idea")
	if idea == "" {
		idea = req.Idea
	}
	if idea == "" {
		idea = "Extracted from document"
	}

	verdict := getString(parsed, "verdict")
	if verdict == "" {
		verdict = models.VerdictNeedsReview
	}

	summary := getString(parsed, "aiSummary")
	if summary == "" {
		summary = "AI analysis completed."
	}

	return models.FeasibilityResult{
		Idea:             idea,
		ShortDescription: req.ShortDescription,
		ProblemStatement: req.Context(),
		Budget:           req.Budget,
		FeasibilityScore: Aggregate(scores),
		TechnicalScore:   scores.Technical,
		MarketScore:      scores.Market,
		ResearchScore:    scores.Research,
		InnovationScore:  scores.Innovation,
		AISummary:        summary,
		MetricAnalyses: models.MetricAnalyses{
			Technical:  getNestedString(parsed, "metricAnalyses", "technical"),
			Market:     getNestedString(parsed, "metricAnalyses", "market"),
			Research:   getNestedString(parsed, "metricAnalyses", "research"),
			Innovation: getNestedString(parsed, "metricAnalyses", "innovation"),
		},
		TechStack: models.TechStack{
			Frontend:       getNestedStringList(parsed, "techStackSuggestion", "frontend"),
			Backend:        getNestedStringList(parsed, "techStackSuggestion", "backend"),
			Database:       getNestedStringList(parsed, "techStackSuggestion", "database"),
			Infrastructure: getNestedStringList(parsed, "techStackSuggestion", "infrastructure"),
		},
		Strengths:        getStringList(parsed, "strengths"),
		Risks:            getStringList(parsed, "risks"),
		FutureScope:      getStringList(parsed, "futureScope"),
		MarketTrends:     getStringList(parsed, "marketTrends"),
		DetailedAnalysis: getString(parsed, "detailedAnalysis"),
		Verdict:          verdict,
		Source:           models.SourceAI,
	}
}

// The parsed response is untrusted input: every field access tolerates a
// missing key or a wrong type and falls back to the zero default.

func getString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func getNestedString(m map[string]any, outer, inner string) string {
	nested, _ := m[outer].(map[string]any)
	if nested == nil {
		return ""
	}
	return getString(nested, inner)
}

func getStringList(m map[string]any, key string) []string {
	items, _ := m[key].([]any)
	out := []string{}
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func getNestedStringList(m map[string]any, outer, inner string) []string {
	nested, _ := m[outer].(map[string]any)
	if nested == nil {
		return []string{}
	}
	return getStringList(nested, inner)
}
