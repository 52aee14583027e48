package feasibility

import (
	"math/rand/v2"

	"github.com/ideagauge/ideagauge/pkg/models"
)

// Heuristic produces a deterministic-shape estimate without calling the AI
// provider: a bounded random technical score with fixed offsets for the other
// metrics, and static placeholder narrative. It exists so the product stays
// functional without a live AI dependency; the TEMP source tag lets clients
// distinguish estimates from real analyses.
func Heuristic(req models.FeasibilityRequest) models.FeasibilityResult {
	scores := models.Scores{
		Technical: 70 + rand.IntN(20), // [70, 89]
	}
	scores.Market = clampInt(scores.Technical - 4)
	scores.Research = clampInt(scores.Technical - 6)
	scores.Innovation = clampInt(scores.Technical - 3)

	idea := req.Idea
	if idea == "" {
		idea = "Extracted from document"
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
		AISummary:        "Temporary heuristic feasibility estimate. Enable AI for detailed analysis.",
		MetricAnalyses: models.MetricAnalyses{
			Technical:  "Heuristic technical feasibility.",
			Market:     "Heuristic market feasibility.",
			Research:   "Heuristic research feasibility.",
			Innovation: "Heuristic innovation assessment.",
		},
		TechStack: models.TechStack{
			Frontend:       []string{"React.js"},
			Backend:        []string{"Node.js", "Express.js"},
			Database:       []string{"MongoDB"},
			Infrastructure: []string{"AWS"},
		},
		Strengths:        []string{"Basic feasibility signals detected"},
		Risks:            []string{"Heuristic evaluation only"},
		FutureScope:      []string{"Enable AI analysis for full roadmap"},
		MarketTrends:     []string{},
		DetailedAnalysis: "This feasibility analysis was generated without AI.",
		Verdict:          "Temporary estimate",
		Source:           models.SourceHeuristic,
	}
}

func clampInt(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
