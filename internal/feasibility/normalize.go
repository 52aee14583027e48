package feasibility

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/ideagauge/ideagauge/pkg/models"
)

// DefaultScore substitutes for a missing, non-numeric, or otherwise unusable
// sub-score. 50 is the neutral midpoint of the range and is applied uniformly
// at every call site.
const DefaultScore = 50

// Fixed aggregation weights: technical 0.3, market 0.3, research 0.2,
// innovation 0.2. Applied uniformly at every call site.
const (
	weightTechnical  = 0.3
	weightMarket     = 0.3
	weightResearch   = 0.2
	weightInnovation = 0.2
)

// Clamp coerces an untrusted score value into [0, 100]. Numeric values
// (including numeric strings) are rounded and clamped; anything else becomes
// DefaultScore.
func Clamp(v any) int {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return DefaultScore
	}
	n := int(math.Round(f))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// Aggregate computes the overall feasibility score from four clamped
// sub-scores. Pure and deterministic: same inputs always yield the same
// output.
func Aggregate(s models.Scores) int {
	return int(math.Round(
		float64(s.Technical)*weightTechnical +
			float64(s.Market)*weightMarket +
			float64(s.Research)*weightResearch +
			float64(s.Innovation)*weightInnovation))
}

// NormalizeScores clamps the four named score fields of a parsed model
// response.
func NormalizeScores(parsed map[string]any) models.Scores {
	return models.Scores{
		Technical:  Clamp(parsed["technicalScore"]),
		Market:     Clamp(parsed["marketScore"]),
		Research:   Clamp(parsed["researchScore"]),
		Innovation: Clamp(parsed["innovationScore"]),
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
