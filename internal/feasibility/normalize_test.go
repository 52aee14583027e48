package feasibility

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/ideagauge/ideagauge/pkg/models"
	"github.com/stretchr/testify/assert"
)

// --- Clamp tests ---

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected int
	}{
		{name: "in-range float", input: 78.0, expected: 78},
		{name: "rounds half up", input: 72.5, expected: 73},
		{name: "rounds down", input: 72.4, expected: 72},
		{name: "above range clamps to 100", input: 150.0, expected: 100},
		{name: "below range clamps to 0", input: -5.0, expected: 0},
		{name: "exactly 0", input: 0.0, expected: 0},
		{name: "exactly 100", input: 100.0, expected: 100},
		{name: "int input", input: 85, expected: 85},
		{name: "int64 input", input: int64(42), expected: 42},
		{name: "numeric string", input: "66", expected: 66},
		{name: "numeric string with decimals", input: "66.6", expected: 67},
		{name: "non-numeric string defaults", input: "abc", expected: DefaultScore},
		{name: "nil defaults", input: nil, expected: DefaultScore},
		{name: "bool defaults", input: true, expected: DefaultScore},
		{name: "map defaults", input: map[string]any{}, expected: DefaultScore},
		{name: "NaN defaults", input: math.NaN(), expected: DefaultScore},
		{name: "positive infinity defaults", input: math.Inf(1), expected: DefaultScore},
		{name: "json.Number", input: json.Number("91"), expected: 91},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clamp(tt.input))
		})
	}
}

// --- Aggregate tests ---

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		scores   models.Scores
		expected int
	}{
		{
			name:     "weighted mix",
			scores:   models.Scores{Technical: 80, Market: 70, Research: 60, Innovation: 90},
			expected: 75, // 24 + 21 + 12 + 18
		},
		{
			name:     "all zeroes",
			scores:   models.Scores{},
			expected: 0,
		},
		{
			name:     "all hundred",
			scores:   models.Scores{Technical: 100, Market: 100, Research: 100, Innovation: 100},
			expected: 100,
		},
		{
			name:     "all defaults",
			scores:   models.Scores{Technical: 50, Market: 50, Research: 50, Innovation: 50},
			expected: 50,
		},
		{
			name:     "rounds the weighted sum",
			scores:   models.Scores{Technical: 71, Market: 71, Research: 71, Innovation: 72},
			expected: 71, // 21.3 + 21.3 + 14.2 + 14.4 = 71.2
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Aggregate(tt.scores))
		})
	}
}

func TestAggregateDeterministic(t *testing.T) {
	s := models.Scores{Technical: 77, Market: 63, Research: 55, Innovation: 88}
	first := Aggregate(s)
	for range 10 {
		assert.Equal(t, first, Aggregate(s))
	}
}

// --- NormalizeScores tests ---

func TestNormalizeScores(t *testing.T) {
	parsed := map[string]any{
		"technicalScore":  92.0,
		"marketScore":     "310", // clamps to 100
		"innovationScore": nil,   // defaults
		// researchScore absent entirely
	}

	scores := NormalizeScores(parsed)

	assert.Equal(t, 92, scores.Technical)
	assert.Equal(t, 100, scores.Market)
	assert.Equal(t, DefaultScore, scores.Research)
	assert.Equal(t, DefaultScore, scores.Innovation)
}
