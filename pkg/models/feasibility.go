package models

import (
	"time"

	"github.com/google/uuid"
)

// Result source tags. TEMP marks heuristic estimates produced without an
// AI call so clients can visually distinguish them.
const (
	SourceAI        = "AI"
	SourceHeuristic = "TEMP"
)

// Verdict labels the model is asked to choose from, plus the fallback used
// when the response omits a verdict.
const (
	VerdictViable      = "Viable"
	VerdictNeedsWork   = "Needs Work"
	VerdictNotViable   = "Not Viable"
	VerdictNeedsReview = "Needs Review"
)

// FeasibilityRequest holds user input for one analysis. At least one of
// Idea, ShortDescription, or DocumentText must be non-empty.
type FeasibilityRequest struct {
	Idea             string `json:"idea"`
	ShortDescription string `json:"shortDescription"`
	ProblemStatement string `json:"problemStatement"`
	Market           string `json:"market"`
	DocumentText     string `json:"documentText"`
	Budget           string `json:"budget"`
	UseAI            bool   `json:"useAI"`
}

// Context returns the best-available context string following the fixed
// priority order: short description > problem statement > market > document.
func (r FeasibilityRequest) Context() string {
	switch {
	case r.ShortDescription != "":
		return r.ShortDescription
	case r.ProblemStatement != "":
		return r.ProblemStatement
	case r.Market != "":
		return r.Market
	case r.DocumentText != "":
		return r.DocumentText
	}
	return "No context provided"
}

// TechStack is a categorized tool recommendation attached to a result.
// All four lists are always non-nil.
type TechStack struct {
	Frontend       []string `json:"frontend"`
	Backend        []string `json:"backend"`
	Database       []string `json:"database"`
	Infrastructure []string `json:"infrastructure"`
}

// EmptyTechStack returns a TechStack with four empty, non-nil lists.
func EmptyTechStack() TechStack {
	return TechStack{
		Frontend:       []string{},
		Backend:        []string{},
		Database:       []string{},
		Infrastructure: []string{},
	}
}

// MetricAnalyses holds per-metric narrative text keyed by metric name.
type MetricAnalyses struct {
	Technical  string `json:"technical"`
	Market     string `json:"market"`
	Research   string `json:"research"`
	Innovation string `json:"innovation"`
}

// Scores are the four 0-100 sub-scores of a feasibility evaluation.
type Scores struct {
	Technical  int `json:"technicalScore"`
	Market     int `json:"marketScore"`
	Research   int `json:"researchScore"`
	Innovation int `json:"innovationScore"`
}

// FeasibilityResult is the uniform response contract of the analysis
// pipeline. Every field is always present and typed regardless of how much
// of it the upstream model actually produced.
type FeasibilityResult struct {
	ID               uuid.UUID      `json:"id,omitempty"`
	Idea             string         `json:"idea"`
	ShortDescription string         `json:"shortDescription"`
	ProblemStatement string         `json:"problemStatement"`
	Budget           string         `json:"budget"`
	FeasibilityScore int            `json:"feasibilityScore"`
	TechnicalScore   int            `json:"technicalScore"`
	MarketScore      int            `json:"marketScore"`
	ResearchScore    int            `json:"researchScore"`
	InnovationScore  int            `json:"innovationScore"`
	AISummary        string         `json:"aiSummary"`
	MetricAnalyses   MetricAnalyses `json:"metricAnalyses"`
	TechStack        TechStack      `json:"techStackSuggestion"`
	Strengths        []string       `json:"strengths"`
	Risks            []string       `json:"risks"`
	FutureScope      []string       `json:"futureScope"`
	MarketTrends     []string       `json:"marketTrends"`
	DetailedAnalysis string         `json:"detailedAnalysis"`
	Verdict          string         `json:"verdict"`
	Source           string         `json:"source"`
	CreatedAt        time.Time      `json:"createdAt,omitzero"`
}
