package feasibility

import (
	"fmt"
	"strings"

	"github.com/ideagauge/ideagauge/pkg/models"
)

// maxDocumentPromptBytes bounds how much extracted document text is embedded
// in a prompt.
const maxDocumentPromptBytes = 12000

const resultSchema = `{
  "technicalScore": number,
  "marketScore": number,
  "researchScore": number,
  "innovationScore": number,

  "aiSummary": "2-3 line executive summary",

  "metricAnalyses": {
    "technical": "analysis",
    "market": "analysis",
    "research": "analysis",
    "innovation": "analysis"
  },

  "techStackSuggestion": {
    "frontend": ["tool"],
    "backend": ["tool"],
    "database": ["tool"],
    "infrastructure": ["tool"]
  },

  "strengths": ["..."],
  "risks": ["..."],
  "futureScope": ["..."],
  "marketTrends": ["..."],
  "detailedAnalysis": "detailed feasibility explanation",
  "verdict": "Viable | Needs Work | Not Viable"
}`

// BuildIdeaPrompt assembles the analysis prompt for free-form idea input.
// Pure: no side effects, never fails, missing fields render as "Not provided".
func BuildIdeaPrompt(req models.FeasibilityRequest) string {
	var b strings.Builder

	b.WriteString("You are a senior startup feasibility analyst and technical architect.\n\n")
	b.WriteString("The SHORT DESCRIPTION is the strongest signal.\n\n")

	fmt.Fprintf(&b, "STARTUP IDEA:\n%s\n\n", orNotProvided(req.Idea))
	fmt.Fprintf(&b, "SHORT DESCRIPTION (PRIMARY CONTEXT):\n%s\n\n", orNotProvided(req.ShortDescription))

	secondary := req.ProblemStatement
	if secondary == "" {
		secondary = req.Market
	}
	if secondary == "" {
		secondary = req.DocumentText
	}
	fmt.Fprintf(&b, "PROBLEM / MARKET / DOCUMENT CONTEXT:\n%s\n\n", orNotProvided(secondary))

	budget := req.Budget
	if budget == "" {
		budget = "Not specified"
	}
	fmt.Fprintf(&b, "BUDGET:\n%s\n\n", budget)

	b.WriteString("Evaluate each metric from 0-100 and recommend a suitable tech stack.\n\n")
	b.WriteString("Respond with ONLY valid JSON:\n\n")
	b.WriteString(resultSchema)
	b.WriteString("\n")

	return b.String()
}

// BuildDocumentPrompt assembles the analysis prompt for an uploaded document.
// The model is additionally asked to extract the core idea as one sentence.
// Document text beyond maxDocumentPromptBytes is dropped.
func BuildDocumentPrompt(documentText string) string {
	if len(documentText) > maxDocumentPromptBytes {
		documentText = documentText[:maxDocumentPromptBytes]
	}

	var b strings.Builder

	b.WriteString("You are a senior startup feasibility analyst.\n")
	b.WriteString("Analyze the following startup document and return ONLY valid JSON.\n\n")
	fmt.Fprintf(&b, "DOCUMENT CONTENT:\n\"\"\"\n%s\n\"\"\"\n\n", orNotProvided(documentText))

	b.WriteString(`Please do the following:
1. Extract the main startup idea in one concise sentence as "idea".
2. Evaluate and score from 0-100: technical feasibility, market feasibility, research readiness, innovation level.
3. Provide a 2-3 line executive summary as "aiSummary".
4. Provide detailed metric analyses under "metricAnalyses".
5. Suggest a suitable tech stack under "techStackSuggestion".
6. List "strengths", "risks", "futureScope", and "marketTrends".
7. Provide a "detailedAnalysis" explanation.
8. Give a final "verdict" (Viable | Needs Work | Not Viable).

Respond with ONLY valid JSON:

`)
	b.WriteString(`{
  "idea": "concise startup idea extracted from document",
`)
	b.WriteString(strings.TrimPrefix(resultSchema, "{\n"))
	b.WriteString("\n")

	return b.String()
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}
