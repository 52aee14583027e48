// Package report renders persisted feasibility results as downloadable PDFs.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/ideagauge/ideagauge/pkg/models"
)

// BuildMarkdown turns a feasibility result into the markdown body of the
// exported report.
func BuildMarkdown(r *models.FeasibilityResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Feasibility Report\n\n")
	fmt.Fprintf(&b, "## %s\n\n", r.Idea)
	if r.ShortDescription != "" {
		fmt.Fprintf(&b, "%s\n\n", r.ShortDescription)
	}
	fmt.Fprintf(&b, "**Verdict:** %s  \n", r.Verdict)
	fmt.Fprintf(&b, "**Overall feasibility:** %d / 100\n\n", r.FeasibilityScore)

	b.WriteString("## Scores\n\n")
	b.WriteString("| Metric | Score |\n|---|---|\n")
	fmt.Fprintf(&b, "| Technical | %d |\n", r.TechnicalScore)
	fmt.Fprintf(&b, "| Market | %d |\n", r.MarketScore)
	fmt.Fprintf(&b, "| Research | %d |\n", r.ResearchScore)
	fmt.Fprintf(&b, "| Innovation | %d |\n\n", r.InnovationScore)

	if r.AISummary != "" {
		fmt.Fprintf(&b, "## Summary\n\n%s\n\n", r.AISummary)
	}

	writeMetric(&b, "Technical", r.MetricAnalyses.Technical)
	writeMetric(&b, "Market", r.MetricAnalyses.Market)
	writeMetric(&b, "Research", r.MetricAnalyses.Research)
	writeMetric(&b, "Innovation", r.MetricAnalyses.Innovation)

	writeList(&b, "Strengths", r.Strengths)
	writeList(&b, "Risks", r.Risks)
	writeList(&b, "Future Scope", r.FutureScope)
	writeList(&b, "Market Trends", r.MarketTrends)

	writeStack(&b, r.TechStack)

	if r.DetailedAnalysis != "" {
		fmt.Fprintf(&b, "## Detailed Analysis\n\n%s\n\n", r.DetailedAnalysis)
	}

	if r.Source == models.SourceHeuristic {
		b.WriteString("> Heuristic estimate generated without AI analysis.\n\n")
	}
	if !r.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "_Generated %s_\n", r.CreatedAt.UTC().Format(time.RFC1123))
	}

	return b.String()
}

func writeMetric(b *strings.Builder, name, analysis string) {
	if analysis == "" {
		return
	}
	fmt.Fprintf(b, "### %s Feasibility\n\n%s\n\n", name, analysis)
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

func writeStack(b *strings.Builder, stack models.TechStack) {
	if len(stack.Frontend)+len(stack.Backend)+len(stack.Database)+len(stack.Infrastructure) == 0 {
		return
	}
	b.WriteString("## Recommended Tech Stack\n\n")
	b.WriteString("| Layer | Tools |\n|---|---|\n")
	fmt.Fprintf(b, "| Frontend | %s |\n", strings.Join(stack.Frontend, ", "))
	fmt.Fprintf(b, "| Backend | %s |\n", strings.Join(stack.Backend, ", "))
	fmt.Fprintf(b, "| Database | %s |\n", strings.Join(stack.Database, ", "))
	fmt.Fprintf(b, "| Infrastructure | %s |\n\n", strings.Join(stack.Infrastructure, ", "))
}
