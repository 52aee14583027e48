package report

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ideagauge/ideagauge/pkg/models"
)

const renderTimeout = 30 * time.Second

const reportCSS = `
body { font-family: Georgia, 'Times New Roman', serif; color: #1c1917; margin: 0 auto; max-width: 720px; padding: 1rem; }
h1 { font-size: 1.6rem; border-bottom: 2px solid #334155; padding-bottom: 0.3rem; }
h2 { font-size: 1.2rem; color: #334155; margin-top: 1.4rem; }
h3 { font-size: 1rem; }
table { width: 100%; border-collapse: collapse; font-size: 0.85rem; }
th, td { border: 1px solid #a8a29e; padding: 0.35rem 0.45rem; text-align: left; vertical-align: top; }
thead th { background: #f1f5f9; font-weight: 700; }
blockquote { border-left: 3px solid #b45309; margin: 1rem 0; padding: 0.2rem 0.8rem; color: #78350f; background: #fef3c7; }
.report-badge { display: inline-block; background: #f1f5f9; border: 1px solid #cbd5e1; border-radius: 4px; padding: 0.15rem 0.5rem; font-size: 0.8rem; margin-right: 0.4rem; }
html, body, * { -webkit-print-color-adjust: exact !important; print-color-adjust: exact !important; }
@media print { @page { size: auto; margin: 12mm; } }
`

// PDFRenderer renders feasibility reports to PDF through headless Chromium.
type PDFRenderer struct {
	chromePath string
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{chromePath: detectChromePath()}
}

// Render produces the PDF bytes for one feasibility result.
func (r *PDFRenderer) Render(ctx context.Context, result *models.FeasibilityResult) ([]byte, error) {
	htmlDoc, err := buildHTML(result)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			footer := `<div style="width:100%;text-align:center;font-size:9px;color:#666;">` +
				`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<div></div>`).
				WithFooterTemplate(footer).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.5).
				WithMarginBottom(0.75).
				WithMarginLeft(0.45).
				WithMarginRight(0.45).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return pdf, nil
}

func buildHTML(result *models.FeasibilityResult) (string, error) {
	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(BuildMarkdown(result)), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	badge := "<span class='report-badge'>" + html.EscapeString(result.Verdict) + "</span>"
	badge += "<span class='report-badge'>Source: " + html.EscapeString(result.Source) + "</span>"

	return "<!doctype html><html><head><meta charset='utf-8'><title>Feasibility Report</title>" +
		"<style>" + reportCSS + "</style></head><body>" +
		"<div>" + badge + "</div>" +
		content.String() +
		"</body></html>", nil
}

func detectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
