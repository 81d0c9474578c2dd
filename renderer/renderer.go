// Package renderer turns metrics reports, transaction sets and parser
// diagnostics into markdown. It holds no computation: everything it prints
// comes from the structures handed to it.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/fundsight/fundsight"
)

//go:embed templates/*.md
var templates embed.FS

// MetricsRenderOptions holds configuration for rendering a metrics report.
type MetricsRenderOptions struct {
	SkipBreakdowns bool // Render only the summary table, not the audit trail.
}

// RenderMetrics renders the MetricsReport struct to a markdown string.
func RenderMetrics(report *fundsight.MetricsReport, opts MetricsRenderOptions) string {
	partials := map[string]string{
		"metrics_title":   "templates/metrics_title.md",
		"metrics_summary": "templates/metrics_summary.md",
	}
	if opts.SkipBreakdowns {
		partials["metrics_breakdowns"] = ""
	} else {
		partials["metrics_breakdowns"] = "templates/metrics_breakdowns.md"
	}
	return renderTemplate("metrics", "templates/metrics.md", partials, report)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

// TransactionsMarkdown renders a transaction set as a markdown table in
// chronological order.
func TransactionsMarkdown(txs []fundsight.Transaction) string {
	r := &strings.Builder{}
	fmt.Fprintf(r, "## Transactions\n\n")
	if len(txs) == 0 {
		fmt.Fprintf(r, "No transactions.\n")
		return r.String()
	}
	fmt.Fprintf(r, "| Date | Kind | Amount | Description |\n")
	fmt.Fprintf(r, "|:---|:---|---:|:---|\n")
	for _, tx := range txs {
		fmt.Fprintf(r, "| %s | %s | %s | %s |\n", tx.When(), tx.What(), tx.Value(), tx.Memo())
	}
	return r.String()
}

// DiagnosticsMarkdown renders parser diagnostics as a markdown section.
// An empty diagnostics slice renders to the empty string so callers can
// append it unconditionally.
func DiagnosticsMarkdown(diags []fundsight.Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	r := &strings.Builder{}
	fmt.Fprintf(r, "## Warnings\n\n")
	for _, d := range diags {
		fmt.Fprintf(r, "- %s\n", d)
	}
	return r.String()
}

// BreakdownMarkdown renders a single metric breakdown with its entries,
// subtotals and notes.
func BreakdownMarkdown(bd *fundsight.Breakdown) string {
	r := &strings.Builder{}
	fmt.Fprintf(r, "## %s\n\n", strings.ToUpper(bd.Metric))
	fmt.Fprintf(r, "Formula: `%s`\n\n", bd.Formula)
	if len(bd.Entries) > 0 {
		fmt.Fprintf(r, "| Date | Entry | Amount |\n")
		fmt.Fprintf(r, "|:---|:---|---:|\n")
		for _, e := range bd.Entries {
			fmt.Fprintf(r, "| %s | %s | %s |\n", e.Date, e.Label, e.Amount.SignedString())
		}
		fmt.Fprintf(r, "\n")
	}
	for _, s := range bd.Subtotals {
		fmt.Fprintf(r, "- %s: %s\n", s.Label, s.Value)
	}
	for _, n := range bd.Notes {
		fmt.Fprintf(r, "- note: %s\n", n)
	}
	return r.String()
}
