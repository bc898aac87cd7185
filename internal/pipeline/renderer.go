package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/web4all/web4all/internal/model"
)

// maxSummaryIssues bounds the issue list printed to the terminal.
const maxSummaryIssues = 10

// Renderer writes audit reports as JSON, Markdown, CSV, and a terminal
// summary. Pure formatting; no scoring logic.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// RenderMarkdown writes the human-readable report.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return os.WriteFile(path, []byte(r.Markdown(report)), 0o644)
}

// Markdown builds the Markdown report body.
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Accessibility Report: %s\n\n", report.Subject)
	fmt.Fprintf(&b, "- **URL**: %s\n", report.SourceURL)
	fmt.Fprintf(&b, "- **Audited**: %s\n\n", report.FetchedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "## Overall Score: %d/100 (%s)\n\n", report.OverallScore, report.Rating)

	b.WriteString("## Category Scores\n\n")
	b.WriteString("| Category | Score |\n|---|---|\n")
	for _, cat := range model.Categories() {
		fmt.Fprintf(&b, "| %s | %d/100 |\n", titleCase(string(cat)), report.Categories[cat])
	}
	b.WriteString("\n")

	b.WriteString("## Issues\n\n")
	if len(report.Issues) == 0 {
		b.WriteString("No issues found.\n\n")
	}
	for i, issue := range report.Issues {
		fmt.Fprintf(&b, "%d. **[%s/%s]** %s", i+1, issue.Category, issue.Severity, issue.Message)
		if issue.Element != nil {
			fmt.Fprintf(&b, " (`<%s>`", issue.Element.Tag)
			if issue.Element.Attr != "" {
				fmt.Fprintf(&b, " %s=%q", issue.Element.Attr, issue.Element.Value)
			}
			b.WriteString(")")
		}
		b.WriteString("\n")
		if issue.Fix != "" {
			fmt.Fprintf(&b, "   - Fix: %s\n", issue.Fix)
		}
	}
	b.WriteString("\n")

	if report.LLM != nil && report.LLM.Markdown != "" {
		fmt.Fprintf(&b, "## Recommendations (%s)\n\n%s\n\n", report.LLM.Provider, report.LLM.Markdown)
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("Generated by web4all. Static-markup heuristics only; ")
		b.WriteString("this report approximates WCAG guidance and is not a conformance claim.\n")
	}

	return b.String()
}

// RenderCSV exports the issue list for spreadsheet use.
func (r *Renderer) RenderCSV(report *model.Report, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create CSV file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close CSV file: %w", closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"category", "severity", "message", "element", "fix"}); err != nil {
		return err
	}
	for _, issue := range report.Issues {
		element := ""
		if issue.Element != nil {
			element = issue.Element.Tag
			if issue.Element.Value != "" {
				element += " " + issue.Element.Attr + "=" + issue.Element.Value
			}
		}
		if err := w.Write([]string{string(issue.Category), string(issue.Severity), issue.Message, element, issue.Fix}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// RenderSummary prints a terminal summary of the report.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Println()
	fmt.Printf("Accessibility Report for %s\n", report.SourceURL)
	fmt.Printf("Overall Score: %d/100 (%s)\n\n", report.OverallScore, report.Rating)

	fmt.Println("Category Scores:")
	for _, cat := range model.Categories() {
		fmt.Printf("  %-10s %3d/100\n", titleCase(string(cat)), report.Categories[cat])
	}

	if len(report.Issues) == 0 {
		fmt.Println("\nNo issues found.")
		return
	}

	fmt.Printf("\nTop Issues (%d total: %d critical, %d warning, %d info):\n",
		len(report.Issues),
		report.IssueCount(model.SeverityCritical),
		report.IssueCount(model.SeverityWarning),
		report.IssueCount(model.SeverityInfo))

	for i, issue := range report.Issues {
		if i >= maxSummaryIssues {
			fmt.Printf("  ...and %d more issues\n", len(report.Issues)-maxSummaryIssues)
			break
		}
		fmt.Printf("  %d. [%s] %s\n", i+1, issue.Severity, issue.Message)
	}
}

// titleCase uppercases the first letter of an ASCII word.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
