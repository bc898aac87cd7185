package model

import "time"

// CategoryResult is the output of one rule evaluator: a raw sub-score
// and the issues detected, in detection order.
type CategoryResult struct {
	Category Category `json:"category"`
	Score    int      `json:"score"` // 0-100
	Issues   []Issue  `json:"issues,omitempty"`
}

// Report is the complete accessibility audit report for one page.
// It is the terminal artifact of an audit, consumed by the renderer,
// the recommendation provider, and the mailer.
type Report struct {
	Subject   string    `json:"subject"`    // Human-readable page subject
	SourceURL string    `json:"source_url"` // URL that was audited
	FetchedAt time.Time `json:"fetched_at"`
	FetchMeta FetchMeta `json:"fetch_meta"`

	OverallScore int              `json:"overall_score"` // 0-100, weighted and rounded
	Rating       string           `json:"rating"`
	Categories   map[Category]int `json:"categories"` // Raw score per category

	// Issues from all categories, ordered by category declaration order,
	// then detection order within each category.
	Issues []Issue `json:"issues"`

	LLM *Recommendations `json:"llm,omitempty"` // Optional, never affects the score
}

// FetchMeta contains HTTP metadata from fetching the page.
type FetchMeta struct {
	StatusCode  int               `json:"status_code"`
	ContentType string            `json:"content_type,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
}

// Recommendations contains optional AI-generated remediation advice.
// Generated after scoring from the issue list; purely advisory.
type Recommendations struct {
	Enabled  bool     `json:"enabled"`
	Provider string   `json:"provider,omitempty"` // openai, anthropic, ollama
	Model    string   `json:"model,omitempty"`
	Markdown string   `json:"markdown,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Rating converts a numeric score into a human-readable rating.
func Rating(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 80:
		return "Good"
	case score >= 70:
		return "Fair"
	case score >= 50:
		return "Poor"
	default:
		return "Very Poor"
	}
}

// IssueCount returns the number of issues at the given severity.
func (r *Report) IssueCount(sev Severity) int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			count++
		}
	}
	return count
}
