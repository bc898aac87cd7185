package evaluate

import (
	"fmt"

	"github.com/web4all/web4all/internal/htmldoc"
	"github.com/web4all/web4all/internal/model"
)

// Headings verifies the heading outline: exactly one h1 and no skipped
// levels. Violations apply fixed deductions, floored at zero. A page
// with no headings at all has nothing to evaluate and scores neutral.
func Headings(doc *htmldoc.Document, pol Policy) model.CategoryResult {
	headings := doc.FindAll("h1", "h2", "h3", "h4", "h5", "h6")
	if len(headings) == 0 {
		return neutral(model.CategoryHeadings)
	}

	var issues []model.Issue
	deduction := 0

	h1Count := 0
	for _, h := range headings {
		if h.Tag == "h1" {
			h1Count++
		}
	}

	switch {
	case h1Count == 0:
		deduction += pol.NoH1Deduction
		issues = append(issues, model.Issue{
			Category: model.CategoryHeadings,
			Severity: model.SeverityCritical,
			Message:  "No h1 heading found",
			Fix:      "Add exactly one <h1> describing the page topic.",
		})
	case h1Count > 1:
		deduction += pol.MultipleH1Deduction
		issues = append(issues, model.Issue{
			Category: model.CategoryHeadings,
			Severity: model.SeverityWarning,
			Message:  fmt.Sprintf("Multiple h1 headings found (%d)", h1Count),
			Fix:      "Keep a single <h1> and demote the others.",
		})
	}

	skipDeduction := 0
	prev := 0
	for _, h := range headings {
		level := int(h.Tag[1] - '0')
		if prev > 0 && level > prev+1 {
			skipDeduction += pol.SkipDeduction
			issues = append(issues, model.Issue{
				Category: model.CategoryHeadings,
				Severity: model.SeverityWarning,
				Message:  fmt.Sprintf("Heading level skip from h%d to h%d", prev, level),
				Element:  &model.ElementRef{Tag: h.Tag},
				Fix:      fmt.Sprintf("Use h%d instead, or restructure the intermediate levels.", prev+1),
			})
		}
		prev = level
	}
	if skipDeduction > pol.MaxSkipDeduction {
		skipDeduction = pol.MaxSkipDeduction
	}
	deduction += skipDeduction

	return model.CategoryResult{
		Category: model.CategoryHeadings,
		Score:    clampScore(100 - deduction),
		Issues:   issues,
	}
}
