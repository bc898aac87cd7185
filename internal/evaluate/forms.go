package evaluate

import (
	"strings"

	"github.com/web4all/web4all/internal/htmldoc"
	"github.com/web4all/web4all/internal/model"
)

// inputTypesWithoutLabel are input types that present their own text or
// are invisible, so they need no associated label.
var inputTypesWithoutLabel = map[string]bool{
	"hidden": true,
	"submit": true,
	"button": true,
	"image":  true,
	"reset":  true,
}

// Forms verifies that every form control has an accessible name: a
// <label for> pairing, a wrapping <label>, or an ARIA label. Unlabeled
// controls are critical issues.
func Forms(doc *htmldoc.Document, pol Policy) model.CategoryResult {
	controls := doc.FindAll("input", "select", "textarea")

	// Index label targets once so each control lookup is a map hit.
	labeledIDs := make(map[string]bool)
	for _, label := range doc.FindAll("label") {
		if target := strings.TrimSpace(label.Attr("for")); target != "" {
			labeledIDs[target] = true
		}
	}

	var issues []model.Issue
	total, labeled := 0, 0

	for _, control := range controls {
		if control.Tag == "input" && inputTypesWithoutLabel[strings.ToLower(control.Attr("type"))] {
			continue
		}
		total++

		if hasAccessibleName(control, labeledIDs) {
			labeled++
			continue
		}

		issues = append(issues, model.Issue{
			Category: model.CategoryForms,
			Severity: model.SeverityCritical,
			Message:  "Form control has no associated label",
			Element:  controlRef(control),
			Fix:      `Add a <label for="..."> matching the control's id, or an aria-label.`,
		})
	}

	if total == 0 {
		return neutral(model.CategoryForms)
	}

	return model.CategoryResult{
		Category: model.CategoryForms,
		Score:    ratioScore(float64(labeled), float64(total)),
		Issues:   issues,
	}
}

// hasAccessibleName reports whether the control has any recognized
// labeling mechanism.
func hasAccessibleName(control *htmldoc.Node, labeledIDs map[string]bool) bool {
	if id := strings.TrimSpace(control.Attr("id")); id != "" && labeledIDs[id] {
		return true
	}
	if control.HasAncestor("label") {
		return true
	}
	if strings.TrimSpace(control.Attr("aria-label")) != "" {
		return true
	}
	if strings.TrimSpace(control.Attr("aria-labelledby")) != "" {
		return true
	}
	return strings.TrimSpace(control.Attr("title")) != ""
}

// controlRef builds the element reference for a form control issue.
func controlRef(control *htmldoc.Node) *model.ElementRef {
	ref := &model.ElementRef{Tag: control.Tag}
	if name := control.Attr("name"); name != "" {
		ref.Attr = "name"
		ref.Value = name
	} else if id := control.Attr("id"); id != "" {
		ref.Attr = "id"
		ref.Value = id
	}
	return ref
}
