package evaluate

import (
	"fmt"
	"strings"

	"github.com/web4all/web4all/internal/htmldoc"
	"github.com/web4all/web4all/internal/model"
)

// landmarkRoles maps each expected landmark element to its equivalent
// ARIA role, either of which satisfies the check.
var landmarkRoles = map[string]string{
	"header": "banner",
	"nav":    "navigation",
	"main":   "main",
	"footer": "contentinfo",
}

// landmarkOrder fixes the reporting order of the landmark checks.
var landmarkOrder = []string{"header", "nav", "main", "footer"}

// Structure checks for semantic landmark regions and the document
// language declaration. Each missing landmark and a missing lang
// attribute deduct a fixed amount.
func Structure(doc *htmldoc.Document, pol Policy) model.CategoryResult {
	roles := make(map[string]bool)
	doc.Walk(func(n *htmldoc.Node) {
		if role := strings.TrimSpace(n.Attr("role")); role != "" {
			roles[strings.ToLower(role)] = true
		}
	})

	var issues []model.Issue
	deduction := 0

	for _, tag := range landmarkOrder {
		if doc.Find(tag) != nil || roles[landmarkRoles[tag]] {
			continue
		}
		deduction += pol.LandmarkDeduction
		issues = append(issues, model.Issue{
			Category: model.CategoryStructure,
			Severity: model.SeverityWarning,
			Message:  fmt.Sprintf("No <%s> landmark found", tag),
			Fix:      fmt.Sprintf("Add a <%s> element (or role=%q) so assistive tech can navigate by region.", tag, landmarkRoles[tag]),
		})
	}

	root := doc.Find("html")
	if root == nil || strings.TrimSpace(root.Attr("lang")) == "" {
		deduction += pol.MissingLangDeduction
		issues = append(issues, model.Issue{
			Category: model.CategoryStructure,
			Severity: model.SeverityWarning,
			Message:  "Document language is not declared",
			Element:  &model.ElementRef{Tag: "html"},
			Fix:      `Add a lang attribute to <html>, e.g. <html lang="en">.`,
		})
	}

	return model.CategoryResult{
		Category: model.CategoryStructure,
		Score:    clampScore(100 - deduction),
		Issues:   issues,
	}
}
