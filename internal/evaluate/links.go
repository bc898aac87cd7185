package evaluate

import (
	"fmt"
	"strings"

	"github.com/web4all/web4all/internal/htmldoc"
	"github.com/web4all/web4all/internal/model"
)

// Links flags anchors whose text gives no indication of the destination:
// empty text, generic phrases, very short text, and identical text
// pointing at different URLs. Each link is flagged at most once; every
// flagged instance lowers the score.
func Links(doc *htmldoc.Document, pol Policy) model.CategoryResult {
	links := doc.FindAll("a")
	if len(links) == 0 {
		return neutral(model.CategoryLinks)
	}

	// First pass: map normalized link text to the set of destinations,
	// so duplicate text with diverging hrefs can be flagged per instance.
	destinations := make(map[string]map[string]bool)
	for _, link := range links {
		text := normalizeLinkText(link)
		if text == "" {
			continue
		}
		if destinations[text] == nil {
			destinations[text] = make(map[string]bool)
		}
		if href := strings.TrimSpace(link.Attr("href")); href != "" {
			destinations[text][href] = true
		}
	}

	var issues []model.Issue
	flagged := 0

	for _, link := range links {
		text := normalizeLinkText(link)
		ref := linkRef(link)

		// An image-only link is judged by the image's alt text, which the
		// images category already covers.
		if text == "" && link.Find("img") != nil {
			continue
		}

		switch {
		case text == "":
			flagged++
			issues = append(issues, model.Issue{
				Category: model.CategoryLinks,
				Severity: model.SeverityCritical,
				Message:  "Link has no text",
				Element:  ref,
				Fix:      "Add link text describing the destination, or an aria-label.",
			})
		case pol.GenericLinkText(text):
			flagged++
			issues = append(issues, model.Issue{
				Category: model.CategoryLinks,
				Severity: model.SeverityWarning,
				Message:  fmt.Sprintf("Non-descriptive link text %q", text),
				Element:  ref,
				Fix:      "Rewrite the link text so it makes sense out of context.",
			})
		case len(text) < pol.MinLinkTextLen:
			flagged++
			issues = append(issues, model.Issue{
				Category: model.CategoryLinks,
				Severity: model.SeverityWarning,
				Message:  fmt.Sprintf("Link text %q is too short to be descriptive", text),
				Element:  ref,
				Fix:      "Use link text that describes the destination.",
			})
		case len(destinations[text]) > 1:
			flagged++
			issues = append(issues, model.Issue{
				Category: model.CategoryLinks,
				Severity: model.SeverityWarning,
				Message:  fmt.Sprintf("Link text %q is reused for different destinations", text),
				Element:  ref,
				Fix:      "Distinguish links that lead to different pages.",
			})
		}
	}

	return model.CategoryResult{
		Category: model.CategoryLinks,
		Score:    ratioScore(float64(len(links)-flagged), float64(len(links))),
		Issues:   issues,
	}
}

// normalizeLinkText returns the lowercased visible text of a link.
func normalizeLinkText(link *htmldoc.Node) string {
	return strings.ToLower(strings.TrimSpace(link.Text()))
}

// linkRef builds the element reference for a link issue.
func linkRef(link *htmldoc.Node) *model.ElementRef {
	ref := &model.ElementRef{Tag: "a"}
	if href := link.Attr("href"); href != "" {
		ref.Attr = "href"
		ref.Value = href
	}
	return ref
}
