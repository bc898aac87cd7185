package evaluate

import (
	"fmt"
	"strings"

	"github.com/web4all/web4all/internal/htmldoc"
	"github.com/web4all/web4all/internal/model"
)

// Images checks that every image carries meaningful alternative text.
// Missing alt counts as a full violation, empty (non-decorative) alt as
// half a violation; overly long alt is flagged but does not lower the
// score since the text is at least present.
func Images(doc *htmldoc.Document, pol Policy) model.CategoryResult {
	images := doc.FindAll("img")
	if len(images) == 0 {
		return neutral(model.CategoryImages)
	}

	var issues []model.Issue
	var missing, empty float64

	for _, img := range images {
		ref := imageRef(img)

		if isDecorative(img) {
			continue
		}

		if !img.HasAttr("alt") {
			missing++
			issues = append(issues, model.Issue{
				Category: model.CategoryImages,
				Severity: model.SeverityCritical,
				Message:  "Image missing alt attribute",
				Element:  ref,
				Fix:      `Add an alt attribute describing the image, or alt="" with role="presentation" if decorative.`,
			})
			continue
		}

		alt := img.Attr("alt")
		trimmed := len(strings.TrimSpace(alt))
		switch {
		case trimmed == 0:
			empty += 0.5
			issues = append(issues, model.Issue{
				Category: model.CategoryImages,
				Severity: model.SeverityWarning,
				Message:  "Image has empty alt text",
				Element:  ref,
				Fix:      `Describe the image, or mark it decorative with role="presentation".`,
			})
		case trimmed > pol.MaxAltLength:
			issues = append(issues, model.Issue{
				Category: model.CategoryImages,
				Severity: model.SeverityWarning,
				Message:  fmt.Sprintf("Alt text is %d characters; screen readers handle concise descriptions better", trimmed),
				Element:  ref,
				Fix:      fmt.Sprintf("Shorten the alt text to %d characters or fewer.", pol.MaxAltLength),
			})
		}
	}

	total := float64(len(images))
	score := ratioScore(total-missing-empty, total)

	return model.CategoryResult{
		Category: model.CategoryImages,
		Score:    score,
		Issues:   issues,
	}
}

// isDecorative reports whether the image is explicitly marked as
// presentational and therefore exempt from alt text requirements.
func isDecorative(img *htmldoc.Node) bool {
	if img.Attr("role") == "presentation" || img.Attr("role") == "none" {
		return true
	}
	return img.Attr("aria-hidden") == "true"
}

// imageRef builds the element reference for an image issue.
func imageRef(img *htmldoc.Node) *model.ElementRef {
	ref := &model.ElementRef{Tag: "img"}
	if src := img.Attr("src"); src != "" {
		ref.Attr = "src"
		ref.Value = src
	}
	return ref
}
