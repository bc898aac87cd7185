package evaluate

import (
	"fmt"

	"github.com/web4all/web4all/internal/htmldoc"
	"github.com/web4all/web4all/internal/model"
)

// Contrast checks inline-declared foreground/background color pairs
// against the WCAG contrast thresholds. Without a rendering engine only
// elements that declare both colors explicitly can be assessed; all
// others are skipped and do not enter the score denominator.
func Contrast(doc *htmldoc.Document, pol Policy) model.CategoryResult {
	var issues []model.Issue
	assessed, passing := 0, 0

	doc.Walk(func(n *htmldoc.Node) {
		style := n.Attr("style")
		if style == "" {
			return
		}
		decls := parseStyle(style)

		fgValue, hasFg := decls["color"]
		bgValue, hasBg := decls["background-color"]
		if bgValue == "" {
			bgValue, hasBg = decls["background"], decls["background"] != ""
		}
		if !hasFg || !hasBg {
			return
		}

		fg, fgOK := parseColor(fgValue)
		bg, bgOK := parseColor(bgValue)
		if !fgOK || !bgOK {
			// Gradients, CSS variables and the like cannot be assessed
			// statically. Record the skip without affecting the score.
			issues = append(issues, model.Issue{
				Category: model.CategoryContrast,
				Severity: model.SeverityInfo,
				Message:  fmt.Sprintf("Could not assess contrast for <%s>: unsupported color value", n.Tag),
				Element:  &model.ElementRef{Tag: n.Tag},
			})
			return
		}

		assessed++
		ratio := contrastRatio(fg, bg)

		threshold := pol.NormalContrastRatio
		large := pol.LargeText(parseFontSizePx(decls["font-size"]), isBoldWeight(decls["font-weight"]))
		if large {
			threshold = pol.LargeContrastRatio
		}

		if ratio >= threshold {
			passing++
			return
		}

		kind := "normal"
		if large {
			kind = "large"
		}
		issues = append(issues, model.Issue{
			Category: model.CategoryContrast,
			Severity: model.SeverityWarning,
			Message:  fmt.Sprintf("Contrast ratio %.2f:1 is below %.1f:1 for %s text", ratio, threshold, kind),
			Element:  &model.ElementRef{Tag: n.Tag},
			Fix:      "Darken the text or lighten the background to meet the WCAG ratio.",
		})
	})

	if assessed == 0 {
		result := neutral(model.CategoryContrast)
		result.Issues = issues
		return result
	}

	return model.CategoryResult{
		Category: model.CategoryContrast,
		Score:    ratioScore(float64(passing), float64(assessed)),
		Issues:   issues,
	}
}
