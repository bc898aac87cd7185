package evaluate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/web4all/web4all/internal/htmldoc"
	"github.com/web4all/web4all/internal/model"
)

// interactiveRoles are ARIA roles that imply keyboard operability.
var interactiveRoles = map[string]bool{
	"button":   true,
	"link":     true,
	"checkbox": true,
	"radio":    true,
	"menuitem": true,
	"tab":      true,
	"switch":   true,
	"textbox":  true,
}

// Keyboard inspects interactive elements for markup that breaks keyboard
// navigation. Whether an element shows a visible focus indicator is
// undecidable from static markup, so focus-related findings stay soft:
// informational issues without score deductions.
func Keyboard(doc *htmldoc.Document, pol Policy) model.CategoryResult {
	var interactive []*htmldoc.Node
	doc.Walk(func(n *htmldoc.Node) {
		if isInteractive(n) {
			interactive = append(interactive, n)
		}
	})
	if len(interactive) == 0 {
		return neutral(model.CategoryKeyboard)
	}

	var issues []model.Issue
	deduction := 0

	for _, n := range interactive {
		tabindex := strings.TrimSpace(n.Attr("tabindex"))

		if tabindex == "-1" {
			deduction += pol.TabindexDeduction
			issues = append(issues, model.Issue{
				Category: model.CategoryKeyboard,
				Severity: model.SeverityWarning,
				Message:  fmt.Sprintf(`Interactive <%s> is removed from the tab order (tabindex="-1")`, n.Tag),
				Element:  &model.ElementRef{Tag: n.Tag},
				Fix:      "Remove the negative tabindex so keyboard users can reach the element.",
			})
			continue
		}

		if idx, err := strconv.Atoi(tabindex); err == nil && idx > 0 {
			issues = append(issues, model.Issue{
				Category: model.CategoryKeyboard,
				Severity: model.SeverityInfo,
				Message:  fmt.Sprintf("Positive tabindex (%d) on <%s> overrides the natural focus order", idx, n.Tag),
				Element:  &model.ElementRef{Tag: n.Tag},
				Fix:      `Prefer tabindex="0" and let the document order drive focus.`,
			})
		}

		// Click handler on a non-focusable element: keyboard users cannot
		// trigger it at all.
		if n.HasAttr("onclick") && !nativelyFocusable(n) && tabindex == "" && !interactiveRoles[strings.ToLower(n.Attr("role"))] {
			deduction += pol.TabindexDeduction
			issues = append(issues, model.Issue{
				Category: model.CategoryKeyboard,
				Severity: model.SeverityWarning,
				Message:  fmt.Sprintf("<%s> has a click handler but is not keyboard focusable", n.Tag),
				Element:  &model.ElementRef{Tag: n.Tag},
				Fix:      `Use a <button>, or add tabindex="0" plus a key handler and an interactive role.`,
			})
			continue
		}

		// Custom control with nothing in its markup suggesting a focus
		// style. Visibility of the indicator is undecidable statically,
		// so this never deducts.
		if !nativelyFocusable(n) && !hasFocusAffordance(n) {
			issues = append(issues, model.Issue{
				Category: model.CategoryKeyboard,
				Severity: model.SeverityInfo,
				Message:  fmt.Sprintf("Custom interactive <%s> shows no sign of a visible focus indicator", n.Tag),
				Element:  &model.ElementRef{Tag: n.Tag},
				Fix:      "Style the element's :focus state so keyboard users can see where they are.",
			})
		}
	}

	if deduction > pol.KeyboardDeductionCap {
		deduction = pol.KeyboardDeductionCap
	}

	return model.CategoryResult{
		Category: model.CategoryKeyboard,
		Score:    clampScore(100 - deduction),
		Issues:   issues,
	}
}

// isInteractive reports whether the element participates in keyboard
// interaction: native controls, links with destinations, click handlers,
// or interactive ARIA roles.
func isInteractive(n *htmldoc.Node) bool {
	switch n.Tag {
	case "a":
		return n.HasAttr("href")
	case "button", "select", "textarea":
		return true
	case "input":
		return strings.ToLower(n.Attr("type")) != "hidden"
	}
	if n.HasAttr("onclick") {
		return true
	}
	return interactiveRoles[strings.ToLower(n.Attr("role"))]
}

// hasFocusAffordance reports whether the element's inline style or class
// naming mentions focus. That is the only static hint that a focus
// indicator was considered for a custom control.
func hasFocusAffordance(n *htmldoc.Node) bool {
	hint := strings.ToLower(n.Attr("style") + " " + n.Attr("class"))
	return strings.Contains(hint, "focus")
}

// nativelyFocusable reports whether the element is focusable without a
// tabindex attribute.
func nativelyFocusable(n *htmldoc.Node) bool {
	switch n.Tag {
	case "a":
		return n.HasAttr("href")
	case "button", "select", "textarea", "input":
		return true
	}
	return false
}
