package evaluate

import "strings"

// Policy holds the tunable heuristics shared by the evaluators. The
// per-element checks are approximate by nature, so the text-matching and
// sizing heuristics are swappable functions: replacing one never touches
// scoring or aggregation logic.
type Policy struct {
	// Images
	MaxAltLength int // Alt text longer than this is flagged as verbose

	// Headings
	NoH1Deduction       int
	MultipleH1Deduction int
	SkipDeduction       int // Per heading-level skip
	MaxSkipDeduction    int

	// Links
	MinLinkTextLen  int
	GenericLinkText func(text string) bool

	// Structure
	LandmarkDeduction    int // Per missing landmark region
	MissingLangDeduction int

	// Contrast (WCAG thresholds)
	NormalContrastRatio float64
	LargeContrastRatio  float64
	LargeText           func(sizePx float64, bold bool) bool

	// Keyboard
	TabindexDeduction    int // Per element removed from tab order
	KeyboardDeductionCap int
}

// DefaultPolicy returns the standard heuristics.
func DefaultPolicy() Policy {
	return Policy{
		MaxAltLength:         125,
		NoH1Deduction:        50,
		MultipleH1Deduction:  30,
		SkipDeduction:        10,
		MaxSkipDeduction:     50,
		MinLinkTextLen:       3,
		GenericLinkText:      DefaultGenericLinkText,
		LandmarkDeduction:    20,
		MissingLangDeduction: 20,
		NormalContrastRatio:  4.5,
		LargeContrastRatio:   3.0,
		LargeText:            DefaultLargeText,
		TabindexDeduction:    15,
		KeyboardDeductionCap: 60,
	}
}

// genericLinkTexts are link texts that carry no destination information.
var genericLinkTexts = map[string]bool{
	"click here": true,
	"read more":  true,
	"more":       true,
	"link":       true,
	"here":       true,
	"this":       true,
	"page":       true,
}

// DefaultGenericLinkText reports whether the link text is a known
// non-descriptive phrase. Matching is case-insensitive.
func DefaultGenericLinkText(text string) bool {
	return genericLinkTexts[strings.ToLower(strings.TrimSpace(text))]
}

// DefaultLargeText implements the WCAG large-text heuristic: 24px and up,
// or 18.66px (14pt) and up when bold.
func DefaultLargeText(sizePx float64, bold bool) bool {
	if sizePx >= 24 {
		return true
	}
	return bold && sizePx >= 18.66
}
