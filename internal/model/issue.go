package model

// Severity indicates the impact of a detected issue
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// ElementRef identifies the element an issue was detected on.
// Attr/Value carry the most identifying attribute available
// (src for images, href for links, name for form controls).
type ElementRef struct {
	Tag   string `json:"tag"`
	Attr  string `json:"attr,omitempty"`
	Value string `json:"value,omitempty"`
}

// Issue is a single detected accessibility defect tied to one category
// and optionally one element. Immutable once produced by an evaluator.
type Issue struct {
	Category Category    `json:"category"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
	Element  *ElementRef `json:"element,omitempty"`
	Fix      string      `json:"fix,omitempty"` // Suggested remediation
}
