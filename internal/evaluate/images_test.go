package evaluate

import (
	"testing"

	"github.com/web4all/web4all/internal/htmldoc"
	"github.com/web4all/web4all/internal/model"
)

func mustParse(t *testing.T, html string) *htmldoc.Document {
	t.Helper()
	doc, err := htmldoc.ParseString(html)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestImages_NoImages_Neutral(t *testing.T) {
	doc := mustParse(t, `<body><p>text only</p></body>`)
	result := Images(doc, DefaultPolicy())

	if result.Score != 100 {
		t.Errorf("expected neutral score 100, got %d", result.Score)
	}
	if len(result.Issues) != 0 {
		t.Errorf("expected no issues, got %d", len(result.Issues))
	}
}

func TestImages_MissingAlt(t *testing.T) {
	doc := mustParse(t, `<body><img src="a.png"><img src="b.png" alt="Chart of results"></body>`)
	result := Images(doc, DefaultPolicy())

	if result.Score != 50 {
		t.Errorf("expected score 50 with 1 of 2 images missing alt, got %d", result.Score)
	}
	if len(result.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(result.Issues))
	}
	if result.Issues[0].Severity != model.SeverityCritical {
		t.Errorf("missing alt should be critical, got %s", result.Issues[0].Severity)
	}
	if result.Issues[0].Element == nil || result.Issues[0].Element.Value != "a.png" {
		t.Error("issue should reference the offending image src")
	}
}

func TestImages_EmptyAlt_HalfViolation(t *testing.T) {
	doc := mustParse(t, `<body><img src="a.png" alt=""><img src="b.png" alt="Logo"></body>`)
	result := Images(doc, DefaultPolicy())

	// 2 images, 0.5 violations: (2 - 0.5) / 2 = 75.
	if result.Score != 75 {
		t.Errorf("expected score 75, got %d", result.Score)
	}
	if len(result.Issues) != 1 || result.Issues[0].Severity != model.SeverityWarning {
		t.Errorf("empty alt should yield a single warning, got %+v", result.Issues)
	}
}

func TestImages_DecorativeSkipped(t *testing.T) {
	doc := mustParse(t, `<body>
		<img src="border.png" role="presentation">
		<img src="spacer.png" aria-hidden="true">
		<img src="photo.png" alt="Team photo">
	</body>`)
	result := Images(doc, DefaultPolicy())

	if result.Score != 100 {
		t.Errorf("decorative images should not be penalized, got score %d", result.Score)
	}
	if len(result.Issues) != 0 {
		t.Errorf("expected no issues, got %d", len(result.Issues))
	}
}

func TestImages_LongAlt_IssueWithoutDeduction(t *testing.T) {
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'x'
	}
	doc := mustParse(t, `<body><img src="a.png" alt="`+string(long)+`"></body>`)
	result := Images(doc, DefaultPolicy())

	if result.Score != 100 {
		t.Errorf("long alt should not lower the score, got %d", result.Score)
	}
	if len(result.Issues) != 1 || result.Issues[0].Severity != model.SeverityWarning {
		t.Errorf("expected one warning for verbose alt, got %+v", result.Issues)
	}
}

func TestImages_AllMissing_ZeroScore(t *testing.T) {
	doc := mustParse(t, `<body><img src="a.png"><img src="b.png"></body>`)
	result := Images(doc, DefaultPolicy())

	if result.Score != 0 {
		t.Errorf("expected score 0, got %d", result.Score)
	}
}
