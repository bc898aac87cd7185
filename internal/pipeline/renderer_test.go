package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/web4all/web4all/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		Subject:      "example page",
		SourceURL:    "https://example.com/example-page",
		FetchedAt:    time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		OverallScore: 78,
		Rating:       "Fair",
		Categories: map[model.Category]int{
			model.CategoryImages:    50,
			model.CategoryHeadings:  100,
			model.CategoryLinks:     100,
			model.CategoryForms:     100,
			model.CategoryStructure: 60,
			model.CategoryContrast:  100,
			model.CategoryKeyboard:  85,
		},
		Issues: []model.Issue{
			{
				Category: model.CategoryImages,
				Severity: model.SeverityCritical,
				Message:  "Image missing alt attribute",
				Element:  &model.ElementRef{Tag: "img", Attr: "src", Value: "hero.png"},
				Fix:      "Add an alt attribute.",
			},
			{
				Category: model.CategoryStructure,
				Severity: model.SeverityWarning,
				Message:  "No <main> landmark found",
			},
		},
	}
}

func TestRenderer_Markdown_Content(t *testing.T) {
	r := NewRenderer(true)
	md := r.Markdown(sampleReport())

	for _, want := range []string{
		"# Accessibility Report: example page",
		"https://example.com/example-page",
		"## Overall Score: 78/100 (Fair)",
		"| Images | 50/100 |",
		"| Structure | 60/100 |",
		"Image missing alt attribute",
		"Fix: Add an alt attribute.",
		"hero.png",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	if !strings.Contains(md, "not a conformance claim") {
		t.Error("expected footer when enabled")
	}
}

func TestRenderer_Markdown_NoFooter(t *testing.T) {
	r := NewRenderer(false)
	md := r.Markdown(sampleReport())

	if strings.Contains(md, "not a conformance claim") {
		t.Error("footer should be omitted when disabled")
	}
}

func TestRenderer_Markdown_CategoryTableOrder(t *testing.T) {
	md := NewRenderer(false).Markdown(sampleReport())

	prev := -1
	for _, cat := range model.Categories() {
		label := "| " + strings.ToUpper(string(cat[0])) + string(cat[1:]) + " |"
		idx := strings.Index(md, label)
		if idx < 0 {
			t.Fatalf("category row %q not found", label)
		}
		if idx < prev {
			t.Errorf("category %q out of order", cat)
		}
		prev = idx
	}
}

func TestRenderer_Markdown_Recommendations(t *testing.T) {
	report := sampleReport()
	report.LLM = &model.Recommendations{
		Enabled:  true,
		Provider: "openai",
		Model:    "gpt-4o-mini",
		Markdown: "1. Add alt text to the hero image.",
	}

	md := NewRenderer(false).Markdown(report)
	if !strings.Contains(md, "Recommendations (openai)") {
		t.Error("expected recommendations section")
	}
	if !strings.Contains(md, "Add alt text to the hero image.") {
		t.Error("expected recommendation body")
	}
}

func TestRenderer_RenderJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := NewRenderer(true).RenderJSON(sampleReport(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	var got model.Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.OverallScore != 78 || got.Rating != "Fair" {
		t.Errorf("round trip lost fields: score=%d rating=%q", got.OverallScore, got.Rating)
	}
	if len(got.Issues) != 2 {
		t.Errorf("expected 2 issues, got %d", len(got.Issues))
	}
}

func TestRenderer_RenderCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.csv")
	if err := NewRenderer(true).RenderCSV(sampleReport(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read CSV: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "category" || rows[0][4] != "fix" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "images" || rows[1][1] != "critical" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
	if rows[2][0] != "structure" {
		t.Errorf("unexpected second row: %v", rows[2])
	}
}
