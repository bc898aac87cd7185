package score

import (
	"testing"

	"github.com/web4all/web4all/internal/model"
)

func allResults(score int) []model.CategoryResult {
	categories := model.Categories()
	results := make([]model.CategoryResult, len(categories))
	for i, cat := range categories {
		results[i] = model.CategoryResult{Category: cat, Score: score}
	}
	return results
}

func TestNewAggregator_RejectsBadWeights(t *testing.T) {
	missing := model.DefaultWeights()
	delete(missing, model.CategoryKeyboard)
	if _, err := NewAggregator(missing); err == nil {
		t.Error("expected error for missing category")
	}

	negative := model.DefaultWeights()
	negative[model.CategoryImages] = -5
	negative[model.CategoryHeadings] = 35
	if _, err := NewAggregator(negative); err == nil {
		t.Error("expected error for negative weight")
	}

	badSum := model.DefaultWeights()
	badSum[model.CategoryImages] = 16
	if _, err := NewAggregator(badSum); err == nil {
		t.Error("expected error for weights summing to 101")
	}
}

func TestAggregator_Aggregate_Extremes(t *testing.T) {
	agg, err := NewAggregator(model.DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, err := agg.Aggregate(allResults(100)); err != nil || got != 100 {
		t.Errorf("all 100 should aggregate to 100, got %d, %v", got, err)
	}
	if got, err := agg.Aggregate(allResults(0)); err != nil || got != 0 {
		t.Errorf("all 0 should aggregate to 0, got %d, %v", got, err)
	}
	if got, err := agg.Aggregate(allResults(70)); err != nil || got != 70 {
		t.Errorf("uniform 70 should aggregate to 70, got %d, %v", got, err)
	}
}

func TestAggregator_Aggregate_WeightedSum(t *testing.T) {
	agg, err := NewAggregator(model.DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// images 50 (weight 15), everything else 100:
	// (15*50 + 85*100) / 100 = 92.5, rounds to 93.
	results := allResults(100)
	results[0].Score = 50

	got, err := agg.Aggregate(results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 93 {
		t.Errorf("expected 93, got %d", got)
	}
}

func TestAggregator_Aggregate_RoundsHalfUp(t *testing.T) {
	agg, err := NewAggregator(model.DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// links 95 (weight 10): (10*95 + 90*100) / 100 = 99.5, rounds to 100.
	results := allResults(100)
	results[2].Score = 95

	got, err := agg.Aggregate(results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 100 {
		t.Errorf("expected 100, got %d", got)
	}
}

func TestAggregator_Aggregate_RejectsInvalidInput(t *testing.T) {
	agg, err := NewAggregator(model.DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	short := allResults(100)[:6]
	if _, err := agg.Aggregate(short); err == nil {
		t.Error("expected error for missing category result")
	}

	dup := allResults(100)
	dup[1].Category = model.CategoryImages
	if _, err := agg.Aggregate(dup); err == nil {
		t.Error("expected error for duplicate category")
	}

	unknown := allResults(100)
	unknown[0].Category = model.Category("colour")
	if _, err := agg.Aggregate(unknown); err == nil {
		t.Error("expected error for unknown category")
	}

	outOfRange := allResults(100)
	outOfRange[0].Score = 101
	if _, err := agg.Aggregate(outOfRange); err == nil {
		t.Error("expected error for score above 100")
	}

	negative := allResults(100)
	negative[0].Score = -1
	if _, err := agg.Aggregate(negative); err == nil {
		t.Error("expected error for negative score")
	}
}

func TestAggregator_Compose_IssueOrdering(t *testing.T) {
	agg, err := NewAggregator(model.DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Feed results in reverse order; the composed issue list must still
	// follow category declaration order.
	results := allResults(100)
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	for i := range results {
		results[i].Issues = []model.Issue{
			{Category: results[i].Category, Severity: model.SeverityInfo, Message: "first"},
			{Category: results[i].Category, Severity: model.SeverityInfo, Message: "second"},
		}
	}

	report, err := agg.Compose(results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	categories := model.Categories()
	if len(report.Issues) != 2*len(categories) {
		t.Fatalf("expected %d issues, got %d", 2*len(categories), len(report.Issues))
	}
	for i, cat := range categories {
		if report.Issues[2*i].Category != cat || report.Issues[2*i+1].Category != cat {
			t.Errorf("issues for position %d are not from category %q", i, cat)
		}
		if report.Issues[2*i].Message != "first" || report.Issues[2*i+1].Message != "second" {
			t.Errorf("detection order lost within category %q", cat)
		}
	}
}

func TestAggregator_Compose_ReportFields(t *testing.T) {
	agg, err := NewAggregator(model.DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := agg.Compose(allResults(85))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.OverallScore != 85 {
		t.Errorf("expected overall 85, got %d", report.OverallScore)
	}
	if report.Rating != "Good" {
		t.Errorf("expected rating Good, got %q", report.Rating)
	}
	if len(report.Categories) != len(model.Categories()) {
		t.Errorf("expected %d category scores, got %d", len(model.Categories()), len(report.Categories))
	}
	for cat, score := range report.Categories {
		if score != 85 {
			t.Errorf("category %q: expected 85, got %d", cat, score)
		}
	}
}

func TestAggregator_CustomWeights(t *testing.T) {
	weights := model.Weights{
		model.CategoryImages:    100,
		model.CategoryHeadings:  0,
		model.CategoryLinks:     0,
		model.CategoryForms:     0,
		model.CategoryStructure: 0,
		model.CategoryContrast:  0,
		model.CategoryKeyboard:  0,
	}
	agg, err := NewAggregator(weights)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results := allResults(0)
	results[0].Score = 42 // images carries all the weight

	got, err := agg.Aggregate(results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}
