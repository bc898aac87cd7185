// Package score combines category results into the overall report.
//
// The aggregator owns the weighted-sum arithmetic; the composer only
// assembles the report object. Neither performs any rule evaluation.
package score

import (
	"fmt"
	"math"

	"github.com/web4all/web4all/internal/model"
)

// Aggregator computes the weighted overall score from the seven category
// results. The weight table is fixed at construction; a table that does
// not cover every category or does not sum to 100 is rejected up front.
type Aggregator struct {
	weights model.Weights
}

// NewAggregator creates an aggregator with the given weight table.
func NewAggregator(weights model.Weights) (*Aggregator, error) {
	for _, cat := range model.Categories() {
		w, ok := weights[cat]
		if !ok {
			return nil, fmt.Errorf("score: missing weight for category %q", cat)
		}
		if w < 0 {
			return nil, fmt.Errorf("score: negative weight %d for category %q", w, cat)
		}
	}
	if sum := weights.Sum(); sum != 100 {
		return nil, fmt.Errorf("score: weights sum to %d, want 100", sum)
	}
	return &Aggregator{weights: weights}, nil
}

// Aggregate computes overall = round(sum(weight[c] * score[c] / 100)).
// Every category must be present exactly once; anything else is a
// programming error in the caller, not a recoverable condition.
func (a *Aggregator) Aggregate(results []model.CategoryResult) (int, error) {
	seen := make(map[model.Category]bool, len(results))
	weighted := 0

	for _, res := range results {
		if !res.Category.Valid() {
			return 0, fmt.Errorf("score: unknown category %q", res.Category)
		}
		if seen[res.Category] {
			return 0, fmt.Errorf("score: duplicate result for category %q", res.Category)
		}
		if res.Score < 0 || res.Score > 100 {
			return 0, fmt.Errorf("score: category %q score %d out of range", res.Category, res.Score)
		}
		seen[res.Category] = true
		weighted += a.weights[res.Category] * res.Score
	}

	if len(seen) != len(model.Categories()) {
		return 0, fmt.Errorf("score: got %d category results, want %d", len(seen), len(model.Categories()))
	}

	return int(math.Round(float64(weighted) / 100)), nil
}

// Compose assembles the final report: per-category raw scores and all
// issues concatenated in category declaration order, then detection
// order. Pure assembly; the scores are taken as-is.
func (a *Aggregator) Compose(results []model.CategoryResult) (*model.Report, error) {
	overall, err := a.Aggregate(results)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[model.Category]model.CategoryResult, len(results))
	categories := make(map[model.Category]int, len(results))
	for _, res := range results {
		byCategory[res.Category] = res
		categories[res.Category] = res.Score
	}

	var issues []model.Issue
	for _, cat := range model.Categories() {
		issues = append(issues, byCategory[cat].Issues...)
	}

	return &model.Report{
		OverallScore: overall,
		Rating:       model.Rating(overall),
		Categories:   categories,
		Issues:       issues,
	}, nil
}
