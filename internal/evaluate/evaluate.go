// Package evaluate implements the accessibility rule evaluators.
//
// Each evaluator is a pure function over the parsed document: it returns a
// category sub-score (0-100) and the issues it detected, and never fails.
// A category with no applicable elements scores the neutral 100 with no
// issues. Evaluators share no state and may run in any order.
package evaluate

import (
	"fmt"
	"sync"

	"github.com/web4all/web4all/internal/htmldoc"
	"github.com/web4all/web4all/internal/model"
)

// Func is a single category evaluator.
type Func func(doc *htmldoc.Document, pol Policy) model.CategoryResult

// Registry returns the evaluator for each category.
func Registry() map[model.Category]Func {
	return map[model.Category]Func{
		model.CategoryImages:    Images,
		model.CategoryHeadings:  Headings,
		model.CategoryLinks:     Links,
		model.CategoryForms:     Forms,
		model.CategoryStructure: Structure,
		model.CategoryContrast:  Contrast,
		model.CategoryKeyboard:  Keyboard,
	}
}

// Run executes all evaluators concurrently and returns the results in
// category declaration order. The document is read-only, so no
// synchronization is needed beyond joining the goroutines; completion
// order never affects the output.
func Run(doc *htmldoc.Document, pol Policy) []model.CategoryResult {
	categories := model.Categories()
	registry := Registry()
	results := make([]model.CategoryResult, len(categories))

	var wg sync.WaitGroup
	for i, cat := range categories {
		wg.Add(1)
		go func(idx int, category model.Category) {
			defer wg.Done()
			results[idx] = safeRun(category, registry[category], doc, pol)
		}(i, cat)
	}
	wg.Wait()

	return results
}

// safeRun isolates evaluator faults: an evaluator that cannot interpret
// the document degrades to the neutral score with an informational issue
// instead of aborting the whole report.
func safeRun(cat model.Category, fn Func, doc *htmldoc.Document, pol Policy) (result model.CategoryResult) {
	defer func() {
		if r := recover(); r != nil {
			result = model.CategoryResult{
				Category: cat,
				Score:    neutralScore,
				Issues: []model.Issue{{
					Category: cat,
					Severity: model.SeverityInfo,
					Message:  fmt.Sprintf("Category not assessable for this page: %v", r),
				}},
			}
		}
	}()
	return fn(doc, pol)
}

// neutralScore is assigned when a category has nothing to evaluate.
const neutralScore = 100

// neutral returns the result for a category with no applicable elements.
func neutral(cat model.Category) model.CategoryResult {
	return model.CategoryResult{Category: cat, Score: neutralScore}
}

// clampScore bounds a computed score to [0,100].
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ratioScore converts a pass ratio to a 0-100 score.
func ratioScore(passed, total float64) int {
	if total <= 0 {
		return neutralScore
	}
	return clampScore(int(passed / total * 100))
}
