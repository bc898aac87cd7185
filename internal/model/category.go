package model

// Category is one of the fixed accessibility dimensions scored independently.
type Category string

const (
	CategoryImages    Category = "images"
	CategoryHeadings  Category = "headings"
	CategoryLinks     Category = "links"
	CategoryForms     Category = "forms"
	CategoryStructure Category = "structure"
	CategoryContrast  Category = "contrast"
	CategoryKeyboard  Category = "keyboard"
)

// Categories returns all categories in declaration order.
// Report issue ordering and category tables follow this order.
func Categories() []Category {
	return []Category{
		CategoryImages,
		CategoryHeadings,
		CategoryLinks,
		CategoryForms,
		CategoryStructure,
		CategoryContrast,
		CategoryKeyboard,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryImages, CategoryHeadings, CategoryLinks, CategoryForms,
		CategoryStructure, CategoryContrast, CategoryKeyboard:
		return true
	}
	return false
}

// Weights maps each category to its share of the overall score.
// A valid table covers every category and sums to exactly 100.
type Weights map[Category]int

// DefaultWeights returns the standard weight distribution.
func DefaultWeights() Weights {
	return Weights{
		CategoryImages:    15,
		CategoryHeadings:  15,
		CategoryLinks:     10,
		CategoryForms:     15,
		CategoryStructure: 20,
		CategoryContrast:  15,
		CategoryKeyboard:  10,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() int {
	total := 0
	for _, v := range w {
		total += v
	}
	return total
}
