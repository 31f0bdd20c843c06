package diary

import "strings"

// Category is a muscle group an exercise belongs to.
type Category string

// Canonical categories.
const (
	Biceps    Category = "Biceps"
	Triceps   Category = "Triceps"
	Legs      Category = "Legs"
	Chest     Category = "Chest"
	Back      Category = "Back"
	Shoulders Category = "Shoulders"
)

// All is the synthetic filter value. It is never stored on an exercise.
const All Category = "All"

// canonical is the enumeration in its canonical display order.
var canonical = []Category{Biceps, Triceps, Legs, Chest, Back, Shoulders}

// Categories returns the canonical categories in canonical order.
// The returned slice is a copy.
func Categories() []Category {
	out := make([]Category, len(canonical))
	copy(out, canonical)
	return out
}

// IsCanonical reports whether c is one of the stored categories.
// All is not canonical.
func IsCanonical(c Category) bool {
	for _, k := range canonical {
		if k == c {
			return true
		}
	}
	return false
}

// ParseCategory resolves user input to a canonical category.
// Matching is case-insensitive; "all" resolves to All.
func ParseCategory(s string) (Category, bool) {
	if strings.EqualFold(s, string(All)) {
		return All, true
	}
	for _, k := range canonical {
		if strings.EqualFold(s, string(k)) {
			return k, true
		}
	}
	return "", false
}
