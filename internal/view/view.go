// Package view derives what is displayed from the state tree.
//
// Every function is pure: inputs are never modified and results never alias
// the input's entry slices.
package view

import (
	"sort"

	"github.com/roach88/workoutdiary/internal/diary"
)

// SortedHistory returns all entries of ex, newest date first.
// Entries sharing a date keep their original relative order.
//
// Dates compare lexicographically, which equals chronological order for
// fixed-width "YYYY-MM-DD" strings.
func SortedHistory(ex diary.Exercise) []diary.Entry {
	out := make([]diary.Entry, len(ex.Entries))
	copy(out, ex.Entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// LatestEntry returns the newest entry of ex. Among entries sharing the
// newest date the earliest inserted wins.
func LatestEntry(ex diary.Exercise) (diary.Entry, bool) {
	if len(ex.Entries) == 0 {
		return diary.Entry{}, false
	}
	latest := ex.Entries[0]
	for _, en := range ex.Entries[1:] {
		if en.Date > latest.Date {
			latest = en
		}
	}
	return latest, true
}

// GroupByCategory partitions exercises by category, preserving input order
// within each group.
func GroupByCategory(exercises []diary.Exercise) map[diary.Category][]diary.Exercise {
	groups := make(map[diary.Category][]diary.Exercise)
	for _, ex := range exercises {
		groups[ex.Category] = append(groups[ex.Category], ex)
	}
	return groups
}

// CountByCategory returns the total for All, else the number of exercises
// in category c.
func CountByCategory(exercises []diary.Exercise, c diary.Category) int {
	if c == diary.All {
		return len(exercises)
	}
	n := 0
	for _, ex := range exercises {
		if ex.Category == c {
			n++
		}
	}
	return n
}

// FilterByCategory returns every exercise for All, else those in c.
func FilterByCategory(exercises []diary.Exercise, c diary.Category) []diary.Exercise {
	out := make([]diary.Exercise, 0, len(exercises))
	for _, ex := range exercises {
		if c == diary.All || ex.Category == c {
			out = append(out, ex)
		}
	}
	return out
}

// OrderedCategories returns All followed by reconciled.
func OrderedCategories(reconciled []diary.Category) []diary.Category {
	out := make([]diary.Category, 0, len(reconciled)+1)
	out = append(out, diary.All)
	for _, c := range reconciled {
		if c != diary.All {
			out = append(out, c)
		}
	}
	return out
}
