package diary

import (
	"fmt"
	"time"
)

// DateLayout is the only accepted date representation.
const DateLayout = "2006-01-02"

// FormatDate renders t's local calendar day in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidDate reports whether s is a real calendar date in fixed-width
// "YYYY-MM-DD" form. The round trip through time.Parse rejects values such
// as "2024-1-5" that would break lexicographic ordering.
func ValidDate(s string) bool {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return false
	}
	return t.Format(DateLayout) == s
}

// DisplayDate converts "YYYY-MM-DD" to the "DD.MM.YYYY" display form.
// Values that are not valid dates are returned unchanged.
func DisplayDate(iso string) string {
	if !ValidDate(iso) {
		return iso
	}
	return fmt.Sprintf("%s.%s.%s", iso[8:10], iso[5:7], iso[0:4])
}
