package invoice

import "time"

const displayDateLayout = "Jan 2, 2006"

// ValidDate reports whether s is empty or a calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	if s == "" {
		return true
	}

	_, err := time.Parse(time.DateOnly, s)

	return err == nil
}

// FormatDate renders a YYYY-MM-DD date for display, e.g. "Jan 5, 2026".
// Anything else is returned unchanged.
func FormatDate(s string) string {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return s
	}

	return t.Format(displayDateLayout)
}
