package core

import (
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

// parseDateFlexible accepts the date shapes found in endoflife.json and
// waiver files. Unparseable input yields the zero time.
func parseDateFlexible(value string) time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}
	}
	layouts := []string{
		isoDateLayout,
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

func isoDate(t time.Time) string {
	return t.UTC().Format(isoDateLayout)
}

// dateAfter reports whether value is a date strictly after today.
// Comparison happens on ISO date strings so time of day never matters.
func dateAfter(value string, today time.Time) (bool, bool) {
	parsed := parseDateFlexible(value)
	if parsed.IsZero() {
		return false, false
	}
	return isoDate(parsed) > isoDate(today), true
}
