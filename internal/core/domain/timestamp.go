package domain

import (
	"strings"
	"time"
)

// TimestampLayout is the layout used for every timestamp cadence emits.
// It matches ISO-8601 with millisecond precision in UTC, e.g. 2025-10-25T00:00:00.000Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// dueDateLayouts are tried in order. Layouts without a zone are read as UTC.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDueDate parses a due date in any of the accepted layouts.
func ParseDueDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
