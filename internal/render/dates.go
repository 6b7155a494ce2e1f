package render

import (
	"strings"
	"time"
)

// date layouts accepted from upstream data, tried in order
var acceptedDateLayouts = []string{
	"Jan 2006",
	"January 2006",
	"2006-01",
	"2006-01-02",
	"01/2006",
}

// FormatDate normalizes a free-text or ISO-partial date to "Mon YYYY".
// "present" in any casing becomes "Present". Values that match no known
// layout (bare years, ranges like "2020-2022") pass through trimmed, and
// already-normalized values are returned unchanged.
func FormatDate(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if strings.EqualFold(trimmed, "present") {
		return "Present"
	}
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("Jan 2006")
		}
	}
	return trimmed
}

// FormatDateRange renders a start/end pair as "Jan 2020 - Present".
// A missing end date leaves just the start; a missing start leaves just
// the end.
func FormatDateRange(start, end string) string {
	s := FormatDate(start)
	e := FormatDate(end)
	switch {
	case s == "" && e == "":
		return ""
	case s == "":
		return e
	case e == "":
		return s
	default:
		return s + " - " + e
	}
}
