package normalizer

import (
	"strings"
	"time"
)

// IsoDateLayout is the canonical calendar-date format of every normalized date.
const IsoDateLayout = "2006-01-02"

// dateLayouts are tried in order; the first successful parse wins.
// Dash and slash variants without a leading year are day-first.
var dateLayouts = []string{
	"2006-01-02T15:04:05.999999Z",
	"2006-01-02T15:04:05Z",
	"2006-1-2",
	"2006/1/2",
	"2-1-2006",
	"2/1/2006",
}

// isoFallbackLayouts cover the remaining ISO-8601 shapes.
var isoFallbackLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"20060102",
}

// ParseDate parses s against the known date layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	for _, layout := range isoFallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// ToISODate converts a loosely formatted date into YYYY-MM-DD.
// Time of day is discarded; unparseable or empty input yields nil.
func ToISODate(input *string) *string {
	if input == nil {
		return nil
	}

	t, ok := ParseDate(*input)
	if !ok {
		return nil
	}

	out := t.Format(IsoDateLayout)

	return &out
}

// dateField reads a string at p and normalizes it to a calendar date.
func dateField(src map[string]any, p path) *string {
	v, ok := lookup(src, p)
	if !ok {
		return nil
	}

	s, ok := v.(string)
	if !ok {
		return nil
	}

	return ToISODate(&s)
}
