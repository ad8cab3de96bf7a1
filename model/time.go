package model

import (
	"fmt"
	"strings"
	"time"
)

// Provider tooling writes timestamps in several ISO-8601-like variants: with and without the Z
// suffix or an offset, with any number of fractional digits, and occasionally as a bare date or
// a compact date-time. ParseTime accepts the union of them.

// StandardTimeLayout is the layout used when formatting record timestamps
const StandardTimeLayout = "2006-01-02T15:04:05.999999999Z07:00"

var timeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"20060102T150405",
	"2006-01-02",
}

// ParseTime is a drop-in replacement for time.Parse, matching against every known provider time
// format. Values without an offset are interpreted as UTC.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if output, err := time.Parse(layout, value); err == nil {
			return output, nil
		}
	}
	return time.Time{}, fmt.Errorf("date could not be parsed by any expected time format: `%s`", value)
}

// FormatTime formats t with StandardTimeLayout in UTC
func FormatTime(t time.Time) string {
	return t.UTC().Format(StandardTimeLayout)
}
