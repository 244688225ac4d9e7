// Package dateutils holds the date and timestamp layouts of the pain.013 pipeline.
package dateutils

import (
	"fmt"
	"time"
)

const (
	// DateLayoutISO is the only accepted input layout for execution dates.
	DateLayoutISO = "2006-01-02"
	// DateTimeLayoutISO is the CreDtTm layout: local wall-clock time, no zone.
	DateTimeLayoutISO = "2006-01-02T15:04:05"
)

// ParseISODate parses s strictly as YYYY-MM-DD. Impossible calendar dates such as
// 2025-02-30 and partial forms such as 2025-1-5 are rejected.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayoutISO, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected format yyyy-MM-dd: %w", err)
	}
	return t, nil
}

// ToISODate formats t as YYYY-MM-DD.
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}

// ToISODateTime formats t as YYYY-MM-DDTHH:MM:SS, dropping sub-second precision
// and the zone.
func ToISODateTime(t time.Time) string {
	return t.Format(DateTimeLayoutISO)
}
