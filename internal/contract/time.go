package contract

import (
	"fmt"
	"time"
)

// Day layouts accepted across input files and flags. The POWER API uses
// compact days; question exports carry ISO dates or full timestamps.
const (
	CompactDay = "20060102"
	ISODay     = "2006-01-02"
)

// ParseDay parses a calendar day in compact (20150101) or ISO (2015-01-01)
// form, normalized to UTC midnight.
func ParseDay(s string) (time.Time, error) {
	for _, layout := range []string{CompactDay, ISODay} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized day %q (want YYYYMMDD or YYYY-MM-DD)", s)
}

// ParseTimestamp parses a question timestamp. Falls back through the common
// export layouts before giving up; the caller decides whether a failure drops
// the row or halts the run.
func ParseTimestamp(s string) (time.Time, error) {
	layouts := []string{
		DateTimeFormat,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		ISODay,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// FormatDay renders a time as an ISO calendar day.
func FormatDay(t time.Time) string {
	return t.Format(ISODay)
}

// FormatISOWeek renders an ISO week label such as 2015-W03.
func FormatISOWeek(year, week int) string {
	return fmt.Sprintf("%04d-W%02d", year, week)
}
