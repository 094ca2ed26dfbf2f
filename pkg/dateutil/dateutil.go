// Package dateutil provides total date helpers for the renewal domain.
// Every function degrades to a sentinel ("N/A", "", 0, false) on bad input;
// nothing here panics or returns an error.
package dateutil

import "time"

const wireLayout = "2006-01-02"

// Layouts accepted on input, most common first. The backend historically
// returned bare dates, RFC3339 timestamps and space-separated datetimes.
var parseLayouts = []string{
	wireLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Parse attempts to parse a date string in any accepted layout.
func Parse(input string) (time.Time, bool) {
	if input == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsValid reports whether the input parses as a date.
func IsValid(input string) bool {
	_, ok := Parse(input)
	return ok
}

// FormatDisplay returns a short human date ("Jan 5, 2025"), or "N/A".
func FormatDisplay(input string) string {
	t, ok := Parse(input)
	if !ok {
		return "N/A"
	}
	return t.Format("Jan 2, 2006")
}

// FormatForWire returns the date as YYYY-MM-DD, or "" when unparseable.
func FormatForWire(input string) string {
	t, ok := Parse(input)
	if !ok {
		return ""
	}
	return t.Format(wireLayout)
}

// Midnight strips the time-of-day component.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysRemaining returns the number of whole days between the reference date
// and the end date, both normalized to midnight. Positive means the end date
// is in the future, zero or negative means due or overdue. Invalid input
// yields 0.
func DaysRemaining(endDate string, ref time.Time) int {
	end, ok := Parse(endDate)
	if !ok {
		return 0
	}
	diff := Midnight(end).Sub(Midnight(ref))
	return int(diff / (24 * time.Hour))
}

// DaysRemainingFromToday is DaysRemaining against the current date.
func DaysRemainingFromToday(endDate string) int {
	return DaysRemaining(endDate, time.Now())
}
