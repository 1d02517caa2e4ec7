package kitplan

import (
	"slices"
	"time"
)

// DateLayout is the layout of every date string handled by the planner
const DateLayout = "2006-01-02"

// transferLookbackDays is how far before a performance we look for an allowed transfer day
const transferLookbackDays = 7

// DefaultTransferDays are the weekdays on which kits are moved when none are configured
func DefaultTransferDays() []time.Weekday {
	return []time.Weekday{time.Monday, time.Thursday}
}

// FindNearestTransferDay returns the latest date strictly before target whose weekday is allowed.
//
// The search walks backwards from the day before target to seven days before it.
// If allowed is empty, or none of those days match, the day before target is returned.
// The result is never target itself or a later date.
func FindNearestTransferDay(target time.Time, allowed []time.Weekday) time.Time {
	dayBefore := target.AddDate(0, 0, -1)
	if len(allowed) == 0 {
		return dayBefore
	}

	for daysBack := 1; daysBack <= transferLookbackDays; daysBack++ {
		candidate := target.AddDate(0, 0, -daysBack)
		if slices.Contains(allowed, candidate.Weekday()) {
			return candidate
		}
	}

	return dayBefore
}

// NearestTransferDate is FindNearestTransferDay for "2006-01-02" date strings
func NearestTransferDate(date string, allowed []time.Weekday) (string, error) {
	target, err := parseDate(date)
	if err != nil {
		return "", err
	}
	return FindNearestTransferDay(target, allowed).Format(DateLayout), nil
}

// parseDate parses a "2006-01-02" date as midnight UTC
func parseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, time.UTC)
}

// formatDateShort formats a date as month/day without padding, e.g. "11/6"
func formatDateShort(t time.Time) string {
	return t.Format("1/2")
}
