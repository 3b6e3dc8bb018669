// Package period computes the canonical week/month/quarter windows used by
// calendar views and the insight cache.
package period

import (
	"fmt"
	"time"
)

type Kind string

const (
	Week    Kind = "week"
	Month   Kind = "month"
	Quarter Kind = "quarter"
)

const layoutISO = "2006-01-02"

// ParseKind validates a user-supplied period name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Week, Month, Quarter:
		return Kind(s), nil
	}
	return "", fmt.Errorf("period: unknown kind %q", s)
}

// Bounds returns the inclusive start and end instants of the period containing
// ref. Weeks start on Sunday. Ends land on the final millisecond of the period
// so that lexical date-key comparisons stay inclusive.
func Bounds(ref time.Time, kind Kind) (time.Time, time.Time) {
	switch kind {
	case Week:
		start := StartOfDay(ref).AddDate(0, 0, -int(ref.Weekday()))
		end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
		return start, end
	case Month:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
		return start, end
	case Quarter:
		qm := time.Month((int(ref.Month())-1)/3*3 + 1)
		start := time.Date(ref.Year(), qm, 1, 0, 0, 0, 0, ref.Location())
		end := start.AddDate(0, 3, 0).Add(-time.Millisecond)
		return start, end
	}
	return StartOfDay(ref), StartOfDay(ref).AddDate(0, 0, 1).Add(-time.Millisecond)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateKey renders the day partition key used across storage backends.
func DateKey(t time.Time) string {
	return t.Format(layoutISO)
}

// ParseDateKey is the inverse of DateKey.
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(layoutISO, key)
}
