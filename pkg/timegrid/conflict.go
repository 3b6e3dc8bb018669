package timegrid

import (
	"errors"
	"time"

	"tableflip.dev/tend/pkg/entry"
)

// ErrConflict marks a candidate interval that overlaps an existing entry.
// Callers surface it distinctly from validation failures so the UI can offer
// another time.
var ErrConflict = errors.New("timegrid: interval conflicts with an existing entry")

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching boundaries do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// FindConflict returns the first existing entry whose interval overlaps
// [start, end), skipping the entry with excludeID (used while editing).
func FindConflict(start, end time.Time, existing []*entry.Entry, excludeID string) *entry.Entry {
	for _, e := range existing {
		if e == nil || (excludeID != "" && e.ID == excludeID) {
			continue
		}
		if Overlaps(start, end, e.Start.Time, e.End.Time) {
			return e
		}
	}
	return nil
}

// HasConflict reports whether [start, end) overlaps any existing entry.
func HasConflict(start, end time.Time, existing []*entry.Entry, excludeID string) bool {
	return FindConflict(start, end, existing, excludeID) != nil
}
