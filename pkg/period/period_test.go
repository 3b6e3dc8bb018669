package period

import (
	"testing"
	"time"
)

func TestWeekBoundsFromWednesday(t *testing.T) {
	// 2024-03-06 is a Wednesday.
	ref := time.Date(2024, time.March, 6, 14, 30, 0, 0, time.UTC)
	start, end := Bounds(ref, Week)

	wantStart := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC) // Sunday
	if !start.Equal(wantStart) {
		t.Fatalf("week start = %v, want %v", start, wantStart)
	}
	wantEnd := time.Date(2024, time.March, 9, 23, 59, 59, 999e6, time.UTC) // Saturday
	if !end.Equal(wantEnd) {
		t.Fatalf("week end = %v, want %v", end, wantEnd)
	}
	if got := end.Sub(start); got != 7*24*time.Hour-time.Millisecond {
		t.Fatalf("week span = %v", got)
	}
}

func TestWeekBoundsOnSunday(t *testing.T) {
	ref := time.Date(2024, time.March, 3, 9, 0, 0, 0, time.UTC) // Sunday
	start, _ := Bounds(ref, Week)
	if !start.Equal(time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("sunday should start its own week, got %v", start)
	}
}

func TestMonthBoundsLeapFebruary(t *testing.T) {
	ref := time.Date(2024, time.February, 15, 12, 0, 0, 0, time.UTC)
	start, end := Bounds(ref, Month)

	if !start.Equal(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("month start = %v", start)
	}
	if !end.Equal(time.Date(2024, time.February, 29, 23, 59, 59, 999e6, time.UTC)) {
		t.Fatalf("month end = %v", end)
	}
}

func TestQuarterBounds(t *testing.T) {
	tests := []struct {
		ref        time.Time
		wantMonth  time.Month
		wantEndDay int
	}{
		{time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), time.January, 31},
		{time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC), time.April, 30},
		{time.Date(2024, time.September, 30, 0, 0, 0, 0, time.UTC), time.July, 30},
		{time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), time.October, 31},
	}
	for _, tc := range tests {
		start, end := Bounds(tc.ref, Quarter)
		if start.Month() != tc.wantMonth || start.Day() != 1 {
			t.Fatalf("quarter(%v) start = %v", tc.ref, start)
		}
		if end.Day() != tc.wantEndDay || end.Hour() != 23 {
			t.Fatalf("quarter(%v) end = %v", tc.ref, end)
		}
	}
}

func TestDateKeyRoundTrip(t *testing.T) {
	key := DateKey(time.Date(2024, time.March, 1, 18, 45, 0, 0, time.UTC))
	if key != "2024-03-01" {
		t.Fatalf("key = %q", key)
	}
	parsed, err := ParseDateKey(key)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if DateKey(parsed) != key {
		t.Fatalf("round trip lost the day: %v", parsed)
	}
}

func TestParseKind(t *testing.T) {
	if _, err := ParseKind("week"); err != nil {
		t.Fatalf("week should parse: %v", err)
	}
	if _, err := ParseKind("fortnight"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
