package timegrid

import (
	"testing"
	"time"
)

var day = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

func defaultGrid() Grid {
	return New(Config{})
}

func TestSnapToSlotRounding(t *testing.T) {
	g := defaultGrid()
	tests := []struct {
		minute int
		want   int
	}{
		{0, 0},
		{7, 0},
		{8, 15},
		{22, 15},
		{23, 30},
		{37, 30},
		{38, 45},
		{52, 45},
		{53, 60},
	}
	for _, tc := range tests {
		in := time.Date(2024, time.March, 1, 10, tc.minute, 0, 0, time.UTC)
		got := g.SnapToSlot(in, day)
		want := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC).
			Add(time.Duration(tc.want) * time.Minute)
		if !got.Equal(want) {
			t.Fatalf("snap(10:%02d) = %v, want %v", tc.minute, got, want)
		}
	}
}

func TestSnapToSlotHalfBoundary(t *testing.T) {
	g := defaultGrid()
	// Exactly 7m30s is the midpoint of a 15 minute slot; half rounds up.
	in := time.Date(2024, time.March, 1, 10, 7, 30, 0, time.UTC)
	want := time.Date(2024, time.March, 1, 10, 15, 0, 0, time.UTC)
	if got := g.SnapToSlot(in, day); !got.Equal(want) {
		t.Fatalf("snap(10:07:30) = %v, want %v", got, want)
	}
	// A nanosecond before the midpoint rounds down.
	in = time.Date(2024, time.March, 1, 10, 7, 29, 0, time.UTC)
	want = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	if got := g.SnapToSlot(in, day); !got.Equal(want) {
		t.Fatalf("snap(10:07:29) = %v, want %v", got, want)
	}
}

func TestSnapToSlotIdempotent(t *testing.T) {
	g := defaultGrid()
	for minute := 0; minute < 60; minute += 7 {
		in := time.Date(2024, time.March, 1, 14, minute, 13, 0, time.UTC)
		once := g.SnapToSlot(in, day)
		twice := g.SnapToSlot(once, day)
		if !once.Equal(twice) {
			t.Fatalf("snap not idempotent at :%02d: %v != %v", minute, once, twice)
		}
	}
}

func TestSnapToSlotPinsReferenceDay(t *testing.T) {
	g := defaultGrid()
	in := time.Date(2024, time.July, 9, 10, 8, 0, 0, time.UTC)
	got := g.SnapToSlot(in, day)
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 1 {
		t.Fatalf("snap did not pin the date: %v", got)
	}
}

func TestPositionTimeRoundTrip(t *testing.T) {
	g := defaultGrid()
	for i := 0; i < g.SlotCount(); i++ {
		boundary := day.Add(time.Duration(g.Config().StartHour)*time.Hour).
			Add(time.Duration(i) * g.Config().SlotDuration)
		got := g.PositionToTime(g.TimeToPosition(boundary), day)
		if !got.Equal(boundary) {
			t.Fatalf("round trip slot %d: %v != %v", i, got, boundary)
		}
	}
}

func TestPositionToTimeClamps(t *testing.T) {
	g := defaultGrid()
	first := g.PositionToTime(-100, day)
	if first.Hour() != DefaultStartHour || first.Minute() != 0 {
		t.Fatalf("negative offset should clamp to grid start, got %v", first)
	}
	last := g.PositionToTime(1e9, day)
	wantLast := day.Add(time.Duration(DefaultEndHour)*time.Hour - DefaultSlotDuration)
	if !last.Equal(wantLast) {
		t.Fatalf("huge offset should clamp to last slot, got %v want %v", last, wantLast)
	}
}

func TestSlotsDecomposition(t *testing.T) {
	g := defaultGrid()
	start := day.Add(9 * time.Hour)
	end := start.Add(time.Hour)
	slots := g.Slots(start, end)
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}
	for i, s := range slots {
		if s.DurationMinutes != 15 {
			t.Fatalf("slot %d duration = %d", i, s.DurationMinutes)
		}
		if !s.Start.Equal(start.Add(time.Duration(i) * 15 * time.Minute)) {
			t.Fatalf("slot %d start = %v", i, s.Start)
		}
	}
	if got := g.Slots(end, start); got != nil {
		t.Fatalf("inverted range should produce no slots, got %v", got)
	}
}

func TestTapSlot(t *testing.T) {
	g := defaultGrid()
	slot := g.TapSlot(g.TimeToPosition(day.Add(9*time.Hour)), day)
	if !slot.Start.Equal(day.Add(9 * time.Hour)) {
		t.Fatalf("tap start = %v", slot.Start)
	}
	if slot.DurationMinutes != 15 {
		t.Fatalf("tap duration = %d", slot.DurationMinutes)
	}
	if !slot.End.Equal(slot.Start.Add(15 * time.Minute)) {
		t.Fatalf("tap end = %v", slot.End)
	}
}
