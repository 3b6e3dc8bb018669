package timegrid

import (
	"testing"
	"time"
)

// offsetFor positions the pointer at the start of the slot containing t.
func offsetFor(g Grid, t time.Time) float64 {
	return g.TimeToPosition(t)
}

func TestSelectionDragCommit(t *testing.T) {
	g := defaultGrid()
	s := NewSelection(g, day)

	nine := day.Add(9 * time.Hour)
	ten := day.Add(10 * time.Hour)

	s.Press(offsetFor(g, nine))
	if s.State() != Idle {
		t.Fatalf("press alone should stay idle, got %v", s.State())
	}

	s.Move(offsetFor(g, ten))
	if s.State() != Selecting {
		t.Fatalf("move past threshold should select, got %v", s.State())
	}

	r, ok := s.Range()
	if !ok {
		t.Fatalf("selecting state should expose a range")
	}
	if !r.Start.Equal(nine) || !r.End.Equal(ten) {
		t.Fatalf("range = [%v, %v)", r.Start, r.End)
	}
	if slots := s.SelectedSlots(); len(slots) != 4 {
		t.Fatalf("expected 4 selected slots, got %d", len(slots))
	}

	committed, ok := s.Release()
	if !ok || s.State() != Committed {
		t.Fatalf("release should commit, state=%v ok=%v", s.State(), ok)
	}
	if !committed.Start.Equal(nine) || !committed.End.Equal(ten) {
		t.Fatalf("committed = [%v, %v)", committed.Start, committed.End)
	}
}

func TestSelectionReverseDragNormalizes(t *testing.T) {
	g := defaultGrid()
	s := NewSelection(g, day)

	ten := day.Add(10 * time.Hour)
	nine := day.Add(9 * time.Hour)

	s.Press(offsetFor(g, ten))
	s.Move(offsetFor(g, nine))
	r, ok := s.Range()
	if !ok {
		t.Fatalf("expected active range")
	}
	if !r.Start.Equal(nine) || !r.End.Equal(ten) {
		t.Fatalf("upward drag should normalize: [%v, %v)", r.Start, r.End)
	}
}

func TestSelectionBelowThresholdNeverSelects(t *testing.T) {
	g := defaultGrid()
	s := NewSelection(g, day)

	s.Press(10)
	s.Move(10 + DefaultDragThreshold/2)
	if s.State() != Idle {
		t.Fatalf("sub-threshold move entered %v", s.State())
	}
	if _, ok := s.Release(); ok {
		t.Fatalf("sub-threshold gesture must not commit")
	}
	if s.State() != Idle {
		t.Fatalf("release of a tap should leave the machine idle, got %v", s.State())
	}
}

func TestSelectionShortDragCancels(t *testing.T) {
	g := defaultGrid()
	s := NewSelection(g, day)

	nine := day.Add(9 * time.Hour)
	s.Press(offsetFor(g, nine))
	// Drag far enough to pass the threshold but land back on the anchor slot.
	s.Move(offsetFor(g, nine) + DefaultDragThreshold)
	if s.State() != Selecting {
		t.Fatalf("expected selecting, got %v", s.State())
	}
	if _, ok := s.Release(); ok {
		t.Fatalf("span under MinCommit must not commit")
	}
	if s.State() != Cancelled {
		t.Fatalf("short drag should cancel, got %v", s.State())
	}
	if _, ok := s.Range(); ok {
		t.Fatalf("cancelled selection leaked a range")
	}
	if s.SelectedSlots() != nil {
		t.Fatalf("cancelled selection leaked slots")
	}
}

func TestSelectionCancelClearsState(t *testing.T) {
	g := defaultGrid()
	s := NewSelection(g, day)

	s.Press(offsetFor(g, day.Add(9*time.Hour)))
	s.Move(offsetFor(g, day.Add(11*time.Hour)))
	s.Cancel()

	if s.State() != Cancelled {
		t.Fatalf("state = %v", s.State())
	}
	if _, ok := s.Range(); ok {
		t.Fatalf("cancel left a range behind")
	}

	// A cancelled selection can be reused after Reset.
	s.Reset()
	if s.State() != Idle {
		t.Fatalf("reset should return to idle, got %v", s.State())
	}
}

func TestSelectionMoveUpdatesWithLatestPosition(t *testing.T) {
	g := defaultGrid()
	s := NewSelection(g, day)

	nine := day.Add(9 * time.Hour)
	s.Press(offsetFor(g, nine))
	s.Move(offsetFor(g, day.Add(12*time.Hour)))
	s.Move(offsetFor(g, day.Add(10*time.Hour)))

	r, _ := s.Range()
	if !r.End.Equal(day.Add(10 * time.Hour)) {
		t.Fatalf("last move must win, end = %v", r.End)
	}
}
