package timegrid

import "time"

// State tracks the drag-selection lifecycle.
type State int

const (
	Idle State = iota
	Selecting
	Committed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selecting:
		return "selecting"
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

const (
	// DefaultDragThreshold is the displacement (in offset units) a press must
	// travel before it becomes a drag instead of a tap.
	DefaultDragThreshold = 3.0
	// DefaultMinCommit is the smallest span a drag must cover to commit.
	// It happens to equal the default slot duration but is a separate knob.
	DefaultMinCommit = 15 * time.Minute
)

// Range is a half-open [Start, End) interval produced by a selection.
type Range struct {
	Start time.Time
	End   time.Time
}

// Selection is the transient drag state for one day view. It is not safe for
// concurrent use; the UI drives it from a single event loop.
type Selection struct {
	DragThreshold float64
	MinCommit     time.Duration

	grid        Grid
	day         time.Time
	state       State
	pressed     bool
	pressOffset float64
	anchor      time.Time
	current     time.Time
}

// NewSelection returns an idle selection bound to a grid and a day.
func NewSelection(g Grid, day time.Time) *Selection {
	return &Selection{
		DragThreshold: DefaultDragThreshold,
		MinCommit:     DefaultMinCommit,
		grid:          g,
		day:           day,
	}
}

func (s *Selection) State() State {
	return s.state
}

// Press records the pointer-down position. The machine stays Idle until the
// drag threshold is exceeded; a release before that is a tap and never enters
// the machine.
func (s *Selection) Press(offset float64) {
	s.reset()
	s.pressed = true
	s.pressOffset = offset
}

// Move updates the selection with the latest pointer position. The first move
// past the drag threshold transitions Idle -> Selecting and anchors the range
// at the snapped press position.
func (s *Selection) Move(offset float64) {
	if !s.pressed {
		return
	}
	switch s.state {
	case Idle:
		if abs(offset-s.pressOffset) < s.DragThreshold {
			return
		}
		s.state = Selecting
		s.anchor = s.grid.SnapToSlot(s.grid.PositionToTime(s.pressOffset, s.day), s.day)
		s.current = s.grid.SnapToSlot(s.grid.PositionToTime(offset, s.day), s.day)
	case Selecting:
		s.current = s.grid.SnapToSlot(s.grid.PositionToTime(offset, s.day), s.day)
	}
}

// Range returns the normalized [min(anchor,current), max(anchor,current))
// range while a selection is in progress or committed.
func (s *Selection) Range() (Range, bool) {
	if s.state != Selecting && s.state != Committed {
		return Range{}, false
	}
	start, end := s.anchor, s.current
	if end.Before(start) {
		start, end = end, start
	}
	return Range{Start: start, End: end}, true
}

// SelectedSlots decomposes the current range into fixed-duration sub-slots.
// It is recomputed on every call; callers must not cache it across moves.
func (s *Selection) SelectedSlots() []Slot {
	r, ok := s.Range()
	if !ok {
		return nil
	}
	return s.grid.Slots(r.Start, r.End)
}

// Release ends the gesture. A drag that spans at least MinCommit commits and
// returns its range; anything shorter cancels. The caller handles taps (a
// release with no drag) separately via Grid.TapSlot.
func (s *Selection) Release() (Range, bool) {
	defer func() { s.pressed = false }()
	if s.state != Selecting {
		s.reset()
		return Range{}, false
	}
	r, _ := s.Range()
	if r.End.Sub(r.Start) < s.MinCommit {
		s.state = Cancelled
		s.clearRange()
		return Range{}, false
	}
	s.state = Committed
	return r, true
}

// Cancel aborts the gesture, clearing all transient state.
func (s *Selection) Cancel() {
	s.state = Cancelled
	s.pressed = false
	s.clearRange()
}

// Reset returns a committed or cancelled selection to Idle for reuse.
func (s *Selection) Reset() {
	s.reset()
}

func (s *Selection) reset() {
	s.state = Idle
	s.pressed = false
	s.clearRange()
}

func (s *Selection) clearRange() {
	s.anchor = time.Time{}
	s.current = time.Time{}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
