// Package timegrid converts between wall-clock time and the discretized day
// grid the calendar renders, and decides whether candidate intervals collide
// with existing entries. It owns no storage; callers persist accepted
// intervals themselves.
package timegrid

import (
	"time"

	"tableflip.dev/tend/pkg/period"
)

const (
	// DefaultSlotDuration is the grid discretization unit.
	DefaultSlotDuration = 15 * time.Minute
	// DefaultStartHour and DefaultEndHour bound the visible day.
	DefaultStartHour = 6
	DefaultEndHour   = 23
	// DefaultSlotHeight is the linear size (rows or pixels) of one slot.
	DefaultSlotHeight = 4.0
)

// Slot is one fixed-duration cell of the grid. [Start, End) is half-open.
type Slot struct {
	Start           time.Time
	End             time.Time
	DurationMinutes int
}

// Config fixes the grid geometry for one view. It is not mutated at runtime.
type Config struct {
	SlotDuration time.Duration
	StartHour    int
	EndHour      int
	SlotHeight   float64
}

// Grid performs position/time conversions for a fixed configuration.
type Grid struct {
	cfg Config
}

// New returns a grid, filling zero config fields with defaults.
func New(cfg Config) Grid {
	if cfg.SlotDuration <= 0 {
		cfg.SlotDuration = DefaultSlotDuration
	}
	if cfg.StartHour == 0 && cfg.EndHour == 0 {
		cfg.StartHour = DefaultStartHour
		cfg.EndHour = DefaultEndHour
	}
	if cfg.SlotHeight <= 0 {
		cfg.SlotHeight = DefaultSlotHeight
	}
	return Grid{cfg: cfg}
}

func (g Grid) Config() Config {
	return g.cfg
}

func (g Grid) slotMinutes() int {
	return int(g.cfg.SlotDuration / time.Minute)
}

// SlotCount is the number of slots between StartHour and EndHour.
func (g Grid) SlotCount() int {
	return (g.cfg.EndHour - g.cfg.StartHour) * 60 / g.slotMinutes()
}

// SnapToSlot rounds t to the nearest slot boundary, zeroing seconds and
// sub-second precision and pinning the date to referenceDay. Rounding is
// half-up: the midpoint of a slot rounds to the later boundary.
func (g Grid) SnapToSlot(t time.Time, referenceDay time.Time) time.Time {
	day := period.StartOfDay(referenceDay)
	secs := t.Hour()*3600 + t.Minute()*60 + t.Second()
	slotSecs := int(g.cfg.SlotDuration / time.Second)
	snapped := (secs + slotSecs/2) / slotSecs * slotSecs
	return day.Add(time.Duration(snapped) * time.Second)
}

// PositionToTime maps a linear offset into the grid to the start of the slot
// it falls in. Out-of-range offsets clamp to the first or last slot; the
// result is always a valid in-grid instant.
func (g Grid) PositionToTime(offset float64, referenceDay time.Time) time.Time {
	idx := int(offset / g.cfg.SlotHeight)
	if idx < 0 {
		idx = 0
	}
	if max := g.SlotCount() - 1; idx > max {
		idx = max
	}
	day := period.StartOfDay(referenceDay)
	return day.Add(time.Duration(g.cfg.StartHour) * time.Hour).
		Add(time.Duration(idx) * g.cfg.SlotDuration)
}

// TimeToPosition is the inverse of PositionToTime at slot boundaries: minutes
// elapsed since the grid start scaled to offset units.
func (g Grid) TimeToPosition(t time.Time) float64 {
	gridStart := time.Duration(g.cfg.StartHour) * time.Hour
	elapsed := time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute - gridStart
	return float64(elapsed/time.Minute) / float64(g.slotMinutes()) * g.cfg.SlotHeight
}

// Slots decomposes [start, end) into fixed-duration sub-slots.
func (g Grid) Slots(start, end time.Time) []Slot {
	if !end.After(start) {
		return nil
	}
	slots := make([]Slot, 0, int(end.Sub(start)/g.cfg.SlotDuration))
	for cur := start; cur.Before(end); cur = cur.Add(g.cfg.SlotDuration) {
		slotEnd := cur.Add(g.cfg.SlotDuration)
		if slotEnd.After(end) {
			slotEnd = end
		}
		slots = append(slots, Slot{
			Start:           cur,
			End:             slotEnd,
			DurationMinutes: int(slotEnd.Sub(cur) / time.Minute),
		})
	}
	return slots
}

// TapSlot returns the single slot a tap at offset lands on. Taps bypass the
// selection state machine entirely.
func (g Grid) TapSlot(offset float64, referenceDay time.Time) Slot {
	start := g.PositionToTime(offset, referenceDay)
	return Slot{
		Start:           start,
		End:             start.Add(g.cfg.SlotDuration),
		DurationMinutes: g.slotMinutes(),
	}
}
