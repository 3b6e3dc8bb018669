// Package daygrid is the interactive day view: a column of time slots where
// dragging across rows selects an interval and names it as a tracked
// activity.
package daygrid

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/entry"
	"tableflip.dev/tend/pkg/period"
	"tableflip.dev/tend/pkg/timegrid"
)

const headerRows = 2

type mode int

const (
	modeBrowse mode = iota
	modeName
)

type entriesLoadedMsg struct {
	entries []*entry.Entry
	err     error
}

type savedMsg struct {
	err error
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	hourStyle     = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	entryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	cursorStyle   = lipgloss.NewStyle().Bold(true)
	statusStyle   = lipgloss.NewStyle().Faint(true).Italic(true)
)

// Model renders one day of the time grid.
type Model struct {
	svc *app.Service
	ctx context.Context

	day     time.Time
	grid    timegrid.Grid
	sel     *timegrid.Selection
	entries []*entry.Entry

	mode   mode
	cursor int
	input  textinput.Model

	pending timegrid.Range
	status  string
	width   int
	height  int
}

// New constructs the day grid for today.
func New(svc *app.Service) *Model {
	g := svc.Grid
	day := period.StartOfDay(time.Now())

	ti := textinput.New()
	ti.Placeholder = "what was it?"
	ti.Styles.Cursor.Shape = tea.CursorBlock

	return &Model{
		svc:   svc,
		ctx:   context.Background(),
		day:   day,
		grid:  g,
		sel:   timegrid.NewSelection(g, day),
		input: ti,
	}
}

// Run launches the Bubble Tea program for the day grid.
func Run(svc *app.Service) error {
	p := tea.NewProgram(New(svc), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return m.loadEntries()
}

func (m *Model) loadEntries() tea.Cmd {
	svc, ctx, day := m.svc, m.ctx, m.day
	return func() tea.Msg {
		sum, err := svc.Day(ctx, day)
		if err != nil {
			return entriesLoadedMsg{err: err}
		}
		return entriesLoadedMsg{entries: sum.Entries}
	}
}

func (m *Model) saveSelection(r timegrid.Range, activity string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		_, err := svc.TrackActivity(ctx, app.TrackRequest{
			Activity: activity,
			Start:    r.Start,
			End:      r.End,
		})
		return savedMsg{err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case entriesLoadedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.entries = msg.entries
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = ""
		}
		m.mode = modeBrowse
		m.input.SetValue("")
		m.input.Blur()
		m.sel.Reset()
		return m, m.loadEntries()

	case tea.MouseClickMsg:
		mouse := tea.Mouse(msg)
		if m.mode == modeBrowse && mouse.Button == tea.MouseLeft {
			if off, ok := m.offsetForRow(mouse.Y); ok {
				m.sel.Press(off)
				m.cursor = m.rowSlot(mouse.Y)
			}
		}
		return m, nil

	case tea.MouseMotionMsg:
		if m.mode == modeBrowse {
			mouse := tea.Mouse(msg)
			if off, ok := m.offsetForRow(mouse.Y); ok {
				m.sel.Move(off)
				m.cursor = m.rowSlot(mouse.Y)
			}
		}
		return m, nil

	case tea.MouseReleaseMsg:
		if m.mode == modeBrowse {
			m.release()
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	if m.mode == modeName {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeName {
		switch msg.Code {
		case tea.KeyEscape:
			m.mode = modeBrowse
			m.input.SetValue("")
			m.input.Blur()
			m.sel.Reset()
			return m, nil
		case tea.KeyEnter:
			activity := m.input.Value()
			if activity == "" {
				return m, nil
			}
			return m, m.saveSelection(m.pending, activity)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.sel.Reset()
		m.status = ""
		return m, nil
	case "j", "down":
		m.moveCursor(1)
		return m, nil
	case "k", "up":
		m.moveCursor(-1)
		return m, nil
	case "v", " ":
		// Start or extend a keyboard selection at the cursor.
		if m.sel.State() == timegrid.Idle {
			m.sel.Press(m.cursorOffset())
			m.sel.Move(m.cursorOffset() + m.grid.Config().SlotHeight)
		}
		return m, nil
	case "enter":
		m.release()
		return m, nil
	case "left", "h":
		return m.gotoDay(m.day.AddDate(0, 0, -1))
	case "right", "l":
		return m.gotoDay(m.day.AddDate(0, 0, 1))
	case "t":
		return m.gotoDay(period.StartOfDay(time.Now()))
	}
	return m, nil
}

func (m *Model) gotoDay(day time.Time) (tea.Model, tea.Cmd) {
	m.day = day
	m.sel = timegrid.NewSelection(m.grid, day)
	m.cursor = 0
	m.status = ""
	return m, m.loadEntries()
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= m.grid.SlotCount() {
		return
	}
	m.cursor = next
	if m.sel.State() == timegrid.Selecting {
		m.sel.Move(m.cursorOffset() + m.grid.Config().SlotHeight)
	}
}

func (m *Model) release() {
	r, ok := m.sel.Release()
	if !ok {
		return
	}
	if timegrid.HasConflict(r.Start, r.End, m.entries, "") {
		m.status = "that time is already tracked"
		m.sel.Reset()
		return
	}
	m.pending = r
	m.mode = modeName
	m.input.Focus()
}

// offsetForRow maps a terminal row to the grid offset space, one row per
// slot.
func (m *Model) offsetForRow(row int) (float64, bool) {
	slot := m.rowSlot(row)
	if slot < 0 || slot >= m.grid.SlotCount() {
		return 0, false
	}
	return float64(slot) * m.grid.Config().SlotHeight, true
}

func (m *Model) rowSlot(row int) int {
	return row - headerRows
}

func (m *Model) cursorOffset() float64 {
	return float64(m.cursor) * m.grid.Config().SlotHeight
}

func (m *Model) slotTime(slot int) time.Time {
	return m.grid.PositionToTime(float64(slot)*m.grid.Config().SlotHeight, m.day)
}

func (m *Model) entryAt(t time.Time) *entry.Entry {
	for _, e := range m.entries {
		if !t.Before(e.Start.Time) && t.Before(e.End.Time) {
			return e
		}
	}
	return nil
}

func (m *Model) selectedAt(t time.Time) bool {
	r, ok := m.sel.Range()
	if !ok {
		return false
	}
	return !t.Before(r.Start) && t.Before(r.End)
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.day.Format("Monday, January 2")))
	b.WriteByte('\n')

	if m.mode == modeName {
		b.WriteString(fmt.Sprintf("%s to %s  %s",
			m.pending.Start.Format("15:04"),
			m.pending.End.Format("15:04"),
			m.input.View()))
	} else {
		b.WriteString(statusStyle.Render(m.statusLine()))
	}
	b.WriteByte('\n')

	for slot := 0; slot < m.grid.SlotCount(); slot++ {
		t := m.slotTime(slot)

		if t.Minute() == 0 {
			b.WriteString(hourStyle.Render(t.Format("15:04") + " "))
		} else {
			b.WriteString("      ")
		}

		cell := "·"
		style := hourStyle
		if e := m.entryAt(t); e != nil {
			cell = e.Activity
			style = entryStyle
		}
		if m.selectedAt(t) {
			style = selectedStyle
		}
		if slot == m.cursor && m.mode == modeBrowse {
			b.WriteString(cursorStyle.Render("▸ "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(style.Render(cell))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m *Model) statusLine() string {
	if m.status != "" {
		return m.status
	}
	return "drag or v+j/k to select, enter to save, h/l to change day, q to quit"
}
