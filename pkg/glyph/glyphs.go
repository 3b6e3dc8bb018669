package glyph

import "fmt"

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	underlineCode = 4
)

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

// Mood is the 1-6 rating attached to a tracked activity. Zero means unset.
type Mood int

const (
	MoodUnset Mood = iota
	MoodDrained
	MoodLow
	MoodFlat
	MoodSteady
	MoodBright
	MoodGlowing
)

var moods = []Glyph{
	{Key: "", Symbol: " ", Meaning: "unset"},
	{Key: "1", Symbol: "▁", Meaning: "drained"},
	{Key: "2", Symbol: "▂", Meaning: "low"},
	{Key: "3", Symbol: "▄", Meaning: "flat"},
	{Key: "4", Symbol: "▅", Meaning: "steady"},
	{Key: "5", Symbol: "▇", Meaning: "bright"},
	{Key: "6", Symbol: "█", Meaning: "glowing"},
}

func (m Mood) Valid() bool {
	return m >= MoodDrained && m <= MoodGlowing
}

func (m Mood) Glyph() Glyph {
	if m < 0 || int(m) >= len(moods) {
		return moods[0]
	}
	return moods[m]
}

func (m Mood) String() string {
	return m.Glyph().String()
}

func (m Mood) Meaning() string {
	return m.Glyph().Meaning
}

// GoalSymbol marks list items that are goals rather than tracked entries.
const GoalSymbol = "◦"

// InsightIcon maps an insight type to the symbol shown beside it.
func InsightIcon(insightType string) string {
	switch insightType {
	case "trend":
		return "↗"
	case "pattern":
		return "◆"
	case "correlation":
		return "⇄"
	case "habit":
		return "↻"
	case "energy":
		return "⚡"
	case "productivity":
		return "●"
	default:
		return "⁃"
	}
}

func (g Glyph) String() string {
	return g.Symbol
}
