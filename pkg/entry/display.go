package entry

import (
	"fmt"
	"strings"

	"tableflip.dev/tend/pkg/glyph"
)

const layoutClock = "15:04"

// Row returns the columns shown for this entry in tabular output.
func (e *Entry) Row() (string, string, string, string) {
	window := fmt.Sprintf("%s–%s",
		e.Start.Local().Format(layoutClock),
		e.End.Local().Format(layoutClock))
	mood := glyph.Mood(e.MoodRating).String()
	label := e.Activity
	if len(e.EmotionTags) > 0 {
		label = fmt.Sprintf("%s (%s)", label, strings.Join(e.EmotionTags, ", "))
	}
	return window, mood, label, e.Category
}

func (e *Entry) String() string {
	window, mood, label, category := e.Row()
	return fmt.Sprintf("%s %s  %s  [%s]", window, mood, label, category)
}
