// Package checkin holds the morning reflection ritual records.
package checkin

import (
	"errors"
	"time"

	"tableflip.dev/tend/pkg/entry"
)

var ErrLevelOutOfRange = errors.New("checkin: levels must be between 1 and 10")

// CheckIn is one morning reflection. Focus and SleepQuality are optional and
// contribute zero to downstream hashing when unset.
type CheckIn struct {
	Date            string          `json:"date"`
	EnergyLevel     int             `json:"energyLevel"`
	PositivityLevel int             `json:"positivityLevel"`
	FocusLevel      int             `json:"focusLevel,omitempty"`
	SleepQuality    int             `json:"sleepQuality,omitempty"`
	Emotions        []string        `json:"emotions,omitempty"`
	MainGoal        string          `json:"mainGoal,omitempty"`
	Gratitude       string          `json:"gratitude,omitempty"`
	Created         entry.Timestamp `json:"created"`
}

func (c *CheckIn) Validate() error {
	for _, level := range []int{c.EnergyLevel, c.PositivityLevel} {
		if level < 1 || level > 10 {
			return ErrLevelOutOfRange
		}
	}
	for _, level := range []int{c.FocusLevel, c.SleepQuality} {
		if level != 0 && (level < 1 || level > 10) {
			return ErrLevelOutOfRange
		}
	}
	return nil
}

// PromptResponse is a free-form answer to one of the daily prompts.
type PromptResponse struct {
	Date     string          `json:"date"`
	Prompt   string          `json:"prompt"`
	Response string          `json:"response"`
	Created  entry.Timestamp `json:"created"`
}

// DefaultPrompts rotate by day of year.
var DefaultPrompts = []string{
	"What would make today feel complete?",
	"What is one thing you are looking forward to?",
	"What drained you most yesterday?",
	"Name something small you are grateful for.",
	"What deserves more of your attention this week?",
	"What did you do recently just for yourself?",
	"Which moment from yesterday do you want to remember?",
}

// PromptFor returns the rotating prompt for the given day.
func PromptFor(day time.Time) string {
	return DefaultPrompts[day.YearDay()%len(DefaultPrompts)]
}
