package entry

import (
	"errors"
	"strings"
	"time"

	"tableflip.dev/tend/pkg/period"
)

// DefaultCategory is assigned when the categorizer is unavailable or has no
// opinion about an activity.
const DefaultCategory = "General"

var (
	ErrEmptyActivity   = errors.New("entry: activity is empty")
	ErrInvalidInterval = errors.New("entry: end must be after start")
	ErrInvalidMood     = errors.New("entry: mood rating must be between 1 and 6")
)

// Entry is one tracked activity on the day grid. The interval is half-open:
// [Start, End).
type Entry struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`
	Activity        string    `json:"activity"`
	Category        string    `json:"category,omitempty"`
	Start           Timestamp `json:"start"`
	End             Timestamp `json:"end"`
	DurationMinutes int       `json:"durationMinutes"`
	MoodRating      int       `json:"moodRating,omitempty"`
	EmotionTags     []string  `json:"emotionTags,omitempty"`
	Reflection      string    `json:"reflection,omitempty"`
	Created         Timestamp `json:"created"`
	Updated         Timestamp `json:"updated"`
}

// New builds an entry for the given interval. The date partition key is
// derived from the start instant and never changes afterwards.
func New(activity string, start, end time.Time) (*Entry, error) {
	e := &Entry{
		Activity: strings.TrimSpace(activity),
		Category: DefaultCategory,
		Date:     period.DateKey(start),
		Start:    Timestamp{Time: start},
		End:      Timestamp{Time: end},
	}
	e.DurationMinutes = int(end.Sub(start) / time.Minute)
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Activity) == "" {
		return ErrEmptyActivity
	}
	if !e.End.After(e.Start.Time) {
		return ErrInvalidInterval
	}
	if e.MoodRating != 0 && (e.MoodRating < 1 || e.MoodRating > 6) {
		return ErrInvalidMood
	}
	return nil
}

// Patch carries a partial update. Nil fields are left untouched. Time bounds
// are intentionally absent: intervals are immutable after creation.
type Patch struct {
	Activity    *string
	Category    *string
	MoodRating  *int
	EmotionTags []string
	Reflection  *string
}

// Apply merges the patch into the entry and bumps Updated.
func (e *Entry) Apply(p Patch, now time.Time) error {
	if p.Activity != nil {
		e.Activity = strings.TrimSpace(*p.Activity)
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.MoodRating != nil {
		e.MoodRating = *p.MoodRating
	}
	if p.EmotionTags != nil {
		e.EmotionTags = dedupeTags(p.EmotionTags)
	}
	if p.Reflection != nil {
		e.Reflection = *p.Reflection
	}
	if err := e.Validate(); err != nil {
		return err
	}
	e.Updated = Timestamp{Time: now}
	return nil
}

// SetTags replaces the emotion tag set, deduplicating while preserving order.
func (e *Entry) SetTags(tags []string) {
	e.EmotionTags = dedupeTags(tags)
}

// dedupeTags keeps the first occurrence of each tag, preserving order.
func dedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
