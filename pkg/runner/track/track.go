// Package track places an activity on the day grid.
package track

import (
	"context"
	"time"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/printers"
	"tableflip.dev/tend/pkg/store"
	"tableflip.dev/tend/pkg/summarize"
)

type Track struct {
	Activity   string
	Start      time.Time
	End        time.Time
	Mood       int
	Tags       []string
	Reflection string

	Persistence store.Persistence
	Summarizer  summarize.Summarizer
}

func (n *Track) Do(ctx context.Context) error {
	svc := app.New(n.Persistence)
	if n.Summarizer != nil {
		svc.Summarizer = n.Summarizer
	}

	e, err := svc.TrackActivity(ctx, app.TrackRequest{
		Activity:    n.Activity,
		Start:       n.Start,
		End:         n.End,
		MoodRating:  n.Mood,
		EmotionTags: n.Tags,
		Reflection:  n.Reflection,
	})
	if err != nil {
		return err
	}

	day, err := svc.Day(ctx, e.Start.Time)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.Title(day.Date)
	pp.Entries(day.Entries...)
	return nil
}
