package options

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const layoutClock = "15:04"

// TrackOptions
type TrackOptions struct {
	From       string
	To         string
	For        int
	Mood       int
	Tags       []string
	Reflection string
}

func AddTrackArgs(cmd *cobra.Command, o *TrackOptions) {
	cmd.Flags().StringVar(&o.From, "from", "",
		`Start of the activity, example: --from="10:00".`)
	cmd.Flags().StringVar(&o.To, "to", "",
		`End of the activity, example: --to="10:30".`)
	cmd.Flags().IntVar(&o.For, "for", 0,
		"Duration in minutes, an alternative to --to.")
	cmd.Flags().IntVar(&o.Mood, "mood", 0,
		"Mood rating from 1 (drained) to 6 (glowing).")
	cmd.Flags().StringSliceVar(&o.Tags, "tags", nil,
		"Emotion tags, comma separated.")
	cmd.Flags().StringVar(&o.Reflection, "reflect", "",
		"A short reflection on the activity.")
}

// GetInterval resolves the flags to a concrete interval on the given day.
func (o *TrackOptions) GetInterval(day time.Time) (time.Time, time.Time, error) {
	if o.From == "" {
		return time.Time{}, time.Time{}, errors.New("--from is required")
	}
	start, err := atClock(day, o.From)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	switch {
	case o.To != "" && o.For != 0:
		return time.Time{}, time.Time{}, errors.New("use --to or --for, not both")
	case o.To != "":
		end, err := atClock(day, o.To)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return start, end, nil
	case o.For > 0:
		return start, start.Add(time.Duration(o.For) * time.Minute), nil
	}
	return time.Time{}, time.Time{}, errors.New("--to or --for is required")
}

func atClock(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(layoutClock, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad time %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
