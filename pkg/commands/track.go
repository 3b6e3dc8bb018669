package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/commands/options"
	"tableflip.dev/tend/pkg/runner/track"
	"tableflip.dev/tend/pkg/store"
	"tableflip.dev/tend/pkg/summarize"
)

func addTrack(topLevel *cobra.Command) {
	to := &options.TrackOptions{}
	oo := &options.OnOptions{}

	activity := ""

	cmd := &cobra.Command{
		Use:   "track <activity>",
		Short: "Track an activity on the day grid.",
		Example: `
tend track reading --from 10:00 --to 10:30
tend track "walk in the park" --from 17:15 --for 45 --mood 5
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires an activity")
			}
			activity = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			on, err := oo.GetOn()
			if err != nil {
				return err
			}
			start, end, err := to.GetInterval(on)
			if err != nil {
				return err
			}
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := track.Track{
				Activity:    activity,
				Start:       start,
				End:         end,
				Mood:        to.Mood,
				Tags:        to.Tags,
				Reflection:  to.Reflection,
				Persistence: p,
				Summarizer:  summarize.FromConfig(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddTrackArgs(cmd, to)
	options.AddOnArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
