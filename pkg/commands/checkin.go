package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/commands/options"
	"tableflip.dev/tend/pkg/runner/checkin"
	"tableflip.dev/tend/pkg/store"
)

func addCheckIn(topLevel *cobra.Command) {
	co := &options.CheckInOptions{}

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record the morning check-in.",
		Example: `
tend checkin -e 6 -p 8
tend checkin -e 4 -p 5 --sleep 6 --feeling tired,hopeful --goal "finish the draft"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				co.MainGoal = strings.Join(args, " ")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := checkin.CheckIn{
				Energy:      co.Energy,
				Positivity:  co.Positivity,
				Focus:       co.Focus,
				Sleep:       co.Sleep,
				Emotions:    co.Emotions,
				MainGoal:    co.MainGoal,
				Gratitude:   co.Gratitude,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddCheckInArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
