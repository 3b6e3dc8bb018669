package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/commands/options"
	"tableflip.dev/tend/pkg/runner/day"
	"tableflip.dev/tend/pkg/store"
)

func addDay(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show everything recorded for a day.",
		Example: `
tend day
tend day --on="3/1"
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			on, err := oo.GetOn()
			if err != nil {
				return err
			}
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := day.Day{
				On:          on,
				ShowID:      io.ShowID,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
