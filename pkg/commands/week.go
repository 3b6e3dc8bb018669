package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/commands/options"
	"tableflip.dev/tend/pkg/runner/week"
	"tableflip.dev/tend/pkg/store"
)

func addWeek(topLevel *cobra.Command) {
	oo := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the weekly aggregate: time per category and check-in averages.",
		Example: `
tend week
tend week --on="2024-2-25"
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
			s := week.Week{
				On:          on,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
