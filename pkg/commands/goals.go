package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/runner/goals"
	"tableflip.dev/tend/pkg/store"
)

func addGoals(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Show the current goals.",
		Example: `
tend goals
tend goals set "move every day" "read more fiction"
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := goals.Goals{Persistence: p}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	set := &cobra.Command{
		Use:   "set <goal> [goal]...",
		Short: "Replace the goal set. Goals feed insight generation.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := goals.Goals{Set: args, Persistence: p}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	cmd.AddCommand(set)

	topLevel.AddCommand(cmd)
}
