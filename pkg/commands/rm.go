package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/runner/rm"
	"tableflip.dev/tend/pkg/store"
)

func addRm(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a tracked entry.",
		Example: `
tend rm 171dff69f8b99dca
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires an entry id, find it with `tend day --show-id`")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := rm.Rm{
				ID:          args[0],
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
