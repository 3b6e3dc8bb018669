package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/commands/options"
	"tableflip.dev/tend/pkg/runner/note"
	"tableflip.dev/tend/pkg/store"
)

func addNote(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	prompt := ""

	cmd := &cobra.Command{
		Use:   "note <response>",
		Short: "Answer the day's reflective prompt.",
		Example: `
tend note finishing the garden bed felt great
tend note --prompt "What drained you most yesterday?" the budget meeting
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a response")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			on, err := oo.GetOn()
			if err != nil {
				return err
			}
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := note.Note{
				On:          on,
				Prompt:      prompt,
				Response:    strings.Join(args, " "),
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", "",
		"Answer a specific prompt instead of today's.")
	options.AddOnArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
