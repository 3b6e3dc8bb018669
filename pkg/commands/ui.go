package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/store"
	"tableflip.dev/tend/pkg/summarize"
	"tableflip.dev/tend/pkg/tui/daygrid"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive day grid.",
		Example: `
tend ui
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			svc := app.New(p)
			svc.Summarizer = summarize.FromConfig()
			return daygrid.Run(svc)
		},
	}

	topLevel.AddCommand(cmd)
}
