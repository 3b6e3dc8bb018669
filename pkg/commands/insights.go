package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/commands/options"
	"tableflip.dev/tend/pkg/runner/insights"
	"tableflip.dev/tend/pkg/store"
	"tableflip.dev/tend/pkg/summarize"
)

func addInsights(topLevel *cobra.Command) {
	po := &options.PeriodOptions{}
	oo := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show insights for a period, generating them when the data changed.",
		Example: `
tend insights
tend insights --period month
tend insights --period quarter --on="2024-1-15"
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			kind, err := po.GetKind()
			if err != nil {
				return err
			}
			on, err := oo.GetOn()
			if err != nil {
				return err
			}
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := insights.Insights{
				Kind:        kind,
				On:          on,
				Persistence: p,
				Summarizer:  summarize.FromConfig(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddPeriodArgs(cmd, po)
	options.AddOnArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
