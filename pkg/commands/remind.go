package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/runner/remind"
	"tableflip.dev/tend/pkg/store"
	"tableflip.dev/tend/pkg/timeutil"
)

func addRemind(topLevel *cobra.Command) {
	var (
		morning   string
		retention string
	)

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Run the reminder loop: a morning check-in nudge and nightly insight pruning.",
		Example: `
tend remind
tend remind --morning "30 7 * * *"
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			window, _, err := timeutil.ParseWindow(retention)
			if err != nil {
				return err
			}
			p, err := store.Load(nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s := remind.Remind{
				Morning:     morning,
				Retention:   window,
				Persistence: p,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&morning, "morning", remind.DefaultMorning,
		"Cron schedule for the morning check-in nudge.")
	cmd.Flags().StringVar(&retention, "retention", timeutil.DefaultWindow,
		`How long cached insights are kept, for example "1w" or "3d12h".`)

	topLevel.AddCommand(cmd)
}
