package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/tend/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "tend",
		Short: base.Wrap80("A wellbeing journal on the command line: morning check-ins, time tracking on a slot grid, and periodic insights."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addCheckIn(topLevel)
	addTrack(topLevel)
	addDay(topLevel)
	addWeek(topLevel)
	addNote(topLevel)
	addGoals(topLevel)
	addInsights(topLevel)
	addEdit(topLevel)
	addRm(topLevel)
	addRemind(topLevel)
	addKey(topLevel)
	addUI(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
