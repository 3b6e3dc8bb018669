package options

import (
	"github.com/spf13/cobra"
)

// CheckInOptions
type CheckInOptions struct {
	Energy     int
	Positivity int
	Focus      int
	Sleep      int
	Emotions   []string
	MainGoal   string
	Gratitude  string
}

func AddCheckInArgs(cmd *cobra.Command, o *CheckInOptions) {
	cmd.Flags().IntVarP(&o.Energy, "energy", "e", 0,
		"Energy level from 1 to 10.")
	cmd.Flags().IntVarP(&o.Positivity, "positivity", "p", 0,
		"Positivity level from 1 to 10.")
	cmd.Flags().IntVar(&o.Focus, "focus", 0,
		"Focus level from 1 to 10 (optional).")
	cmd.Flags().IntVar(&o.Sleep, "sleep", 0,
		"Sleep quality from 1 to 10 (optional).")
	cmd.Flags().StringSliceVar(&o.Emotions, "feeling", nil,
		"Emotions, comma separated.")
	cmd.Flags().StringVar(&o.MainGoal, "goal", "",
		"The one thing that would make today feel complete.")
	cmd.Flags().StringVar(&o.Gratitude, "grateful", "",
		"Something you are grateful for.")
}
