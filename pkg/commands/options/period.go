package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/period"
)

// PeriodOptions
type PeriodOptions struct {
	Period string
}

func AddPeriodArgs(cmd *cobra.Command, o *PeriodOptions) {
	cmd.Flags().StringVarP(&o.Period, "period", "p", "week",
		"Period to look at. One of 'week', 'month' or 'quarter'.")
}

func (o *PeriodOptions) GetKind() (period.Kind, error) {
	return period.ParseKind(o.Period)
}
