package options

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2024-3-1" or --on="3/1".`)
}

// GetOn resolves the flag to a date, defaulting to today. Short dates without
// a year resolve to the nearest past occurrence.
func (o *OnOptions) GetOn() (time.Time, error) {
	if o.OnString == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(layoutISO, o.OnString)
	if err != nil {
		t, err = time.Parse(layoutISOShort, o.OnString)
		if err != nil {
			return time.Time{}, err
		}
		t = t.AddDate(time.Now().Year(), 0, 0)
		// Looking back at a day, not scheduling one: 12/30 said in January
		// means last month, not eleven months from now.
		if t.After(time.Now()) {
			t = t.AddDate(-1, 0, 0)
		}
	}
	return t, nil
}
