// Package checkin records the morning reflection from the command line.
package checkin

import (
	"context"

	"tableflip.dev/tend/pkg/app"
	ci "tableflip.dev/tend/pkg/checkin"
	"tableflip.dev/tend/pkg/printers"
	"tableflip.dev/tend/pkg/store"
)

type CheckIn struct {
	Energy     int
	Positivity int
	Focus      int
	Sleep      int
	Emotions   []string
	MainGoal   string
	Gratitude  string

	Persistence store.Persistence
}

func (n *CheckIn) Do(ctx context.Context) error {
	svc := app.New(n.Persistence)

	c := &ci.CheckIn{
		EnergyLevel:     n.Energy,
		PositivityLevel: n.Positivity,
		FocusLevel:      n.Focus,
		SleepQuality:    n.Sleep,
		Emotions:        n.Emotions,
		MainGoal:        n.MainGoal,
		Gratitude:       n.Gratitude,
	}
	if err := svc.RecordCheckIn(ctx, c); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Title(c.Date)
	pp.CheckIn(c)
	return nil
}
