// Package day renders everything recorded for one day.
package day

import (
	"context"
	"time"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/printers"
	"tableflip.dev/tend/pkg/store"
)

type Day struct {
	On     time.Time
	ShowID bool

	Persistence store.Persistence
}

func (n *Day) Do(ctx context.Context) error {
	svc := app.New(n.Persistence)
	sum, err := svc.Day(ctx, n.On)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.Day(sum)
	return nil
}
