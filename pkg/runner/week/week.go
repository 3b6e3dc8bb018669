// Package week renders the weekly aggregate.
package week

import (
	"context"
	"time"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/printers"
	"tableflip.dev/tend/pkg/store"
)

type Week struct {
	On time.Time

	Persistence store.Persistence
}

func (n *Week) Do(ctx context.Context) error {
	svc := app.New(n.Persistence)
	sum, err := svc.Week(ctx, n.On)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.Week(sum)
	return nil
}
