// Package edit applies a partial update to a tracked entry.
package edit

import (
	"context"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/entry"
	"tableflip.dev/tend/pkg/printers"
	"tableflip.dev/tend/pkg/store"
)

type Edit struct {
	ID    string
	Patch entry.Patch

	Persistence store.Persistence
}

func (n *Edit) Do(ctx context.Context) error {
	svc := app.New(n.Persistence)
	e, err := svc.UpdateEntry(ctx, n.ID, n.Patch)
	if err != nil {
		return err
	}

	day, err := svc.Day(ctx, e.Start.Time)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true}
	pp.Title(day.Date)
	pp.Entries(day.Entries...)
	return nil
}
