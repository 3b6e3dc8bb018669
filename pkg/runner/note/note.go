// Package note answers the day's reflective prompt.
package note

import (
	"context"
	"time"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/printers"
	"tableflip.dev/tend/pkg/store"
)

type Note struct {
	On       time.Time
	Prompt   string
	Response string

	Persistence store.Persistence
}

func (n *Note) Do(ctx context.Context) error {
	svc := app.New(n.Persistence)
	if _, err := svc.RecordPromptResponse(ctx, n.On, n.Prompt, n.Response); err != nil {
		return err
	}

	sum, err := svc.Day(ctx, n.On)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.Title(sum.Date)
	pp.Notes(sum.Notes)
	return nil
}
