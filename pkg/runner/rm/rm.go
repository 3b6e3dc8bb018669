// Package rm deletes a tracked entry.
package rm

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/store"
)

type Rm struct {
	ID string

	Persistence store.Persistence
}

func (n *Rm) Do(ctx context.Context) error {
	svc := app.New(n.Persistence)
	if err := svc.DeleteEntry(ctx, n.ID); err != nil {
		return err
	}
	f := color.New(color.Faint)
	_, _ = f.Println(fmt.Sprintf("removed %s", n.ID))
	return nil
}
