// Package goals shows or replaces the current goal set.
package goals

import (
	"context"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/printers"
	"tableflip.dev/tend/pkg/store"
)

type Goals struct {
	// Set replaces the goal set when non-nil; nil just lists.
	Set []string

	Persistence store.Persistence
}

func (n *Goals) Do(ctx context.Context) error {
	svc := app.New(n.Persistence)

	if n.Set != nil {
		if err := svc.SetGoals(ctx, n.Set); err != nil {
			return err
		}
	}

	goals, err := svc.Goals(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.Goals(goals)
	return nil
}
