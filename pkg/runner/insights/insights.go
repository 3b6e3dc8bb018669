// Package insights serves the cached-or-generated insight set for a period.
package insights

import (
	"context"
	"errors"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/period"
	"tableflip.dev/tend/pkg/printers"
	"tableflip.dev/tend/pkg/store"
	"tableflip.dev/tend/pkg/summarize"
)

type Insights struct {
	Kind period.Kind
	On   time.Time

	Persistence store.Persistence
	Summarizer  summarize.Summarizer
}

func (n *Insights) Do(ctx context.Context) error {
	svc := app.New(n.Persistence)
	if n.Summarizer != nil {
		svc.Summarizer = n.Summarizer
	}

	set, fromCache, err := svc.Insights(ctx, n.Kind, n.On)
	if errors.Is(err, app.ErrNotEnoughData) {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Println("not enough recorded yet, keep checking in and tracking for a few days")
		return nil
	}
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Insights(set, fromCache)
	return nil
}
