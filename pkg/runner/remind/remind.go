// Package remind runs the foreground reminder loop: a morning check-in nudge
// and a nightly prune of stale cached insights.
package remind

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/checkin"
	"tableflip.dev/tend/pkg/store"
)

const (
	DefaultMorning = "0 8 * * *"
	DefaultPrune   = "0 3 * * *"
)

type Remind struct {
	// Morning is the cron schedule for the check-in nudge.
	Morning string
	// Retention bounds how long cached insights are kept; zero keeps the
	// service default.
	Retention time.Duration

	Persistence store.Persistence
}

func (n *Remind) Do(ctx context.Context) error {
	svc := app.New(n.Persistence)

	morning := n.Morning
	if morning == "" {
		morning = DefaultMorning
	}

	c := cron.New()
	if _, err := c.AddFunc(morning, func() {
		day, err := svc.Day(ctx, time.Now())
		if err != nil {
			log.Printf("reminder: %v", err)
			return
		}
		if day.CheckIn != nil {
			return
		}
		f := color.New(color.Bold)
		_, _ = f.Println("time to check in: tend checkin")
		_, _ = fmt.Println(checkin.PromptFor(time.Now()))
	}); err != nil {
		return err
	}
	if _, err := c.AddFunc(DefaultPrune, func() {
		removed, err := svc.PruneInsights(ctx, n.Retention)
		if err != nil {
			log.Printf("prune: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("pruned %d stale insights", removed)
		}
	}); err != nil {
		return err
	}

	c.Start()
	defer c.Stop()

	<-ctx.Done()
	return nil
}
