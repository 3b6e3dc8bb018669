// Package summarize talks to the external language-model service that
// categorizes activities and synthesizes insights. Failures never propagate:
// every caller falls back to deterministic local results.
package summarize

import (
	"context"
	"time"

	"tableflip.dev/tend/pkg/checkin"
	"tableflip.dev/tend/pkg/entry"
	"tableflip.dev/tend/pkg/insight"
	"tableflip.dev/tend/pkg/period"
)

// Category is the classification returned for an activity label.
type Category struct {
	Name       string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Snapshot is the data handed to the insight generator for one period.
type Snapshot struct {
	Kind        period.Kind
	PeriodStart time.Time
	PeriodEnd   time.Time
	CheckIns    []checkin.CheckIn
	Activities  []*entry.Entry
	Goals       []string
}

// Summarizer is the external service contract.
type Summarizer interface {
	Categorize(ctx context.Context, activity string) (Category, error)
	GenerateInsights(ctx context.Context, snap Snapshot) ([]insight.Insight, error)
}

// Fallback is a Summarizer that never fails and never leaves the process.
type Fallback struct{}

var _ Summarizer = Fallback{}

func (Fallback) Categorize(ctx context.Context, activity string) (Category, error) {
	return Category{Name: entry.DefaultCategory, Confidence: 0}, nil
}

func (Fallback) GenerateInsights(ctx context.Context, snap Snapshot) ([]insight.Insight, error) {
	return insight.Fallback(snap.Kind, snap.PeriodStart, snap.PeriodEnd), nil
}
