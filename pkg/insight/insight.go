// Package insight defines the cached observation records produced by the
// summarizer and the change-detection hash that decides when a cached set for
// a period is stale.
package insight

import (
	"time"

	"tableflip.dev/tend/pkg/glyph"
	"tableflip.dev/tend/pkg/period"
)

// Type classifies an insight for display.
type Type string

const (
	Trend        Type = "trend"
	Pattern      Type = "pattern"
	Correlation  Type = "correlation"
	Habit        Type = "habit"
	Energy       Type = "energy"
	Productivity Type = "productivity"
)

// DataVersion is bumped when the canonical hash serialization changes, which
// invalidates every cached insight at once.
const DataVersion = 1

// Insight is one cached observation scoped to a period.
type Insight struct {
	ID          string            `json:"id"`
	Content     string            `json:"content"`
	Type        Type              `json:"type"`
	Icon        string            `json:"icon"`
	Period      period.Kind       `json:"timePeriod"`
	PeriodStart time.Time         `json:"periodStart"`
	PeriodEnd   time.Time         `json:"periodEnd"`
	DataHash    string            `json:"dataHash"`
	DataVersion int               `json:"dataVersion"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Fallback is the deterministic insight set served when generation fails.
// It is never cached; the next request retries generation.
func Fallback(kind period.Kind, start, end time.Time) []Insight {
	mk := func(id string, typ Type, content string) Insight {
		return Insight{
			ID:          id,
			Content:     content,
			Type:        typ,
			Icon:        glyph.InsightIcon(string(typ)),
			Period:      kind,
			PeriodStart: start,
			PeriodEnd:   end,
			DataVersion: DataVersion,
		}
	}
	return []Insight{
		mk("fallback-habit", Habit,
			"Keep checking in each morning; trends need a streak to show themselves."),
		mk("fallback-energy", Energy,
			"Your tracked hours are the raw material. Tag moods to see what fuels you."),
		mk("fallback-pattern", Pattern,
			"Patterns surface after a full week of entries. You're building one now."),
	}
}
