// Package store persists entries, check-ins, prompt responses, goals, and
// cached insights. Two backends implement the same Persistence contract: a
// diskv key-value store and a sqlite database. The backend is chosen once at
// startup from config; nothing above this package branches on it.
package store

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/tend/pkg/checkin"
	"tableflip.dev/tend/pkg/entry"
	"tableflip.dev/tend/pkg/insight"
	"tableflip.dev/tend/pkg/period"
)

// ErrNotFound is returned when a lookup by id or date finds nothing.
var ErrNotFound = errors.New("store: not found")

// Persistence is the storage contract consumed by the app service. Writes are
// visible to subsequent reads from the same process.
type Persistence interface {
	SaveEntry(ctx context.Context, e *entry.Entry) error
	UpdateEntry(ctx context.Context, id string, patch entry.Patch, now time.Time) (*entry.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
	EntriesForDate(ctx context.Context, dateKey string) ([]*entry.Entry, error)
	EntriesBetween(ctx context.Context, startKey, endKey string) ([]*entry.Entry, error)
	AllEntries(ctx context.Context) ([]*entry.Entry, error)

	SaveCheckIn(ctx context.Context, c *checkin.CheckIn) error
	CheckInForDate(ctx context.Context, dateKey string) (*checkin.CheckIn, error)
	CheckInsBetween(ctx context.Context, startKey, endKey string) ([]checkin.CheckIn, error)

	SavePromptResponse(ctx context.Context, p *checkin.PromptResponse) error
	PromptResponsesForDate(ctx context.Context, dateKey string) ([]checkin.PromptResponse, error)

	SaveGoals(ctx context.Context, goals []string) error
	Goals(ctx context.Context) ([]string, error)

	SaveInsights(ctx context.Context, kind period.Kind, periodStart, periodEnd time.Time, insights []insight.Insight) error
	InsightsForPeriod(ctx context.Context, kind period.Kind, periodStart, periodEnd time.Time) ([]insight.Insight, error)
	DeleteInsightsOlderThan(ctx context.Context, cutoff time.Time) (int, error)

	Close() error
}

// Load creates a Persistence from config, defaulting to the diskv backend.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	switch cfg.Backend() {
	case BackendSQLite:
		return OpenSQLite(cfg.BasePath())
	case BackendDiskv, "":
		return OpenDiskv(cfg.BasePath()), nil
	}
	return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
}

// newID derives a short stable id from the record content plus its creation
// time, the same scheme used for journal keys.
func newID(v interface{}) string {
	b, _ := json.Marshal(v)
	sum := md5.Sum(b)
	return fmt.Sprintf("%x", sum[:8])
}
