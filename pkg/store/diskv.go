package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/tend/pkg/checkin"
	"tableflip.dev/tend/pkg/entry"
	"tableflip.dev/tend/pkg/insight"
	"tableflip.dev/tend/pkg/period"
)

// Record kinds become the top level directories of the diskv tree. Date keys
// split into year/month/day path segments below them.
const (
	kindEntry   = "entry"
	kindCheckIn = "checkin"
	kindNote    = "note"
	kindInsight = "insight"

	checkInFileName = "day"
	goalsKey        = "goals-current"
)

// OpenDiskv creates the key-value backed Persistence rooted at basePath.
func OpenDiskv(basePath string) Persistence {
	return &diskvStore{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}
}

type diskvStore struct {
	d        *diskv.Diskv
	basePath string
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `kind-date-file`; the ISO date contributes the inner path
// segments.
func toKey(kind, dateKey, file string) string {
	return fmt.Sprintf("%s-%s-%s", kind, dateKey, file)
}

func (p *diskvStore) write(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.d.Write(key, data)
}

func (p *diskvStore) forEach(ctx context.Context, kind string, fn func(key string, data []byte)) error {
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if len(pk.Path) == 0 || pk.Path[0] != kind {
			continue
		}
		data, err := p.d.Read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		fn(key, data)
	}
	return ctx.Err()
}

func (p *diskvStore) Close() error {
	return nil
}

// --- entries ---

func (p *diskvStore) SaveEntry(ctx context.Context, e *entry.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = newID(e)
	}
	return p.write(toKey(kindEntry, e.Date, e.ID), e)
}

func (p *diskvStore) UpdateEntry(ctx context.Context, id string, patch entry.Patch, now time.Time) (*entry.Entry, error) {
	all, err := p.AllEntries(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range all {
		if e.ID == id {
			if err := e.Apply(patch, now); err != nil {
				return nil, err
			}
			if err := p.write(toKey(kindEntry, e.Date, e.ID), e); err != nil {
				return nil, err
			}
			return e, nil
		}
	}
	return nil, ErrNotFound
}

func (p *diskvStore) DeleteEntry(ctx context.Context, id string) error {
	all, err := p.AllEntries(ctx)
	if err != nil {
		return err
	}
	for _, e := range all {
		if e.ID == id {
			return p.d.Erase(toKey(kindEntry, e.Date, e.ID))
		}
	}
	return ErrNotFound
}

func (p *diskvStore) EntriesForDate(ctx context.Context, dateKey string) ([]*entry.Entry, error) {
	return p.EntriesBetween(ctx, dateKey, dateKey)
}

func (p *diskvStore) EntriesBetween(ctx context.Context, startKey, endKey string) ([]*entry.Entry, error) {
	var out []*entry.Entry
	err := p.forEach(ctx, kindEntry, func(key string, data []byte) {
		var e entry.Entry
		if err := json.Unmarshal(data, &e); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			return
		}
		if e.Date >= startKey && e.Date <= endKey {
			out = append(out, &e)
		}
	})
	sortEntries(out)
	return out, err
}

func (p *diskvStore) AllEntries(ctx context.Context) ([]*entry.Entry, error) {
	return p.EntriesBetween(ctx, "0000-00-00", "9999-99-99")
}

func sortEntries(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Start.Equal(entries[j].Start.Time) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].Start.Before(entries[j].Start.Time)
	})
}

// --- check-ins ---

func (p *diskvStore) SaveCheckIn(ctx context.Context, c *checkin.CheckIn) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return p.write(toKey(kindCheckIn, c.Date, checkInFileName), c)
}

func (p *diskvStore) CheckInForDate(ctx context.Context, dateKey string) (*checkin.CheckIn, error) {
	data, err := p.d.Read(toKey(kindCheckIn, dateKey, checkInFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var c checkin.CheckIn
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (p *diskvStore) CheckInsBetween(ctx context.Context, startKey, endKey string) ([]checkin.CheckIn, error) {
	var out []checkin.CheckIn
	err := p.forEach(ctx, kindCheckIn, func(key string, data []byte) {
		var c checkin.CheckIn
		if err := json.Unmarshal(data, &c); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			return
		}
		if c.Date >= startKey && c.Date <= endKey {
			out = append(out, c)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, err
}

// --- prompt responses ---

func (p *diskvStore) SavePromptResponse(ctx context.Context, r *checkin.PromptResponse) error {
	return p.write(toKey(kindNote, r.Date, newID(r)), r)
}

func (p *diskvStore) PromptResponsesForDate(ctx context.Context, dateKey string) ([]checkin.PromptResponse, error) {
	var out []checkin.PromptResponse
	err := p.forEach(ctx, kindNote, func(key string, data []byte) {
		var r checkin.PromptResponse
		if err := json.Unmarshal(data, &r); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			return
		}
		if r.Date == dateKey {
			out = append(out, r)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Created.Before(out[j].Created.Time) })
	return out, err
}

// --- goals ---

func (p *diskvStore) SaveGoals(ctx context.Context, goals []string) error {
	return p.write(goalsKey, goals)
}

func (p *diskvStore) Goals(ctx context.Context) ([]string, error) {
	data, err := p.d.Read(goalsKey)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var goals []string
	if err := json.Unmarshal(data, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// --- insights ---

func (p *diskvStore) SaveInsights(ctx context.Context, kind period.Kind, periodStart, periodEnd time.Time, insights []insight.Insight) error {
	// Replace the period's cached set wholesale.
	existing, err := p.insightKeysForPeriod(ctx, kind, periodStart, periodEnd)
	if err != nil {
		return err
	}
	for _, key := range existing {
		if err := p.d.Erase(key); err != nil {
			return err
		}
	}
	dateKey := period.DateKey(periodStart)
	for i := range insights {
		if insights[i].ID == "" {
			insights[i].ID = newID(insights[i])
		}
		if err := p.write(toKey(kindInsight, dateKey, insights[i].ID), insights[i]); err != nil {
			return err
		}
	}
	return nil
}

func (p *diskvStore) InsightsForPeriod(ctx context.Context, kind period.Kind, periodStart, periodEnd time.Time) ([]insight.Insight, error) {
	var out []insight.Insight
	err := p.forEach(ctx, kindInsight, func(key string, data []byte) {
		var in insight.Insight
		if err := json.Unmarshal(data, &in); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			return
		}
		if in.Period == kind && in.PeriodStart.Equal(periodStart) && in.PeriodEnd.Equal(periodEnd) {
			out = append(out, in)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (p *diskvStore) insightKeysForPeriod(ctx context.Context, kind period.Kind, periodStart, periodEnd time.Time) ([]string, error) {
	var keys []string
	err := p.forEach(ctx, kindInsight, func(key string, data []byte) {
		var in insight.Insight
		if err := json.Unmarshal(data, &in); err != nil {
			return
		}
		if in.Period == kind && in.PeriodStart.Equal(periodStart) && in.PeriodEnd.Equal(periodEnd) {
			keys = append(keys, key)
		}
	})
	return keys, err
}

func (p *diskvStore) DeleteInsightsOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	var stale []string
	err := p.forEach(ctx, kindInsight, func(key string, data []byte) {
		var in insight.Insight
		if err := json.Unmarshal(data, &in); err != nil {
			return
		}
		if in.GeneratedAt.Before(cutoff) {
			stale = append(stale, key)
		}
	})
	if err != nil {
		return 0, err
	}
	for _, key := range stale {
		if err := p.d.Erase(key); err != nil {
			return 0, err
		}
	}
	return len(stale), nil
}
