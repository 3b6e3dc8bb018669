package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/tend/pkg/checkin"
	"tableflip.dev/tend/pkg/entry"
	"tableflip.dev/tend/pkg/glyph"
	"tableflip.dev/tend/pkg/insight"
	"tableflip.dev/tend/pkg/period"
	"tableflip.dev/tend/pkg/store"
	"tableflip.dev/tend/pkg/summarize"
	"tableflip.dev/tend/pkg/timegrid"
)

// Service provides high-level operations for tracking, check-ins, and
// insights. It wraps persistence and the grid math so UIs and CLIs can share
// logic.
type Service struct {
	Persistence store.Persistence
	Grid        timegrid.Grid
	Summarizer  summarize.Summarizer
	// MaxAge bounds how long a cached insight set stays servable. Zero means
	// the default freshness window.
	MaxAge time.Duration
	// Now is swappable for tests.
	Now func() time.Time
}

var ErrNotEnoughData = errors.New("app: not enough data to generate insights")

// New builds a service with the default grid and the offline summarizer.
func New(p store.Persistence) *Service {
	return &Service{
		Persistence: p,
		Grid:        timegrid.New(timegrid.Config{}),
		Summarizer:  summarize.Fallback{},
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) summarizer() summarize.Summarizer {
	if s.Summarizer != nil {
		return s.Summarizer
	}
	return summarize.Fallback{}
}

func (s *Service) check() error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	return nil
}

// TrackRequest describes one activity to place on the day grid.
type TrackRequest struct {
	Activity    string
	Start       time.Time
	End         time.Time
	MoodRating  int
	EmotionTags []string
	Reflection  string
}

// TrackActivity validates the request, snaps both bounds to the grid, rejects
// intervals overlapping an existing entry on the same day, categorizes the
// activity, and persists it. Categorization failures fall back to the default
// category rather than failing the save.
func (s *Service) TrackActivity(ctx context.Context, req TrackRequest) (*entry.Entry, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	day := period.StartOfDay(req.Start)
	start := s.Grid.SnapToSlot(req.Start, day)
	end := s.Grid.SnapToSlot(req.End, day)

	e, err := entry.New(req.Activity, start, end)
	if err != nil {
		return nil, err
	}
	e.MoodRating = req.MoodRating
	e.SetTags(req.EmotionTags)
	e.Reflection = strings.TrimSpace(req.Reflection)
	now := entry.Timestamp{Time: s.now()}
	e.Created, e.Updated = now, now
	if err := e.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.Persistence.EntriesForDate(ctx, e.Date)
	if err != nil {
		return nil, err
	}
	if c := timegrid.FindConflict(start, end, existing, ""); c != nil {
		return nil, fmt.Errorf("%q is already tracked there: %w", c.Activity, timegrid.ErrConflict)
	}

	if cat, err := s.summarizer().Categorize(ctx, e.Activity); err == nil && cat.Name != "" {
		e.Category = cat.Name
	}

	if err := s.Persistence.SaveEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateEntry applies a partial update. The interval itself is immutable;
// re-timing an activity is delete and re-track.
func (s *Service) UpdateEntry(ctx context.Context, id string, patch entry.Patch) (*entry.Entry, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.Persistence.UpdateEntry(ctx, id, patch, s.now())
}

// DeleteEntry removes an entry by id.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	if err := s.check(); err != nil {
		return err
	}
	return s.Persistence.DeleteEntry(ctx, id)
}

// DaySummary is everything recorded for a single day.
type DaySummary struct {
	Date         string
	Prompt       string
	CheckIn      *checkin.CheckIn
	Entries      []*entry.Entry
	Notes        []checkin.PromptResponse
	TotalMinutes int
}

// Day gathers the check-in, entries, and prompt responses for one day. A
// missing check-in is not an error; the summary just carries nil.
func (s *Service) Day(ctx context.Context, ref time.Time) (*DaySummary, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	key := period.DateKey(ref)
	sum := &DaySummary{Date: key, Prompt: checkin.PromptFor(ref)}

	ci, err := s.Persistence.CheckInForDate(ctx, key)
	switch {
	case err == nil:
		sum.CheckIn = ci
	case errors.Is(err, store.ErrNotFound):
	default:
		return nil, err
	}

	entries, err := s.Persistence.EntriesForDate(ctx, key)
	if err != nil {
		return nil, err
	}
	sum.Entries = entries
	for _, e := range entries {
		sum.TotalMinutes += e.DurationMinutes
	}

	notes, err := s.Persistence.PromptResponsesForDate(ctx, key)
	if err != nil {
		return nil, err
	}
	sum.Notes = notes
	return sum, nil
}

// WeekSummary aggregates a Sunday-to-Saturday week.
type WeekSummary struct {
	Start             time.Time
	End               time.Time
	Entries           []*entry.Entry
	CheckIns          []checkin.CheckIn
	MinutesByCategory map[string]int
	AverageEnergy     float64
	AveragePositivity float64
}

// Week aggregates entries and check-ins for the week containing ref.
func (s *Service) Week(ctx context.Context, ref time.Time) (*WeekSummary, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	start, end := period.Bounds(ref, period.Week)
	entries, err := s.Persistence.EntriesBetween(ctx, period.DateKey(start), period.DateKey(end))
	if err != nil {
		return nil, err
	}
	checkIns, err := s.Persistence.CheckInsBetween(ctx, period.DateKey(start), period.DateKey(end))
	if err != nil {
		return nil, err
	}

	sum := &WeekSummary{
		Start:             start,
		End:               end,
		Entries:           entries,
		CheckIns:          checkIns,
		MinutesByCategory: map[string]int{},
	}
	for _, e := range entries {
		cat := e.Category
		if cat == "" {
			cat = entry.DefaultCategory
		}
		sum.MinutesByCategory[cat] += e.DurationMinutes
	}
	if len(checkIns) > 0 {
		var energy, positivity int
		for _, c := range checkIns {
			energy += c.EnergyLevel
			positivity += c.PositivityLevel
		}
		sum.AverageEnergy = float64(energy) / float64(len(checkIns))
		sum.AveragePositivity = float64(positivity) / float64(len(checkIns))
	}
	return sum, nil
}

// RecordCheckIn validates and stores a morning check-in. One check-in per
// day; a second save for the same date replaces the first.
func (s *Service) RecordCheckIn(ctx context.Context, c *checkin.CheckIn) error {
	if err := s.check(); err != nil {
		return err
	}
	if c.Date == "" {
		c.Date = period.DateKey(s.now())
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Created.IsZero() {
		c.Created = entry.Timestamp{Time: s.now()}
	}
	return s.Persistence.SaveCheckIn(ctx, c)
}

// RecordPromptResponse saves an answer to the day's reflective prompt.
func (s *Service) RecordPromptResponse(ctx context.Context, day time.Time, prompt, response string) (*checkin.PromptResponse, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, errors.New("app: empty response")
	}
	if prompt == "" {
		prompt = checkin.PromptFor(day)
	}
	p := &checkin.PromptResponse{
		Date:     period.DateKey(day),
		Prompt:   prompt,
		Response: response,
		Created:  entry.Timestamp{Time: s.now()},
	}
	if err := s.Persistence.SavePromptResponse(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetGoals replaces the current goal set, dropping blank lines.
func (s *Service) SetGoals(ctx context.Context, goals []string) error {
	if err := s.check(); err != nil {
		return err
	}
	cleaned := make([]string, 0, len(goals))
	for _, g := range goals {
		if g = strings.TrimSpace(g); g != "" {
			cleaned = append(cleaned, g)
		}
	}
	return s.Persistence.SaveGoals(ctx, cleaned)
}

// Goals returns the current goal set.
func (s *Service) Goals(ctx context.Context) ([]string, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.Persistence.Goals(ctx)
}

// Insights returns the insight set for the period containing ref. A cached
// set is served while its data hash still matches and it is fresh enough;
// otherwise a new set is generated and cached. Generation failure serves a
// deterministic fallback set without caching it, so the next request retries.
// The bool reports whether the result came from cache. ErrNotEnoughData is
// returned before any generation is attempted.
func (s *Service) Insights(ctx context.Context, kind period.Kind, ref time.Time) ([]insight.Insight, bool, error) {
	if err := s.check(); err != nil {
		return nil, false, err
	}
	start, end := period.Bounds(ref, kind)
	startKey, endKey := period.DateKey(start), period.DateKey(end)

	checkIns, err := s.Persistence.CheckInsBetween(ctx, startKey, endKey)
	if err != nil {
		return nil, false, err
	}
	activities, err := s.Persistence.EntriesBetween(ctx, startKey, endKey)
	if err != nil {
		return nil, false, err
	}
	if !insight.EnoughData(len(checkIns), len(activities)) {
		return nil, false, ErrNotEnoughData
	}
	goals, err := s.Persistence.Goals(ctx)
	if err != nil {
		return nil, false, err
	}

	hash := insight.DataHash(checkIns, activities, goals)
	now := s.now()

	cached, err := s.Persistence.InsightsForPeriod(ctx, kind, start, end)
	if err != nil {
		return nil, false, err
	}
	if len(cached) > 0 &&
		cached[0].DataVersion == insight.DataVersion &&
		insight.CacheValid(cached[0].DataHash, hash, cached[0].GeneratedAt, s.MaxAge, now) {
		return cached, true, nil
	}

	snap := summarize.Snapshot{
		Kind:        kind,
		PeriodStart: start,
		PeriodEnd:   end,
		CheckIns:    checkIns,
		Activities:  activities,
		Goals:       goals,
	}
	generated, err := s.summarizer().GenerateInsights(ctx, snap)
	if err != nil || len(generated) == 0 {
		return insight.Fallback(kind, start, end), false, nil
	}

	for i := range generated {
		if generated[i].ID == "" {
			generated[i].ID = fmt.Sprintf("%s-%s-%d", kind, startKey, i)
		}
		if generated[i].Icon == "" {
			generated[i].Icon = glyph.InsightIcon(string(generated[i].Type))
		}
		generated[i].Period = kind
		generated[i].PeriodStart = start
		generated[i].PeriodEnd = end
		generated[i].DataHash = hash
		generated[i].DataVersion = insight.DataVersion
		generated[i].GeneratedAt = now
	}
	if err := s.Persistence.SaveInsights(ctx, kind, start, end, generated); err != nil {
		return nil, false, err
	}
	return generated, false, nil
}

// PruneInsights drops cached insight sets older than the retention window.
func (s *Service) PruneInsights(ctx context.Context, retention time.Duration) (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	if retention <= 0 {
		retention = 7 * 24 * time.Hour
	}
	return s.Persistence.DeleteInsightsOlderThan(ctx, s.now().Add(-retention))
}
