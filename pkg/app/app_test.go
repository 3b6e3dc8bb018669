package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/tend/pkg/checkin"
	"tableflip.dev/tend/pkg/insight"
	"tableflip.dev/tend/pkg/period"
	"tableflip.dev/tend/pkg/store"
	"tableflip.dev/tend/pkg/summarize"
	"tableflip.dev/tend/pkg/timegrid"
)

type stubSummarizer struct {
	category string
	insights []insight.Insight
	fail     bool
	calls    int
}

func (s *stubSummarizer) Categorize(ctx context.Context, activity string) (summarize.Category, error) {
	if s.fail {
		return summarize.Category{}, errors.New("stub: unavailable")
	}
	return summarize.Category{Name: s.category, Confidence: 0.9}, nil
}

func (s *stubSummarizer) GenerateInsights(ctx context.Context, snap summarize.Snapshot) ([]insight.Insight, error) {
	s.calls++
	if s.fail {
		return nil, errors.New("stub: unavailable")
	}
	return append([]insight.Insight(nil), s.insights...), nil
}

func newService(t *testing.T) *Service {
	t.Helper()
	svc := New(store.OpenDiskv(t.TempDir()))
	t.Cleanup(func() { _ = svc.Persistence.Close() })
	return svc
}

func at(hour, min int) time.Time {
	return time.Date(2024, time.March, 1, hour, min, 0, 0, time.UTC)
}

func TestTrackActivityRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	if _, err := svc.TrackActivity(ctx, TrackRequest{Activity: "reading", Start: at(10, 0), End: at(10, 30)}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	_, err := svc.TrackActivity(ctx, TrackRequest{Activity: "walk", Start: at(10, 15), End: at(10, 45)})
	if !errors.Is(err, timegrid.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := svc.TrackActivity(ctx, TrackRequest{Activity: "walk", Start: at(10, 30), End: at(11, 0)}); err != nil {
		t.Fatalf("adjacent save failed: %v", err)
	}

	day, err := svc.Day(ctx, at(10, 0))
	if err != nil {
		t.Fatalf("day failed: %v", err)
	}
	if len(day.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(day.Entries))
	}
}

func TestTrackActivitySnapsToGrid(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	e, err := svc.TrackActivity(ctx, TrackRequest{Activity: "stretch", Start: at(10, 7), End: at(10, 38)})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if got := e.Start.UTC(); !got.Equal(at(10, 0)) {
		t.Fatalf("start not snapped: %v", got)
	}
	if got := e.End.UTC(); !got.Equal(at(10, 45)) {
		t.Fatalf("end not snapped: %v", got)
	}
	if e.DurationMinutes != 45 {
		t.Fatalf("duration = %d, want 45", e.DurationMinutes)
	}
}

func TestTrackActivityCategorizeFallsBack(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	svc.Summarizer = &stubSummarizer{fail: true}

	e, err := svc.TrackActivity(ctx, TrackRequest{Activity: "reading", Start: at(8, 0), End: at(8, 30)})
	if err != nil {
		t.Fatalf("save failed despite summarizer outage: %v", err)
	}
	if e.Category != "General" {
		t.Fatalf("category = %q, want General", e.Category)
	}

	svc.Summarizer = &stubSummarizer{category: "Learning"}
	e, err = svc.TrackActivity(ctx, TrackRequest{Activity: "reading", Start: at(9, 0), End: at(9, 30)})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if e.Category != "Learning" {
		t.Fatalf("category = %q, want Learning", e.Category)
	}
}

func TestRecordCheckInDefaultsDate(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	svc.Now = func() time.Time { return at(7, 30) }

	c := &checkin.CheckIn{EnergyLevel: 6, PositivityLevel: 8}
	if err := svc.RecordCheckIn(ctx, c); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if c.Date != "2024-03-01" {
		t.Fatalf("date = %q", c.Date)
	}

	day, err := svc.Day(ctx, at(12, 0))
	if err != nil {
		t.Fatalf("day failed: %v", err)
	}
	if day.CheckIn == nil || day.CheckIn.EnergyLevel != 6 {
		t.Fatalf("check-in not visible in day summary: %+v", day.CheckIn)
	}
}

func TestWeekAggregates(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	svc.Summarizer = &stubSummarizer{category: "Movement"}

	if _, err := svc.TrackActivity(ctx, TrackRequest{Activity: "run", Start: at(7, 0), End: at(7, 45)}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := svc.TrackActivity(ctx, TrackRequest{Activity: "yoga", Start: at(18, 0), End: at(18, 30)}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	for _, d := range []int{0, 1} {
		c := &checkin.CheckIn{Date: period.DateKey(at(8, 0).AddDate(0, 0, -d)), EnergyLevel: 4 + d*2, PositivityLevel: 6}
		if err := svc.RecordCheckIn(ctx, c); err != nil {
			t.Fatalf("check-in failed: %v", err)
		}
	}

	week, err := svc.Week(ctx, at(12, 0))
	if err != nil {
		t.Fatalf("week failed: %v", err)
	}
	if got := week.MinutesByCategory["Movement"]; got != 75 {
		t.Fatalf("Movement minutes = %d, want 75", got)
	}
	if len(week.CheckIns) != 2 {
		t.Fatalf("expected 2 check-ins, got %d", len(week.CheckIns))
	}
	if week.AverageEnergy != 5 {
		t.Fatalf("average energy = %v, want 5", week.AverageEnergy)
	}
}

func seedInsightData(t *testing.T, svc *Service) {
	t.Helper()
	ctx := context.Background()
	for d := 0; d < 3; d++ {
		c := &checkin.CheckIn{Date: period.DateKey(at(8, 0).AddDate(0, 0, -d)), EnergyLevel: 5, PositivityLevel: 7}
		if err := svc.RecordCheckIn(ctx, c); err != nil {
			t.Fatalf("check-in failed: %v", err)
		}
	}
	for i := 0; i < 5; i++ {
		start := at(9, 0).Add(time.Duration(i) * time.Hour)
		_, err := svc.TrackActivity(ctx, TrackRequest{Activity: "block", Start: start, End: start.Add(30 * time.Minute)})
		if err != nil {
			t.Fatalf("seed save failed: %v", err)
		}
	}
}

func TestInsightsNotEnoughData(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, _, err := svc.Insights(ctx, period.Week, at(12, 0))
	if !errors.Is(err, ErrNotEnoughData) {
		t.Fatalf("expected ErrNotEnoughData, got %v", err)
	}
}

func TestInsightsCacheHitAndInvalidation(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	stub := &stubSummarizer{insights: []insight.Insight{{Content: "mornings are strong", Type: insight.Energy}}}
	svc.Summarizer = stub
	svc.Now = func() time.Time { return at(20, 0) }
	seedInsightData(t, svc)

	first, fromCache, err := svc.Insights(ctx, period.Week, at(12, 0))
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if fromCache {
		t.Fatal("first call should not come from cache")
	}
	if len(first) != 1 || first[0].DataHash == "" || first[0].Icon == "" {
		t.Fatalf("generated insight not stamped: %+v", first)
	}

	second, fromCache, err := svc.Insights(ctx, period.Week, at(12, 0))
	if err != nil {
		t.Fatalf("cached read failed: %v", err)
	}
	if !fromCache || stub.calls != 1 {
		t.Fatalf("expected cache hit with one generation, fromCache=%v calls=%d", fromCache, stub.calls)
	}
	if second[0].Content != first[0].Content {
		t.Fatalf("cache returned different content: %q", second[0].Content)
	}

	// New data changes the hash and forces regeneration.
	if _, err := svc.TrackActivity(ctx, TrackRequest{Activity: "evening walk", Start: at(19, 0), End: at(19, 30)}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	_, fromCache, err = svc.Insights(ctx, period.Week, at(12, 0))
	if err != nil {
		t.Fatalf("regenerate failed: %v", err)
	}
	if fromCache || stub.calls != 2 {
		t.Fatalf("expected regeneration, fromCache=%v calls=%d", fromCache, stub.calls)
	}
}

func TestInsightsCacheExpires(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	stub := &stubSummarizer{insights: []insight.Insight{{Content: "steady week", Type: insight.Trend}}}
	svc.Summarizer = stub
	now := at(20, 0)
	svc.Now = func() time.Time { return now }
	seedInsightData(t, svc)

	if _, _, err := svc.Insights(ctx, period.Week, at(12, 0)); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	now = now.Add(25 * time.Hour)
	_, fromCache, err := svc.Insights(ctx, period.Week, at(12, 0))
	if err != nil {
		t.Fatalf("regenerate failed: %v", err)
	}
	if fromCache || stub.calls != 2 {
		t.Fatalf("stale cache should regenerate, fromCache=%v calls=%d", fromCache, stub.calls)
	}
}

func TestInsightsFallbackNotCached(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	stub := &stubSummarizer{fail: true}
	svc.Summarizer = stub
	svc.Now = func() time.Time { return at(20, 0) }
	seedInsightData(t, svc)

	got, fromCache, err := svc.Insights(ctx, period.Week, at(12, 0))
	if err != nil {
		t.Fatalf("fallback path errored: %v", err)
	}
	if fromCache || len(got) == 0 {
		t.Fatalf("expected fallback set, fromCache=%v len=%d", fromCache, len(got))
	}

	// Once the generator recovers, the next request generates instead of
	// serving a cached fallback.
	stub.fail = false
	stub.insights = []insight.Insight{{Content: "recovered", Type: insight.Pattern}}
	got, fromCache, err = svc.Insights(ctx, period.Week, at(12, 0))
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if fromCache || got[0].Content != "recovered" {
		t.Fatalf("expected fresh generation, fromCache=%v content=%q", fromCache, got[0].Content)
	}
}

func TestPruneInsights(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	stub := &stubSummarizer{insights: []insight.Insight{{Content: "old news", Type: insight.Habit}}}
	svc.Summarizer = stub
	now := at(20, 0)
	svc.Now = func() time.Time { return now }
	seedInsightData(t, svc)

	if _, _, err := svc.Insights(ctx, period.Week, at(12, 0)); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	now = now.AddDate(0, 0, 10)
	removed, err := svc.PruneInsights(ctx, 0)
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
}
