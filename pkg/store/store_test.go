package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/tend/pkg/checkin"
	"tableflip.dev/tend/pkg/entry"
	"tableflip.dev/tend/pkg/insight"
	"tableflip.dev/tend/pkg/period"
)

func backends(t *testing.T) map[string]Persistence {
	t.Helper()
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "tend.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Persistence{
		"diskv":  OpenDiskv(t.TempDir()),
		"sqlite": sqlite,
	}
}

func testEntry(t *testing.T, activity string, h, m int) *entry.Entry {
	t.Helper()
	start := time.Date(2024, time.March, 1, h, m, 0, 0, time.UTC)
	e, err := entry.New(activity, start, start.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	e.Created = entry.Timestamp{Time: start}
	e.Updated = entry.Timestamp{Time: start}
	return e
}

func TestEntryLifecycle(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			e := testEntry(t, "writing", 9, 0)
			if err := p.SaveEntry(ctx, e); err != nil {
				t.Fatalf("save: %v", err)
			}
			if e.ID == "" {
				t.Fatalf("save must assign an id")
			}

			got, err := p.EntriesForDate(ctx, "2024-03-01")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != 1 || got[0].Activity != "writing" {
				t.Fatalf("read after write failed: %+v", got)
			}

			mood := 4
			updated, err := p.UpdateEntry(ctx, e.ID, entry.Patch{MoodRating: &mood},
				time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC))
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if updated.MoodRating != 4 {
				t.Fatalf("patch not applied: %+v", updated)
			}

			got, _ = p.EntriesForDate(ctx, "2024-03-01")
			if got[0].MoodRating != 4 {
				t.Fatalf("update not visible on re-read")
			}

			if err := p.DeleteEntry(ctx, e.ID); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := p.DeleteEntry(ctx, e.ID); !errors.Is(err, ErrNotFound) {
				t.Fatalf("second delete should be ErrNotFound, got %v", err)
			}
		})
	}
}

func TestEntriesSortedAndRanged(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			later := testEntry(t, "later", 14, 0)
			earlier := testEntry(t, "earlier", 9, 0)
			for _, e := range []*entry.Entry{later, earlier} {
				if err := p.SaveEntry(ctx, e); err != nil {
					t.Fatalf("save: %v", err)
				}
			}

			got, err := p.EntriesBetween(ctx, "2024-03-01", "2024-03-07")
			if err != nil {
				t.Fatalf("between: %v", err)
			}
			if len(got) != 2 || got[0].Activity != "earlier" {
				t.Fatalf("entries not sorted by start: %+v", got)
			}

			got, _ = p.EntriesBetween(ctx, "2024-03-02", "2024-03-07")
			if len(got) != 0 {
				t.Fatalf("range filter leaked entries: %+v", got)
			}
		})
	}
}

func TestUpdateEntryNotFound(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := p.UpdateEntry(context.Background(), "missing", entry.Patch{}, time.Now())
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestCheckInOverwritePerDay(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := p.CheckInForDate(ctx, "2024-03-01"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}

			c := &checkin.CheckIn{Date: "2024-03-01", EnergyLevel: 6, PositivityLevel: 7,
				Emotions: []string{"calm"}, MainGoal: "focus",
				Created: entry.Timestamp{Time: time.Date(2024, time.March, 1, 7, 0, 0, 0, time.UTC)}}
			if err := p.SaveCheckIn(ctx, c); err != nil {
				t.Fatalf("save: %v", err)
			}

			c.EnergyLevel = 8
			if err := p.SaveCheckIn(ctx, c); err != nil {
				t.Fatalf("overwrite: %v", err)
			}

			got, err := p.CheckInForDate(ctx, "2024-03-01")
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if got.EnergyLevel != 8 || len(got.Emotions) != 1 {
				t.Fatalf("overwrite lost data: %+v", got)
			}

			all, err := p.CheckInsBetween(ctx, "2024-03-01", "2024-03-31")
			if err != nil || len(all) != 1 {
				t.Fatalf("one check-in per day expected, got %d (%v)", len(all), err)
			}
		})
	}
}

func TestGoalsRoundTrip(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if goals, err := p.Goals(ctx); err != nil || len(goals) != 0 {
				t.Fatalf("fresh store should have no goals (%v, %v)", goals, err)
			}
			want := []string{"sleep more", "exercise"}
			if err := p.SaveGoals(ctx, want); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := p.Goals(ctx)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if len(got) != 2 || got[0] != "sleep more" || got[1] != "exercise" {
				t.Fatalf("goals = %v", got)
			}
		})
	}
}

func TestPromptResponses(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r := &checkin.PromptResponse{
				Date: "2024-03-01", Prompt: "p?", Response: "r",
				Created: entry.Timestamp{Time: time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)},
			}
			if err := p.SavePromptResponse(ctx, r); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := p.PromptResponsesForDate(ctx, "2024-03-01")
			if err != nil || len(got) != 1 || got[0].Response != "r" {
				t.Fatalf("read = %+v (%v)", got, err)
			}
		})
	}
}

func TestInsightsReplaceAndPrune(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			start, end := period.Bounds(time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC), period.Week)

			first := []insight.Insight{{
				Content: "old", Type: insight.Trend, Period: period.Week,
				PeriodStart: start, PeriodEnd: end, DataHash: "aaa",
				DataVersion: insight.DataVersion,
				GeneratedAt: time.Date(2024, time.March, 6, 8, 0, 0, 0, time.UTC),
			}}
			if err := p.SaveInsights(ctx, period.Week, start, end, first); err != nil {
				t.Fatalf("save: %v", err)
			}

			second := []insight.Insight{
				{Content: "new a", Type: insight.Energy, Period: period.Week,
					PeriodStart: start, PeriodEnd: end, DataHash: "bbb",
					DataVersion: insight.DataVersion,
					GeneratedAt: time.Date(2024, time.March, 7, 8, 0, 0, 0, time.UTC)},
				{Content: "new b", Type: insight.Habit, Period: period.Week,
					PeriodStart: start, PeriodEnd: end, DataHash: "bbb",
					DataVersion: insight.DataVersion,
					GeneratedAt: time.Date(2024, time.March, 7, 8, 0, 0, 0, time.UTC)},
			}
			if err := p.SaveInsights(ctx, period.Week, start, end, second); err != nil {
				t.Fatalf("replace: %v", err)
			}

			got, err := p.InsightsForPeriod(ctx, period.Week, start, end)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("replace should supersede the old set, got %d", len(got))
			}
			for _, in := range got {
				if in.Content == "old" {
					t.Fatalf("old insight survived replacement")
				}
			}

			n, err := p.DeleteInsightsOlderThan(ctx, time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC))
			if err != nil {
				t.Fatalf("prune: %v", err)
			}
			if n != 2 {
				t.Fatalf("pruned %d, want 2", n)
			}
			got, _ = p.InsightsForPeriod(ctx, period.Week, start, end)
			if len(got) != 0 {
				t.Fatalf("prune left %d insights", len(got))
			}
		})
	}
}
