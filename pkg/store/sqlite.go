package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tableflip.dev/tend/pkg/checkin"
	"tableflip.dev/tend/pkg/entry"
	"tableflip.dev/tend/pkg/insight"
	"tableflip.dev/tend/pkg/period"
)

// OpenSQLite opens (and initializes) the sqlite backed Persistence at path.
func OpenSQLite(path string) (Persistence, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("store: connect sqlite: %w", err)
	}
	s := &sqliteStore{db: db}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

type sqliteStore struct {
	db *sql.DB
}

func (s *sqliteStore) init() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS calendar_time_entries (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			activity TEXT NOT NULL,
			category TEXT NOT NULL,
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			duration INTEGER NOT NULL,
			mood_rating INTEGER,
			emotional_tags TEXT,
			reflection TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS check_ins (
			date TEXT PRIMARY KEY,
			energy_level INTEGER CHECK(energy_level >= 1 AND energy_level <= 10),
			positivity_level INTEGER CHECK(positivity_level >= 1 AND positivity_level <= 10),
			focus_level INTEGER,
			sleep_quality INTEGER,
			emotions TEXT,
			main_goal TEXT,
			gratitude TEXT,
			created_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS prompt_responses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			prompt TEXT NOT NULL,
			response TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS goals (
			position INTEGER PRIMARY KEY,
			goal TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS insights (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			type TEXT NOT NULL,
			icon TEXT,
			time_period TEXT NOT NULL,
			period_start DATETIME NOT NULL,
			period_end DATETIME NOT NULL,
			data_hash TEXT NOT NULL,
			data_version INTEGER NOT NULL,
			generated_at DATETIME NOT NULL,
			metadata TEXT
		)`,

		`CREATE INDEX IF NOT EXISTS idx_entries_date ON calendar_time_entries(date)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_start ON calendar_time_entries(start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_date ON prompt_responses(date)`,
		`CREATE INDEX IF NOT EXISTS idx_insights_period ON insights(time_period, period_start, period_end)`,
		`CREATE INDEX IF NOT EXISTS idx_insights_hash ON insights(data_hash, time_period)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("store: init schema: %w", err)
		}
	}
	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// --- entries ---

func (s *sqliteStore) SaveEntry(ctx context.Context, e *entry.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = newID(e)
	}
	tags, err := json.Marshal(e.EmotionTags)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO calendar_time_entries
		(id, date, activity, category, start_time, end_time, duration,
		 mood_rating, emotional_tags, reflection, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Date, e.Activity, e.Category, e.Start.Time, e.End.Time,
		e.DurationMinutes, nullableInt(e.MoodRating), string(tags),
		e.Reflection, e.Created.Time, e.Updated.Time)
	return err
}

func (s *sqliteStore) UpdateEntry(ctx context.Context, id string, patch entry.Patch, now time.Time) (*entry.Entry, error) {
	e, err := s.entryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := e.Apply(patch, now); err != nil {
		return nil, err
	}
	if err := s.SaveEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *sqliteStore) DeleteEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM calendar_time_entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const entryColumns = `id, date, activity, category, start_time, end_time,
	duration, mood_rating, emotional_tags, reflection, created_at, updated_at`

func (s *sqliteStore) entryByID(ctx context.Context, id string) (*entry.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+`
		FROM calendar_time_entries WHERE id = ?
	`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

func (s *sqliteStore) EntriesForDate(ctx context.Context, dateKey string) ([]*entry.Entry, error) {
	return s.queryEntries(ctx, `
		SELECT `+entryColumns+`
		FROM calendar_time_entries WHERE date = ? ORDER BY start_time
	`, dateKey)
}

func (s *sqliteStore) EntriesBetween(ctx context.Context, startKey, endKey string) ([]*entry.Entry, error) {
	return s.queryEntries(ctx, `
		SELECT `+entryColumns+`
		FROM calendar_time_entries WHERE date BETWEEN ? AND ? ORDER BY start_time
	`, startKey, endKey)
}

func (s *sqliteStore) AllEntries(ctx context.Context) ([]*entry.Entry, error) {
	return s.queryEntries(ctx, `
		SELECT `+entryColumns+`
		FROM calendar_time_entries ORDER BY start_time
	`)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*entry.Entry, error) {
	var e entry.Entry
	var start, end, created, updated time.Time
	var mood sql.NullInt64
	var tags, reflection sql.NullString
	err := row.Scan(&e.ID, &e.Date, &e.Activity, &e.Category, &start, &end,
		&e.DurationMinutes, &mood, &tags, &reflection, &created, &updated)
	if err != nil {
		return nil, err
	}
	e.Start = entry.Timestamp{Time: start}
	e.End = entry.Timestamp{Time: end}
	e.Created = entry.Timestamp{Time: created}
	e.Updated = entry.Timestamp{Time: updated}
	if mood.Valid {
		e.MoodRating = int(mood.Int64)
	}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &e.EmotionTags); err != nil {
			return nil, err
		}
	}
	if reflection.Valid {
		e.Reflection = reflection.String
	}
	return &e, nil
}

func (s *sqliteStore) queryEntries(ctx context.Context, query string, args ...interface{}) ([]*entry.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entry.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullableInt(v int) interface{} {
	if v == 0 {
		return nil
	}
	return v
}

// --- check-ins ---

func (s *sqliteStore) SaveCheckIn(ctx context.Context, c *checkin.CheckIn) error {
	if err := c.Validate(); err != nil {
		return err
	}
	emotions, err := json.Marshal(c.Emotions)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO check_ins
		(date, energy_level, positivity_level, focus_level, sleep_quality,
		 emotions, main_goal, gratitude, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.Date, c.EnergyLevel, c.PositivityLevel, c.FocusLevel, c.SleepQuality,
		string(emotions), c.MainGoal, c.Gratitude, c.Created.Time)
	return err
}

func (s *sqliteStore) CheckInForDate(ctx context.Context, dateKey string) (*checkin.CheckIn, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT date, energy_level, positivity_level, focus_level, sleep_quality,
		       emotions, main_goal, gratitude, created_at
		FROM check_ins WHERE date = ?
	`, dateKey)
	c, err := scanCheckIn(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *sqliteStore) CheckInsBetween(ctx context.Context, startKey, endKey string) ([]checkin.CheckIn, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, energy_level, positivity_level, focus_level, sleep_quality,
		       emotions, main_goal, gratitude, created_at
		FROM check_ins WHERE date BETWEEN ? AND ? ORDER BY date
	`, startKey, endKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []checkin.CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func scanCheckIn(row rowScanner) (*checkin.CheckIn, error) {
	var c checkin.CheckIn
	var created time.Time
	var emotions sql.NullString
	err := row.Scan(&c.Date, &c.EnergyLevel, &c.PositivityLevel, &c.FocusLevel,
		&c.SleepQuality, &emotions, &c.MainGoal, &c.Gratitude, &created)
	if err != nil {
		return nil, err
	}
	c.Created = entry.Timestamp{Time: created}
	if emotions.Valid && emotions.String != "" {
		if err := json.Unmarshal([]byte(emotions.String), &c.Emotions); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// --- prompt responses ---

func (s *sqliteStore) SavePromptResponse(ctx context.Context, r *checkin.PromptResponse) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO prompt_responses (date, prompt, response, created_at)
		VALUES (?, ?, ?, ?)
	`, r.Date, r.Prompt, r.Response, r.Created.Time)
	return err
}

func (s *sqliteStore) PromptResponsesForDate(ctx context.Context, dateKey string) ([]checkin.PromptResponse, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, prompt, response, created_at
		FROM prompt_responses WHERE date = ? ORDER BY created_at
	`, dateKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []checkin.PromptResponse
	for rows.Next() {
		var r checkin.PromptResponse
		var created time.Time
		if err := rows.Scan(&r.Date, &r.Prompt, &r.Response, &created); err != nil {
			return nil, err
		}
		r.Created = entry.Timestamp{Time: created}
		out = append(out, r)
	}
	return out, rows.Err()
}

// --- goals ---

func (s *sqliteStore) SaveGoals(ctx context.Context, goals []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM goals`); err != nil {
		return err
	}
	for i, goal := range goals {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO goals (position, goal) VALUES (?, ?)`, i, goal); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *sqliteStore) Goals(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT goal FROM goals ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var goal string
		if err := rows.Scan(&goal); err != nil {
			return nil, err
		}
		out = append(out, goal)
	}
	return out, rows.Err()
}

// --- insights ---

func (s *sqliteStore) SaveInsights(ctx context.Context, kind period.Kind, periodStart, periodEnd time.Time, insights []insight.Insight) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM insights WHERE time_period = ? AND period_start = ? AND period_end = ?
	`, string(kind), periodStart, periodEnd); err != nil {
		return err
	}
	for i := range insights {
		if insights[i].ID == "" {
			insights[i].ID = newID(insights[i])
		}
		meta, err := json.Marshal(insights[i].Metadata)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO insights
			(id, content, type, icon, time_period, period_start, period_end,
			 data_hash, data_version, generated_at, metadata)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, insights[i].ID, insights[i].Content, string(insights[i].Type),
			insights[i].Icon, string(kind), periodStart, periodEnd,
			insights[i].DataHash, insights[i].DataVersion,
			insights[i].GeneratedAt, string(meta)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *sqliteStore) InsightsForPeriod(ctx context.Context, kind period.Kind, periodStart, periodEnd time.Time) ([]insight.Insight, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, type, icon, time_period, period_start, period_end,
		       data_hash, data_version, generated_at, metadata
		FROM insights
		WHERE time_period = ? AND period_start = ? AND period_end = ?
		ORDER BY id
	`, string(kind), periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []insight.Insight
	for rows.Next() {
		var in insight.Insight
		var kindStr, typeStr string
		var meta sql.NullString
		if err := rows.Scan(&in.ID, &in.Content, &typeStr, &in.Icon, &kindStr,
			&in.PeriodStart, &in.PeriodEnd, &in.DataHash, &in.DataVersion,
			&in.GeneratedAt, &meta); err != nil {
			return nil, err
		}
		in.Type = insight.Type(typeStr)
		in.Period = period.Kind(kindStr)
		if meta.Valid && meta.String != "" && meta.String != "null" {
			if err := json.Unmarshal([]byte(meta.String), &in.Metadata); err != nil {
				return nil, err
			}
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (s *sqliteStore) DeleteInsightsOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM insights WHERE generated_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
