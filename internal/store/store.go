// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/verte-zerg/readpace/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

//go:embed migrations/*.sql
var migrations embed.FS

// timeLayout is fixed width so text columns sort chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for progress, goals and stats.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	store := New(db)
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// New wraps an already open database without running migrations.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	// m.Close would close the shared *sql.DB, so only the source is released.
	defer func() {
		if cerr := src.Close(); cerr != nil {
			_ = cerr
		}
	}()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// SaveProgress appends a progress record and returns its id.
func (s *Store) SaveProgress(ctx context.Context, rec model.ProgressRecord) (int64, error) {
	settings, err := encodeSettings(rec.Settings)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO progress (user_id, method, date, duration_seconds, words_read, wpm, comprehension, word_list_id, settings, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.UserID,
		rec.Method,
		formatTime(rec.Date),
		rec.DurationSeconds,
		rec.WordsRead,
		rec.WPM,
		rec.Comprehension,
		rec.WordListID,
		settings,
		formatTime(rec.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert progress: %w", err)
	}
	return res.LastInsertId()
}

// ListProgress returns up to limit records for userID, newest first.
// A non-positive limit returns the whole history.
func (s *Store) ListProgress(ctx context.Context, userID string, limit int) ([]model.ProgressRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, method, date, duration_seconds, words_read, wpm, comprehension, word_list_id, settings, created_at
		 FROM progress
		 WHERE user_id = ?
		 ORDER BY date DESC, id DESC
		 LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.ProgressRecord
	for rows.Next() {
		var (
			rec       model.ProgressRecord
			date      string
			settings  string
			createdAt string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Method, &date, &rec.DurationSeconds, &rec.WordsRead,
			&rec.WPM, &rec.Comprehension, &rec.WordListID, &settings, &createdAt); err != nil {
			return nil, err
		}
		if rec.Date, err = parseTime(date); err != nil {
			return nil, err
		}
		if rec.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if rec.Settings, err = decodeSettings(settings); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// GetStats returns the stored stats snapshot, or nil when none exists.
func (s *Store) GetStats(ctx context.Context, userID string) (*model.UserStats, error) {
	var (
		st          model.UserStats
		level       string
		lastUpdated string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, total_practice_time, average_wpm, best_wpm, current_streak, longest_streak, total_sessions, level, last_updated
		 FROM stats WHERE user_id = ?`, userID).
		Scan(&st.UserID, &st.TotalPracticeTime, &st.AverageWPM, &st.BestWPM, &st.CurrentStreak,
			&st.LongestStreak, &st.TotalSessions, &level, &lastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	st.Level = model.Level(level)
	if st.LastUpdated, err = parseTime(lastUpdated); err != nil {
		return nil, err
	}
	return &st, nil
}

// SaveStats replaces the stats snapshot for the user.
func (s *Store) SaveStats(ctx context.Context, st model.UserStats) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO stats (user_id, total_practice_time, average_wpm, best_wpm, current_streak, longest_streak, total_sessions, level, last_updated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			total_practice_time = excluded.total_practice_time,
			average_wpm = excluded.average_wpm,
			best_wpm = excluded.best_wpm,
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			total_sessions = excluded.total_sessions,
			level = excluded.level,
			last_updated = excluded.last_updated`,
		st.UserID,
		st.TotalPracticeTime,
		st.AverageWPM,
		st.BestWPM,
		st.CurrentStreak,
		st.LongestStreak,
		st.TotalSessions,
		string(st.Level),
		formatTime(st.LastUpdated),
	)
	if err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time %q: %w", value, err)
	}
	return parsed, nil
}

func encodeSettings(settings map[string]any) (string, error) {
	if len(settings) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("failed to encode settings: %w", err)
	}
	return string(data), nil
}

func decodeSettings(value string) (map[string]any, error) {
	settings := map[string]any{}
	if value == "" {
		return settings, nil
	}
	if err := json.Unmarshal([]byte(value), &settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, nil
}
