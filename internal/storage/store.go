// Package storage persists run history and the high score.
// SQLite (pure-Go modernc.org/sqlite driver) is the default backend;
// a postgres:// DSN selects PostgreSQL through lib/pq.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Store manages the database connection. It is safe for concurrent use.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// Run is one finished game.
type Run struct {
	ID         int64
	Score      int
	Difficulty string
	DurationMS int64
	CreatedAt  time.Time
}

// Stats contains aggregated statistics over finished runs.
type Stats struct {
	RunsCount  int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Open connects to the database named by dsn and runs migrations.
// A postgres:// or postgresql:// DSN opens PostgreSQL; anything else is a
// SQLite file path (a leading ~ is expanded).
func Open(dsn string) (*Store, error) {
	if isPostgresDSN(dsn) {
		return openPostgres(dsn)
	}
	return openSQLite(dsn)
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// open pings the connection and migrates it.
func open(db *sql.DB, d dialect) (*Store, error) {
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, dialect: d}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(s.dialect.schema)
	return err
}

// Backend returns the driver name in use.
func (s *Store) Backend() string {
	return s.dialect.name
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(run Run) (int64, error) {
	var id int64
	err := s.db.QueryRow(
		s.dialect.rebind("INSERT INTO runs (score, difficulty, duration_ms) VALUES (?, ?, ?) RETURNING id"),
		run.Score, run.Difficulty, run.DurationMS,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	return id, nil
}

// TopRuns returns the best runs, highest score first. An empty difficulty
// matches every run.
func (s *Store) TopRuns(difficulty string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		s.dialect.rebind(`SELECT id, score, difficulty, duration_ms, created_at
		 FROM runs
		 WHERE (? = '' OR difficulty = ?)
		 ORDER BY score DESC, id ASC
		 LIMIT ?`),
		difficulty, difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Score, &r.Difficulty, &r.DurationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Stats aggregates every recorded run.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM runs`,
	).Scan(&stats.RunsCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// ClearRuns deletes the run history for one difficulty, or all of it when
// difficulty is empty. The high score slots are kept.
func (s *Store) ClearRuns(difficulty string) error {
	_, err := s.db.Exec(s.dialect.rebind("DELETE FROM runs WHERE (? = '' OR difficulty = ?)"), difficulty, difficulty)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles drivers returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := time.Parse("2006-01-02 15:04:05", string(t)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
