package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

var postgresDialect = dialect{
	name:         "postgres",
	placeholders: true,
	schema: `
	CREATE TABLE IF NOT EXISTS runs (
		id BIGSERIAL PRIMARY KEY,
		score INTEGER NOT NULL,
		difficulty TEXT NOT NULL DEFAULT '',
		duration_ms BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_difficulty ON runs(difficulty);

	CREATE TABLE IF NOT EXISTS high_scores (
		name TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	);
	`,
	upsertMax: `INSERT INTO high_scores (name, value) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET value = GREATEST(high_scores.value, EXCLUDED.value)`,
}

// openPostgres connects to a PostgreSQL server.
func openPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	return open(db, postgresDialect)
}
