package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// Slot is a named high-score entry. It satisfies runner.HighScoreStore.
type Slot struct {
	store *Store
	key   string
}

// Slot returns the high-score entry stored under key.
func (s *Store) Slot(key string) *Slot {
	return &Slot{store: s, key: key}
}

// HighScore returns the stored value, or 0 if the slot was never written.
func (sl *Slot) HighScore() (int, error) {
	var value int
	err := sl.store.db.QueryRow(
		sl.store.dialect.rebind("SELECT value FROM high_scores WHERE name = ?"),
		sl.key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read high score %q: %w", sl.key, err)
	}
	return value, nil
}

// SetHighScore stores score unless the slot already holds a higher value.
// The comparison happens in the database, so concurrent sessions never lower it.
func (sl *Slot) SetHighScore(score int) error {
	_, err := sl.store.db.Exec(sl.store.dialect.rebind(sl.store.dialect.upsertMax), sl.key, score)
	if err != nil {
		return fmt.Errorf("storage: cannot save high score %q: %w", sl.key, err)
	}
	return nil
}
