package runner

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/cactus-run/internal/config"
	"github.com/vovakirdan/cactus-run/internal/core"
)

// Score accumulates points while the run is active and keeps the high score
// in sync with a HighScoreStore.
type Score struct {
	value     float64
	highScore int
	rate      float64 // Points per millisecond
	store     HighScoreStore
	ratio     float64
	width     float64
	fontSize  float64
}

// NewScore creates a zero score. Call Load to fetch the persisted high score.
func NewScore(s config.Scaled, store HighScoreStore) *Score {
	return &Score{
		rate:     s.ScoreRate,
		store:    store,
		ratio:    s.Ratio,
		width:    s.Width,
		fontSize: s.FontSize,
	}
}

// Load reads the persisted high score. On error the cached value is kept.
func (sc *Score) Load() error {
	hs, err := sc.store.HighScore()
	if err != nil {
		return fmt.Errorf("load high score: %w", err)
	}
	sc.highScore = hs
	return nil
}

// Update adds dt × rate.
func (sc *Score) Update(dt float64) {
	sc.value += dt * sc.rate
}

// Reset sets the counter back to zero. The high score is untouched.
func (sc *Score) Reset() {
	sc.value = 0
}

// Value returns the floored score.
func (sc *Score) Value() int {
	return int(math.Floor(sc.value))
}

// Raw returns the unfloored counter.
func (sc *Score) Raw() float64 {
	return sc.value
}

// HighScore returns the best score known to this counter.
func (sc *Score) HighScore() int {
	return sc.highScore
}

// SetHighScore persists the floored score if it beats the stored high score.
// The stored value is re-read first since other sessions may share the store.
// A failed read falls back to the cached high score and is still reported.
func (sc *Score) SetHighScore() error {
	current := sc.Value()
	persisted, readErr := sc.store.HighScore()
	if readErr != nil {
		readErr = fmt.Errorf("read high score: %w", readErr)
		persisted = sc.highScore
	}
	if persisted > sc.highScore {
		sc.highScore = persisted
	}
	if current <= persisted {
		return readErr
	}

	sc.highScore = current
	if err := sc.store.SetHighScore(current); err != nil {
		return errors.Join(readErr, fmt.Errorf("save high score: %w", err))
	}
	return readErr
}

// Text returns the HUD strings: the padded score and the padded high score.
func (sc *Score) Text() (score, high string) {
	return fmt.Sprintf("%06d", sc.Value()), fmt.Sprintf("HI %06d", sc.highScore)
}

// Draw paints both counters at the top right.
func (sc *Score) Draw(r Renderer) {
	score, high := sc.Text()
	y := 20 * sc.ratio
	scoreX := sc.width - 75*sc.ratio
	highX := scoreX - 125*sc.ratio
	r.Text(high, highX, y, sc.fontSize, core.ColorDarkGray)
	r.Text(score, scoreX, y, sc.fontSize, core.ColorDarkGray)
}
