package runner

import (
	"sync"

	"github.com/vovakirdan/cactus-run/internal/core"
)

// SpriteKind tells a renderer what an image blit represents, so hosts without
// bitmap support can pick their own glyphs or shapes.
type SpriteKind int

const (
	SpriteGround SpriteKind = iota
	SpriteObstacle
	SpritePlayer
	SpritePlayerJumping
)

// String returns the wire name of the sprite kind.
func (k SpriteKind) String() string {
	switch k {
	case SpriteGround:
		return "ground"
	case SpriteObstacle:
		return "obstacle"
	case SpritePlayer:
		return "player"
	case SpritePlayerJumping:
		return "player_jumping"
	default:
		return "unknown"
	}
}

// Renderer is the drawing surface the simulation paints each frame.
// Coordinates are viewport pixels, origin top-left.
type Renderer interface {
	// Background clears the surface with the background image.
	Background()
	// Sprite blits an image into the destination rectangle.
	Sprite(kind SpriteKind, image string, dst core.RectF)
	// Text draws a string with its baseline-left corner at (x, y).
	Text(text string, x, y, size float64, c core.Color)
}

// Audio plays sound clips. Calls must not block the frame.
type Audio interface {
	PlayJump(clip string)
	PlayMusic(track string)
}

// NopAudio discards every request.
type NopAudio struct{}

func (NopAudio) PlayJump(string)  {}
func (NopAudio) PlayMusic(string) {}

// HighScoreStore persists the best completed-run score across restarts.
type HighScoreStore interface {
	HighScore() (int, error)
	SetHighScore(score int) error
}

// MemoryHighScore keeps the high score in memory. Safe for concurrent use.
type MemoryHighScore struct {
	mu    sync.Mutex
	value int
}

// HighScore returns the stored value.
func (m *MemoryHighScore) HighScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, nil
}

// SetHighScore stores score if it beats the current value.
func (m *MemoryHighScore) SetHighScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.value {
		m.value = score
	}
	return nil
}

// Playlist hands out music tracks round robin. The position survives game
// resets; a playlist shared between sessions advances for all of them.
type Playlist struct {
	mu     sync.Mutex
	tracks []string
	next   int
}

// NewPlaylist creates a playlist over the given tracks.
func NewPlaylist(tracks []string) *Playlist {
	return &Playlist{tracks: append([]string(nil), tracks...)}
}

// Next returns the current track and advances the index modulo the track
// count. It returns "" for an empty playlist.
func (p *Playlist) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.tracks) == 0 {
		return ""
	}
	track := p.tracks[p.next]
	p.next = (p.next + 1) % len(p.tracks)
	return track
}
