package tui

import (
	"path"
	"sync"
)

// TerminalAudio stands in for a sound device: a jump queues a terminal bell
// and music requests update a "now playing" label shown in the HUD.
type TerminalAudio struct {
	mu         sync.Mutex
	bells      int // Jump sounds not yet rung
	nowPlaying string
}

// NewTerminalAudio creates silent terminal audio.
func NewTerminalAudio() *TerminalAudio {
	return &TerminalAudio{}
}

// PlayJump queues a bell.
func (a *TerminalAudio) PlayJump(string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.bells++
}

// PlayMusic records the track name.
func (a *TerminalAudio) PlayMusic(track string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nowPlaying = path.Base(track)
}

// TakeBells returns the number of queued bells and clears the queue.
func (a *TerminalAudio) TakeBells() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := a.bells
	a.bells = 0
	return n
}

// NowPlaying returns the current track's file name, or "".
func (a *TerminalAudio) NowPlaying() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nowPlaying
}
