// Package web hosts the runner in a browser. The page drives the frame loop
// with requestAnimationFrame timestamps over a websocket; the server steps a
// private simulation per connection and answers each frame with draw and
// sound operations for the page to replay on a canvas.
package web

import (
	"sync"

	"github.com/vovakirdan/cactus-run/internal/core"
	"github.com/vovakirdan/cactus-run/internal/runner"
)

// Message types on the wire.
const (
	MsgFrame  = "frame"
	MsgInput  = "input"
	MsgResize = "resize"
	MsgError  = "error"
)

// clientMessage is anything the page sends. Fields are used per Type.
type clientMessage struct {
	Type   string  `json:"type"`
	T      float64 `json:"t"`      // frame: page timestamp in ms
	Action string  `json:"action"` // input: jump, start, restart
	Width  float64 `json:"width"`  // resize: canvas size in px
	Height float64 `json:"height"`
}

// FrameMessage answers a frame request.
type FrameMessage struct {
	Type      string   `json:"type"`
	State     string   `json:"state"`
	Score     int      `json:"score"`
	HighScore int      `json:"highScore"`
	Speed     float64  `json:"speed"`
	Events    []string `json:"events,omitempty"`
	Error     string   `json:"error,omitempty"`
	Ops       []DrawOp `json:"ops"`
	Sounds    []Sound  `json:"sounds,omitempty"`
}

// errorMessage reports a rejected client message.
type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// DrawOp is one canvas operation, replayed in order.
type DrawOp struct {
	Op    string  `json:"op"`             // background, sprite, text
	Kind  string  `json:"kind,omitempty"` // sprite kind
	Image string  `json:"image,omitempty"`
	Text  string  `json:"text,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w,omitempty"`
	H     float64 `json:"h,omitempty"`
	Size  float64 `json:"size,omitempty"`
	Color string  `json:"color,omitempty"`
}

// Sound asks the page to play an audio file.
type Sound struct {
	Kind string `json:"kind"` // jump or music
	Src  string `json:"src"`
}

// OpRecorder is a runner.Renderer that records draw operations.
type OpRecorder struct {
	ops []DrawOp
}

// Background starts a new frame.
func (r *OpRecorder) Background() {
	r.ops = append(r.ops[:0], DrawOp{Op: "background"})
}

// Sprite records an image blit.
func (r *OpRecorder) Sprite(kind runner.SpriteKind, image string, dst core.RectF) {
	r.ops = append(r.ops, DrawOp{
		Op:    "sprite",
		Kind:  kind.String(),
		Image: image,
		X:     dst.X,
		Y:     dst.Y,
		W:     dst.W,
		H:     dst.H,
	})
}

// Text records a string draw.
func (r *OpRecorder) Text(text string, x, y, size float64, c core.Color) {
	r.ops = append(r.ops, DrawOp{
		Op:    "text",
		Text:  text,
		X:     x,
		Y:     y,
		Size:  size,
		Color: c.Hex(),
	})
}

// Ops returns a copy of the recorded operations.
func (r *OpRecorder) Ops() []DrawOp {
	return append([]DrawOp(nil), r.ops...)
}

// SoundQueue is a runner.Audio that buffers requests until the next frame
// reply carries them to the page.
type SoundQueue struct {
	mu     sync.Mutex
	sounds []Sound
}

// PlayJump queues the jump clip.
func (q *SoundQueue) PlayJump(clip string) {
	q.push(Sound{Kind: "jump", Src: clip})
}

// PlayMusic queues a music track.
func (q *SoundQueue) PlayMusic(track string) {
	q.push(Sound{Kind: "music", Src: track})
}

func (q *SoundQueue) push(s Sound) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sounds = append(q.sounds, s)
}

// Drain returns and clears the queued sounds.
func (q *SoundQueue) Drain() []Sound {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.sounds
	q.sounds = nil
	return out
}
