// Package runner implements the cactus-jumping endless runner: the player,
// the scrolling ground, obstacle spawning, scoring and the state machine that
// ties them together. Hosts feed it frame timestamps and input actions and
// hand it a Renderer to draw into.
package runner

import (
	"slices"

	"github.com/vovakirdan/cactus-run/internal/config"
	"github.com/vovakirdan/cactus-run/internal/core"
)

// State is the phase of the game.
type State int

const (
	StateWaiting State = iota
	StateRunning
	StateGameOver
)

// String returns the wire name of the state.
func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event reports a state transition that happened since the previous frame.
type Event int

const (
	EventStarted Event = iota
	EventCrashed
	EventRestarted
)

// String returns the wire name of the event.
func (e Event) String() string {
	switch e {
	case EventStarted:
		return "started"
	case EventCrashed:
		return "crashed"
	case EventRestarted:
		return "restarted"
	default:
		return "unknown"
	}
}

// acceptedInputs lists the actions each state reacts to. Anything else is
// dropped. GameOver additionally requires the restart listener to be armed.
var acceptedInputs = map[State][]core.Action{
	StateWaiting:  {core.ActionStart, core.ActionJump},
	StateRunning:  {core.ActionJump},
	StateGameOver: {core.ActionRestart, core.ActionJump, core.ActionStart},
}

// Accepts reports whether state reacts to action.
func Accepts(state State, action core.Action) bool {
	return slices.Contains(acceptedInputs[state], action)
}

// FrameResult is what a host gets back from Frame.
type FrameResult struct {
	State     State
	Score     int
	HighScore int
	Speed     float64
	Events    []Event // Transitions since the previous frame, in order
	Err       error   // High score persistence failure, if any
}

// Has reports whether ev is among the frame's events.
func (r FrameResult) Has(ev Event) bool {
	return slices.Contains(r.Events, ev)
}

// Options configures a Simulation. Zero-valued collaborators get defaults.
type Options struct {
	Config     config.RunnerConfig
	Viewport   config.Viewport
	Random     RandomSource   // Defaults to a time-seeded source
	HighScores HighScoreStore // Defaults to MemoryHighScore
	Audio      Audio          // Defaults to NopAudio
	Playlist   *Playlist      // Defaults to a playlist over Config.Audio.Music
}

// Simulation owns the entities and drives them from frame timestamps.
// It is not safe for concurrent use; hosts serialize Frame, Press, Resize
// and Draw.
type Simulation struct {
	cfg      config.RunnerConfig
	scaled   config.Scaled
	rnd      RandomSource
	store    HighScoreStore
	audio    Audio
	playlist *Playlist

	clock     Clock
	player    *Player
	ground    *Ground
	obstacles *ObstacleSpawner
	score     *Score

	state        State
	speed        float64
	now          float64 // Latest frame timestamp
	gameOverAt   float64
	restartArmed bool

	events []Event
	err    error
}

// New creates a simulation in the waiting state.
func New(opts Options) *Simulation {
	s := &Simulation{
		cfg:      opts.Config,
		rnd:      opts.Random,
		store:    opts.HighScores,
		audio:    opts.Audio,
		playlist: opts.Playlist,
	}
	if s.rnd == nil {
		s.rnd = NewRandom(0)
	}
	if s.store == nil {
		s.store = &MemoryHighScore{}
	}
	if s.audio == nil {
		s.audio = NopAudio{}
	}
	if s.playlist == nil {
		s.playlist = NewPlaylist(opts.Config.Audio.Music)
	}

	s.build(opts.Viewport)
	s.speed = s.scaled.SpeedStart
	s.state = StateWaiting
	if err := s.score.Load(); err != nil {
		s.err = err
	}
	return s
}

// build creates every entity for the viewport.
func (s *Simulation) build(vp config.Viewport) {
	s.scaled = config.Scale(s.cfg, vp)
	s.player = NewPlayer(s.scaled)
	s.ground = NewGround(s.scaled)
	s.obstacles = NewObstacleSpawner(s.scaled, s.rnd)
	s.score = NewScore(s.scaled, s.store)
}

// Frame advances the game to timestamp now (milliseconds, monotonic).
// The first frame only primes the clock.
func (s *Simulation) Frame(now float64) FrameResult {
	dt, ok := s.clock.Tick(now)
	if now > s.now || !ok {
		s.now = now
	}

	if ok {
		switch s.state {
		case StateRunning:
			s.step(dt)
		case StateGameOver:
			if !s.restartArmed && s.now-s.gameOverAt >= s.scaled.CooldownMS {
				s.restartArmed = true
			}
		}
	}

	res := FrameResult{
		State:     s.state,
		Score:     s.score.Value(),
		HighScore: s.score.HighScore(),
		Speed:     s.speed,
		Events:    s.events,
		Err:       s.err,
	}
	s.events = nil
	s.err = nil
	return res
}

// step runs one active-play update of dt milliseconds.
func (s *Simulation) step(dt float64) {
	s.ground.Update(s.speed, dt)
	s.obstacles.Update(s.speed, dt)
	s.player.Update(s.speed, dt)
	s.score.Update(dt)
	s.speed += dt * s.scaled.SpeedIncrement

	if s.obstacles.CollideWith(s.player) {
		s.crash()
	}
}

func (s *Simulation) crash() {
	s.state = StateGameOver
	s.gameOverAt = s.now
	s.restartArmed = false
	if err := s.score.SetHighScore(); err != nil {
		s.err = err
	}
	s.events = append(s.events, EventCrashed)
}

// Press delivers an input action. It reports whether the action was accepted
// in the current state.
func (s *Simulation) Press(action core.Action) bool {
	if !Accepts(s.state, action) {
		return false
	}

	switch s.state {
	case StateWaiting:
		s.start()
		return true
	case StateRunning:
		return s.player.Jump()
	case StateGameOver:
		if !s.restartArmed {
			return false
		}
		s.restart()
		return true
	}
	return false
}

func (s *Simulation) start() {
	s.state = StateRunning
	s.audio.PlayJump(s.scaled.Audio.JumpClip)
	if track := s.playlist.Next(); track != "" {
		s.audio.PlayMusic(track)
	}
	s.events = append(s.events, EventStarted)
}

// restart clears the run and resumes play immediately.
func (s *Simulation) restart() {
	s.ground.Reset()
	s.obstacles.Reset()
	s.score.Reset()
	s.player.Reset()
	s.speed = s.scaled.SpeedStart
	s.state = StateRunning
	s.restartArmed = false
	s.events = append(s.events, EventRestarted)
}

// Resize rebuilds every entity for a new viewport. The score, high score,
// speed and state carry over; obstacles are cleared and the player is put
// back on the ground.
func (s *Simulation) Resize(vp config.Viewport) {
	value := s.score.Raw()
	high := s.score.HighScore()

	s.build(vp)
	s.score.value = value
	s.score.highScore = high
}

// Draw paints the frame back to front: background, ground, obstacles, player,
// score, then the state overlay.
func (s *Simulation) Draw(r Renderer) {
	r.Background()
	s.ground.Draw(r)
	s.obstacles.Draw(r)
	s.player.Draw(r)
	s.score.Draw(r)

	ratio := s.scaled.Ratio
	switch s.state {
	case StateGameOver:
		r.Text(GameOverText, s.scaled.Width/4.5, s.scaled.Height/2, 70*ratio, core.ColorGray)
	case StateWaiting:
		r.Text(StartText, s.scaled.Width/14, s.scaled.Height/2, 40*ratio, core.ColorGray)
	}
}

// Overlay messages.
const (
	GameOverText = "GAME OVER"
	StartText    = "Tap Screen or Press Space To Start"
)

// State returns the current phase.
func (s *Simulation) State() State {
	return s.state
}

// Speed returns the current game speed multiplier.
func (s *Simulation) Speed() float64 {
	return s.speed
}

// RestartArmed reports whether a restart input would be accepted now.
func (s *Simulation) RestartArmed() bool {
	return s.state == StateGameOver && s.restartArmed
}

// Score returns the score counter.
func (s *Simulation) Score() *Score {
	return s.score
}

// Player returns the player entity.
func (s *Simulation) Player() *Player {
	return s.player
}

// Ground returns the ground strip.
func (s *Simulation) Ground() *Ground {
	return s.ground
}

// Obstacles returns the obstacle spawner.
func (s *Simulation) Obstacles() *ObstacleSpawner {
	return s.obstacles
}

// Scaled returns the configuration in viewport pixels.
func (s *Simulation) Scaled() config.Scaled {
	return s.scaled
}
