// Package desktop hosts the runner in an ebiten window.
package desktop

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/cactus-run/internal/config"
	"github.com/vovakirdan/cactus-run/internal/core"
	"github.com/vovakirdan/cactus-run/internal/runner"
	"github.com/vovakirdan/cactus-run/internal/storage"
)

// Options configures the desktop game.
type Options struct {
	Config     config.RunnerConfig
	Difficulty string
	Store      *storage.Store // Run history and high score; may be nil
	Random     runner.RandomSource
	Logger     *log.Logger
	AssetsDir  string // Sprite images; empty draws placeholders
	Width      int    // Initial window size
	Height     int
}

// Game implements ebiten.Game around one Simulation.
type Game struct {
	sim        *runner.Simulation
	renderer   *ImageRenderer
	store      *storage.Store
	logger     *log.Logger
	difficulty string
	start      time.Time
	runStart   float64
	width      int
	height     int
}

// NewGame creates the game and its simulation.
func NewGame(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var highScores runner.HighScoreStore = &runner.MemoryHighScore{}
	if opts.Store != nil {
		highScores = opts.Store.Slot(opts.Config.Score.HighScoreKey)
	}

	g := &Game{
		renderer:   NewImageRenderer(opts.AssetsDir, logger),
		store:      opts.Store,
		logger:     logger,
		difficulty: opts.Difficulty,
		start:      time.Now(),
		width:      opts.Width,
		height:     opts.Height,
	}
	g.sim = runner.New(runner.Options{
		Config:     opts.Config,
		Viewport:   config.Viewport{Width: float64(opts.Width), Height: float64(opts.Height)},
		Random:     opts.Random,
		HighScores: highScores,
		Audio:      LogAudio{Logger: logger},
	})
	return g
}

// Update polls input and advances the simulation to the current time.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	for _, action := range pressedActions() {
		g.sim.Press(action)
	}

	now := float64(time.Since(g.start)) / float64(time.Millisecond)
	res := g.sim.Frame(now)
	for _, ev := range res.Events {
		switch ev {
		case runner.EventStarted, runner.EventRestarted:
			g.runStart = now
		case runner.EventCrashed:
			g.logger.Info("run ended", "score", res.Score, "high_score", res.HighScore)
			g.saveRun(res.Score, now)
		}
	}
	if res.Err != nil {
		g.logger.Warn("high score persistence failed", "error", res.Err)
	}
	return nil
}

// pressedActions maps this tick's new key, mouse and touch presses to
// actions.
func pressedActions() []core.Action {
	var actions []core.Action
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if a := keyAction(k); a != core.ActionNone {
			actions = append(actions, a)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		actions = append(actions, core.ActionJump)
	}
	if len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		actions = append(actions, core.ActionJump)
	}
	return actions
}

// keyAction translates a key to a game action.
func keyAction(k ebiten.Key) core.Action {
	switch k {
	case ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW:
		return core.ActionJump
	case ebiten.KeyEnter:
		return core.ActionStart
	case ebiten.KeyR:
		return core.ActionRestart
	}
	return core.ActionNone
}

func (g *Game) saveRun(score int, now float64) {
	if g.store == nil || score <= 0 {
		return
	}
	_, err := g.store.SaveRun(storage.Run{
		Score:      score,
		Difficulty: g.difficulty,
		DurationMS: int64(now - g.runStart),
	})
	if err != nil {
		g.logger.Warn("could not save run", "error", err)
	}
}

// Draw renders the simulation.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetTarget(screen)
	g.sim.Draw(g.renderer)
}

// Layout uses the window size as the screen size and rescales the game when
// it changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.sim.Resize(config.Viewport{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle("Cactus Run")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := NewGame(opts)
	g.logger.Info("starting desktop game", "width", opts.Width, "height", opts.Height)
	return ebiten.RunGame(g)
}

// LogAudio reports sound requests to the log.
type LogAudio struct {
	Logger *log.Logger
}

// PlayJump logs the jump clip.
func (a LogAudio) PlayJump(clip string) {
	a.Logger.Debug("play jump", "clip", clip)
}

// PlayMusic logs the music track.
func (a LogAudio) PlayMusic(track string) {
	a.Logger.Info("now playing", "track", track)
}
