package tui

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cactus-run/internal/config"
	"github.com/vovakirdan/cactus-run/internal/core"
	"github.com/vovakirdan/cactus-run/internal/runner"
	"github.com/vovakirdan/cactus-run/internal/storage"
)

// Options configures a game Model.
type Options struct {
	Config     config.RunnerConfig
	Difficulty string           // Recorded with each run
	Store      *storage.Store   // Run history; may be nil
	Playlist   *runner.Playlist // Shared across sessions; nil for a private one
	Random     runner.RandomSource
	Logger     *log.Logger
	Bell       io.Writer // Where the jump bell rings, from a command; nil for silence
	FPS        int
	Width      int // Terminal size in cells
	Height     int
	User       string // SSH user, empty for local play
}

// Model is the Bubble Tea model hosting one Simulation.
type Model struct {
	sim      *runner.Simulation
	screen   *core.Screen
	renderer *CellRenderer
	audio    *TerminalAudio
	bell     io.Writer
	store    *storage.Store
	logger   *log.Logger
	keys     KeyMap
	help     help.Model

	difficulty string
	user       string
	fps        int
	width      int
	height     int
	start      time.Time // Timestamps are milliseconds since start
	pausedAt   time.Time // Set while the terminal is too small to play
	runStart   float64
	quitting   bool
}

// NewModel creates the model and its simulation.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var highScores runner.HighScoreStore = &runner.MemoryHighScore{}
	if opts.Store != nil {
		highScores = opts.Store.Slot(opts.Config.Score.HighScoreKey)
	}

	audio := NewTerminalAudio()
	screen := core.NewScreen(opts.Width, gameRows(opts.Height))

	m := Model{
		screen:     screen,
		renderer:   NewCellRenderer(screen),
		audio:      audio,
		bell:       opts.Bell,
		store:      opts.Store,
		logger:     logger,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		difficulty: opts.Difficulty,
		user:       opts.User,
		fps:        opts.FPS,
		width:      opts.Width,
		height:     opts.Height,
		start:      time.Now(),
	}
	m.help.Width = opts.Width

	m.sim = runner.New(runner.Options{
		Config:     opts.Config,
		Viewport:   m.viewport(),
		Random:     opts.Random,
		HighScores: highScores,
		Audio:      audio,
		Playlist:   opts.Playlist,
	})
	m.placePlayArea()
	return m
}

// Smallest terminal the game is played in; below it the run is paused.
const (
	minCols = 40
	minRows = 6 // Including the help line
)

// gameRows leaves the bottom row for the help line.
func gameRows(height int) int {
	return max(height-1, 0)
}

// viewport returns the pixel size of the game rows.
func (m Model) viewport() config.Viewport {
	return config.Viewport{
		Width:  float64(m.screen.Width() * CellWidth),
		Height: float64(m.screen.Height() * CellHeight),
	}
}

func (m Model) tooSmall() bool {
	return m.width < minCols || m.height < minRows
}

// placePlayArea centres the play area vertically in the game rows.
func (m Model) placePlayArea() {
	spare := m.viewport().Height - m.sim.Scaled().Height
	m.renderer.SetOrigin(0, max(spare/2, 0))
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.logger.Info("session started", "user", m.user, "width", m.width, "height", m.height)
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.press(MouseAction(msg))

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		m.logger.Info("session ended", "user", m.user, "score", m.sim.Score().Value(), "high_score", m.sim.Score().HighScore())
		return m, tea.Quit
	}
	return m, m.press(action)
}

// press delivers an action and returns the bell for any jump sound it played.
func (m Model) press(action core.Action) tea.Cmd {
	if action == core.ActionNone || m.tooSmall() {
		return nil
	}
	m.sim.Press(action)
	return m.ringCmd()
}

// ringCmd writes one BEL per queued jump sound.
func (m Model) ringCmd() tea.Cmd {
	n := m.audio.TakeBells()
	if n == 0 || m.bell == nil {
		return nil
	}
	out := m.bell
	return func() tea.Msg {
		//nolint:errcheck // Best-effort bell
		out.Write(bytes.Repeat([]byte{'\a'}, n))
		return nil
	}
}

// handleResize rebuilds the simulation entities for the new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.screen.Resize(msg.Width, gameRows(msg.Height))
	m.sim.Resize(m.viewport())
	m.placePlayArea()
	return m, nil
}

// handleTick runs one simulation frame and reacts to its events.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	if m.tooSmall() {
		if m.pausedAt.IsZero() {
			m.pausedAt = t
		}
		return m, tickCmd(m.fps)
	}
	// Time spent paused does not count
	if !m.pausedAt.IsZero() {
		m.start = m.start.Add(t.Sub(m.pausedAt))
		m.pausedAt = time.Time{}
	}

	now := float64(t.Sub(m.start)) / float64(time.Millisecond)
	res := m.sim.Frame(now)

	for _, ev := range res.Events {
		switch ev {
		case runner.EventStarted, runner.EventRestarted:
			m.runStart = now
			m.logger.Debug("run started", "user", m.user, "event", ev, "track", m.audio.NowPlaying())
		case runner.EventCrashed:
			m.logger.Info("run ended", "user", m.user, "score", res.Score, "high_score", res.HighScore)
			m.saveRun(res.Score, now)
		}
	}
	if res.Err != nil {
		m.logger.Warn("high score persistence failed", "error", res.Err)
	}

	return m, tickCmd(m.fps)
}

// saveRun records a finished run in the history.
func (m Model) saveRun(score int, now float64) {
	if m.store == nil || score <= 0 {
		return
	}
	_, err := m.store.SaveRun(storage.Run{
		Score:      score,
		Difficulty: m.difficulty,
		DurationMS: int64(now - m.runStart),
	})
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() {
	m.sim.Draw(m.renderer)

	dir := filepath.Join(os.Getenv("HOME"), ".cactus-run", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("cactusrun_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.tooSmall() {
		m.screen.Clear()
		mid := m.screen.Height() / 2
		m.screen.DrawTextCentered(mid-1, "Window too small", core.ColorYellow)
		m.screen.DrawTextCentered(mid, "Resize to continue", core.ColorGray)
		return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
	}

	m.sim.Draw(m.renderer)
	if track := m.audio.NowPlaying(); track != "" {
		m.screen.DrawText(1, 0, "♪ "+track, core.ColorGray)
	}

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Simulation returns the hosted simulation.
func (m Model) Simulation() *runner.Simulation {
	return m.sim
}

// Run starts the Bubble Tea program for local play.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Clicks count as taps
	)

	_, err := p.Run()
	return err
}
