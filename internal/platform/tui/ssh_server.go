package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/vovakirdan/cactus-run/internal/config"
	"github.com/vovakirdan/cactus-run/internal/runner"
	"github.com/vovakirdan/cactus-run/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Address     string        // host:port, e.g. ":23234"
	HostKeyPath string        // Generated on first start; empty means ~/.cactus-run/host_key
	DBPath      string        // Scores database path or postgres DSN
	IdleTimeout time.Duration // Idle sessions are closed after this long

	// Game settings shared by every session.
	Runner     config.RunnerConfig
	Difficulty string
	FPS        int

	// Logger receives server and session logs; nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.cactus-run/scores.db",
		IdleTimeout: 30 * time.Minute,
		Runner:      config.DefaultRunnerConfig(),
		Difficulty:  string(config.DifficultyNormal),
		FPS:         DefaultFPS,
	}
}

// SSHServer serves one game per SSH session. Sessions share the score
// store and the music rotation.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store // nil when the database could not be opened
	playlist *runner.Playlist
	logger   *log.Logger
}

// NewSSHServer creates the server. A database that fails to open is logged
// and sessions play without persistence.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "cactusrun-ssh"})
	}

	hostKeyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s := &SSHServer{
		config:   cfg,
		playlist: runner.NewPlaylist(cfg.Runner.Audio.Music),
		logger:   logger,
	}
	if s.store, err = storage.Open(cfg.DBPath); err != nil {
		logger.Warn("could not open scores database", "error", err)
		s.store = nil
	}

	// Listed innermost first
	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newSessionModel),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
	)
	if err != nil {
		if s.store != nil {
			s.store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return s, nil
}

// resolveHostKey returns the host key path, defaulting to ~/.cactus-run/host_key,
// and makes sure its directory exists.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".cactus-run", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// newSessionModel builds the game for one session. activeterm guarantees a PTY.
func (s *SSHServer) newSessionModel(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	model := NewModel(Options{
		Config:     s.config.Runner,
		Difficulty: s.config.Difficulty,
		Store:      s.store,
		Playlist:   s.playlist,
		Random:     runner.NewRandom(time.Now().UnixNano()),
		Logger:     s.logger,
		Bell:       sess,
		FPS:        s.config.FPS,
		Width:      pty.Window.Width,
		Height:     pty.Window.Height,
		User:       sess.User(),
	})
	return model, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.logger.Info("starting SSH server", "address", s.config.Address)
	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		_ = s.Shutdown()
		return fmt.Errorf("ssh server: %w", err)
	case <-ctx.Done():
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown stops the server, giving sessions 10s to end, then closes the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
