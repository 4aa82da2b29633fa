package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/cactus-run/internal/config"
	"github.com/vovakirdan/cactus-run/internal/runner"
	"github.com/vovakirdan/cactus-run/internal/storage"
)

//go:embed static/index.html
var indexHTML []byte

// ServerConfig holds configuration for the web server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// DBPath is the scores database path or postgres DSN. Empty disables
	// persistence; high scores then last for the connection only.
	DBPath string

	// AssetsDir, when set, is served under /assets/ so the page can load
	// sprite images and audio files.
	AssetsDir string

	Runner     config.RunnerConfig
	Difficulty string
	Seed       int64 // Zero seeds each connection from the clock

	// Logger receives server and session logs; nil logs to stderr.
	Logger *log.Logger
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:    ":8080",
		DBPath:     "~/.cactus-run/scores.db",
		Runner:     config.DefaultRunnerConfig(),
		Difficulty: string(config.DifficultyNormal),
	}
}

// Server serves the game page and one simulation per websocket.
type Server struct {
	config   ServerConfig
	store    *storage.Store
	playlist *runner.Playlist
	logger   *log.Logger
	upgrader websocket.Upgrader
	http     *http.Server
}

// NewServer creates a web server. A database that fails to open is logged
// and play continues without persistence.
func NewServer(cfg ServerConfig) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "cactusrun-web",
		})
	}

	var store *storage.Store
	if cfg.DBPath != "" {
		var err error
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open scores database", "error", err)
			store = nil
		}
	}

	srv := &Server{
		config:   cfg,
		store:    store,
		playlist: runner.NewPlaylist(cfg.Runner.Audio.Music),
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
		},
	}
	srv.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv
}

// Handler returns the HTTP routes: the page, the websocket and assets.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWebSocket)
	if s.config.AssetsDir != "" {
		mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(s.config.AssetsDir))))
	}
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	//nolint:errcheck // Client may have gone away
	w.Write(indexHTML)
}

// viewportFromQuery reads the initial canvas size from ?w=&h=, falling back
// to the design world size.
func (s *Server) viewportFromQuery(r *http.Request) config.Viewport {
	vp := config.Viewport{Width: s.config.Runner.World.Width, Height: s.config.Runner.World.Height}
	w, errW := strconv.ParseFloat(r.URL.Query().Get("w"), 64)
	h, errH := strconv.ParseFloat(r.URL.Query().Get("h"), 64)
	if errW == nil && errH == nil && w > 0 && h > 0 {
		vp = config.Viewport{Width: w, Height: h}
	}
	return vp
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sess := newSession(sessionOptions{
		Config:     s.config.Runner,
		Viewport:   s.viewportFromQuery(r),
		Difficulty: s.config.Difficulty,
		Store:      s.store,
		Playlist:   s.playlist,
		Random:     runner.NewRandom(seed),
		Logger:     s.logger,
		Remote:     r.RemoteAddr,
	})

	s.logger.Info("session started", "remote", r.RemoteAddr)
	defer s.logger.Info("session ended", "remote", r.RemoteAddr)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("read failed", "remote", r.RemoteAddr, "error", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logger.Debug("discarding malformed message", "remote", r.RemoteAddr, "error", err)
			continue
		}

		reply, err := sess.handle(msg)
		if err != nil {
			reply = errorMessage{Type: MsgError, Message: err.Error()}
		}
		if reply == nil {
			continue
		}
		if err := conn.WriteJSON(reply); err != nil {
			return
		}
	}
}

// ListenAndServe starts the web server and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting web server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
			done <- syscall.SIGTERM
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}
	return s.http.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}
