package web

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cactus-run/internal/config"
	"github.com/vovakirdan/cactus-run/internal/core"
	"github.com/vovakirdan/cactus-run/internal/runner"
	"github.com/vovakirdan/cactus-run/internal/storage"
)

// session is one browser tab's game. It is driven from a single goroutine.
type session struct {
	sim        *runner.Simulation
	ops        *OpRecorder
	sounds     *SoundQueue
	store      *storage.Store
	logger     *log.Logger
	difficulty string
	remote     string
	runStart   float64
}

type sessionOptions struct {
	Config     config.RunnerConfig
	Viewport   config.Viewport
	Difficulty string
	Store      *storage.Store
	Playlist   *runner.Playlist
	Random     runner.RandomSource
	Logger     *log.Logger
	Remote     string
}

func newSession(opts sessionOptions) *session {
	var highScores runner.HighScoreStore = &runner.MemoryHighScore{}
	if opts.Store != nil {
		highScores = opts.Store.Slot(opts.Config.Score.HighScoreKey)
	}

	s := &session{
		ops:        &OpRecorder{},
		sounds:     &SoundQueue{},
		store:      opts.Store,
		logger:     opts.Logger,
		difficulty: opts.Difficulty,
		remote:     opts.Remote,
	}
	s.sim = runner.New(runner.Options{
		Config:     opts.Config,
		Viewport:   opts.Viewport,
		Random:     opts.Random,
		HighScores: highScores,
		Audio:      s.sounds,
		Playlist:   opts.Playlist,
	})
	return s
}

// handle applies one client message and returns the reply, if any.
func (s *session) handle(msg clientMessage) (any, error) {
	switch msg.Type {
	case MsgFrame:
		return s.frame(msg.T), nil

	case MsgInput:
		action := core.ParseAction(msg.Action)
		if action == core.ActionNone || action == core.ActionQuit {
			return nil, fmt.Errorf("unknown action %q", msg.Action)
		}
		s.sim.Press(action)
		return nil, nil

	case MsgResize:
		if msg.Width <= 0 || msg.Height <= 0 {
			return nil, fmt.Errorf("invalid size %gx%g", msg.Width, msg.Height)
		}
		s.sim.Resize(config.Viewport{Width: msg.Width, Height: msg.Height})
		return nil, nil
	}
	return nil, fmt.Errorf("unknown message type %q", msg.Type)
}

// frame steps the simulation to t and records the picture.
func (s *session) frame(t float64) FrameMessage {
	res := s.sim.Frame(t)

	out := FrameMessage{
		Type:      MsgFrame,
		State:     res.State.String(),
		Score:     res.Score,
		HighScore: res.HighScore,
		Speed:     res.Speed,
	}
	for _, ev := range res.Events {
		out.Events = append(out.Events, ev.String())
		switch ev {
		case runner.EventStarted, runner.EventRestarted:
			s.runStart = t
		case runner.EventCrashed:
			s.logger.Info("run ended", "remote", s.remote, "score", res.Score, "high_score", res.HighScore)
			s.saveRun(res.Score, t)
		}
	}
	if res.Err != nil {
		s.logger.Warn("high score persistence failed", "remote", s.remote, "error", res.Err)
		out.Error = res.Err.Error()
	}

	s.sim.Draw(s.ops)
	out.Ops = s.ops.Ops()
	out.Sounds = s.sounds.Drain()
	return out
}

func (s *session) saveRun(score int, now float64) {
	if s.store == nil || score <= 0 {
		return
	}
	_, err := s.store.SaveRun(storage.Run{
		Score:      score,
		Difficulty: s.difficulty,
		DurationMS: int64(now - s.runStart),
	})
	if err != nil {
		s.logger.Warn("could not save run", "error", err)
	}
}
