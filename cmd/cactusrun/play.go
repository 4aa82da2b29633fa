package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cactus-run/internal/config"
	"github.com/vovakirdan/cactus-run/internal/platform/tui"
	"github.com/vovakirdan/cactus-run/internal/runner"
	"github.com/vovakirdan/cactus-run/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal.

Controls:
  Space/Up/W   - Jump (also starts the first run)
  Enter        - Start
  R            - Restart (after game over)
  Click        - Jump
  ?            - More keys
  Ctrl+S       - Save a screenshot
  Q/Esc        - Quit

Difficulty options:
  easy   - Slower start, gentler speed-up
  normal - The config as written
  hard   - Faster start, steeper speed-up
  fixed  - No speed-up at all

Examples:
  cactusrun play
  cactusrun play --difficulty easy
  cactusrun play --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// loadRunnerConfig loads the config and applies the difficulty preset. It
// returns the difficulty label recorded with runs.
func loadRunnerConfig() (config.RunnerConfig, string, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.RunnerConfig{}, "", err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.RunnerConfig{}, "", err
	}
	config.ApplyPreset(&cfg, preset)

	label := string(preset)
	if label == "" {
		label = string(config.DifficultyNormal)
	}
	return cfg, label, nil
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, difficulty, err := loadRunnerConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("cactusrun", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - the high score lasts for this session
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return tui.Run(tui.Options{
		Config:     cfg,
		Difficulty: difficulty,
		Store:      store,
		Random:     runner.NewRandom(flagSeed),
		Logger:     logger,
		Bell:       os.Stdout,
		FPS:        flagFPS,
		Width:      width,
		Height:     height,
	})
}
