// cactusrun-desktop plays Cactus Run in a window.
//
// Usage:
//
//	cactusrun-desktop [--assets dir] [--difficulty name] [--config file]
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cactus-run/internal/config"
	"github.com/vovakirdan/cactus-run/internal/platform/desktop"
	"github.com/vovakirdan/cactus-run/internal/runner"
	"github.com/vovakirdan/cactus-run/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagAssetsDir  string
	flagDBPath     string
	flagSeed       int64
	flagWidth      int
	flagHeight     int
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cactusrun-desktop",
	Short: "Cactus Run in a window",
	Long: `Play Cactus Run in a desktop window.

Controls:
  Space/Up/W/Click  - Jump (also starts the first run)
  Enter             - Start
  R                 - Restart (after game over)
  Q/Esc             - Quit`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.Flags().StringVar(&flagAssetsDir, "assets", "", "Directory with the sprite images")
	rootCmd.Flags().StringVar(&flagDBPath, "db", "~/.cactus-run/scores.db", "Scores database path or postgres:// DSN")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.Flags().IntVar(&flagWidth, "width", 1200, "Initial window width")
	rootCmd.Flags().IntVar(&flagHeight, "height", 300, "Initial window height")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

func run(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplyPreset(&cfg, preset)
	difficulty := string(preset)
	if difficulty == "" {
		difficulty = string(config.DifficultyNormal)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "cactusrun-desktop",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return desktop.Run(desktop.Options{
		Config:     cfg,
		Difficulty: difficulty,
		Store:      store,
		Random:     runner.NewRandom(flagSeed),
		Logger:     logger,
		AssetsDir:  flagAssetsDir,
		Width:      flagWidth,
		Height:     flagHeight,
	})
}
