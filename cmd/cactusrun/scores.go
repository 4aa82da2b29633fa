package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cactus-run/internal/config"
	"github.com/vovakirdan/cactus-run/internal/platform/tui"
	"github.com/vovakirdan/cactus-run/internal/storage"
)

var (
	flagScoresDifficulty string
	flagScoresLimit      int
	flagScoresTUI        bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best runs and overall stats.

Examples:
  cactusrun scores
  cactusrun scores --difficulty hard
  cactusrun scores --tui
  cactusrun scores clear --difficulty easy`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

var scoresClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete recorded runs (the high score is kept)",
	Args:  cobra.NoArgs,
	RunE:  runScoresClear,
}

func init() {
	scoresCmd.PersistentFlags().StringVar(&flagScoresDifficulty, "difficulty", "", "Only runs played at this difficulty")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse runs in an interactive table")
	scoresCmd.AddCommand(scoresClearCmd)
}

func runScores(_ *cobra.Command, _ []string) error {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	runs, err := store.TopRuns(flagScoresDifficulty, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	// Display runs
	fmt.Println("Cactus Run - Best Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'cactusrun play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-10s  %-6s  %s\n", "Rank", "Score", "Difficulty", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-10s  %-6s  %s\n", "----", "-----", "----------", "----", "----")

	// Print runs
	for i, run := range runs {
		secs := run.DurationMS / 1000
		fmt.Printf("  %-4d  %06d    %-10s  %d:%02d    %s\n",
			i+1, run.Score, run.Difficulty, secs/60, secs%60, run.CreatedAt.Format("2006-01-02 15:04"))
	}

	// Show high score
	fmt.Println()
	cfg, err := config.Load("")
	if err != nil {
		cfg = config.DefaultRunnerConfig()
	}
	if highScore, err := store.Slot(cfg.Score.HighScoreKey).HighScore(); err == nil {
		fmt.Printf("Best: %06d\n", highScore)
	}
	if stats, err := store.Stats(); err == nil && stats.RunsCount > 0 {
		fmt.Printf("Runs: %d  Average: %.0f\n", stats.RunsCount, stats.AvgScore)
	}
	return nil
}

func runScoresClear(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if err := store.ClearRuns(flagScoresDifficulty); err != nil {
		return fmt.Errorf("clearing runs: %w", err)
	}
	if flagScoresDifficulty == "" {
		fmt.Println("Cleared all runs.")
	} else {
		fmt.Printf("Cleared %s runs.\n", flagScoresDifficulty)
	}
	return nil
}
