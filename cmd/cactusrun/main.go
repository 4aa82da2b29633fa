// cactusrun is an endless runner: jump the cacti for as long as you can.
//
// Usage:
//
//	cactusrun play           - Play in the terminal
//	cactusrun serve          - Start SSH server for remote play
//	cactusrun web            - Serve the game to browsers
//	cactusrun scores         - Show the run history
//	cactusrun config         - Print, validate or describe the game config
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path|dsn>    - Scores database path or postgres:// DSN (default: ~/.cactus-run/scores.db)
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cactusrun",
	Short: "Cactus Run - jump the cacti in your terminal",
	Long: `Cactus Run is an endless runner. Press space to start, jump over
the cacti, and keep going: the game speeds up the longer you survive.

Available commands:
  play     - Play in the terminal
  serve    - Start SSH server for remote play
  web      - Serve the game to browsers over websockets
  scores   - View the run history
  config   - Print, validate or describe the game config

Examples:
  cactusrun play
  cactusrun play --difficulty hard
  cactusrun serve --ssh :2222
  cactusrun web --addr :8080
  cactusrun scores --tui`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cactus-run/scores.db", "Scores database path or postgres:// DSN")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the command logger. Without --log-file, logs go to
// fallback; the terminal game passes io.Discard so the screen stays clean.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	out := fallback
	closeFn := func() {}

	if flagLogFile != "" {
		path := expandHome(flagLogFile)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
