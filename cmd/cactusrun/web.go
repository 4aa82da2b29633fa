package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cactus-run/internal/platform/web"
)

var (
	flagWebAddr   string
	flagAssetsDir string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the game to browsers",
	Long: `Start an HTTP server with the game page. Each browser tab opens a
websocket and plays its own run; the page sends frame timestamps and
input, the server answers with what to draw and play.

Sprite images and audio are loaded from --assets (served under /assets/).
Without it the page draws plain shapes.

Examples:
  cactusrun web
  cactusrun web --addr :9000 --assets ./assets`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
	webCmd.Flags().StringVar(&flagAssetsDir, "assets", "", "Directory with images/, audio/ and music/")
	webCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	webCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runWeb(_ *cobra.Command, _ []string) error {
	runnerCfg, difficulty, err := loadRunnerConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("cactusrun-web", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	server := web.NewServer(web.ServerConfig{
		Address:    flagWebAddr,
		DBPath:     flagDBPath,
		AssetsDir:  flagAssetsDir,
		Runner:     runnerCfg,
		Difficulty: difficulty,
		Seed:       flagSeed,
		Logger:     logger,
	})

	fmt.Printf("Open http://localhost:%s in a browser\n", portOf(flagWebAddr))
	fmt.Println("Press Ctrl+C to stop")
	return server.ListenAndServe()
}
