package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cactus-run/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print, validate or describe the game config",
	Long: `Work with runner config files.

A config file only needs the keys it overrides; everything else comes
from the built-in defaults. It is picked up from --config, then
~/.cactus-run/configs/runner.yaml, then ./configs/runner.yaml.

Examples:
  cactusrun config default > runner.yaml
  cactusrun config validate runner.yaml
  cactusrun config schema > runner.schema.json`,
}

var configDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the built-in default config",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		//nolint:errcheck // Nothing to do if stdout is gone
		os.Stdout.Write(config.DefaultYAML())
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the config",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		data, err := config.SchemaJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := config.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s is valid (jump apex %.0f px, limit %.0f)\n",
			args[0], config.JumpApex(cfg), cfg.Player.MaxJumpHeight)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDefaultCmd)
	configCmd.AddCommand(configSchemaCmd)
	configCmd.AddCommand(configValidateCmd)
}
