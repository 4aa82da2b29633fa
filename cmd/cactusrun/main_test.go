package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/cactus-run/internal/config"
)

func TestLoadRunnerConfigPresets(t *testing.T) {
	base := config.DefaultRunnerConfig()

	tests := []struct {
		difficulty string
		label      string
		increment  float64
	}{
		{"", "normal", base.Speed.Increment},
		{"normal", "normal", base.Speed.Increment},
		{"easy", "easy", base.Speed.Increment * 0.5},
		{"fixed", "fixed", 0},
	}

	flagConfig = writeConfig(t, "speed:\n  start: 1.0\n")
	defer func() { flagConfig, flagDifficulty = "", "" }()

	for _, tc := range tests {
		t.Run("preset "+tc.label, func(t *testing.T) {
			flagDifficulty = tc.difficulty
			cfg, label, err := loadRunnerConfig()
			if err != nil {
				t.Fatalf("loadRunnerConfig() failed: %v", err)
			}
			if label != tc.label {
				t.Errorf("label = %q, expected %q", label, tc.label)
			}
			if cfg.Speed.Increment != tc.increment {
				t.Errorf("increment = %g, expected %g", cfg.Speed.Increment, tc.increment)
			}
		})
	}
}

func TestLoadRunnerConfigErrors(t *testing.T) {
	defer func() { flagConfig, flagDifficulty = "", "" }()

	flagConfig = writeConfig(t, "")
	flagDifficulty = "nightmare"
	if _, _, err := loadRunnerConfig(); err == nil {
		t.Error("expected an error for an unknown difficulty")
	}

	flagDifficulty = ""
	flagConfig = writeConfig(t, "bogus_key: 1\n")
	if _, _, err := loadRunnerConfig(); err == nil {
		t.Error("expected an error for an unknown config key")
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"localhost:8080": "8080",
		"8080":           "8080",
	}
	for addr, want := range tests {
		if got := portOf(addr); got != want {
			t.Errorf("portOf(%q) = %q, expected %q", addr, got, want)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/logs/run.log"); got != filepath.Join(home, "logs", "run.log") {
		t.Errorf("expandHome() = %q", got)
	}
	if got := expandHome("/tmp/run.log"); got != "/tmp/run.log" {
		t.Errorf("expandHome() changed an absolute path: %q", got)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
