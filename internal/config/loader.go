package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the runner configuration.
// Search order: customPath -> ~/.cactus-run/configs/runner.yaml -> ./configs/runner.yaml -> embedded default.
// A custom path that cannot be read, parsed or validated is an error; the other
// locations are skipped when invalid.
func Load(customPath string) (RunnerConfig, error) {
	if customPath != "" {
		return LoadFile(customPath)
	}

	if userCfgPath := userConfigPath("runner.yaml"); userCfgPath != "" {
		if cfg, err := LoadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := LoadFile(filepath.Join("configs", "runner.yaml")); err == nil {
		return cfg, nil
	}

	cfg, err := Parse(defaultRunnerYAML)
	if err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadFile reads, parses and validates a single YAML file.
func LoadFile(path string) (RunnerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the built-in defaults, so a file only needs the
// keys it overrides. Unknown keys are rejected.
func Parse(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return RunnerConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return RunnerConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the simulation cannot run with.
// All problems are reported together.
func Validate(cfg RunnerConfig) error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(cfg.World.Width > 0 && cfg.World.Height > 0, "world: size must be positive, got %gx%g", cfg.World.Width, cfg.World.Height)

	p := cfg.Player
	check(p.Width > 0 && p.Height > 0, "player: size must be positive, got %gx%g", p.Width, p.Height)
	check(p.GroundMargin >= 0, "player: ground_margin must not be negative")
	check(p.JumpImpulse > 0, "player: jump_impulse must be positive")
	check(p.Gravity > 0, "player: gravity must be positive")
	check(p.MinJumpHeight <= p.MaxJumpHeight, "player: min_jump_height %g exceeds max_jump_height %g", p.MinJumpHeight, p.MaxJumpHeight)
	if p.JumpImpulse > 0 && p.Gravity > 0 {
		apex := JumpApex(cfg)
		check(apex >= p.MinJumpHeight && apex <= p.MaxJumpHeight,
			"player: jump apex %.1f outside [%g, %g]; tune jump_impulse or gravity", apex, p.MinJumpHeight, p.MaxJumpHeight)
	}

	check(cfg.Ground.Width > 0 && cfg.Ground.Height >= 0, "ground: width must be positive")

	o := cfg.Obstacles
	check(len(o.Sizes) > 0, "obstacles: at least one size is required")
	for i, sz := range o.Sizes {
		check(sz.Width > 0 && sz.Height > 0, "obstacles: size %d must be positive, got %gx%g", i, sz.Width, sz.Height)
	}
	check(len(o.Images) > 0, "obstacles: at least one image is required")
	check(o.MinGap > 0, "obstacles: min_gap must be positive")
	check(o.MinGap <= o.MaxGap, "obstacles: min_gap %g exceeds max_gap %g", o.MinGap, o.MaxGap)

	check(cfg.Speed.Start > 0, "speed: start must be positive")
	check(cfg.Speed.Increment >= 0, "speed: increment must not be negative")
	check(cfg.Speed.Scroll > 0, "speed: scroll must be positive")

	check(cfg.Score.Rate >= 0, "score: rate must not be negative")
	check(cfg.Score.HighScoreKey != "", "score: high_score_key is required")
	check(cfg.Restart.CooldownMS >= 0, "restart: cooldown_ms must not be negative")

	return errors.Join(errs...)
}

// JumpApex returns how high the top of the player reaches above the world
// bottom at the peak of a jump.
func JumpApex(cfg RunnerConfig) float64 {
	p := cfg.Player
	standing := p.Height + p.GroundMargin
	return standing + p.JumpImpulse*p.JumpImpulse/(2*p.Gravity)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cactus-run", "configs", filename)
}
