package config

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultRunnerConfig()) {
		t.Errorf("embedded defaults differ from DefaultRunnerConfig()\nembedded: %+v\nhardcoded: %+v", cfg, DefaultRunnerConfig())
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := Validate(DefaultRunnerConfig()); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	apex := JumpApex(DefaultRunnerConfig())
	if apex < 150 || apex > 200 {
		t.Errorf("default jump apex = %.2f, expected within [150, 200]", apex)
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("speed:\n  start: 2\nrestart:\n  cooldown_ms: 500\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.Speed.Start != 2 {
		t.Errorf("Speed.Start = %g, expected 2", cfg.Speed.Start)
	}
	if cfg.Restart.CooldownMS != 500 {
		t.Errorf("Restart.CooldownMS = %g, expected 500", cfg.Restart.CooldownMS)
	}
	// Untouched keys keep their defaults
	if cfg.Speed.Increment != DefaultRunnerConfig().Speed.Increment {
		t.Errorf("Speed.Increment = %g, expected default", cfg.Speed.Increment)
	}
	if len(cfg.Obstacles.Sizes) != 6 {
		t.Errorf("expected 6 default obstacle sizes, got %d", len(cfg.Obstacles.Sizes))
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultRunnerConfig()) {
		t.Error("empty document should yield the defaults")
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("speed:\n  strat: 2\n"))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunnerConfig)
		errMsg string
	}{
		{"apex too high", func(c *RunnerConfig) { c.Player.JumpImpulse = 2 }, "jump apex"},
		{"apex too low", func(c *RunnerConfig) { c.Player.Gravity = 0.05 }, "jump apex"},
		{"inverted jump bounds", func(c *RunnerConfig) { c.Player.MinJumpHeight = 300 }, "min_jump_height"},
		{"no obstacle sizes", func(c *RunnerConfig) { c.Obstacles.Sizes = nil }, "at least one size"},
		{"no images", func(c *RunnerConfig) { c.Obstacles.Images = nil }, "at least one image"},
		{"inverted gaps", func(c *RunnerConfig) { c.Obstacles.MinGap = 2000 }, "min_gap"},
		{"zero scroll", func(c *RunnerConfig) { c.Speed.Scroll = 0 }, "scroll"},
		{"negative increment", func(c *RunnerConfig) { c.Speed.Increment = -1 }, "increment"},
		{"missing high score key", func(c *RunnerConfig) { c.Score.HighScoreKey = "" }, "high_score_key"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			tc.mutate(&cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("error %q should mention %q", err, tc.errMsg)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("score:\n  rate: 0.02\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(good)
	if err != nil {
		t.Fatalf("Load(good) failed: %v", err)
	}
	if cfg.Score.Rate != 0.02 {
		t.Errorf("Score.Rate = %g, expected 0.02", cfg.Score.Rate)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() with a missing custom path should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("player:\n  gravity: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() with an invalid custom config should fail")
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultRunnerConfig()

	tests := []struct {
		preset        DifficultyPreset
		wantStart     float64
		wantIncrement float64
	}{
		{DifficultyNormal, base.Speed.Start, base.Speed.Increment},
		{DifficultyEasy, base.Speed.Start * 0.8, base.Speed.Increment * 0.5},
		{DifficultyHard, base.Speed.Start * 1.3, base.Speed.Increment * 2},
		{DifficultyFixed, base.Speed.Start, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Speed.Start != tc.wantStart || cfg.Speed.Increment != tc.wantIncrement {
				t.Errorf("speed = %+v, expected start %g increment %g", cfg.Speed, tc.wantStart, tc.wantIncrement)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(name); err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", name, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset(nightmare) should fail")
	}
}

func TestScaleRatio(t *testing.T) {
	world := WorldConfig{Width: 800, Height: 200}

	tests := []struct {
		name string
		vp   Viewport
		want float64
	}{
		{"exact design size", Viewport{800, 200}, 1},
		{"narrow window is width bound", Viewport{400, 400}, 0.5},
		{"wide window is height bound", Viewport{2000, 300}, 1.5},
		{"degenerate viewport", Viewport{0, 100}, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ScaleRatio(world, tc.vp)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("ScaleRatio() = %g, expected %g", got, tc.want)
			}
			if tc.vp.Width > 0 && tc.vp.Height > 0 {
				if world.Width*got > tc.vp.Width+1e-9 || world.Height*got > tc.vp.Height+1e-9 {
					t.Errorf("scaled world %gx%g exceeds viewport %+v", world.Width*got, world.Height*got, tc.vp)
				}
			}
		})
	}
}

func TestScaleMultipliesSpatialFields(t *testing.T) {
	cfg := DefaultRunnerConfig()
	s := Scale(cfg, Viewport{Width: 1600, Height: 1000})

	if s.Ratio != 2 {
		t.Fatalf("Ratio = %g, expected 2", s.Ratio)
	}

	checks := map[string][2]float64{
		"Width":        {s.Width, 1600},
		"Height":       {s.Height, 400},
		"PlayerWidth":  {s.PlayerWidth, cfg.Player.Width * 2},
		"PlayerHeight": {s.PlayerHeight, cfg.Player.Height * 2},
		"StandingY":    {s.StandingY, 400 - cfg.Player.Height*2 - cfg.Player.GroundMargin*2},
		"JumpImpulse":  {s.JumpImpulse, cfg.Player.JumpImpulse * 2},
		"Gravity":      {s.Gravity, cfg.Player.Gravity * 2},
		"GroundWidth":  {s.GroundWidth, 4800},
		"GroundY":      {s.GroundY, 400 - 48},
		"MinGap":       {s.MinGap, cfg.Obstacles.MinGap * 2},
		"ScrollSpeed":  {s.ScrollSpeed, cfg.Speed.Scroll * 2},
		"SpeedStart":   {s.SpeedStart, cfg.Speed.Start},
	}
	for name, c := range checks {
		if math.Abs(c[0]-c[1]) > 1e-9 {
			t.Errorf("%s = %g, expected %g", name, c[0], c[1])
		}
	}

	for i, sz := range s.ObstacleSizes {
		if sz.Width != cfg.Obstacles.Sizes[i].Width*2 || sz.Height != cfg.Obstacles.Sizes[i].Height*2 {
			t.Errorf("ObstacleSizes[%d] = %+v not scaled", i, sz)
		}
	}

	// Scaling must not alias the source slices
	s.ObstacleImages[0] = "changed"
	if cfg.Obstacles.Images[0] == "changed" {
		t.Error("Scale() should copy obstacle images")
	}
}

func TestSchemaJSON(t *testing.T) {
	data, err := SchemaJSON()
	if err != nil {
		t.Fatalf("SchemaJSON() failed: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}
	if doc["title"] != "Cactus Run configuration" {
		t.Errorf("title = %v", doc["title"])
	}
	if !strings.Contains(string(data), "jump_impulse") {
		t.Error("schema should describe player.jump_impulse")
	}
}
