package config

import (
	"fmt"
	"slices"
)

// Presets lists the difficulty presets from easiest to the fixed-speed mode.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a CLI difficulty name into a preset.
// An empty name means "use the config as loaded".
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return "", nil
	}
	if slices.Contains(Presets, DifficultyPreset(name)) {
		return DifficultyPreset(name), nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// ApplyPreset modifies the speed ramp based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.Start *= 0.8
		cfg.Speed.Increment *= 0.5
	case DifficultyHard:
		cfg.Speed.Start *= 1.3
		cfg.Speed.Increment *= 2
	case DifficultyFixed:
		// No progression, the run stays at its start speed.
		cfg.Speed.Increment = 0
	}
}
