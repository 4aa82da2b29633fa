package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in configuration. It mirrors the
// embedded defaults/runner.yaml and is used when the embed cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: WorldConfig{
			Width:  800,
			Height: 200,
		},
		Player: PlayerConfig{
			X:             10,
			Width:         80 / 1.5,
			Height:        130 / 1.5,
			GroundMargin:  1.5,
			MinJumpHeight: 150,
			MaxJumpHeight: 200,
			JumpImpulse:   1.0,
			Gravity:       0.0045,
		},
		Ground: GroundConfig{
			Width:  2400,
			Height: 24,
		},
		Obstacles: ObstacleConfig{
			Sizes: []ObstacleSize{
				{Width: 98 / 1.5, Height: 100 / 1.5},
				{Width: 98 / 1.5, Height: 100 / 1.5},
				{Width: 98 / 1.5, Height: 90 / 1.5},
				{Width: 68 / 1.5, Height: 60 / 1.5},
				{Width: 68 / 1.5, Height: 60 / 1.5},
				{Width: 105 / 1.5, Height: 110 / 1.5},
			},
			Images: []string{
				"images/cactus_1.png",
				"images/cactus_2.png",
				"images/cactus_3.png",
				"images/cactus_4.png",
				"images/cactus_5.png",
				"images/cactus_6.png",
				"images/cactus_7.png",
				"images/cactus_8.png",
				"images/cactus_9.png",
				"images/cactus_10.png",
				"images/cactus_11.png",
				"images/cactus_12.png",
				"images/cactus_13.png",
				"images/cactus_14.png",
			},
			MinGap: 250,
			MaxGap: 1000,
		},
		Speed: SpeedConfig{
			Start:     1.0,
			Increment: 0.00001,
			Scroll:    0.5,
		},
		Score: ScoreConfig{
			Rate:         0.01,
			HighScoreKey: "highScore",
		},
		Restart: RestartConfig{
			CooldownMS: 1000,
		},
		Assets: AssetConfig{
			Background: "images/background.png",
			Ground:     "images/ground.png",
			Player:     "images/standing_still.png",
		},
		Audio: AudioConfig{
			JumpClip: "audio/jump.mp3",
			Music: []string{
				"music/SZA.mp3",
				"music/ASAP.mp3",
				"music/BRUNO.mp3",
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
