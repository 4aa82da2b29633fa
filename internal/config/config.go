// Package config provides YAML-based game configuration loading, difficulty
// presets and the design-space to viewport scaling used by the runner.
//
// All spatial values are expressed in design space: an 800x200 pixel world.
// Times are milliseconds, velocities are pixels per millisecond.
package config

// RunnerConfig contains every tunable constant of the runner.
type RunnerConfig struct {
	World     WorldConfig    `yaml:"world" json:"world"`
	Player    PlayerConfig   `yaml:"player" json:"player"`
	Ground    GroundConfig   `yaml:"ground" json:"ground"`
	Obstacles ObstacleConfig `yaml:"obstacles" json:"obstacles"`
	Speed     SpeedConfig    `yaml:"speed" json:"speed"`
	Score     ScoreConfig    `yaml:"score" json:"score"`
	Restart   RestartConfig  `yaml:"restart" json:"restart"`
	Assets    AssetConfig    `yaml:"assets" json:"assets"`
	Audio     AudioConfig    `yaml:"audio" json:"audio"`
}

// WorldConfig defines the design-space size of the play area.
type WorldConfig struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// PlayerConfig defines the player box and jump physics.
type PlayerConfig struct {
	X             float64 `yaml:"x" json:"x"`
	Width         float64 `yaml:"width" json:"width"`
	Height        float64 `yaml:"height" json:"height"`
	GroundMargin  float64 `yaml:"ground_margin" json:"ground_margin"`     // Gap between the player's feet and the world bottom
	MinJumpHeight float64 `yaml:"min_jump_height" json:"min_jump_height"` // Lowest allowed apex, measured from the world bottom to the player's top
	MaxJumpHeight float64 `yaml:"max_jump_height" json:"max_jump_height"` // Highest allowed apex, same measure
	JumpImpulse   float64 `yaml:"jump_impulse" json:"jump_impulse"`       // Upward velocity set on jump (px/ms)
	Gravity       float64 `yaml:"gravity" json:"gravity"`                 // Downward acceleration (px/ms^2)
}

// GroundConfig defines the scrolling ground strip.
type GroundConfig struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// ObstacleSize is one obstacle geometry preset.
type ObstacleSize struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// ObstacleConfig defines obstacle geometry, images and spacing.
type ObstacleConfig struct {
	Sizes  []ObstacleSize `yaml:"sizes" json:"sizes"`
	Images []string       `yaml:"images" json:"images"`
	MinGap float64        `yaml:"min_gap" json:"min_gap"` // Minimum gap at game speed 1; scales with speed
	MaxGap float64        `yaml:"max_gap" json:"max_gap"`
}

// SpeedConfig defines scrolling speed and the speed ramp.
type SpeedConfig struct {
	Start     float64 `yaml:"start" json:"start"`         // Game speed multiplier at the start of a run
	Increment float64 `yaml:"increment" json:"increment"` // Added to the multiplier per elapsed millisecond
	Scroll    float64 `yaml:"scroll" json:"scroll"`       // Ground and obstacle speed at multiplier 1 (px/ms)
}

// ScoreConfig defines score accumulation and persistence.
type ScoreConfig struct {
	Rate         float64 `yaml:"rate" json:"rate"` // Points per elapsed millisecond
	HighScoreKey string  `yaml:"high_score_key" json:"high_score_key"`
}

// RestartConfig defines the game over cooldown.
type RestartConfig struct {
	CooldownMS float64 `yaml:"cooldown_ms" json:"cooldown_ms"`
}

// AssetConfig lists image references for the non-obstacle sprites.
type AssetConfig struct {
	Background string `yaml:"background" json:"background"`
	Ground     string `yaml:"ground" json:"ground"`
	Player     string `yaml:"player" json:"player"`
}

// AudioConfig lists sound clips.
type AudioConfig struct {
	JumpClip string   `yaml:"jump_clip" json:"jump_clip"`
	Music    []string `yaml:"music" json:"music"` // Played round robin, one track per started run
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)
