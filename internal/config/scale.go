package config

// Viewport is the pixel size of the host's drawing surface.
type Viewport struct {
	Width  float64
	Height float64
}

// Size is a scaled width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// Scaled holds the configuration mapped from design space into viewport pixels.
// It is produced as a whole by Scale; entities are built from it and rebuilt
// when the viewport changes.
type Scaled struct {
	Ratio float64

	Width  float64 // Play area size
	Height float64

	PlayerX       float64
	PlayerWidth   float64
	PlayerHeight  float64
	StandingY     float64 // Player top edge while grounded
	JumpImpulse   float64
	Gravity       float64
	MinJumpHeight float64
	MaxJumpHeight float64

	GroundWidth  float64
	GroundHeight float64
	GroundY      float64

	ObstacleSizes  []Size
	ObstacleImages []string
	MinGap         float64
	MaxGap         float64

	ScrollSpeed    float64 // px/ms at game speed 1
	SpeedStart     float64
	SpeedIncrement float64

	ScoreRate    float64
	HighScoreKey string
	CooldownMS   float64
	FontSize     float64 // Base font size for the score line

	Assets AssetConfig
	Audio  AudioConfig
}

// ScaleRatio returns the factor mapping design pixels onto the viewport so that
// the play area fits inside it on both axes. Degenerate viewports yield 1.
func ScaleRatio(world WorldConfig, vp Viewport) float64 {
	if vp.Width <= 0 || vp.Height <= 0 || world.Width <= 0 || world.Height <= 0 {
		return 1
	}
	// Window is narrower than the game: width is the binding dimension.
	if vp.Width/vp.Height < world.Width/world.Height {
		return vp.Width / world.Width
	}
	return vp.Height / world.Height
}

// Scale maps every spatial constant of cfg into viewport pixels. It does not
// modify cfg.
func Scale(cfg RunnerConfig, vp Viewport) Scaled {
	r := ScaleRatio(cfg.World, vp)

	sizes := make([]Size, len(cfg.Obstacles.Sizes))
	for i, sz := range cfg.Obstacles.Sizes {
		sizes[i] = Size{Width: sz.Width * r, Height: sz.Height * r}
	}
	images := append([]string(nil), cfg.Obstacles.Images...)
	audio := cfg.Audio
	audio.Music = append([]string(nil), cfg.Audio.Music...)

	width := cfg.World.Width * r
	height := cfg.World.Height * r
	playerH := cfg.Player.Height * r
	groundH := cfg.Ground.Height * r

	return Scaled{
		Ratio:  r,
		Width:  width,
		Height: height,

		PlayerX:       cfg.Player.X * r,
		PlayerWidth:   cfg.Player.Width * r,
		PlayerHeight:  playerH,
		StandingY:     height - playerH - cfg.Player.GroundMargin*r,
		JumpImpulse:   cfg.Player.JumpImpulse * r,
		Gravity:       cfg.Player.Gravity * r,
		MinJumpHeight: cfg.Player.MinJumpHeight * r,
		MaxJumpHeight: cfg.Player.MaxJumpHeight * r,

		GroundWidth:  cfg.Ground.Width * r,
		GroundHeight: groundH,
		GroundY:      height - groundH,

		ObstacleSizes:  sizes,
		ObstacleImages: images,
		MinGap:         cfg.Obstacles.MinGap * r,
		MaxGap:         cfg.Obstacles.MaxGap * r,

		ScrollSpeed:    cfg.Speed.Scroll * r,
		SpeedStart:     cfg.Speed.Start,
		SpeedIncrement: cfg.Speed.Increment,

		ScoreRate:    cfg.Score.Rate,
		HighScoreKey: cfg.Score.HighScoreKey,
		CooldownMS:   cfg.Restart.CooldownMS,
		FontSize:     20 * r,

		Assets: cfg.Assets,
		Audio:  audio,
	}
}
