package runner

import (
	"github.com/vovakirdan/cactus-run/internal/config"
	"github.com/vovakirdan/cactus-run/internal/core"
)

// Obstacle is a cactus standing on the bottom edge of the play area.
type Obstacle struct {
	X      float64 // Left edge
	Y      float64 // Top edge
	Width  float64
	Height float64
	Image  string
}

// Rect returns the collision rectangle.
func (o Obstacle) Rect() core.RectF {
	return core.NewRectF(o.X, o.Y, o.Width, o.Height)
}

// Right returns the x coordinate of the right edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// obstaclePreset pairs a geometry with the image chosen for it.
type obstaclePreset struct {
	size  config.Size
	image string
}

// ObstacleSpawner spawns, moves and evicts cacti. Obstacles are kept in
// spawn order; since they all move at the same speed the first one is always
// the leftmost.
type ObstacleSpawner struct {
	obstacles   []Obstacle
	presets     []obstaclePreset
	rnd         RandomSource
	worldWidth  float64
	worldHeight float64
	scrollSpeed float64
	minGap      float64
	maxGap      float64
	nextGap     float64 // Gap after the rightmost obstacle, drawn at its spawn
}

// NewObstacleSpawner creates a spawner. Each geometry preset is paired with
// an image drawn independently from the image list.
func NewObstacleSpawner(s config.Scaled, rnd RandomSource) *ObstacleSpawner {
	presets := make([]obstaclePreset, len(s.ObstacleSizes))
	for i, sz := range s.ObstacleSizes {
		presets[i] = obstaclePreset{size: sz}
		if len(s.ObstacleImages) > 0 {
			presets[i].image = s.ObstacleImages[rnd.Intn(len(s.ObstacleImages))]
		}
	}

	return &ObstacleSpawner{
		obstacles:   make([]Obstacle, 0, 8),
		presets:     presets,
		rnd:         rnd,
		worldWidth:  s.Width,
		worldHeight: s.Height,
		scrollSpeed: s.ScrollSpeed,
		minGap:      s.MinGap,
		maxGap:      s.MaxGap,
	}
}

// Reset removes every obstacle.
func (sp *ObstacleSpawner) Reset() {
	sp.obstacles = sp.obstacles[:0]
	sp.nextGap = 0
}

// Update moves obstacles left, evicts those fully off the left edge and spawns
// a new one at the right edge once the gap behind the rightmost has opened.
func (sp *ObstacleSpawner) Update(speed, dt float64) {
	dx := speed * sp.scrollSpeed * dt
	for i := range sp.obstacles {
		sp.obstacles[i].X -= dx
	}

	// Evict from the front
	n := 0
	for n < len(sp.obstacles) && sp.obstacles[n].Right() < 0 {
		n++
	}
	if n > 0 {
		sp.obstacles = append(sp.obstacles[:0], sp.obstacles[n:]...)
	}

	if sp.shouldSpawn() {
		sp.spawn(speed)
	}
}

func (sp *ObstacleSpawner) shouldSpawn() bool {
	if len(sp.presets) == 0 {
		return false
	}
	if len(sp.obstacles) == 0 {
		return true
	}
	last := sp.obstacles[len(sp.obstacles)-1]
	return last.Right()+sp.nextGap <= sp.worldWidth
}

// spawn appends an obstacle at the right edge of the play area and draws the
// gap that must open behind it before the next one.
func (sp *ObstacleSpawner) spawn(speed float64) {
	p := sp.presets[sp.rnd.Intn(len(sp.presets))]
	sp.obstacles = append(sp.obstacles, Obstacle{
		X:      sp.worldWidth,
		Y:      sp.worldHeight - p.size.Height,
		Width:  p.size.Width,
		Height: p.size.Height,
		Image:  p.image,
	})
	sp.nextGap = (sp.minGap + sp.rnd.Float64()*(sp.maxGap-sp.minGap)) * speed
}

// Obstacles returns the live obstacles, leftmost first. The slice is owned by
// the spawner.
func (sp *ObstacleSpawner) Obstacles() []Obstacle {
	return sp.obstacles
}

// NextGap returns the gap drawn for the next spawn.
func (sp *ObstacleSpawner) NextGap() float64 {
	return sp.nextGap
}

// CollideWith reports whether any obstacle overlaps the player.
func (sp *ObstacleSpawner) CollideWith(p *Player) bool {
	rect := p.Rect()
	for _, o := range sp.obstacles {
		if rect.Intersects(o.Rect()) {
			return true
		}
	}
	return false
}

// Draw paints every obstacle.
func (sp *ObstacleSpawner) Draw(r Renderer) {
	for _, o := range sp.obstacles {
		r.Sprite(SpriteObstacle, o.Image, o.Rect())
	}
}
