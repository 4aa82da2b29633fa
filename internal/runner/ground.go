package runner

import (
	"math"

	"github.com/vovakirdan/cactus-run/internal/config"
	"github.com/vovakirdan/cactus-run/internal/core"
)

// Ground is the scrolling floor strip. It is drawn twice side by side so the
// wrap at offset -width is seamless.
type Ground struct {
	offset      float64 // Horizontal offset, always in (-width, 0]
	y           float64
	width       float64
	height      float64
	scrollSpeed float64 // px/ms at game speed 1
	image       string
}

// NewGround creates a ground strip from the scaled configuration.
func NewGround(s config.Scaled) *Ground {
	return &Ground{
		y:           s.GroundY,
		width:       s.GroundWidth,
		height:      s.GroundHeight,
		scrollSpeed: s.ScrollSpeed,
		image:       s.Assets.Ground,
	}
}

// Reset returns the strip to offset 0.
func (g *Ground) Reset() {
	g.offset = 0
}

// Update scrolls left by speed × scroll rate × dt and wraps into (-width, 0].
func (g *Ground) Update(speed, dt float64) {
	g.offset -= speed * g.scrollSpeed * dt
	if g.offset <= -g.width {
		g.offset = math.Mod(g.offset, g.width)
	}
}

// Offset returns the current horizontal offset.
func (g *Ground) Offset() float64 {
	return g.offset
}

// Width returns the strip width.
func (g *Ground) Width() float64 {
	return g.width
}

// Draw paints the strip at offset and offset+width.
func (g *Ground) Draw(r Renderer) {
	r.Sprite(SpriteGround, g.image, core.NewRectF(g.offset, g.y, g.width, g.height))
	r.Sprite(SpriteGround, g.image, core.NewRectF(g.offset+g.width, g.y, g.width, g.height))
}
