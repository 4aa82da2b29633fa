package runner

import (
	"github.com/vovakirdan/cactus-run/internal/config"
	"github.com/vovakirdan/cactus-run/internal/core"
)

// Player is the runner character. It stays at a fixed x and only moves
// vertically, under a jump impulse and constant gravity.
type Player struct {
	x, y          float64 // Top-left corner, viewport pixels
	width, height float64
	standingY     float64 // y while on the ground
	vel           float64 // Vertical velocity, px/ms (negative = up)
	impulse       float64
	gravity       float64
	grounded      bool
	jumpQueued    bool // Jump requested, applied on the next Update
	image         string
}

// NewPlayer creates a grounded player from the scaled configuration.
func NewPlayer(s config.Scaled) *Player {
	p := &Player{
		x:         s.PlayerX,
		width:     s.PlayerWidth,
		height:    s.PlayerHeight,
		standingY: s.StandingY,
		impulse:   s.JumpImpulse,
		gravity:   s.Gravity,
		image:     s.Assets.Player,
	}
	p.Reset()
	return p
}

// Reset puts the player back on the ground at rest.
func (p *Player) Reset() {
	p.y = p.standingY
	p.vel = 0
	p.grounded = true
	p.jumpQueued = false
}

// Jump requests a jump. It is accepted only while grounded; a request made
// in the air is ignored.
func (p *Player) Jump() bool {
	if !p.grounded || p.jumpQueued {
		return false
	}
	p.jumpQueued = true
	return true
}

// Update advances the vertical motion by dt milliseconds. Speed does not
// affect the player; it is accepted to match the other entities.
func (p *Player) Update(_ float64, dt float64) {
	if p.jumpQueued {
		p.vel = -p.impulse
		p.grounded = false
		p.jumpQueued = false
	}

	if p.grounded {
		return
	}

	// Exact for constant acceleration
	p.y += p.vel*dt + 0.5*p.gravity*dt*dt
	p.vel += p.gravity * dt

	// Landed
	if p.y >= p.standingY && p.vel > 0 {
		p.y = p.standingY
		p.vel = 0
		p.grounded = true
	}
}

// Rect returns the collision rectangle.
func (p *Player) Rect() core.RectF {
	return core.NewRectF(p.x, p.y, p.width, p.height)
}

// Grounded reports whether the player stands on the ground.
func (p *Player) Grounded() bool {
	return p.grounded
}

// Y returns the top edge.
func (p *Player) Y() float64 {
	return p.y
}

// Velocity returns the vertical velocity in px/ms.
func (p *Player) Velocity() float64 {
	return p.vel
}

// Draw paints the player sprite.
func (p *Player) Draw(r Renderer) {
	kind := SpritePlayer
	if !p.grounded {
		kind = SpritePlayerJumping
	}
	r.Sprite(kind, p.image, p.Rect())
}
