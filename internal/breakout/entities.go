// Package breakout implements the brickstorm simulation: a Breakout/Arkanoid
// session with multiball, splash damage and laser powerups over three levels.
//
// Everything here runs on world coordinates (float pixels, origin top left,
// y down) and simulation time; the platform layer owns terminal cells and
// wall-clock time.
package breakout

import (
	"math"

	"github.com/vovakirdan/brickstorm/internal/core"
)

// Launch angles in degrees. 270 points straight up.
const (
	launchMinAngle = 220.0
	launchSpread   = 100.0 // upper bound 320 is exclusive
	steerMinAngle  = 210.0
	steerMaxAngle  = 330.0
)

// Ball is a single simulated ball.
type Ball struct {
	X, Y   float64 // Center
	VX, VY float64 // px per second
	Radius float64
	Stuck  bool // Riding the paddle, not under physics
	Active bool
	Main   bool // Losing the main ball costs a life
}

// LaunchAngle draws a departure angle uniformly from [220, 320).
func LaunchAngle(rng RandomSource) float64 {
	return launchMinAngle + rng.Float64()*launchSpread
}

// Launch sends a stuck ball off at a random upward angle.
// It reports false and does nothing when the ball is already free.
func (b *Ball) Launch(speed float64, rng RandomSource) bool {
	if !b.Stuck {
		return false
	}
	v := core.FromAngle(LaunchAngle(rng), speed)
	b.VX, b.VY = v.X, v.Y
	b.Stuck = false
	return true
}

// StickTo pins the ball at (x, y) with zero velocity.
func (b *Ball) StickTo(x, y float64) {
	b.X, b.Y = x, y
	b.VX, b.VY = 0, 0
	b.Stuck = true
}

// Speed returns the velocity magnitude.
func (b *Ball) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// Integrate moves the ball by its velocity over dt seconds.
func (b *Ball) Integrate(dt float64) {
	b.X += b.VX * dt
	b.Y += b.VY * dt
}

// Freeze stops the ball where it is.
func (b *Ball) Freeze() {
	b.VX, b.VY = 0, 0
}

// Contain keeps the ball inside the side walls and the ceiling.
// The bottom stays open. Returns true if any wall was touched.
func (b *Ball) Contain(width float64) bool {
	touched := false
	if b.X-b.Radius < 0 {
		b.X = b.Radius
		b.VX = math.Abs(b.VX)
		touched = true
	} else if b.X+b.Radius > width {
		b.X = width - b.Radius
		b.VX = -math.Abs(b.VX)
		touched = true
	}
	if b.Y-b.Radius < 0 {
		b.Y = b.Radius
		b.VY = math.Abs(b.VY)
		touched = true
	}
	return touched
}

// OutOfBounds reports whether the ball has fully left through the bottom.
func (b *Ball) OutOfBounds(height float64) bool {
	return b.Y-b.Radius > height
}

// Paddle is the player's paddle. Y never changes.
type Paddle struct {
	X, Y      float64 // Center
	HalfWidth float64
	Height    float64
}

// MoveTo centers the paddle on x, clamped to [HalfWidth, boundsWidth-HalfWidth].
func (p *Paddle) MoveTo(x, boundsWidth float64) {
	p.X = core.ClampF(x, p.HalfWidth, boundsWidth-p.HalfWidth)
}

// Nudge moves the paddle by dx through MoveTo.
func (p *Paddle) Nudge(dx, boundsWidth float64) {
	p.MoveTo(p.X+dx, boundsWidth)
}

// Top returns the y of the paddle's top edge.
func (p *Paddle) Top() float64 {
	return p.Y - p.Height/2
}

// Rect returns the paddle's collision box.
func (p *Paddle) Rect() core.RectF {
	return core.RectF{CX: p.X, CY: p.Y, W: p.HalfWidth * 2, H: p.Height}
}

// Brick is a destructible block. Position never changes once placed.
type Brick struct {
	X, Y      float64 // Center
	W, H      float64
	Health    int
	MaxHealth int
	Boss      bool
	Active    bool // false once removed; removed bricks never collide again
	Damaged   bool // Hit at least once but still standing
	Decor     bool // Background layer drawn behind the boss
	Upper     bool // Top half of the field, selects the texture row
}

// Rect returns the brick's collision box.
func (b *Brick) Rect() core.RectF {
	return core.RectF{CX: b.X, CY: b.Y, W: b.W, H: b.H}
}

// Powerup is a falling pickup released by a brick hit.
type Powerup struct {
	X, Y   float64
	VY     float64
	Size   float64
	Type   PowerupType
	Active bool
}

// Rect returns the pickup's collision box.
func (p *Powerup) Rect() core.RectF {
	return core.RectF{CX: p.X, CY: p.Y, W: p.Size, H: p.Size}
}
