package breakout

import (
	"math"

	"github.com/vovakirdan/brickstorm/internal/core"
)

// reflectOffRect bounces the ball off r along the axis of least penetration
// and pushes it clear. Returns false when the two do not overlap.
func reflectOffRect(b *Ball, r core.RectF) bool {
	if !r.CircleOverlaps(b.X, b.Y, b.Radius) {
		return false
	}

	if penX, penY := penetration(b, r); penX < penY {
		if b.X < r.CX {
			b.X = r.Left() - b.Radius
			b.VX = -math.Abs(b.VX)
		} else {
			b.X = r.Right() + b.Radius
			b.VX = math.Abs(b.VX)
		}
		return true
	}

	if b.Y < r.CY {
		b.Y = r.Top() - b.Radius
		b.VY = -math.Abs(b.VY)
	} else {
		b.Y = r.Bottom() + b.Radius
		b.VY = math.Abs(b.VY)
	}
	return true
}

// penetration returns how deep the ball reaches into r along each axis.
func penetration(b *Ball, r core.RectF) (penX, penY float64) {
	penX = math.Min(b.X+b.Radius-r.Left(), r.Right()-(b.X-b.Radius))
	penY = math.Min(b.Y+b.Radius-r.Top(), r.Bottom()-(b.Y-b.Radius))
	return penX, penY
}

// SteerOffPaddle sends the ball back up at an angle chosen by where it
// struck the paddle: the left edge maps to 210 degrees, the right edge to 330.
// Speed never drops below minSpeed. Returns the new angle.
func SteerOffPaddle(b *Ball, p *Paddle, minSpeed float64) float64 {
	percent := core.ClampF((b.X-p.X)/p.HalfWidth, -1, 1)
	angle := core.Lerp(steerMinAngle, steerMaxAngle, (percent+1)/2)
	speed := math.Max(b.Speed(), minSpeed)

	v := core.FromAngle(angle, speed)
	b.VX, b.VY = v.X, v.Y
	return angle
}

// collideBalls resolves an equal-mass elastic contact: the velocity
// components along the contact normal are exchanged and the overlap is split
// evenly. Returns false when the balls do not touch.
func collideBalls(a, b *Ball) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	d := math.Hypot(dx, dy)
	minDist := a.Radius + b.Radius
	if d >= minDist || d == 0 {
		return false
	}

	nx, ny := dx/d, dy/d
	push := (minDist - d) / 2
	a.X -= nx * push
	a.Y -= ny * push
	b.X += nx * push
	b.Y += ny * push

	va := a.VX*nx + a.VY*ny
	vb := b.VX*nx + b.VY*ny
	if va-vb <= 0 {
		// Already separating.
		return true
	}

	a.VX += (vb - va) * nx
	a.VY += (vb - va) * ny
	b.VX += (va - vb) * nx
	b.VY += (va - vb) * ny
	return true
}
