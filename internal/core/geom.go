// Package core provides fundamental types and utilities shared by the game
// simulation and the terminal platform. It has no external dependencies
// (especially no Bubble Tea) so that game logic stays pure and testable.
package core

import "math"

// Vec is a 2D vector in world (pixel) space.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between two points.
func Dist(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}

// FromAngle builds a vector of the given length pointing at angle degrees.
// 0° points along +X and 90° along +Y (screen down), so 270° is straight up.
func FromAngle(deg, length float64) Vec {
	rad := deg * math.Pi / 180
	return Vec{X: math.Cos(rad) * length, Y: math.Sin(rad) * length}
}

// Angle returns the direction of v in degrees, in (-180, 180].
func (v Vec) Angle() float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

// Lerp interpolates linearly between a and b; t=0 yields a, t=1 yields b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// RectF is an axis-aligned box in world space described by its center and size.
type RectF struct {
	CX, CY float64
	W, H   float64
}

// Left returns the x-coordinate of the left edge.
func (r RectF) Left() float64 { return r.CX - r.W/2 }

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 { return r.CX + r.W/2 }

// Top returns the y-coordinate of the top edge.
func (r RectF) Top() float64 { return r.CY - r.H/2 }

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 { return r.CY + r.H/2 }

// Overlaps reports whether two boxes intersect. Touching edges do not count.
func (r RectF) Overlaps(o RectF) bool {
	if r.Left() >= o.Right() || o.Left() >= r.Right() {
		return false
	}
	if r.Top() >= o.Bottom() || o.Top() >= r.Bottom() {
		return false
	}
	return true
}

// ClosestPoint returns the point of r nearest to (x, y).
func (r RectF) ClosestPoint(x, y float64) (float64, float64) {
	return ClampF(x, r.Left(), r.Right()), ClampF(y, r.Top(), r.Bottom())
}

// CircleOverlaps reports whether a circle at (x, y) with radius rad
// intersects the box.
func (r RectF) CircleOverlaps(x, y, rad float64) bool {
	px, py := r.ClosestPoint(x, y)
	dx, dy := x-px, y-py
	return dx*dx+dy*dy < rad*rad
}

// Rect is an integer cell rectangle used for screen drawing.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
