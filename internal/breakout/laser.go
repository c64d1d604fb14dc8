package breakout

import "github.com/vovakirdan/brickstorm/internal/core"

// laserEndY is just above the top of the field.
const laserEndY = -20.0

// Laser is a vertical sweep moving from the paddle to the top of the field
// on the simulation clock. Each brick is damaged at most once per laser.
type Laser struct {
	X        float64
	StartY   float64
	Y        float64
	PrevY    float64 // Y before the last Advance
	Elapsed  float64 // seconds
	Duration float64 // seconds
	Hit      map[int]bool
	Done     bool
}

// NewLaser creates a laser at column x starting from height y.
func NewLaser(x, y, duration float64) *Laser {
	return &Laser{
		X:        x,
		StartY:   y,
		Y:        y,
		PrevY:    y,
		Duration: duration,
		Hit:      make(map[int]bool),
	}
}

// Advance moves the laser along its sweep. Position is a pure function of
// elapsed time, so tick length does not change the path.
func (l *Laser) Advance(dt float64) {
	l.PrevY = l.Y
	l.Elapsed += dt
	t := 1.0
	if l.Duration > 0 {
		t = min(l.Elapsed/l.Duration, 1)
	}
	l.Y = core.Lerp(l.StartY, laserEndY, t)
	if l.Elapsed >= l.Duration {
		l.Done = true
	}
}

// Reaches reports whether (x, y) came within radius of the beam tip during
// the last Advance. The whole swept segment counts, so long ticks cannot
// skip a brick between two tip positions.
func (l *Laser) Reaches(x, y, radius float64) bool {
	top, bottom := min(l.Y, l.PrevY), max(l.Y, l.PrevY)
	return core.Dist(l.X, core.ClampF(y, top, bottom), x, y) < radius
}

// updateLasers advances every live laser and damages bricks in range.
func (s *Session) updateLasers(dt float64) {
	radius := s.cfg.Powerups.LaserRadius
	for _, l := range s.Lasers {
		if l.Done {
			continue
		}
		l.Advance(dt)
		for i, b := range s.Bricks {
			if !b.Active || l.Hit[i] {
				continue
			}
			if l.Reaches(b.X, b.Y, radius) {
				l.Hit[i] = true
				s.damage(b)
			}
		}
		s.checkLevelClear()
		if s.Terminal() {
			return
		}
	}
}
