package breakout

import "github.com/vovakirdan/brickstorm/internal/core"

// PowerupType identifies a pickup's effect.
type PowerupType int

const (
	PowerupFast      PowerupType = iota // Speed up every ball
	PowerupMultiball                    // Two extra balls
	PowerupExplosion                    // Next brick hit splashes
	PowerupLaser                        // Vertical sweep from the paddle
	powerupKinds                        // Sentinel for counting types
)

// Glyph returns the display character for a powerup type.
func (p PowerupType) Glyph() rune {
	switch p {
	case PowerupFast:
		return 'F'
	case PowerupMultiball:
		return 'M'
	case PowerupExplosion:
		return 'X'
	case PowerupLaser:
		return 'L'
	default:
		return '?'
	}
}

// String returns the name of the powerup type.
func (p PowerupType) String() string {
	switch p {
	case PowerupFast:
		return "fast"
	case PowerupMultiball:
		return "multiball"
	case PowerupExplosion:
		return "explosion"
	case PowerupLaser:
		return "laser"
	default:
		return "unknown"
	}
}

// Color returns the palette color used to draw the pickup.
func (p PowerupType) Color() core.Color {
	switch p {
	case PowerupFast:
		return core.ColorYellow
	case PowerupMultiball:
		return core.ColorCyan
	case PowerupExplosion:
		return core.ColorRed
	case PowerupLaser:
		return core.ColorMagenta
	default:
		return core.ColorDefault
	}
}

// rollPowerup spends exactly one draw: below chance it spawns, and the same
// draw scaled over [0, chance) picks the type.
func rollPowerup(r, chance float64) (PowerupType, bool) {
	if r >= chance {
		return 0, false
	}
	idx := int(r / chance * float64(powerupKinds))
	if idx >= int(powerupKinds) {
		idx = int(powerupKinds) - 1
	}
	return PowerupType(idx), true
}

// spawnPowerup drops a pickup at (x, y).
func (s *Session) spawnPowerup(t PowerupType, x, y float64) {
	s.Powerups = append(s.Powerups, &Powerup{
		X:      x,
		Y:      y,
		VY:     s.cfg.Powerups.FallSpeed,
		Size:   s.cfg.Powerups.Size,
		Type:   t,
		Active: true,
	})
}

// ApplyPowerup dispatches a collected pickup's effect.
func (s *Session) ApplyPowerup(t PowerupType) {
	pc := s.cfg.Powerups

	switch t {
	case PowerupFast:
		for _, b := range s.Balls {
			if b.Active {
				b.VX *= pc.FastMultiplier
				b.VY *= pc.FastMultiplier
			}
		}
		s.cue(CueFast)

	case PowerupMultiball:
		main := s.MainBall()
		if main == nil || !main.Active {
			return
		}
		for range pc.MultiballCount {
			extra := &Ball{
				Radius: main.Radius,
				Active: true,
			}
			extra.StickTo(main.X, main.Y)
			extra.Launch(pc.MultiballSpeed, s.rng)
			s.Balls = append(s.Balls, extra)
		}

	case PowerupExplosion:
		s.ExplosionNextHit = true
		s.cue(CueFast)

	case PowerupLaser:
		s.Lasers = append(s.Lasers, NewLaser(s.Paddle.X, s.Paddle.Y, pc.LaserDuration()))
		s.cue(CueSpear)
	}
}

// updatePowerups drops pickups and collects those touching the paddle.
func (s *Session) updatePowerups(dt float64) {
	paddle := s.Paddle.Rect()
	for _, p := range s.Powerups {
		if !p.Active {
			continue
		}
		p.Y += p.VY * dt
		if p.Y-p.Size/2 > s.cfg.World.Height {
			p.Active = false
			continue
		}
		if p.Rect().Overlaps(paddle) {
			p.Active = false
			s.ApplyPowerup(p.Type)
		}
	}
}
