package breakout

import "github.com/vovakirdan/brickstorm/internal/core"

// HitBrick applies a direct ball hit to a brick. An armed explosion splashes
// first; then the brick takes one damage, a single draw decides whether a
// powerup drops, and the level-clear check runs once everything has settled.
func (s *Session) HitBrick(b *Brick) {
	if !b.Active {
		return
	}

	if s.ExplosionNextHit {
		s.ExplosionNextHit = false
		s.TriggerExplosion(b.X, b.Y)
	}

	s.damage(b)

	if t, ok := rollPowerup(s.rng.Float64(), s.cfg.Powerups.SpawnChance); ok {
		s.spawnPowerup(t, b.X, b.Y)
	}

	s.checkLevelClear()
}

// TriggerExplosion deals one damage to every live brick strictly within the
// splash radius of (cx, cy). The brick at the origin is excluded.
// Splash damage never rolls for powerups.
func (s *Session) TriggerExplosion(cx, cy float64) {
	radius := s.cfg.Powerups.ExplosionRadius
	for _, b := range s.Bricks {
		if !b.Active {
			continue
		}
		d := core.Dist(cx, cy, b.X, b.Y)
		if d > 0 && d < radius {
			s.damage(b)
		}
	}
}

// damage takes one health from a brick, removing it at zero. The win check
// is left to the caller so batches resolve fully first.
func (s *Session) damage(b *Brick) (removed bool) {
	if !b.Active {
		return false
	}
	b.Health--
	if b.Health <= 0 {
		b.Active = false
		b.Decor = false
		b.Damaged = false
		s.Score += s.cfg.Bricks.Points
		s.cue(CueBrick)
		return true
	}
	b.Damaged = true
	return false
}

// checkLevelClear moves to the win state the first time no brick with
// positive health is left. Later calls are no-ops.
func (s *Session) checkLevelClear() {
	if s.Terminal() {
		return
	}
	if s.BricksRemaining() > 0 {
		return
	}
	s.win()
}

// paddleContact steers a descending ball that lands on the paddle and lifts
// it clear of the paddle top. A ball striking a side below the top edge
// bounces off horizontally and keeps falling.
func (s *Session) paddleContact(b *Ball) {
	r := s.Paddle.Rect()
	if b.VY <= 0 || !r.CircleOverlaps(b.X, b.Y, b.Radius) {
		return
	}
	if penX, penY := penetration(b, r); b.Y > r.Top() && penX < penY {
		reflectOffRect(b, r)
		s.cue(CuePaddle)
		return
	}
	SteerOffPaddle(b, s.Paddle, s.cfg.Ball.MinPaddleSpeed)
	b.Y = s.Paddle.Top() - b.Radius
	s.cue(CuePaddle)
}

// brickContacts tests one ball against every brick in layout order.
// Overlap is re-tested after each reflection against the moved ball.
func (s *Session) brickContacts(b *Ball) {
	for _, br := range s.Bricks {
		if !br.Active {
			continue
		}
		if !reflectOffRect(b, br.Rect()) {
			continue
		}
		s.HitBrick(br)
		if s.Terminal() {
			return
		}
	}
}

// ballContacts resolves every touching pair of free balls, i < j.
func (s *Session) ballContacts() {
	for i := 0; i < len(s.Balls); i++ {
		a := s.Balls[i]
		if !a.Active || a.Stuck {
			continue
		}
		for j := i + 1; j < len(s.Balls); j++ {
			b := s.Balls[j]
			if !b.Active || b.Stuck {
				continue
			}
			collideBalls(a, b)
		}
	}
}
