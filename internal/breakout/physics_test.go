package breakout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/brickstorm/internal/config"
	"github.com/vovakirdan/brickstorm/internal/core"
)

func normDeg(a float64) float64 {
	return math.Mod(a+360, 360)
}

func TestBallContainLeftWall(t *testing.T) {
	b := &Ball{X: 5, Y: 400, VX: -100, VY: 50, Radius: 8, Active: true}

	assert.True(t, b.Contain(1200))
	assert.Equal(t, 8.0, b.X)
	assert.Greater(t, b.VX, 0.0)
	assert.Equal(t, 100.0, b.VX)
	assert.Equal(t, 50.0, b.VY)
}

func TestBallContainRightWallAndCeiling(t *testing.T) {
	b := &Ball{X: 1195, Y: 3, VX: 100, VY: -50, Radius: 8}

	assert.True(t, b.Contain(1200))
	assert.Equal(t, 1192.0, b.X)
	assert.Equal(t, -100.0, b.VX)
	assert.Equal(t, 8.0, b.Y)
	assert.Equal(t, 50.0, b.VY)
}

func TestBallBottomStaysOpen(t *testing.T) {
	b := &Ball{X: 600, Y: 905, VX: 0, VY: 100, Radius: 8}

	assert.False(t, b.Contain(1200))
	assert.Equal(t, 100.0, b.VY)
	assert.False(t, b.OutOfBounds(900), "still touching the field")

	b.Y = 909
	assert.True(t, b.OutOfBounds(900))
}

func TestBallLaunchAngleRange(t *testing.T) {
	tests := []struct {
		draw     float64
		expected float64
	}{
		{0, 220},
		{0.5, 270},
		{0.999999, 319.9999},
	}

	for _, tc := range tests {
		b := &Ball{Radius: 8}
		b.StickTo(600, 820)
		require.True(t, b.Launch(260, &seqSource{vals: []float64{tc.draw}}))

		assert.InDelta(t, tc.expected, normDeg(core.Vec{X: b.VX, Y: b.VY}.Angle()), 1e-3, "draw %v", tc.draw)
		assert.InDelta(t, 260, b.Speed(), 1e-9)
		assert.False(t, b.Stuck)
	}
}

func TestBallLaunchOnlyWhenStuck(t *testing.T) {
	rng := &seqSource{vals: []float64{0.5}}
	b := &Ball{VX: 10, VY: -10, Radius: 8}

	assert.False(t, b.Launch(260, rng))
	assert.Equal(t, 10.0, b.VX)
	assert.Equal(t, 0, rng.i, "no draw consumed")
}

func TestBallStickTo(t *testing.T) {
	b := &Ball{X: 1, Y: 2, VX: 30, VY: 40}
	b.StickTo(600, 820)

	assert.True(t, b.Stuck)
	assert.Equal(t, 600.0, b.X)
	assert.Equal(t, 820.0, b.Y)
	assert.Zero(t, b.Speed())
}

func TestPaddleMoveToClamps(t *testing.T) {
	p := &Paddle{X: 600, Y: 840, HalfWidth: 60, Height: 40}

	tests := []struct {
		x        float64
		expected float64
	}{
		{-500, 60},
		{0, 60},
		{300, 300},
		{1200, 1140},
		{5000, 1140},
	}

	for _, tc := range tests {
		p.MoveTo(tc.x, 1200)
		assert.Equal(t, tc.expected, p.X, "MoveTo(%v)", tc.x)
		assert.GreaterOrEqual(t, p.X, p.HalfWidth)
		assert.LessOrEqual(t, p.X, 1200-p.HalfWidth)
	}
}

func TestSteerOffPaddle(t *testing.T) {
	p := &Paddle{X: 300, Y: 840, HalfWidth: 60, Height: 40}

	tests := []struct {
		name          string
		ballX         float64
		speed         float64
		expectedAngle float64
		expectedSpeed float64
	}{
		{"right half", 330, 200, 300, 240},
		{"center", 300, 300, 270, 300},
		{"left edge", 240, 240, 210, 240},
		{"beyond right edge", 400, 100, 330, 240},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := &Ball{X: tc.ballX, Y: 815, VX: 0, VY: tc.speed, Radius: 8}

			angle := SteerOffPaddle(b, p, 240)
			assert.InDelta(t, tc.expectedAngle, angle, 1e-9)
			assert.InDelta(t, tc.expectedAngle, normDeg(core.Vec{X: b.VX, Y: b.VY}.Angle()), 1e-9)
			assert.InDelta(t, tc.expectedSpeed, b.Speed(), 1e-9)
		})
	}
}

func TestReflectOffRect(t *testing.T) {
	r := core.RectF{CX: 600, CY: 300, W: 60, H: 24}

	t.Run("from below", func(t *testing.T) {
		b := &Ball{X: 600, Y: 316, VX: 30, VY: -100, Radius: 8}
		require.True(t, reflectOffRect(b, r))
		assert.Equal(t, 100.0, b.VY)
		assert.Equal(t, 30.0, b.VX)
		assert.Equal(t, 320.0, b.Y)
	})

	t.Run("from the left side", func(t *testing.T) {
		b := &Ball{X: 566, Y: 300, VX: 100, VY: 10, Radius: 8}
		require.True(t, reflectOffRect(b, r))
		assert.Equal(t, -100.0, b.VX)
		assert.Equal(t, 10.0, b.VY)
		assert.Equal(t, 562.0, b.X)
	})

	t.Run("no overlap", func(t *testing.T) {
		b := &Ball{X: 600, Y: 400, VX: 0, VY: -100, Radius: 8}
		assert.False(t, reflectOffRect(b, r))
		assert.Equal(t, -100.0, b.VY)
	})
}

func TestCollideBallsHeadOn(t *testing.T) {
	a := &Ball{X: 100, Y: 100, VX: 50, VY: 0, Radius: 8, Active: true}
	b := &Ball{X: 112, Y: 100, VX: -30, VY: 0, Radius: 8, Active: true}

	require.True(t, collideBalls(a, b))
	assert.InDelta(t, -30, a.VX, 1e-9)
	assert.InDelta(t, 50, b.VX, 1e-9)
	assert.InDelta(t, 16, b.X-a.X, 1e-9, "overlap separated evenly")
	assert.InDelta(t, 98, a.X, 1e-9)
}

func TestCollideBallsConservesMomentum(t *testing.T) {
	a := &Ball{X: 100, Y: 100, VX: 80, VY: 40, Radius: 8}
	b := &Ball{X: 110, Y: 106, VX: -20, VY: 10, Radius: 8}
	px, py := a.VX+b.VX, a.VY+b.VY
	ke := a.VX*a.VX + a.VY*a.VY + b.VX*b.VX + b.VY*b.VY

	require.True(t, collideBalls(a, b))
	assert.InDelta(t, px, a.VX+b.VX, 1e-9)
	assert.InDelta(t, py, a.VY+b.VY, 1e-9)
	assert.InDelta(t, ke, a.VX*a.VX+a.VY*a.VY+b.VX*b.VX+b.VY*b.VY, 1e-9)
}

func TestCollideBallsApart(t *testing.T) {
	a := &Ball{X: 100, Y: 100, Radius: 8}
	b := &Ball{X: 116, Y: 100, Radius: 8}
	assert.False(t, collideBalls(a, b))
}

func TestStuckBallsSkipBallContacts(t *testing.T) {
	s := newTestSession(t, 1, noDrops())
	main := s.MainBall()
	extra := &Ball{X: main.X + 4, Y: main.Y, VX: -50, Radius: 8, Active: true}
	s.Balls = append(s.Balls, extra)

	s.ballContacts()
	assert.Equal(t, -50.0, extra.VX)
	assert.True(t, main.Stuck)
}

func TestGenerateLevelCounts(t *testing.T) {
	bricks := config.DefaultBrickstormConfig().Bricks

	tests := []struct {
		level   int
		name    string
		regular int
		bossX   float64
		bossY   float64
	}{
		{1, "Columns", 48, 600, 340},
		{2, "Halo", 30, 600, 300},
		{3, "Satellites", 45, 600, 200},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := GenerateLevel(tc.level, bricks)
			require.NoError(t, err)
			assert.Equal(t, tc.name, LevelName(tc.level))

			var regular, bosses int
			for _, b := range got {
				assert.True(t, b.Active)
				if b.Boss {
					bosses++
					assert.Equal(t, 6, b.Health)
					assert.Equal(t, BossWidth, b.W)
					assert.Equal(t, BossHeight, b.H)
					assert.Equal(t, tc.bossX, b.X)
					assert.Equal(t, tc.bossY, b.Y)
					assert.True(t, b.Decor)
					continue
				}
				regular++
				assert.Equal(t, 2, b.Health)
				assert.Equal(t, b.Y < 450, b.Upper)
			}
			assert.Equal(t, tc.regular, regular)
			assert.Equal(t, 1, bosses)

			x, y, ok := BossPosition(tc.level)
			require.True(t, ok)
			assert.Equal(t, tc.bossX, x)
			assert.Equal(t, tc.bossY, y)
		})
	}
}

func TestGenerateLevelIsDeterministic(t *testing.T) {
	bricks := config.DefaultBrickstormConfig().Bricks
	for level := 1; level <= LevelCount(); level++ {
		a, err := GenerateLevel(level, bricks)
		require.NoError(t, err)
		b, err := GenerateLevel(level, bricks)
		require.NoError(t, err)
		require.Len(t, b, len(a))
		for i := range a {
			assert.Equal(t, *a[i], *b[i])
		}
	}
}

func TestGenerateLevelKeepsBricksInField(t *testing.T) {
	bricks := config.DefaultBrickstormConfig().Bricks
	for level := 1; level <= LevelCount(); level++ {
		got, err := GenerateLevel(level, bricks)
		require.NoError(t, err)
		for _, b := range got {
			r := b.Rect()
			assert.GreaterOrEqual(t, r.Left(), 0.0)
			assert.LessOrEqual(t, r.Right(), 1200.0)
			assert.GreaterOrEqual(t, r.Top(), 0.0)
			assert.Less(t, r.Bottom(), 800.0, "bricks stay above the paddle")
		}
	}
}

func TestHaloExclusionZone(t *testing.T) {
	for _, ring := range haloRings {
		assert.Greater(t, ring.radius, haloExclusion)
	}

	got, err := GenerateLevel(2, config.DefaultBrickstormConfig().Bricks)
	require.NoError(t, err)
	boss := got[len(got)-1]
	require.True(t, boss.Boss)

	for i, b := range got[:len(got)-1] {
		assert.GreaterOrEqual(t, core.Dist(b.X, b.Y, boss.X, boss.Y), haloExclusion)
		assert.Equal(t, b.X, math.Round(b.X))
		assert.Equal(t, b.Y, math.Round(b.Y))
		assert.False(t, b.Rect().Overlaps(boss.Rect()), "brick %d overlaps the boss", i)
		for j, o := range got[i+1 : len(got)-1] {
			assert.False(t, b.Rect().Overlaps(o.Rect()), "bricks %d and %d overlap", i, i+1+j)
		}
	}
}

func TestGenerateLevelOutOfRange(t *testing.T) {
	bricks := config.DefaultBrickstormConfig().Bricks
	for _, level := range []int{0, 4} {
		_, err := GenerateLevel(level, bricks)
		assert.Error(t, err)
		assert.Empty(t, LevelName(level))
	}
}
