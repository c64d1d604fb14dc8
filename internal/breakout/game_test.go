package breakout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/brickstorm/internal/config"
	"github.com/vovakirdan/brickstorm/internal/core"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}
}

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	if opts.Config == (config.BrickstormConfig{}) {
		opts.Config = config.DefaultBrickstormConfig()
	}
	g, err := New(opts)
	require.NoError(t, err)
	g.Reset(testRuntime())
	return g
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(Options{Config: config.DefaultBrickstormConfig(), StartLevel: 7})
	assert.Error(t, err)

	bad := config.DefaultBrickstormConfig()
	bad.Gameplay.Lives = 0
	_, err = New(Options{Config: bad})
	assert.Error(t, err)
}

func TestGameDeterminism(t *testing.T) {
	// Launch, then sweep the paddle back and forth with occasional pointer moves.
	inputs := make([]core.InputFrame, 1200)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i == 10:
			inputs[i].Set(core.ActionLaunch)
		case i > 10 && i%50 == 0:
			inputs[i].PointAt(i%80, 20)
		case i > 10 && i%7 < 3:
			inputs[i].Set(core.ActionRight)
		case i > 10:
			inputs[i].Set(core.ActionLeft)
		}
	}

	run := func() Snapshot {
		g := newTestGame(t, Options{StartLevel: 2})
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Snapshot()
	}

	snap1, snap2 := run(), run()
	assert.Equal(t, snap1.Hash(), snap2.Hash(), "same seed and inputs must give identical snapshots")
	assert.Equal(t, snap1.Score, snap2.Score)
	assert.Equal(t, snap1.Tick, snap2.Tick)
	assert.Equal(t, snap1.Paddle, snap2.Paddle)
}

func TestGameDifferentSeedsDiverge(t *testing.T) {
	launch := core.NewInputFrame()
	launch.Set(core.ActionLaunch)

	angle := func(seed int64) float64 {
		g := newTestGame(t, Options{})
		rt := testRuntime()
		rt.Seed = seed
		g.Reset(rt)
		g.Step(launch)
		return g.Session().MainBall().VX
	}
	assert.NotEqual(t, angle(1), angle(2))
}

func TestGameStartLevel(t *testing.T) {
	g := newTestGame(t, Options{StartLevel: 3})
	st := g.State()
	assert.Equal(t, 3, st.Level)
	assert.Equal(t, 3, st.Lives)
	assert.False(t, st.GameOver)
	assert.Equal(t, "Satellites", g.Snapshot().LevelName)
}

func TestGamePointerMapsToWorld(t *testing.T) {
	g := newTestGame(t, Options{})

	assert.InDelta(t, 607.5, g.PointerToWorld(40), 1e-9)
	assert.InDelta(t, 7.5, g.PointerToWorld(0), 1e-9)

	in := core.NewInputFrame()
	in.PointAt(60, 10)
	g.Step(in)
	assert.InDelta(t, 907.5, g.Session().Paddle.X, 1e-9)

	in = core.NewInputFrame()
	in.PointAt(0, 10)
	g.Step(in)
	assert.Equal(t, 60.0, g.Session().Paddle.X, "clamped to half width")
}

func TestGameResizeKeepsSession(t *testing.T) {
	g := newTestGame(t, Options{})
	launch := core.NewInputFrame()
	launch.Set(core.ActionLaunch)
	g.Step(launch)
	before := g.Session()

	g.Resize(120, 40)
	assert.Same(t, before, g.Session())
	assert.Equal(t, StatePlaying, g.Session().State)
}

func TestGameTooSmallScreen(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Resize(20, 10)

	launch := core.NewInputFrame()
	launch.Set(core.ActionLaunch)
	g.Step(launch)
	assert.Equal(t, StateServe, g.Session().State, "no stepping on a tiny screen")

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Window too small")
}

func TestGameStepReturnsCues(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Session().ApplyPowerup(PowerupLaser)

	res := g.Step(core.NewInputFrame())
	require.NotEmpty(t, res.Cues)
	assert.Equal(t, CueSpear, res.Cues[0].Name)

	res = g.Step(core.NewInputFrame())
	assert.Empty(t, res.Cues, "cues are drained each tick")
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, Options{})
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	assert.Contains(t, screen.Row(0), "Score: 0")
	assert.Contains(t, screen.Row(0), "Lives: 3")
	assert.Contains(t, screen.Row(0), "Columns")
	assert.Contains(t, out, string(BrickGlyph))
	assert.Contains(t, out, string(BossGlyph))
	assert.Contains(t, out, string(PaddleChar))
	assert.Contains(t, out, string(BallChar))
	assert.Contains(t, screen.Row(23), "Click or press SPACE to launch")
}

func TestGameRenderTerminalBox(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Session().win()

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "Level 1 cleared!")
	assert.Contains(t, out, "Click or press SPACE for level 2")

	st := g.State()
	assert.True(t, st.GameOver)
	assert.True(t, st.Won)
}

func TestGameLogsTransitions(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	g := newTestGame(t, Options{Logger: logger})
	assert.Contains(t, buf.String(), "level start")

	g.Session().win()
	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "level start"))
	assert.Contains(t, out, "stage=1")
	assert.Contains(t, out, "stage=2")
}

func TestGameLogsClearedStage(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{})

	g := newTestGame(t, Options{Logger: logger, StartLevel: 3})
	g.Session().win()
	g.logTransition(StatePlaying, 3, 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "stage=3")
	assert.Contains(t, lines[1], "level cleared")
	assert.Contains(t, lines[1], "stage=3")
}

func TestGamePauseState(t *testing.T) {
	g := newTestGame(t, Options{})
	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	g.Step(pause)
	assert.True(t, g.State().Paused)

	g.Step(pause)
	assert.False(t, g.State().Paused)
}
