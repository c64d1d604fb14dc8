package breakout

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickstorm/internal/config"
	"github.com/vovakirdan/brickstorm/internal/core"
)

// Options configures a Game.
type Options struct {
	Config     config.BrickstormConfig
	StartLevel int         // 1-based; 0 means level 1
	Logger     *log.Logger // nil discards
}

// Game adapts a Session to the terminal platform: it converts input frames
// and screen cells to world terms, renders, and logs session transitions.
type Game struct {
	opts    Options
	logger  *log.Logger
	runtime core.RuntimeConfig
	session *Session

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New validates the options and creates a Game. Call Reset before stepping.
func New(opts Options) (*Game, error) {
	if opts.StartLevel == 0 {
		opts.StartLevel = 1
	}
	if opts.StartLevel < 1 || opts.StartLevel > LevelCount() {
		return nil, fmt.Errorf("breakout: level %d out of range 1..%d", opts.StartLevel, LevelCount())
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Game{
		opts:       opts,
		logger:     logger,
		minScreenW: 40,
		minScreenH: 16,
	}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "brickstorm"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Brickstorm"
}

// Reset starts a fresh session at the configured start level.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.checkScreen()

	session, err := NewSession(g.opts.Config, g.opts.StartLevel, NewRandom(runtime.Seed))
	if err != nil {
		// Options were validated in New.
		g.logger.Error("session setup failed", "err", err)
		return
	}
	g.session = session
	g.logger.Info("level start", "stage", session.Level, "name", LevelName(session.Level), "seed", runtime.Seed)
}

// Resize updates the terminal size without touching the session.
// World coordinates do not depend on the screen.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.checkScreen()
}

func (g *Game) checkScreen() {
	g.screenTooSmall = g.runtime.ScreenW < g.minScreenW || g.runtime.ScreenH < g.minScreenH
}

// Session exposes the underlying simulation.
func (g *Game) Session() *Session {
	return g.session
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil || g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	s := g.session
	prevState, prevLives, prevLevel := s.State, s.Lives, s.Level

	s.Step(g.runtime.TickSeconds(), g.controls(in))

	g.logTransition(prevState, prevLives, prevLevel)

	return core.StepResult{
		State: g.State(),
		Cues:  s.DrainCues(),
	}
}

// controls maps an input frame to world-space controls.
func (g *Game) controls(in core.InputFrame) Controls {
	c := Controls{
		Left:    in.Has(core.ActionLeft),
		Right:   in.Has(core.ActionRight),
		Launch:  in.Has(core.ActionLaunch),
		Restart: in.Has(core.ActionRestart),
		Pause:   in.Has(core.ActionPause),
	}
	if in.Pointer.Valid && g.runtime.ScreenW > 0 {
		c.HasPointer = true
		c.PointerX = g.PointerToWorld(in.Pointer.Col)
	}
	return c
}

// PointerToWorld maps a screen column to the world x at the cell's center.
func (g *Game) PointerToWorld(col int) float64 {
	w := g.opts.Config.World.Width
	return (float64(col) + 0.5) * w / float64(g.runtime.ScreenW)
}

func (g *Game) logTransition(prevState string, prevLives, prevLevel int) {
	s := g.session
	switch {
	case s.Level != prevLevel || (prevState != s.State && s.State == StateServe && s.Tick == 0):
		g.logger.Info("level start", "stage", s.Level, "name", LevelName(s.Level))
	case s.State == StateWin && prevState != StateWin:
		g.logger.Info("level cleared", "stage", s.Level, "score", s.Score)
	case s.State == StateGameOver && prevState != StateGameOver:
		g.logger.Info("game over", "stage", s.Level, "score", s.Score)
	case s.Lives < prevLives:
		g.logger.Debug("life lost", "lives", s.Lives, "stage", s.Level)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	s := g.session
	return core.GameState{
		Score:    s.Score,
		Level:    s.Level,
		Lives:    s.Lives,
		GameOver: s.Terminal(),
		Won:      s.State == StateWin,
		Paused:   s.State == StatePaused,
	}
}

// Snapshot returns the current session snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{}
	}
	return g.session.Snapshot()
}
