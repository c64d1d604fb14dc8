package breakout

import (
	"fmt"

	"github.com/vovakirdan/brickstorm/internal/config"
	"github.com/vovakirdan/brickstorm/internal/core"
)

// Session states
const (
	StateServe    = "serve"    // Main ball on paddle, waiting for launch
	StatePlaying  = "playing"  // Balls in play
	StatePaused   = "paused"   // Frozen until resumed
	StateGameOver = "gameover" // No lives left
	StateWin      = "win"      // Level cleared
)

// Audio cue names emitted by the simulation.
const (
	CuePaddle   = "paddle"
	CueBrick    = "brick"
	CueFast     = "fast"
	CueSpear    = "spear"
	CueLose     = "lose"
	CueWin      = "win"
	CueGameOver = "gameover"
)

// Controls is the per-tick input in world terms.
type Controls struct {
	PointerX   float64 // Paddle target, used when HasPointer
	HasPointer bool
	Left       bool
	Right      bool
	Launch     bool // Launch the ball, or restart/advance when terminal
	Restart    bool // Restart/advance when terminal
	Pause      bool // Toggle pause
}

// Session owns the full state of one game: score, lives, level, the ball
// roster and every brick, pickup and laser. It is not safe for concurrent use.
type Session struct {
	cfg config.BrickstormConfig
	rng RandomSource

	Level            int
	Score            int
	Lives            int
	State            string
	ExplosionNextHit bool
	Tick             uint64

	Paddle   *Paddle
	Balls    []*Ball // Index 0 is always the main ball
	Bricks   []*Brick
	Powerups []*Powerup
	Lasers   []*Laser

	Message     string
	ShowMessage bool

	resume string // State to return to when unpausing
	cues   []core.Cue
}

// NewSession creates a session at the given 1-based level, waiting to serve.
func NewSession(cfg config.BrickstormConfig, level int, rng RandomSource) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if level < 1 || level > LevelCount() {
		return nil, fmt.Errorf("breakout: level %d out of range 1..%d", level, LevelCount())
	}
	s := &Session{cfg: cfg, rng: rng}
	if err := s.Restart(level); err != nil {
		return nil, err
	}
	return s, nil
}

// Config returns the configuration the session was built with.
func (s *Session) Config() config.BrickstormConfig {
	return s.cfg
}

// Restart loads a level from scratch with full lives and zero score.
func (s *Session) Restart(level int) error {
	bricks, err := GenerateLevel(level, s.cfg.Bricks)
	if err != nil {
		return err
	}

	s.Level = level
	s.Score = 0
	s.Lives = s.cfg.Gameplay.Lives
	s.ExplosionNextHit = false
	s.Tick = 0
	s.Bricks = bricks
	s.Powerups = nil
	s.Lasers = nil

	s.Paddle = &Paddle{
		X:         s.cfg.World.Width / 2,
		Y:         s.cfg.Paddle.Y,
		HalfWidth: s.cfg.Paddle.Width / 2,
		Height:    s.cfg.Paddle.Height,
	}

	main := &Ball{Radius: s.cfg.Ball.Radius, Active: true, Main: true}
	s.Balls = []*Ball{main}
	s.stickMain()
	s.setState(StateServe)
	return nil
}

// MainBall returns the ball whose loss costs a life.
func (s *Session) MainBall() *Ball {
	for _, b := range s.Balls {
		if b.Main {
			return b
		}
	}
	return nil
}

// Terminal reports whether the session is won or lost.
func (s *Session) Terminal() bool {
	return s.State == StateGameOver || s.State == StateWin
}

// BricksRemaining counts bricks still standing.
func (s *Session) BricksRemaining() int {
	n := 0
	for _, b := range s.Bricks {
		if b.Active && b.Health > 0 {
			n++
		}
	}
	return n
}

// ActiveBalls counts balls still in play.
func (s *Session) ActiveBalls() int {
	n := 0
	for _, b := range s.Balls {
		if b.Active {
			n++
		}
	}
	return n
}

// DrainCues returns and clears the audio cues raised since the last call.
func (s *Session) DrainCues() []core.Cue {
	cues := s.cues
	s.cues = nil
	return cues
}

// Step advances the simulation by dt seconds.
// While terminal only restart/advance input is accepted.
func (s *Session) Step(dt float64, c Controls) {
	if s.Terminal() {
		if c.Launch || c.Restart {
			s.advance()
		}
		return
	}

	if c.Pause {
		s.togglePause()
	}
	if s.State == StatePaused {
		return
	}

	s.Tick++

	width := s.cfg.World.Width
	if c.HasPointer {
		s.Paddle.MoveTo(c.PointerX, width)
	}
	if c.Left {
		s.Paddle.Nudge(-s.cfg.Paddle.KeySpeed*dt, width)
	}
	if c.Right {
		s.Paddle.Nudge(s.cfg.Paddle.KeySpeed*dt, width)
	}

	for _, b := range s.Balls {
		if b.Active && b.Stuck {
			b.StickTo(s.Paddle.X, s.Paddle.Y-s.cfg.Ball.StickOffset)
		}
	}

	if s.State == StateServe && c.Launch {
		s.launch()
	}

	s.updateBalls(dt)
	if s.Terminal() {
		return
	}

	s.updatePowerups(dt)
	s.updateLasers(dt)
	if s.Terminal() {
		return
	}

	s.compact()
}

// launch frees the main ball. Only valid while it is stuck.
func (s *Session) launch() {
	main := s.MainBall()
	if main == nil || !main.Launch(s.cfg.Ball.LaunchSpeed, s.rng) {
		return
	}
	s.setState(StatePlaying)
}

// updateBalls runs per-ball integration and contacts in roster order,
// then ball-ball contacts.
func (s *Session) updateBalls(dt float64) {
	width, height := s.cfg.World.Width, s.cfg.World.Height

	for _, b := range s.Balls {
		if !b.Active || b.Stuck {
			continue
		}

		b.Integrate(dt)
		b.Contain(width)

		if b.OutOfBounds(height) {
			s.ballLost(b)
			if s.Terminal() {
				return
			}
			continue
		}

		s.paddleContact(b)
		s.brickContacts(b)
		if s.Terminal() {
			return
		}
	}

	s.ballContacts()
}

// ballLost handles a ball leaving through the bottom. Extra balls vanish;
// the main ball costs a life while playing.
func (s *Session) ballLost(b *Ball) {
	if !b.Main {
		b.Active = false
		return
	}
	if s.State != StatePlaying {
		s.stickMain()
		return
	}
	s.loseLife()
}

// loseLife takes a life and either serves again or ends the game.
func (s *Session) loseLife() {
	s.Lives--
	if s.Lives <= 0 {
		s.Lives = 0
		s.gameOver()
		return
	}
	s.cue(CueLose)
	s.stickMain()
	s.setState(StateServe)
}

func (s *Session) stickMain() {
	main := s.MainBall()
	if main == nil {
		return
	}
	main.Active = true
	main.StickTo(s.Paddle.X, s.Paddle.Y-s.cfg.Ball.StickOffset)
}

func (s *Session) win() {
	s.freezeBalls()
	s.setState(StateWin)
	s.cue(CueWin)
}

func (s *Session) gameOver() {
	s.freezeBalls()
	s.setState(StateGameOver)
	s.cue(CueGameOver)
}

func (s *Session) freezeBalls() {
	for _, b := range s.Balls {
		b.Freeze()
	}
}

// advance leaves a terminal state: a cleared level moves on (wrapping after
// the last), a lost game starts over from level 1.
func (s *Session) advance() {
	next := 1
	if s.State == StateWin && s.Level < LevelCount() {
		next = s.Level + 1
	}
	// next is always in range, Restart cannot fail here.
	_ = s.Restart(next)
}

func (s *Session) togglePause() {
	if s.State == StatePaused {
		s.setState(s.resume)
		return
	}
	s.resume = s.State
	s.setState(StatePaused)
}

// compact drops removed balls, pickups and lasers. Bricks keep their slots
// so laser hit sets stay valid.
func (s *Session) compact() {
	balls := s.Balls[:0]
	for _, b := range s.Balls {
		if b.Active || b.Main {
			balls = append(balls, b)
		}
	}
	clear(s.Balls[len(balls):])
	s.Balls = balls

	powerups := s.Powerups[:0]
	for _, p := range s.Powerups {
		if p.Active {
			powerups = append(powerups, p)
		}
	}
	clear(s.Powerups[len(powerups):])
	s.Powerups = powerups

	lasers := s.Lasers[:0]
	for _, l := range s.Lasers {
		if !l.Done {
			lasers = append(lasers, l)
		}
	}
	clear(s.Lasers[len(lasers):])
	s.Lasers = lasers
}

func (s *Session) setState(state string) {
	s.State = state
	s.Message = s.message()
	s.ShowMessage = s.Message != ""
}

func (s *Session) message() string {
	switch s.State {
	case StateServe:
		return "Click or press SPACE to launch"
	case StatePaused:
		return "Paused\nPress P to resume"
	case StateGameOver:
		return "Game Over\nClick or press SPACE to restart"
	case StateWin:
		if s.Level < LevelCount() {
			return fmt.Sprintf("Level %d cleared!\nClick or press SPACE for level %d", s.Level, s.Level+1)
		}
		return "You Win!\nClick or press SPACE to play again"
	default:
		return ""
	}
}

func (s *Session) cue(name string) {
	s.cues = append(s.cues, core.Cue{Name: name, Volume: s.cfg.Powerups.CueVolume})
}
