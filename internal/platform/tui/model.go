package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickstorm/internal/audio"
	"github.com/vovakirdan/brickstorm/internal/breakout"
	"github.com/vovakirdan/brickstorm/internal/core"
	"github.com/vovakirdan/brickstorm/internal/storage"
)

// publishEvery is the number of ticks between spectator frames.
const publishEvery = 6

// backgroundTrack loops for the whole session.
const backgroundTrack = "theme"

// Game is the simulation surface the terminal drives.
type Game interface {
	ID() string
	Reset(cfg core.RuntimeConfig)
	Resize(width, height int)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
	Snapshot() breakout.Snapshot
}

// ScoreSaver persists finished runs.
type ScoreSaver interface {
	SaveScore(e storage.ScoreEntry) (int64, error)
}

// Publisher receives spectator frames.
type Publisher interface {
	Publish(v any) error
}

// Deps are the optional collaborators of a GameModel. Nil fields disable
// the matching feature.
type Deps struct {
	Store  ScoreSaver
	Audio  audio.Player
	Hub    Publisher
	Logger *log.Logger
	Player string // recorded with saved scores
}

// GameModel runs one game inside a Bubble Tea program.
type GameModel struct {
	game       Game
	screen     *core.Screen
	config     core.RuntimeConfig
	deps       Deps
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState

	// Terminals report presses, never releases: a press keeps its
	// direction active for holdTicks ticks and key repeat refreshes it.
	holdTicks int
	leftHold  int
	rightHold int

	ticks      int
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for the given game.
func NewGameModel(game Game, cfg core.RuntimeConfig, deps Deps) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if deps.Audio == nil {
		deps.Audio = audio.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	hold := cfg.TickRate / 8
	if hold < 1 {
		hold = 1
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		deps:       deps,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		holdTicks:  hold,
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.deps.Audio.Loop(backgroundTrack)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, _ := m.keyMapper.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		m.deps.Audio.Stop()
		return m, tea.Quit
	case core.ActionLeft:
		m.leftHold, m.rightHold = m.holdTicks, 0
	case core.ActionRight:
		m.rightHold, m.leftHold = m.holdTicks, 0
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			m.deps.Audio.Stop()
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.leftHold > 0 {
		m.inputFrame.Set(core.ActionLeft)
		m.leftHold--
	}
	if m.rightHold > 0 {
		m.inputFrame.Set(core.ActionRight)
		m.rightHold--
	}

	prev := m.gameState
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	for _, cue := range result.Cues {
		m.deps.Audio.Play(cue)
	}

	if m.gameState.GameOver && !prev.GameOver {
		m.saveScore()
	}

	m.ticks++
	if m.deps.Hub != nil && m.ticks%publishEvery == 0 {
		if err := m.deps.Hub.Publish(m.game.Snapshot()); err != nil {
			m.deps.Logger.Warn("spectator publish failed", "err", err)
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished run. Failures are logged and play continues.
func (m GameModel) saveScore() {
	if m.deps.Store == nil {
		return
	}
	outcome := storage.OutcomeGameOver
	if m.gameState.Won {
		outcome = storage.OutcomeWin
	}
	_, err := m.deps.Store.SaveScore(storage.ScoreEntry{
		Player:  m.deps.Player,
		Level:   m.gameState.Level,
		Score:   m.gameState.Score,
		Outcome: outcome,
	})
	if err != nil {
		m.deps.Logger.Warn("could not save score", "err", err)
		return
	}
	m.deps.Logger.Debug("score saved", "stage", m.gameState.Level, "score", m.gameState.Score, "outcome", outcome)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".brickstorm", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.deps.Logger.Warn("screenshot failed", "err", err)
	}
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state after the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// standaloneModel quits the program where an embedded GameModel would
// return to the menu.
type standaloneModel struct {
	GameModel
}

func (m standaloneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.GameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.GameModel = gm
	}
	if m.BackToMenu() {
		return m, tea.Quit
	}
	return m, cmd
}

// Run plays one game in its own program until the user leaves it.
// It reports whether the user asked to quit rather than go back.
func Run(game Game, cfg core.RuntimeConfig, deps Deps) (quit bool, err error) {
	model := standaloneModel{GameModel: NewGameModel(game, cfg, deps)}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return true, err
	}
	if m, ok := final.(standaloneModel); ok {
		return m.IsQuitting(), nil
	}
	return true, nil
}
