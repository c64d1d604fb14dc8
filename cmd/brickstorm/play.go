package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/user"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickstorm/internal/audio"
	"github.com/vovakirdan/brickstorm/internal/breakout"
	"github.com/vovakirdan/brickstorm/internal/config"
	"github.com/vovakirdan/brickstorm/internal/core"
	"github.com/vovakirdan/brickstorm/internal/platform/tui"
	"github.com/vovakirdan/brickstorm/internal/spectate"
	"github.com/vovakirdan/brickstorm/internal/storage"
)

var (
	flagLevel      int
	flagConfig     string
	flagDifficulty string
	flagSound      bool
	flagSpectate   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Pick a level and play",
	Long: `Start brickstorm. Without --level a level menu opens first and you
return to it after each game.

Controls:
  Mouse        - Move the paddle
  A/D, Arrows  - Nudge the paddle
  Space/Click  - Launch the ball, continue after a win or loss
  P            - Pause
  R            - Restart after a win or loss
  Esc/B        - Back to the menu (paused or finished)
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - 5 lives, wide paddle, slow launch
  normal - values from the config file
  hard   - 2 lives, narrow paddle, fast launch

Examples:
  brickstorm play
  brickstorm play --level 3 --difficulty easy
  brickstorm play --config ./brickstorm.toml --sound
  brickstorm play --spectate :8080`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start level (skips the menu)")
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a YAML or TOML game config")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound through the default audio device")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket spectator feed on this address")
}

func runPlay(_ *cobra.Command, _ []string) error {
	// The TUI owns the terminal, so logs are discarded unless --log-file is set.
	logger, closeLog, err := newLogger("brickstorm", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	gameCfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	if flagLevel != 0 && (flagLevel < 1 || flagLevel > breakout.LevelCount()) {
		return fmt.Errorf("level %d out of range 1..%d", flagLevel, breakout.LevelCount())
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	sound := audio.New(flagSound, logger)
	defer sound.Close()

	deps := tui.Deps{
		Audio:  sound,
		Logger: logger,
		Player: playerName(),
	}
	if store != nil {
		deps.Store = store
	}

	if flagSpectate != "" {
		hub := spectate.NewHub(logger)
		deps.Hub = hub

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := spectate.Serve(ctx, flagSpectate, hub); err != nil {
				logger.Error("spectator server stopped", "err", err)
			}
		}()
		logger.Info("spectator feed", "addr", flagSpectate, "path", spectate.WatchPath)
	}

	runtime := core.DefaultConfig()
	runtime.TickRate = flagFPS
	runtime.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW, runtime.ScreenH = w, h
	}

	r := &runner{gameCfg: gameCfg, deps: deps, logger: logger}
	if flagLevel != 0 {
		_, err := r.play(runtime, flagLevel, preset)
		return err
	}
	return r.menuLoop(store, runtime, preset)
}

// runner starts games with a fixed base config and collaborators.
type runner struct {
	gameCfg config.BrickstormConfig
	deps    tui.Deps
	logger  *log.Logger
}

func (r *runner) play(runtime core.RuntimeConfig, level int, preset config.DifficultyPreset) (quit bool, err error) {
	cfg := r.gameCfg
	config.ApplyPreset(&cfg, preset)

	game, err := breakout.New(breakout.Options{
		Config:     cfg,
		StartLevel: level,
		Logger:     r.logger,
	})
	if err != nil {
		return true, err
	}
	return tui.Run(game, runtime, r.deps)
}

// menuLoop alternates between the level menu, the scoreboard and games
// until the player quits.
func (r *runner) menuLoop(store *storage.Store, runtime core.RuntimeConfig, preset config.DifficultyPreset) error {
	for {
		result, err := tui.RunMenu(store, runtime, preset)
		if err != nil {
			return err
		}
		runtime = result.Config

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, runtime.ScreenW, runtime.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		case result.Selection != nil:
			preset = result.Selection.Difficulty
			if flagSeed == 0 {
				runtime.Seed = time.Now().UnixNano()
			}
			quit, err := r.play(runtime, result.Selection.Level, preset)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

// playerName is recorded with local scores.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return storage.DefaultPlayer
}
