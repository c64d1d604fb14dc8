package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brickstorm/internal/config"
	"github.com/vovakirdan/brickstorm/internal/core"
	"github.com/vovakirdan/brickstorm/internal/storage"
)

func menuUpdate(t *testing.T, m LevelMenuModel, msg tea.Msg) LevelMenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	lm, ok := next.(LevelMenuModel)
	if !ok {
		t.Fatalf("Update returned %T, want LevelMenuModel", next)
	}
	return lm
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, want SessionModel", next)
	}
	return sm
}

func TestLevelMenuSelection(t *testing.T) {
	m := NewLevelMenuModel(nil, testConfig(), config.DifficultyHard)

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	sel := m.Selected()
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if sel.Level != 2 || sel.Difficulty != config.DifficultyHard {
		t.Errorf("got %+v, want level 2 on hard", sel)
	}
}

func TestLevelMenuCursorBounds(t *testing.T) {
	m := NewLevelMenuModel(nil, testConfig(), "")

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyUp})
	for range 10 {
		m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if sel := m.Selected(); sel == nil || sel.Level != 3 {
		t.Errorf("cursor should stop at the last level, got %+v", sel)
	}
}

func TestLevelMenuDifficulty(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyType
		want config.DifficultyPreset
	}{
		{"default", nil, config.DifficultyNormal},
		{"left", []tea.KeyType{tea.KeyLeft}, config.DifficultyEasy},
		{"left stops at easy", []tea.KeyType{tea.KeyLeft, tea.KeyLeft}, config.DifficultyEasy},
		{"right", []tea.KeyType{tea.KeyRight}, config.DifficultyHard},
		{"right stops at hard", []tea.KeyType{tea.KeyRight, tea.KeyRight}, config.DifficultyHard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewLevelMenuModel(nil, testConfig(), config.DifficultyNormal)
			for _, k := range tt.keys {
				m = menuUpdate(t, m, tea.KeyMsg{Type: k})
			}
			m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
			if got := m.Selected().Difficulty; got != tt.want {
				t.Errorf("difficulty = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLevelMenuShowsRecords(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveScore(storage.ScoreEntry{Level: 2, Score: 120, Outcome: storage.OutcomeGameOver}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	view := NewLevelMenuModel(store, testConfig(), "").View()
	for _, want := range []string{"Columns", "Halo", "Satellites", "best 120", "no runs yet", "High score: 120"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}
}

func TestLevelMenuQuitAndScoreboard(t *testing.T) {
	m := menuUpdate(t, NewLevelMenuModel(nil, testConfig(), ""), runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}

	m = menuUpdate(t, NewLevelMenuModel(nil, testConfig(), ""), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
}

func TestSessionFlow(t *testing.T) {
	m := NewSessionModel(SessionOptions{
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7},
		Game:    config.DefaultBrickstormConfig(),
	})
	if !strings.Contains(m.View(), "B R I C K S T O R M") {
		t.Fatal("session should open on the menu")
	}

	// Scoreboard and back.
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), "HIGH SCORES - All levels") {
		t.Fatalf("expected scoreboard, got:\n%s", m.View())
	}
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMenu {
		t.Fatal("esc should return to the menu")
	}

	// Into the game.
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewGame || m.gameModel == nil {
		t.Fatal("enter should start a game")
	}
	m = sessionUpdate(t, m, TickMsg{})
	if !strings.Contains(m.View(), "Columns") {
		t.Error("game HUD should name the level")
	}

	// Pause, then leave.
	m = sessionUpdate(t, m, runeKey('p'))
	m = sessionUpdate(t, m, TickMsg{})
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMenu || m.gameModel != nil {
		t.Fatal("esc while paused should return to the menu")
	}

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil || !next.(SessionModel).quitting {
		t.Error("q in the menu should end the session")
	}
}

func TestSessionRuntime(t *testing.T) {
	tests := []struct {
		name                   string
		width, height, rate    int
		wantW, wantH, wantRate int
	}{
		{"pty size", 120, 40, 30, 120, 40, 30},
		{"no pty size", 0, 0, 30, 80, 24, 30},
		{"default rate", 100, 30, 0, 100, 30, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sessionRuntime(tt.width, tt.height, tt.rate)
			if cfg.ScreenW != tt.wantW || cfg.ScreenH != tt.wantH || cfg.TickRate != tt.wantRate {
				t.Errorf("got %dx%d @%d, want %dx%d @%d",
					cfg.ScreenW, cfg.ScreenH, cfg.TickRate, tt.wantW, tt.wantH, tt.wantRate)
			}
		})
	}
}
