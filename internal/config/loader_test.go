package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse("brickstorm.yaml", DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultBrickstormConfig() {
		t.Errorf("embedded YAML drifted from DefaultBrickstormConfig:\n%+v\n%+v", cfg, DefaultBrickstormConfig())
	}
}

func TestParsePartialYAML(t *testing.T) {
	cfg, err := Parse("custom.yaml", []byte("gameplay:\n  lives: 7\nball:\n  launch_speed: 300\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Gameplay.Lives != 7 {
		t.Errorf("Lives = %d, expected 7", cfg.Gameplay.Lives)
	}
	if cfg.Ball.LaunchSpeed != 300 {
		t.Errorf("LaunchSpeed = %g, expected 300", cfg.Ball.LaunchSpeed)
	}
	if cfg.Powerups.SpawnChance != 0.3 {
		t.Errorf("untouched values should keep defaults, SpawnChance = %g", cfg.Powerups.SpawnChance)
	}
}

func TestParseTOML(t *testing.T) {
	data := []byte("[paddle]\nwidth = 150\n\n[powerups]\nspawn_chance = 0.5\n")
	cfg, err := Parse("custom.toml", data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Paddle.Width != 150 {
		t.Errorf("Paddle.Width = %g, expected 150", cfg.Paddle.Width)
	}
	if cfg.Powerups.SpawnChance != 0.5 {
		t.Errorf("SpawnChance = %g, expected 0.5", cfg.Powerups.SpawnChance)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse("bad.yaml", []byte("gameplay:\n  livez: 3\n")); err == nil {
		t.Error("expected error for unknown YAML key")
	}
	if _, err := Parse("bad.toml", []byte("[gameplay]\nlivez = 3\n")); err == nil {
		t.Error("expected error for unknown TOML key")
	}
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero lives", "gameplay:\n  lives: 0\n"},
		{"spawn chance above one", "powerups:\n  spawn_chance: 1.5\n"},
		{"paddle wider than world", "paddle:\n  width: 5000\n"},
		{"negative radius", "ball:\n  radius: -1\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse("bad.yaml", []byte(tc.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), "config:") {
				t.Errorf("error should be package-prefixed, got %q", err)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mine.toml")
	if err := os.WriteFile(path, []byte("[gameplay]\nlives = 9\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Gameplay.Lives != 9 {
		t.Errorf("Lives = %d, expected 9", cfg.Gameplay.Lives)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom path")
	}
}

func TestApplyPreset(t *testing.T) {
	easy := DefaultBrickstormConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Gameplay.Lives != 5 || easy.Paddle.Width != 160 {
		t.Errorf("easy preset = %+v", easy.Gameplay)
	}

	hard := DefaultBrickstormConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Gameplay.Lives != 2 || hard.Ball.LaunchSpeed != 320 {
		t.Errorf("hard preset lives=%d speed=%g", hard.Gameplay.Lives, hard.Ball.LaunchSpeed)
	}

	normal := DefaultBrickstormConfig()
	ApplyPreset(&normal, DifficultyNormal)
	if normal != DefaultBrickstormConfig() {
		t.Error("normal preset should not change anything")
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "brickstorm.yaml")

	if err := WriteDefault(path, false); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(written) failed: %v", err)
	}
	if cfg != DefaultBrickstormConfig() {
		t.Errorf("written config should load as the defaults, got %+v", cfg)
	}

	if err := os.WriteFile(path, []byte("gameplay:\n  lives: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteDefault(path, false); err == nil {
		t.Error("expected an error when the file exists")
	}
	if cfg, _ := Load(path); cfg.Gameplay.Lives != 9 {
		t.Errorf("existing file was overwritten without force, lives = %d", cfg.Gameplay.Lives)
	}

	if err := WriteDefault(path, true); err != nil {
		t.Fatalf("WriteDefault(force) failed: %v", err)
	}
	if cfg, _ := Load(path); cfg.Gameplay.Lives != 3 {
		t.Errorf("force should restore the defaults, lives = %d", cfg.Gameplay.Lives)
	}
}
