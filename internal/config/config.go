// Package config provides YAML/TOML game configuration loading and
// difficulty presets for brickstorm.
package config

import (
	"errors"
	"fmt"
)

// BrickstormConfig contains all tunables of the simulation.
type BrickstormConfig struct {
	World    WorldConfig    `yaml:"world" toml:"world"`
	Paddle   PaddleConfig   `yaml:"paddle" toml:"paddle"`
	Ball     BallConfig     `yaml:"ball" toml:"ball"`
	Bricks   BrickConfig    `yaml:"bricks" toml:"bricks"`
	Powerups PowerupConfig  `yaml:"powerups" toml:"powerups"`
	Gameplay GameplayConfig `yaml:"gameplay" toml:"gameplay"`
}

// WorldConfig defines the play field in world pixels.
type WorldConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// PaddleConfig defines the paddle geometry and keyboard speed.
type PaddleConfig struct {
	Width    float64 `yaml:"width" toml:"width"`
	Height   float64 `yaml:"height" toml:"height"`
	Y        float64 `yaml:"y" toml:"y"`
	KeySpeed float64 `yaml:"key_speed" toml:"key_speed"` // px per second while a direction is held
}

// BallConfig defines ball size and speeds in px per second.
type BallConfig struct {
	Radius         float64 `yaml:"radius" toml:"radius"`
	LaunchSpeed    float64 `yaml:"launch_speed" toml:"launch_speed"`
	MinPaddleSpeed float64 `yaml:"min_paddle_speed" toml:"min_paddle_speed"` // floor applied on paddle bounce
	StickOffset    float64 `yaml:"stick_offset" toml:"stick_offset"`         // distance above paddle center while stuck
}

// BrickConfig defines brick durability and reward.
type BrickConfig struct {
	Health     int `yaml:"health" toml:"health"`
	BossHealth int `yaml:"boss_health" toml:"boss_health"`
	Points     int `yaml:"points" toml:"points"`
}

// PowerupConfig defines powerup spawning and effect parameters.
type PowerupConfig struct {
	SpawnChance     float64 `yaml:"spawn_chance" toml:"spawn_chance"` // 0..1 per brick hit
	FallSpeed       float64 `yaml:"fall_speed" toml:"fall_speed"`
	Size            float64 `yaml:"size" toml:"size"`
	FastMultiplier  float64 `yaml:"fast_multiplier" toml:"fast_multiplier"`
	MultiballCount  int     `yaml:"multiball_count" toml:"multiball_count"`
	MultiballSpeed  float64 `yaml:"multiball_speed" toml:"multiball_speed"`
	ExplosionRadius float64 `yaml:"explosion_radius" toml:"explosion_radius"`
	LaserRadius     float64 `yaml:"laser_radius" toml:"laser_radius"`
	LaserDurationMs int     `yaml:"laser_duration_ms" toml:"laser_duration_ms"`
	CueVolume       float64 `yaml:"cue_volume" toml:"cue_volume"`
}

// LaserDuration returns the laser sweep time in seconds.
func (p PowerupConfig) LaserDuration() float64 {
	return float64(p.LaserDurationMs) / 1000
}

// GameplayConfig defines session-level rules.
type GameplayConfig struct {
	Lives int `yaml:"lives" toml:"lives"`
}

// Validate reports the first nonsensical value in the config.
func (c BrickstormConfig) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %gx%g", c.World.Width, c.World.Height))
	}
	if c.Paddle.Width <= 0 || c.Paddle.Width >= c.World.Width {
		errs = append(errs, fmt.Errorf("paddle width %g must be in (0, world width)", c.Paddle.Width))
	}
	if c.Ball.Radius <= 0 {
		errs = append(errs, fmt.Errorf("ball radius must be positive, got %g", c.Ball.Radius))
	}
	if c.Bricks.Health <= 0 || c.Bricks.BossHealth <= 0 {
		errs = append(errs, errors.New("brick health must be positive"))
	}
	if c.Powerups.SpawnChance < 0 || c.Powerups.SpawnChance > 1 {
		errs = append(errs, fmt.Errorf("spawn chance %g must be within [0, 1]", c.Powerups.SpawnChance))
	}
	if c.Powerups.LaserDurationMs <= 0 {
		errs = append(errs, errors.New("laser duration must be positive"))
	}
	if c.Gameplay.Lives <= 0 {
		errs = append(errs, fmt.Errorf("lives must be positive, got %d", c.Gameplay.Lives))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI string to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset adjusts lives, paddle width and launch speed for a preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *BrickstormConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Paddle.Width = 160
		cfg.Ball.LaunchSpeed = 220
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Paddle.Width = 90
		cfg.Ball.LaunchSpeed = 320
		cfg.Ball.MinPaddleSpeed = 300
	}
}
