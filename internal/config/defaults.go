package config

import (
	_ "embed"
)

//go:embed defaults/brickstorm.yaml
var defaultBrickstormYAML []byte

// DefaultBrickstormConfig returns the built-in configuration.
func DefaultBrickstormConfig() BrickstormConfig {
	return BrickstormConfig{
		World: WorldConfig{
			Width:  1200,
			Height: 900,
		},
		Paddle: PaddleConfig{
			Width:    120,
			Height:   40,
			Y:        840,
			KeySpeed: 480, // 8 px per frame at 60 fps
		},
		Ball: BallConfig{
			Radius:         8,
			LaunchSpeed:    260,
			MinPaddleSpeed: 240,
			StickOffset:    20,
		},
		Bricks: BrickConfig{
			Health:     2,
			BossHealth: 6,
			Points:     10,
		},
		Powerups: PowerupConfig{
			SpawnChance:     0.3,
			FallSpeed:       150,
			Size:            40,
			FastMultiplier:  1.3,
			MultiballCount:  2,
			MultiballSpeed:  260,
			ExplosionRadius: 100,
			LaserRadius:     50,
			LaserDurationMs: 800,
			CueVolume:       0.6,
		},
		Gameplay: GameplayConfig{
			Lives: 3,
		},
	}
}

// DefaultYAML returns the embedded default config file, suitable as a
// starting point for a custom config.
func DefaultYAML() []byte {
	return defaultBrickstormYAML
}
