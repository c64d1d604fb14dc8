package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load loads the brickstorm configuration.
// Search order: customPath -> ~/.brickstorm/brickstorm.{yaml,toml} ->
// ./configs/brickstorm.yaml -> embedded default.
// Files only need to name the values they override.
func Load(customPath string) (BrickstormConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BrickstormConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(customPath, data)
		if err != nil {
			return BrickstormConfig{}, err
		}
		return cfg, nil
	}

	for _, candidate := range searchPaths() {
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		if cfg, err := Parse(candidate, data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse("brickstorm.yaml", defaultBrickstormYAML)
	if err != nil {
		return DefaultBrickstormConfig(), nil // Fallback to hardcoded if embed is broken
	}
	return cfg, nil
}

// Parse decodes a config file over the built-in defaults. The format is
// picked from the file extension; anything but .toml is read as YAML.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Parse(name string, data []byte) (BrickstormConfig, error) {
	cfg := DefaultBrickstormConfig()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return BrickstormConfig{}, fmt.Errorf("config: failed to parse %s: %w", name, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return BrickstormConfig{}, fmt.Errorf("config: unknown keys in %s: %v", name, undecoded)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return BrickstormConfig{}, fmt.Errorf("config: failed to parse %s: %w", name, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return BrickstormConfig{}, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if user, err := UserConfigPath(); err == nil {
		paths = append(paths, user, strings.TrimSuffix(user, ".yaml")+".toml")
	}
	return append(paths, filepath.Join("configs", "brickstorm.yaml"))
}

// UserConfigPath returns ~/.brickstorm/brickstorm.yaml, the first file Load
// looks for when no path is given.
func UserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot get home directory: %w", err)
	}
	return filepath.Join(home, ".brickstorm", "brickstorm.yaml"), nil
}

// WriteDefault writes the embedded default config to path, creating parent
// directories. An existing file is kept unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config: %s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, DefaultYAML(), 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	return nil
}
