package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "blockbreak.yaml"

// LoadBlockbreak loads the game configuration.
// Search order: customPath -> ~/.blockbreak/configs/blockbreak.yaml ->
// ./configs/blockbreak.yaml -> embedded default.
// Keys missing from a file keep their default values.
func LoadBlockbreak(customPath string) (BlockbreakConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BlockbreakConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return BlockbreakConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultBlockbreakYAML)
	if err != nil {
		return DefaultBlockbreakConfig(), nil
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (BlockbreakConfig, error) {
	cfg := DefaultBlockbreakConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BlockbreakConfig{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return BlockbreakConfig{}, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c BlockbreakConfig) Validate() error {
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, errors.New(msg))
		}
	}
	check(c.Arena.Width > 2*c.Arena.WallThickness, "arena.width must exceed both walls")
	check(c.Arena.Height > c.Paddle.Y, "paddle.y must lie inside the arena")
	check(c.Paddle.Width > 0 && c.Paddle.Height > 0, "paddle size must be positive")
	check(c.Paddle.MaxBounceAngle > 0 && c.Paddle.MaxBounceAngle < 90, "paddle.max_bounce_angle must be in (0, 90)")
	check(c.Ball.Size > 0 && c.Ball.Speed > 0, "ball size and speed must be positive")
	check(c.Blocks.Width > 0 && c.Blocks.Height > 0, "block size must be positive")
	check(c.Combo.Window > 0, "combo.window must be positive")
	check(c.Combo.Step > 0, "combo.step must be positive")
	check(c.Combo.MaxMultiplier >= 1, "combo.max_multiplier must be at least 1")
	check(c.PowerUps.DropChance >= 0 && c.PowerUps.DropChance <= 1, "powerups.drop_chance must be in [0, 1]")
	check(c.PowerUps.SlowFactor > 0, "powerups.slow_factor must be positive")
	check(c.PowerUps.WideFactor > 0, "powerups.wide_factor must be positive")
	check(c.Progression.MaxSpecialShare >= 0 && c.Progression.MaxSpecialShare <= 1, "progression.max_special_share must be in [0, 1]")
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockbreak", "configs", filename)
}

// ApplyPreset adjusts the configuration for a difficulty preset.
func ApplyPreset(cfg *BlockbreakConfig, preset DifficultyPreset) {
	cfg.Progression.Enabled = preset != DifficultyFixed

	switch preset {
	case DifficultyEasy:
		cfg.Ball.Speed *= 0.8
		cfg.Paddle.Width *= 1.3
		cfg.PowerUps.DropChance = min(1, cfg.PowerUps.DropChance*1.5)
	case DifficultyHard:
		cfg.Ball.Speed *= 1.2
		cfg.Paddle.Width *= 0.8
		cfg.PowerUps.DropChance *= 0.66
	}
}

// Marshal renders a configuration as YAML, in the layout Parse reads back.
func Marshal(cfg BlockbreakConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}
