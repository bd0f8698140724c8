package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/tradenly/poopee-crush/internal/games/crush/match3"
)

// ErrInvalidConfig is wrapped by Validate failures.
var ErrInvalidConfig = errors.New("config: invalid crush config")

const crushFile = "crush.yaml"

// LoadCrush loads the crush configuration.
// Search order: customPath -> ~/.arcade/configs/crush.yaml -> ./configs/crush.yaml -> embedded default
// Files are layered over the built-in defaults, so partial files are fine.
// A custom path must exist and be valid; the other locations are skipped
// when missing or broken.
func LoadCrush(customPath string) (CrushConfig, error) {
	if customPath != "" {
		cfg, err := readCrush(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(crushFile), filepath.Join("configs", crushFile)} {
		if path == "" {
			continue
		}
		if cfg, err := readCrush(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	cfg := DefaultCrushConfig()
	if err := yaml.Unmarshal(defaultCrushYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultCrushConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func readCrush(path string) (CrushConfig, error) {
	cfg := DefaultCrushConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Validate checks every section.
func (c CrushConfig) Validate() error {
	if err := c.Options(false).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.Levels.Difficulty {
	case match3.DifficultyEasy, match3.DifficultyNormal, match3.DifficultyHard:
	default:
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, c.Levels.Difficulty)
	}
	if c.Levels.StartLevel < 1 {
		return fmt.Errorf("%w: start_level must be at least 1", ErrInvalidConfig)
	}
	s := c.Levels.Scaling
	if s.BaseScore <= 0 || s.BaseMoves <= 0 || s.MinMoves <= 0 || s.ScoreGrowth <= 0 || s.MovesGrowth <= 0 {
		return fmt.Errorf("%w: level scaling values must be positive", ErrInvalidConfig)
	}
	if c.Boosters.ExtraMovesAmount < 0 {
		return fmt.Errorf("%w: extra_moves_amount must not be negative", ErrInvalidConfig)
	}
	if err := c.Economy.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	backends := []string{SavesNone, SavesMemory, SavesSQLite, SavesFile, SavesRedis}
	if !slices.Contains(backends, c.Saves.Backend) {
		return fmt.Errorf("%w: unknown save backend %q", ErrInvalidConfig, c.Saves.Backend)
	}
	if c.Saves.Backend == SavesFile && c.Saves.Dir == "" {
		return fmt.Errorf("%w: file saves need a dir", ErrInvalidConfig)
	}
	if c.Notify.Enabled && c.Notify.NATS.URL == "" {
		return fmt.Errorf("%w: notify needs a nats url", ErrInvalidConfig)
	}
	return nil
}
