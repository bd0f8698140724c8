package config

import (
	"fmt"

	"github.com/tradenly/poopee-crush/internal/games/crush/match3"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name from the command line.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyCrushPreset modifies the config based on a difficulty preset. Fixed
// keeps every level at level 1's targets and stops the campaign advancing.
func ApplyCrushPreset(cfg *CrushConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Levels.Difficulty = match3.DifficultyNormal
		cfg.Levels.Progression = false
		cfg.Levels.Scaling.ScoreGrowth = 1
		cfg.Levels.Scaling.MovesGrowth = 1
		return
	}

	cfg.Levels.Difficulty = match3.Difficulty(preset)
	cfg.Levels.Progression = true

	switch preset {
	case DifficultyEasy:
		cfg.Boosters.ExtraMovesAmount = 8
	case DifficultyHard:
		cfg.Boosters.ExtraMovesAmount = 3
	}
}
