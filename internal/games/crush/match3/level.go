package match3

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidLevel is wrapped by every LevelConfig validation failure.
var ErrInvalidLevel = errors.New("match3: invalid level config")

// Difficulty scales score targets up and move budgets down.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Factor returns the multiplier applied to score targets.
func (d Difficulty) Factor() float64 {
	switch d {
	case DifficultyEasy:
		return 0.8
	case DifficultyHard:
		return 1.3
	default:
		return 1.0
	}
}

// LevelScaling holds the growth parameters used by ForLevel.
type LevelScaling struct {
	BaseScore   int     `yaml:"base_score" json:"base_score"`
	ScoreGrowth float64 `yaml:"score_growth" json:"score_growth"`
	BaseMoves   int     `yaml:"base_moves" json:"base_moves"`
	MovesGrowth float64 `yaml:"moves_growth" json:"moves_growth"`
	MinMoves    int     `yaml:"min_moves" json:"min_moves"`
}

// DefaultLevelScaling returns the campaign curve.
func DefaultLevelScaling() LevelScaling {
	return LevelScaling{
		BaseScore:   1000,
		ScoreGrowth: 1.25,
		BaseMoves:   30,
		MovesGrowth: 0.97,
		MinMoves:    15,
	}
}

// LevelConfig is immutable for the lifetime of a level.
type LevelConfig struct {
	Number        int         `json:"number"`
	Difficulty    Difficulty  `json:"difficulty"`
	Moves         int         `json:"moves"`
	RequiredScore int         `json:"required_score"`
	Objectives    []Objective `json:"objectives"`
	Blocked       []Position  `json:"blocked,omitempty"`
}

// ForLevel derives the config for level n (1-based).
func ForLevel(n int, diff Difficulty, s LevelScaling, rows, cols int, specials bool) LevelConfig {
	if n < 1 {
		n = 1
	}
	factor := diff.Factor()
	growth := float64(n - 1)

	score := int(math.Round(float64(s.BaseScore) * math.Pow(s.ScoreGrowth, growth) * factor))
	moves := int(math.Round(float64(s.BaseMoves) * math.Pow(s.MovesGrowth, growth) / factor))
	if moves < s.MinMoves {
		moves = s.MinMoves
	}

	lvl := LevelConfig{
		Number:        n,
		Difficulty:    diff,
		Moves:         moves,
		RequiredScore: score,
		Objectives:    []Objective{{Type: ObjectiveScore, Target: score}},
	}
	if n >= 3 {
		lvl.Objectives = append(lvl.Objectives, Objective{Type: ObjectiveTiles, Target: 30 + 10*n})
	}
	if n >= 5 {
		lvl.Objectives = append(lvl.Objectives, Objective{Type: ObjectiveCascades, Target: n})
	}
	if n >= 7 && specials {
		lvl.Objectives = append(lvl.Objectives, Objective{Type: ObjectiveSpecial, Target: 1 + n/4})
	}
	if n >= 4 {
		lvl.Blocked = []Position{
			{Row: 0, Col: 0},
			{Row: 0, Col: cols - 1},
			{Row: rows - 1, Col: 0},
			{Row: rows - 1, Col: cols - 1},
		}
	}
	return lvl
}

// Validate checks the config against a rows x cols board.
func (l LevelConfig) Validate(rows, cols int) error {
	if l.Moves <= 0 {
		return fmt.Errorf("%w: moves must be positive, got %d", ErrInvalidLevel, l.Moves)
	}
	if l.RequiredScore <= 0 {
		return fmt.Errorf("%w: required score must be positive, got %d", ErrInvalidLevel, l.RequiredScore)
	}
	if len(l.Objectives) == 0 {
		return fmt.Errorf("%w: no objectives", ErrInvalidLevel)
	}
	for _, o := range l.Objectives {
		if o.Target <= 0 {
			return fmt.Errorf("%w: %s target must be positive", ErrInvalidLevel, o.Type)
		}
		switch o.Type {
		case ObjectiveScore, ObjectiveCascades, ObjectiveSpecial:
		case ObjectiveMoves:
			if o.Target > l.Moves {
				return fmt.Errorf("%w: moves target %d exceeds budget %d", ErrInvalidLevel, o.Target, l.Moves)
			}
		case ObjectiveTiles:
			if o.Target > l.Moves*rows*cols {
				return fmt.Errorf("%w: tiles target %d unreachable in %d moves", ErrInvalidLevel, o.Target, l.Moves)
			}
		default:
			return fmt.Errorf("%w: unknown objective %q", ErrInvalidLevel, o.Type)
		}
	}
	b := NewBoard(rows, cols)
	for _, p := range l.Blocked {
		if !b.InBounds(p) {
			return fmt.Errorf("%w: blocked cell %v off the board", ErrInvalidLevel, p)
		}
	}
	if len(l.Blocked) > rows*cols/4 {
		return fmt.Errorf("%w: too many blocked cells (%d)", ErrInvalidLevel, len(l.Blocked))
	}
	return nil
}
