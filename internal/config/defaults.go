package config

import (
	_ "embed"
	"time"

	"github.com/tradenly/poopee-crush/internal/games/crush/match3"
	"github.com/tradenly/poopee-crush/internal/notify"
	"github.com/tradenly/poopee-crush/internal/savestate"
	"github.com/tradenly/poopee-crush/internal/session"
)

//go:embed defaults/crush.yaml
var defaultCrushYAML []byte

// DefaultCrushConfig returns the built-in configuration.
func DefaultCrushConfig() CrushConfig {
	return CrushConfig{
		Board: BoardConfig{
			Rows:  8,
			Cols:  8,
			Kinds: 6,
		},
		Scoring: match3.DefaultScoring(),
		Levels: LevelsConfig{
			Difficulty:  match3.DifficultyNormal,
			StartLevel:  1,
			Progression: true,
			Scaling:     match3.DefaultLevelScaling(),
		},
		Boosters: BoostersConfig{
			ExtraMovesAmount: 5,
		},
		Economy: session.DefaultEconomy(),
		Features: FeaturesConfig{
			SpecialTiles: true,
			Objectives:   true,
		},
		Saves: SavesConfig{
			Backend: SavesSQLite,
			Dir:     "~/.arcade/saves",
			Redis:   savestate.DefaultRedisConfig(),
		},
		Notify: NotifyConfig{
			Enabled: false,
			NATS: notify.Config{
				URL:           "nats://127.0.0.1:4222",
				MaxReconnects: 10,
				ReconnectWait: 2 * time.Second,
			},
		},
	}
}
