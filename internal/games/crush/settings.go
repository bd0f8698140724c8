package crush

import (
	"context"
	"sync"

	"github.com/tradenly/poopee-crush/internal/config"
	"github.com/tradenly/poopee-crush/internal/games/crush/match3"
	"github.com/tradenly/poopee-crush/internal/session"
)

// Package-level settings written by the CLI before games are created. SSH
// sessions create games concurrently, so they are read under a lock.
var (
	settingsMu       sync.RWMutex
	configPath       string
	difficultyPreset config.DifficultyPreset
	startLevel       int
	services         session.Services
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. An empty name keeps the
// config file's difficulty.
func SetDifficultyPreset(preset string) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if preset == "" {
		difficultyPreset = ""
		return nil
	}
	p, err := config.ParsePreset(preset)
	if err != nil {
		return err
	}
	difficultyPreset = p
	return nil
}

// SetStartLevel sets the level new games start at. 0 uses the config value.
func SetStartLevel(level int) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	startLevel = max(level, 0)
}

// SetServices wires the credit ledger, save slots, score table and reporter
// used by every new game. The zero value means free play with no saves.
func SetServices(svc session.Services) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	services = svc
}

// BalanceReader is implemented by credit services that can show a balance.
type BalanceReader interface {
	Balance(ctx context.Context, user string) (int, error)
}

type settings struct {
	cfg   config.CrushConfig
	level int
	svc   session.Services
	err   error
}

func loadSettings() settings {
	settingsMu.RLock()
	path, preset, level, svc := configPath, difficultyPreset, startLevel, services
	settingsMu.RUnlock()

	cfg, err := config.LoadCrush(path)
	if err != nil {
		cfg = config.DefaultCrushConfig()
	}
	if preset != "" {
		config.ApplyCrushPreset(&cfg, preset)
	}
	if level == 0 {
		level = cfg.Levels.StartLevel
	}
	return settings{cfg: cfg, level: level, svc: svc, err: err}
}

// LevelPreviews returns the first count levels as the current settings
// would deal them, for level pickers.
func LevelPreviews(count int, classic bool) []match3.LevelConfig {
	s := loadSettings()
	o := s.cfg.Options(classic)
	out := make([]match3.LevelConfig, 0, count)
	for n := 1; n <= count; n++ {
		out = append(out, match3.ForLevel(n, s.cfg.Levels.Difficulty, s.cfg.Levels.Scaling, o.Rows, o.Cols, o.SpecialTiles))
	}
	return out
}
