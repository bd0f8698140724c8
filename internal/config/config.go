// Package config provides YAML-based configuration for POOPEE Crush: board
// shape, scoring, level curve, boosters, the credit economy and the
// optional save and notification backends.
package config

import (
	"github.com/tradenly/poopee-crush/internal/games/crush/match3"
	"github.com/tradenly/poopee-crush/internal/notify"
	"github.com/tradenly/poopee-crush/internal/savestate"
	"github.com/tradenly/poopee-crush/internal/session"
)

// CrushConfig contains all configuration for the crush games.
type CrushConfig struct {
	Board    BoardConfig     `yaml:"board"`
	Scoring  match3.Scoring  `yaml:"scoring"`
	Levels   LevelsConfig    `yaml:"levels"`
	Boosters BoostersConfig  `yaml:"boosters"`
	Economy  session.Economy `yaml:"economy"`
	Features FeaturesConfig  `yaml:"features"`
	Saves    SavesConfig     `yaml:"saves"`
	Notify   NotifyConfig    `yaml:"notify"`
}

// BoardConfig defines the grid.
type BoardConfig struct {
	Rows  int `yaml:"rows"`
	Cols  int `yaml:"cols"`
	Kinds int `yaml:"kinds"` // basic tile kinds in play, 3..6
}

// LevelsConfig defines the campaign.
type LevelsConfig struct {
	Difficulty  match3.Difficulty   `yaml:"difficulty"`
	StartLevel  int                 `yaml:"start_level"`
	Progression bool                `yaml:"progression"` // advance to the next level on completion
	Scaling     match3.LevelScaling `yaml:"scaling"`
}

// BoostersConfig defines booster effects. Prices live in the economy.
type BoostersConfig struct {
	ExtraMovesAmount int `yaml:"extra_moves_amount"`
}

// FeaturesConfig switches enhanced-mode rules for the campaign game. The
// classic game always runs with both off.
type FeaturesConfig struct {
	SpecialTiles bool `yaml:"special_tiles"`
	Objectives   bool `yaml:"objectives"`
}

// Save backends.
const (
	SavesNone   = "none"
	SavesMemory = "memory"
	SavesSQLite = "sqlite"
	SavesFile   = "file"
	SavesRedis  = "redis"
)

// SavesConfig selects where resume-later slots are kept.
type SavesConfig struct {
	Backend string                `yaml:"backend"`
	Dir     string                `yaml:"dir"` // file backend
	Redis   savestate.RedisConfig `yaml:"redis"`
}

// NotifyConfig enables publishing finished sessions to NATS.
type NotifyConfig struct {
	Enabled bool          `yaml:"enabled"`
	NATS    notify.Config `yaml:"nats"`
}

// Options returns the engine options for the campaign game, or for the
// classic game when classic is set.
func (c CrushConfig) Options(classic bool) match3.Options {
	o := match3.Options{
		Rows:             c.Board.Rows,
		Cols:             c.Board.Cols,
		Kinds:            c.Board.Kinds,
		SpecialTiles:     c.Features.SpecialTiles,
		Objectives:       c.Features.Objectives,
		Scoring:          c.Scoring,
		ExtraMovesAmount: c.Boosters.ExtraMovesAmount,
	}
	if classic {
		o.SpecialTiles = false
		o.Objectives = false
	}
	return o
}

// SessionConfig returns what a session of gameType needs.
func (c CrushConfig) SessionConfig(gameType string, classic bool) session.Config {
	return session.Config{
		GameType:   gameType,
		Options:    c.Options(classic),
		Difficulty: c.Levels.Difficulty,
		Scaling:    c.Levels.Scaling,
		Economy:    c.Economy,
	}
}
