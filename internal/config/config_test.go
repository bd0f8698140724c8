package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tradenly/poopee-crush/internal/games/crush/match3"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	cfg := DefaultCrushConfig()
	if err := yaml.Unmarshal(defaultCrushYAML, &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	def := DefaultCrushConfig()
	if cfg.Board != def.Board || cfg.Scoring != def.Scoring || cfg.Levels != def.Levels {
		t.Errorf("embedded board/scoring/levels differ from defaults:\n%+v\n%+v", cfg, def)
	}
	if cfg.Saves.Redis != def.Saves.Redis {
		t.Errorf("redis = %+v, want %+v", cfg.Saves.Redis, def.Saves.Redis)
	}
	if cfg.Notify.NATS.ReconnectWait != 2*time.Second {
		t.Errorf("reconnect wait = %v", cfg.Notify.NATS.ReconnectWait)
	}
	for b, cost := range def.Economy.BoosterCosts {
		if cfg.Economy.BoosterCost(b) != cost {
			t.Errorf("%s cost = %d, want %d", b, cfg.Economy.BoosterCost(b), cost)
		}
	}
	if len(cfg.Economy.RewardTiers) != len(def.Economy.RewardTiers) {
		t.Errorf("reward tiers = %v", cfg.Economy.RewardTiers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded config invalid: %v", err)
	}
}

func TestLoadCrushCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crush.yaml")
	partial := `
board:
  rows: 9
  cols: 7
levels:
  difficulty: hard
economy:
  booster_costs:
    hint: 1
saves:
  backend: file
  dir: /tmp/saves
`
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadCrush(path)
	if err != nil {
		t.Fatalf("LoadCrush() failed: %v", err)
	}
	if cfg.Board.Rows != 9 || cfg.Board.Cols != 7 || cfg.Board.Kinds != 6 {
		t.Errorf("board = %+v", cfg.Board)
	}
	if cfg.Levels.Difficulty != match3.DifficultyHard || cfg.Levels.StartLevel != 1 {
		t.Errorf("levels = %+v", cfg.Levels)
	}
	if cfg.Economy.BoosterCost(match3.BoosterHint) != 1 || cfg.Economy.BoosterCost(match3.BoosterHammer) != 15 {
		t.Errorf("booster costs = %v", cfg.Economy.BoosterCosts)
	}
	if cfg.Saves.Backend != SavesFile || cfg.Saves.Dir != "/tmp/saves" {
		t.Errorf("saves = %+v", cfg.Saves)
	}
}

func TestLoadCrushCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.yaml")
	os.WriteFile(broken, []byte("board: [not, a, map"), 0o644)
	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("board:\n  kinds: 9\n"), 0o644)

	if _, err := LoadCrush(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config loaded")
	}
	if _, err := LoadCrush(broken); err == nil {
		t.Error("broken custom config loaded")
	}
	if _, err := LoadCrush(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("invalid custom config error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CrushConfig)
		ok     bool
	}{
		{"defaults", func(*CrushConfig) {}, true},
		{"small board", func(c *CrushConfig) { c.Board.Rows = 2 }, false},
		{"too many kinds", func(c *CrushConfig) { c.Board.Kinds = 7 }, false},
		{"unknown difficulty", func(c *CrushConfig) { c.Levels.Difficulty = "brutal" }, false},
		{"start level zero", func(c *CrushConfig) { c.Levels.StartLevel = 0 }, false},
		{"zero base score", func(c *CrushConfig) { c.Levels.Scaling.BaseScore = 0 }, false},
		{"negative fee", func(c *CrushConfig) { c.Economy.EntryFee = -1 }, false},
		{"unknown booster", func(c *CrushConfig) { c.Economy.BoosterCosts["laser"] = 3 }, false},
		{"unknown backend", func(c *CrushConfig) { c.Saves.Backend = "s3" }, false},
		{"file without dir", func(c *CrushConfig) { c.Saves.Backend = SavesFile; c.Saves.Dir = "" }, false},
		{"notify without url", func(c *CrushConfig) { c.Notify.Enabled = true; c.Notify.NATS.URL = "" }, false},
		{"redis backend", func(c *CrushConfig) { c.Saves.Backend = SavesRedis }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCrushConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestApplyCrushPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		difficulty  match3.Difficulty
		progression bool
		extraMoves  int
	}{
		{DifficultyEasy, match3.DifficultyEasy, true, 8},
		{DifficultyNormal, match3.DifficultyNormal, true, 5},
		{DifficultyHard, match3.DifficultyHard, true, 3},
		{DifficultyFixed, match3.DifficultyNormal, false, 5},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultCrushConfig()
			ApplyCrushPreset(&cfg, tt.preset)
			if cfg.Levels.Difficulty != tt.difficulty || cfg.Levels.Progression != tt.progression {
				t.Errorf("levels = %+v", cfg.Levels)
			}
			if cfg.Boosters.ExtraMovesAmount != tt.extraMoves {
				t.Errorf("extra moves = %d, want %d", cfg.Boosters.ExtraMovesAmount, tt.extraMoves)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}

	cfg := DefaultCrushConfig()
	ApplyCrushPreset(&cfg, DifficultyFixed)
	s := cfg.Levels.Scaling
	l1 := match3.ForLevel(1, cfg.Levels.Difficulty, s, 8, 8, true)
	l6 := match3.ForLevel(6, cfg.Levels.Difficulty, s, 8, 8, true)
	if l1.RequiredScore != l6.RequiredScore || l1.Moves != l6.Moves {
		t.Errorf("fixed preset still scales: L1 %d/%d, L6 %d/%d", l1.RequiredScore, l1.Moves, l6.RequiredScore, l6.Moves)
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(name); err != nil {
			t.Errorf("ParsePreset(%q): %v", name, err)
		}
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset accepted an unknown preset")
	}
}

func TestOptions(t *testing.T) {
	cfg := DefaultCrushConfig()
	enhanced := cfg.Options(false)
	if !enhanced.SpecialTiles || !enhanced.Objectives {
		t.Errorf("campaign options = %+v", enhanced)
	}
	classic := cfg.Options(true)
	if classic.SpecialTiles || classic.Objectives {
		t.Errorf("classic options = %+v", classic)
	}
	sc := cfg.SessionConfig("crush_classic", true)
	if sc.GameType != "crush_classic" || sc.Options != classic || sc.Economy.EntryFee != cfg.Economy.EntryFee {
		t.Errorf("session config = %+v", sc)
	}
}
