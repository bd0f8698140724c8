package session

import (
	"fmt"
	"slices"

	"github.com/tradenly/poopee-crush/internal/games/crush/match3"
)

// RewardTier pays Reward credits for a final score of at least MinScore.
type RewardTier struct {
	MinScore int `yaml:"min_score" json:"min_score"`
	Reward   int `yaml:"reward" json:"reward"`
}

// Economy prices a game: what it costs to play and what it pays out.
type Economy struct {
	EntryFee        int                    `yaml:"entry_fee"`
	StartingCredits int                    `yaml:"starting_credits"`
	HighScoreBonus  int                    `yaml:"high_score_bonus"`
	RewardTiers     []RewardTier           `yaml:"reward_tiers"`
	BoosterCosts    map[match3.Booster]int `yaml:"booster_costs"`
}

// DefaultEconomy returns the stock prices.
func DefaultEconomy() Economy {
	return Economy{
		EntryFee:        10,
		StartingCredits: 100,
		HighScoreBonus:  25,
		RewardTiers: []RewardTier{
			{MinScore: 500, Reward: 5},
			{MinScore: 2000, Reward: 15},
			{MinScore: 5000, Reward: 40},
		},
		BoosterCosts: map[match3.Booster]int{
			match3.BoosterHammer:     15,
			match3.BoosterShuffle:    10,
			match3.BoosterExtraMoves: 20,
			match3.BoosterHint:       5,
		},
	}
}

// Reward returns the payout of the highest tier the score reaches.
func (e Economy) Reward(score int) int {
	best := 0
	for _, t := range e.RewardTiers {
		if score >= t.MinScore && t.Reward > best {
			best = t.Reward
		}
	}
	return best
}

// BoosterCost returns the price of a booster, 0 when it is free.
func (e Economy) BoosterCost(b match3.Booster) int {
	return e.BoosterCosts[b]
}

// Validate rejects negative prices and unknown boosters.
func (e Economy) Validate() error {
	if e.EntryFee < 0 || e.StartingCredits < 0 || e.HighScoreBonus < 0 {
		return fmt.Errorf("session: economy amounts must not be negative")
	}
	for i, t := range e.RewardTiers {
		if t.MinScore < 0 || t.Reward < 0 {
			return fmt.Errorf("session: reward tier %d is negative", i)
		}
	}
	for b, cost := range e.BoosterCosts {
		if !slices.Contains(match3.Boosters, b) {
			return fmt.Errorf("session: unknown booster %q", b)
		}
		if cost < 0 {
			return fmt.Errorf("session: %s cost must not be negative", b)
		}
	}
	return nil
}
