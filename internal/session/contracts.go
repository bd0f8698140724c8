// Package session drives one POOPEE Crush level for one player and connects
// the pure engine to the credit ledger, save slots, score table and session
// log.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tradenly/poopee-crush/internal/games/crush/match3"
)

// ErrInsufficientFunds is returned by a CreditService when a spend would
// take the balance below zero.
var ErrInsufficientFunds = errors.New("session: insufficient credits")

// CreditService debits and credits a user's balance.
type CreditService interface {
	Spend(ctx context.Context, user string, amount int, reason string) error
	Earn(ctx context.Context, user string, amount int, reason, sessionRef string) error
}

// SessionRecord is the durable summary of a finished level.
type SessionRecord struct {
	ID        string `json:"id"`
	User      string `json:"user"`
	GameType  string `json:"game_type"`
	Level     int    `json:"level"`
	Score     int    `json:"score"`
	MovesUsed int    `json:"moves_used"`
	Status    string `json:"status"`
	Stars     int    `json:"stars"`
	Reward    int    `json:"reward"`
	// entry fee plus every booster bought during the level
	CreditsSpent int       `json:"credits_spent"`
	StartedAt    time.Time `json:"started_at"`
	EndedAt      time.Time `json:"ended_at"`
}

// SessionRecorder stores finished sessions and returns the stored id.
type SessionRecorder interface {
	RecordSession(ctx context.Context, rec SessionRecord) (string, error)
}

// SavedGame is an in-progress level parked for resume-later.
type SavedGame struct {
	SessionID string       `json:"session_id"`
	GameType  string       `json:"game_type"`
	User      string       `json:"user"`
	State     match3.State `json:"state"`
	// credits already charged for this level, carried into the record
	CreditsSpent int       `json:"credits_spent"`
	StartedAt    time.Time `json:"started_at"`
	SavedAt      time.Time `json:"saved_at"`
}

// Persistence keeps at most one SavedGame per key. Load returns nil, nil
// when the key holds nothing.
type Persistence interface {
	Save(ctx context.Context, key string, g SavedGame) error
	Load(ctx context.Context, key string) (*SavedGame, error)
	Clear(ctx context.Context, key string) error
}

// ScoreKeeper is the per-game high score table.
type ScoreKeeper interface {
	HighScore(gameID string) (int, error)
	SaveScore(gameID string, score int) (int64, error)
}

// SaveKey is the Persistence key for a user's slot in a game type.
func SaveKey(gameType, user string) string {
	return fmt.Sprintf("%s:%s", gameType, user)
}
