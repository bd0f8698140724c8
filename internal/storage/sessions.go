package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tradenly/poopee-crush/internal/session"
)

// RecordSession stores a finished session and returns its id.
func (s *Store) RecordSession(ctx context.Context, rec session.SessionRecord) (string, error) {
	if rec.ID == "" {
		return "", errors.New("storage: session record has no id")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions
		 (id, user, game_type, level, score, moves_used, status, stars, reward, credits_spent, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.User, rec.GameType, rec.Level, rec.Score, rec.MovesUsed,
		rec.Status, rec.Stars, rec.Reward, rec.CreditsSpent, formatTime(rec.StartedAt), formatTime(rec.EndedAt),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot record session: %w", err)
	}
	return rec.ID, nil
}

// RecentSessions returns the user's finished sessions, newest first. An
// empty user lists everyone's.
func (s *Store) RecentSessions(ctx context.Context, user string, limit int) ([]session.SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user, game_type, level, score, moves_used, status, stars, reward, credits_spent, started_at, ended_at
		 FROM sessions
		 WHERE ? = '' OR user = ?
		 ORDER BY ended_at DESC
		 LIMIT ?`,
		user, user, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var out []session.SessionRecord
	for rows.Next() {
		var r session.SessionRecord
		var started, ended string
		if err := rows.Scan(&r.ID, &r.User, &r.GameType, &r.Level, &r.Score, &r.MovesUsed,
			&r.Status, &r.Stars, &r.Reward, &r.CreditsSpent, &started, &ended); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.StartedAt = parseTime(started)
		r.EndedAt = parseTime(ended)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Save implements session.Persistence. A slot holds one game; saving again
// replaces it.
func (s *Store) Save(ctx context.Context, key string, g session.SavedGame) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("storage: cannot encode save: %w", err)
	}
	savedAt := g.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO saved_games (slot, user, game_type, session_id, data, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
		   user = excluded.user,
		   game_type = excluded.game_type,
		   session_id = excluded.session_id,
		   data = excluded.data,
		   saved_at = excluded.saved_at`,
		key, g.User, g.GameType, g.SessionID, string(data), formatTime(savedAt),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}
	return nil
}

// Load returns the game in the slot, or nil when it is empty.
func (s *Store) Load(ctx context.Context, key string) (*session.SavedGame, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM saved_games WHERE slot = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load game: %w", err)
	}
	var g session.SavedGame
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		return nil, fmt.Errorf("storage: cannot decode save: %w", err)
	}
	return &g, nil
}

// Clear empties the slot.
func (s *Store) Clear(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM saved_games WHERE slot = ?", key); err != nil {
		return fmt.Errorf("storage: cannot clear game: %w", err)
	}
	return nil
}
