// Package savestate provides the resume-later slots used by sessions: an
// in-memory map, JSON files on disk and Redis.
package savestate

import (
	"context"
	"sync"

	"github.com/tradenly/poopee-crush/internal/session"
)

// Memory keeps saves in a map. Saved games are copied in and out so callers
// never share state with the store.
type Memory struct {
	mu    sync.RWMutex
	slots map[string]session.SavedGame
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string]session.SavedGame)}
}

// Save stores g under key.
func (m *Memory) Save(_ context.Context, key string, g session.SavedGame) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = clone(g)
	return nil
}

// Load returns the game under key, or nil.
func (m *Memory) Load(_ context.Context, key string) (*session.SavedGame, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.slots[key]
	if !ok {
		return nil, nil
	}
	c := clone(g)
	return &c, nil
}

// Clear removes the game under key.
func (m *Memory) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}

func clone(g session.SavedGame) session.SavedGame {
	g.State.Board = g.State.Board.Clone()
	g.State.Progress = g.State.Progress.Clone()
	g.State.Level.Objectives = append(g.State.Level.Objectives[:0:0], g.State.Level.Objectives...)
	g.State.Level.Blocked = append(g.State.Level.Blocked[:0:0], g.State.Level.Blocked...)
	return g
}

var (
	_ session.Persistence = (*Memory)(nil)
	_ session.Persistence = (*File)(nil)
	_ session.Persistence = (*Redis)(nil)
)
