package crush

import (
	"errors"

	"github.com/tradenly/poopee-crush/internal/games/crush/match3"
	"github.com/tradenly/poopee-crush/internal/session"
)

// Snapshot captures the adapter state for tests and replays.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Level     int
	Score     int
	Moves     int
	Status    match3.Status
	Cursor    match3.Position
	Selected  *match3.Position
	Hint      *[2]match3.Position
	Board     match3.Board
	Resumed   bool
	SessionID string
	Message   string
	StartErr  string
}

// Snapshot returns the current state. Board is a copy.
func (g *Game) Snapshot() Snapshot {
	mode := "campaign"
	if g.classic {
		mode = "classic"
	}
	s := Snapshot{
		Tick:   g.tick,
		Mode:   mode,
		Level:  g.level,
		Cursor: g.cursor,
		Hint:   g.hint,
	}
	if g.messageLeft > 0 {
		s.Message = g.message
	}
	if g.startErr != nil {
		s.StartErr = g.startErr.Error()
	}
	if g.sess == nil {
		return s
	}
	e := g.sess.Engine()
	p := e.Progress()
	s.Score, s.Moves = p.Score, p.Moves
	s.Status = e.Status()
	s.Board = e.Board()
	s.Resumed = g.sess.Resumed()
	s.SessionID = g.sess.ID()
	if sel, ok := e.Selection(); ok {
		s.Selected = &sel
	}
	return s
}

func isInsufficientFunds(err error) bool {
	return errors.Is(err, session.ErrInsufficientFunds)
}
