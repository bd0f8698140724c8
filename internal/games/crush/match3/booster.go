package match3

import (
	"errors"
	"fmt"
)

// Booster is a player-invoked action that does not consume a move.
type Booster string

const (
	BoosterHammer     Booster = "hammer"
	BoosterShuffle    Booster = "shuffle"
	BoosterExtraMoves Booster = "extra_moves"
	BoosterHint       Booster = "hint"
)

// Boosters lists every booster in display order.
var Boosters = []Booster{BoosterHammer, BoosterShuffle, BoosterExtraMoves, BoosterHint}

var (
	ErrGameFinished   = errors.New("match3: level is finished")
	ErrBoosterTarget  = errors.New("match3: booster target is not a tile")
	ErrNoHint         = errors.New("match3: no valid move on the board")
	ErrUnknownBooster = errors.New("match3: unknown booster")
)

// NeedsTarget reports whether the booster acts on a chosen cell.
func (b Booster) NeedsTarget() bool {
	return b == BoosterHammer
}

// BoosterResult reports what a booster did.
type BoosterResult struct {
	Booster    Booster
	Target     *Position
	Hint       *[2]Position
	MovesAdded int
	Resolution Resolution
	Status     Status
}

// CanApplyBooster checks a booster against the current state without changing
// anything. Callers debit credits only after this returns nil.
func (e *Engine) CanApplyBooster(b Booster, target *Position) error {
	if e.status.Terminal() {
		return ErrGameFinished
	}
	switch b {
	case BoosterHammer:
		if target == nil || !e.board.InBounds(*target) || !e.board.At(*target).Matchable() {
			return ErrBoosterTarget
		}
	case BoosterShuffle, BoosterExtraMoves:
	case BoosterHint:
		if _, _, ok := FindHint(e.board, e.opts.SpecialTiles); !ok {
			return ErrNoHint
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBooster, b)
	}
	return nil
}

// ApplyBooster applies a booster's effect. It runs CanApplyBooster first and
// leaves the state untouched on error.
func (e *Engine) ApplyBooster(b Booster, target *Position) (BoosterResult, error) {
	if err := e.CanApplyBooster(b, target); err != nil {
		return BoosterResult{}, err
	}
	res := BoosterResult{Booster: b}
	ev := BoosterEvent{Booster: b}

	switch b {
	case BoosterHammer:
		at := *target
		res.Target = &at
		ev.Target = &at
		e.selection.Clear()
		e.events = append(e.events, ev)
		res.Resolution = e.resolver.Resolve(e.board, &e.progress, Trigger{Extra: []Position{at}})
		e.events = append(e.events, res.Resolution.Events...)
		e.ensurePlayable()
		e.evaluate()
	case BoosterShuffle:
		e.selection.Clear()
		Randomize(e.board, e.opts.Kinds, e.rng)
		e.events = append(e.events, ev, ShuffleEvent{Reason: "booster"})
		e.ensurePlayable()
	case BoosterExtraMoves:
		e.progress.Moves += e.opts.ExtraMovesAmount
		res.MovesAdded = e.opts.ExtraMovesAmount
		RefreshObjectives(&e.progress)
		e.events = append(e.events, ev)
	case BoosterHint:
		from, to, _ := FindHint(e.board, e.opts.SpecialTiles)
		pair := [2]Position{from, to}
		res.Hint = &pair
		ev.Hint = &pair
		e.events = append(e.events, ev)
	}
	res.Status = e.status
	return res, nil
}

// FindHint returns the first valid swap in row-major order, trying each
// cell's right then down neighbour on a scratch copy of the board.
func FindHint(b Board, specials bool) (Position, Position, bool) {
	scratch := b.Clone()
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			from := Position{Row: r, Col: c}
			for _, to := range []Position{{Row: r, Col: c + 1}, {Row: r + 1, Col: c}} {
				if !b.InBounds(to) {
					continue
				}
				if TrySwap(scratch, from, to, specials).Accepted {
					return from, to, true
				}
			}
		}
	}
	return Position{}, Position{}, false
}
