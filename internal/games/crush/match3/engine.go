package match3

import (
	"errors"
	"fmt"
)

// Status is the per-level state machine.
type Status string

const (
	StatusInProgress    Status = "in_progress"
	StatusLevelComplete Status = "level_complete"
	StatusGameOver      Status = "game_over"
	StatusQuit          Status = "quit"
)

// Terminal reports whether no further input is accepted.
func (s Status) Terminal() bool {
	return s != StatusInProgress
}

// ErrInvalidOptions is wrapped by Options.Validate failures.
var ErrInvalidOptions = errors.New("match3: invalid options")

// maxReshuffles bounds the attempts to find a board with a valid move.
const maxReshuffles = 20

// Options selects the engine's capabilities. Classic play is the enhanced
// engine with special tiles and objectives switched off.
type Options struct {
	Rows             int
	Cols             int
	Kinds            int
	SpecialTiles     bool
	Objectives       bool
	Scoring          Scoring
	ExtraMovesAmount int
}

// ClassicOptions is the plain swap-and-score game.
func ClassicOptions() Options {
	return Options{
		Rows:             8,
		Cols:             8,
		Kinds:            6,
		Scoring:          DefaultScoring(),
		ExtraMovesAmount: 5,
	}
}

// EnhancedOptions adds special tiles and level objectives.
func EnhancedOptions() Options {
	o := ClassicOptions()
	o.SpecialTiles = true
	o.Objectives = true
	return o
}

// Validate checks board size and scoring.
func (o Options) Validate() error {
	if o.Rows < 3 || o.Cols < 3 {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, ErrBoardTooSmall)
	}
	if o.Kinds < 3 || o.Kinds > MaxKinds {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, ErrKindCount)
	}
	if o.Scoring.TilePoints <= 0 {
		return fmt.Errorf("%w: tile points must be positive", ErrInvalidOptions)
	}
	if o.Scoring.ComboStep < 0 {
		return fmt.Errorf("%w: combo step must not be negative", ErrInvalidOptions)
	}
	return nil
}

// State is everything needed to resume a level.
type State struct {
	Board    Board       `json:"board"`
	Progress Progress    `json:"progress"`
	Level    LevelConfig `json:"level"`
	Status   Status      `json:"status"`
}

// MoveResult reports a swap attempt.
type MoveResult struct {
	Accepted   bool
	Reason     SwapReason
	From, To   Position
	ScoreDelta int
	Waves      int
	Cleared    int
	Truncated  bool
	Status     Status
}

// ClickResult reports a cell click.
type ClickResult struct {
	Outcome  ClickOutcome
	Selected *Position
	Move     *MoveResult
}

// Engine runs one level. It is not safe for concurrent use; a game is
// driven by a single input stream.
type Engine struct {
	opts      Options
	rng       Rand
	resolver  Resolver
	board     Board
	level     LevelConfig
	progress  Progress
	selection Selection
	status    Status
	events    []Event
}

// NewEngine validates the options and level and deals a fresh board.
func NewEngine(opts Options, level LevelConfig, rng Rand) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := level.Validate(opts.Rows, opts.Cols); err != nil {
		return nil, err
	}
	board, err := Generate(opts.Rows, opts.Cols, opts.Kinds, level.Blocked, rng)
	if err != nil {
		return nil, err
	}

	e := newEngine(opts, rng)
	e.board = board
	e.level = level
	e.progress = NewProgress(level)
	if !opts.Objectives {
		e.progress.Objectives = nil
	}
	e.status = StatusInProgress
	e.ensurePlayable()
	e.events = nil
	return e, nil
}

// Restore rebuilds an engine from a saved state. The state is validated in
// full before an engine is returned.
func Restore(opts Options, st State, rng Rand) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if st.Board.Rows != opts.Rows || st.Board.Cols != opts.Cols || len(st.Board.Cells) != opts.Rows {
		return nil, fmt.Errorf("%w: saved board is %dx%d", ErrInvalidOptions, st.Board.Rows, st.Board.Cols)
	}
	for _, row := range st.Board.Cells {
		if len(row) != opts.Cols {
			return nil, fmt.Errorf("%w: ragged saved board", ErrInvalidOptions)
		}
	}
	if err := st.Level.Validate(opts.Rows, opts.Cols); err != nil {
		return nil, err
	}

	e := newEngine(opts, rng)
	e.board = st.Board.Clone()
	e.level = st.Level
	e.progress = st.Progress.Clone()
	e.status = st.Status
	if e.status == "" {
		e.status = StatusInProgress
	}
	return e, nil
}

func newEngine(opts Options, rng Rand) *Engine {
	return &Engine{
		opts: opts,
		rng:  rng,
		resolver: Resolver{
			Kinds:    opts.Kinds,
			Specials: opts.SpecialTiles,
			Scoring:  opts.Scoring,
			Rng:      rng,
		},
	}
}

// HandleCellClick feeds one click through the selection state machine and,
// for a second click on a neighbour, attempts the swap and resolves it.
func (e *Engine) HandleCellClick(p Position) ClickResult {
	if e.status.Terminal() {
		return ClickResult{Outcome: ClickIgnored}
	}

	outcome, prev := e.selection.Click(e.board, p)
	res := ClickResult{Outcome: outcome}
	switch outcome {
	case ClickSelected, ClickReselected:
		sel := prev
		res.Selected = &sel
	case ClickSwap:
		mv := e.swap(prev, p)
		res.Move = &mv
	}
	return res
}

func (e *Engine) swap(from, to Position) MoveResult {
	sr := TrySwap(e.board, from, to, e.opts.SpecialTiles)
	mv := MoveResult{Accepted: sr.Accepted, Reason: sr.Reason, From: from, To: to, Status: e.status}
	if !sr.Accepted {
		e.events = append(e.events, InvalidEvent{From: from, To: to, Reason: sr.Reason})
		return mv
	}

	e.progress.Moves--
	e.progress.MovesUsed++
	r := e.resolver.Resolve(e.board, &e.progress, Trigger{
		Matches:    sr.Matches,
		Moved:      []Position{to, from},
		Detonation: sr.Detonation,
	})
	e.events = append(e.events, r.Events...)
	e.ensurePlayable()
	e.evaluate()

	mv.ScoreDelta = r.ScoreDelta
	mv.Waves = r.Waves
	mv.Cleared = r.Cleared
	mv.Truncated = r.Truncated
	mv.Status = e.status
	return mv
}

// evaluate moves the status forward. Completion is checked before game over.
func (e *Engine) evaluate() {
	if e.status.Terminal() {
		return
	}
	RefreshObjectives(&e.progress)
	switch {
	case e.opts.Objectives && CheckLevelComplete(e.progress):
		e.status = StatusLevelComplete
	case CheckGameOver(e.progress):
		e.status = StatusGameOver
	}
}

// ensurePlayable reshuffles a board that has no valid swap left.
func (e *Engine) ensurePlayable() {
	for i := 0; i < maxReshuffles; i++ {
		if _, _, ok := FindHint(e.board, e.opts.SpecialTiles); ok {
			return
		}
		Randomize(e.board, e.opts.Kinds, e.rng)
		e.events = append(e.events, ShuffleEvent{Reason: "no moves"})
	}
}

// Quit finalises the level as it stands. Quit is only reachable between
// moves, so no swap is ever left half-applied.
func (e *Engine) Quit() {
	if !e.status.Terminal() {
		e.status = StatusQuit
	}
	e.selection.Clear()
}

// DrainEvents returns the queued animation events and empties the queue.
func (e *Engine) DrainEvents() []Event {
	out := e.events
	e.events = nil
	return out
}

// Progress returns a snapshot of the level progress.
func (e *Engine) Progress() Progress { return e.progress.Clone() }

// Board returns a copy of the board.
func (e *Engine) Board() Board { return e.board.Clone() }

func (e *Engine) Level() LevelConfig { return e.level }
func (e *Engine) Options() Options   { return e.opts }
func (e *Engine) Status() Status     { return e.status }

// Selection returns the selected cell, if any.
func (e *Engine) Selection() (Position, bool) { return e.selection.Current() }

// Stars returns the rating for a completed level, 0 otherwise.
func (e *Engine) Stars() int {
	if e.status != StatusLevelComplete {
		return 0
	}
	return Stars(e.progress, e.level)
}

// State returns a serialisable copy of the level.
func (e *Engine) State() State {
	return State{
		Board:    e.board.Clone(),
		Progress: e.progress.Clone(),
		Level:    e.level,
		Status:   e.status,
	}
}
