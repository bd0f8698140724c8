// Package crush registers POOPEE Crush with the arcade: a campaign of
// match-3 levels with special tiles and objectives, and a classic score
// attack on the plain engine. Each level is played through a session that
// charges the entry fee, saves progress and pays rewards.
package crush

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/tradenly/poopee-crush/internal/config"
	"github.com/tradenly/poopee-crush/internal/core"
	"github.com/tradenly/poopee-crush/internal/games/crush/match3"
	"github.com/tradenly/poopee-crush/internal/registry"
	"github.com/tradenly/poopee-crush/internal/session"
)

// Registry ids.
const (
	IDCampaign = "crush"
	IDClassic  = "crush_classic"
)

const (
	messageTicks       = 60
	creditRefreshTicks = 30
	guestPlayer        = "guest"
)

func init() {
	registry.Register(IDCampaign, func() registry.Game { return New() })
	registry.Register(IDClassic, func() registry.Game { return NewClassic() })
}

// Game adapts a crush session to the arcade's tick loop.
type Game struct {
	classic bool

	cfg     config.CrushConfig
	svc     session.Services
	started bool
	level   int

	player string
	rng    *rand.Rand
	tick   uint64

	sess     *session.Session
	startErr error

	cursor match3.Position
	hint   *[2]match3.Position
	paused bool

	message      string
	messageColor core.Color
	messageLeft  int

	credits      int
	creditsKnown bool

	screenW, screenH int
}

// New creates the campaign game.
func New() *Game {
	return &Game{}
}

// NewClassic creates the classic score-attack game.
func NewClassic() *Game {
	return &Game{classic: true}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.classic {
		return IDClassic
	}
	return IDCampaign
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.classic {
		return "POOPEE Crush (Classic)"
	}
	return "POOPEE Crush"
}

// Reset starts the current level, or the configured start level on the
// first call. A saved level for this player is resumed instead when one
// exists.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.started {
		s := loadSettings()
		g.cfg, g.svc, g.level = s.cfg, s.svc, s.level
		if cfg.StartLevel > 0 {
			g.level = cfg.StartLevel
		}
		g.started = true
		if s.err != nil {
			g.flash("Config error, using defaults", core.ColorBrightRed)
		}
	}
	g.player = cfg.Player
	if g.player == "" {
		g.player = guestPlayer
	}
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW, g.screenH = cfg.ScreenW, cfg.ScreenH
	g.tick = 0
	g.paused = false
	g.startLevel()
}

func (g *Game) startLevel() {
	g.hint = nil
	g.cursor = match3.Position{}
	sess, err := session.Start(context.Background(), g.cfg.SessionConfig(g.ID(), g.classic), g.svc, g.player, g.level, g.rng)
	g.sess, g.startErr = sess, err
	if err == nil {
		g.level = sess.Engine().Level().Number
		opts := sess.Engine().Options()
		g.cursor = match3.Position{Row: opts.Rows / 2, Col: opts.Cols / 2}
		if sess.Resumed() {
			g.flash(fmt.Sprintf("Resumed level %d", g.level), core.ColorBrightGreen)
		}
	}
	g.refreshCredits()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.messageLeft > 0 {
		g.messageLeft--
	}

	if g.sess == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.sess.Summary() == nil {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.sess.Summary() != nil {
		g.stepFinished(in)
		return core.StepResult{State: g.State()}
	}

	ctx := context.Background()
	g.moveCursor(in)

	if in.Click != nil {
		if p, ok := layoutFor(g.screenW, g.screenH, g.board()).cellAt(*in.Click); ok {
			g.cursor = p
			g.click(ctx, p)
		}
	}
	if in.Has(core.ActionSelect) {
		g.click(ctx, g.cursor)
	}
	if in.Has(core.ActionCancel) {
		if sel, ok := g.sess.Engine().Selection(); ok {
			g.click(ctx, sel)
		}
	}

	boosters := []struct {
		action core.Action
		b      match3.Booster
	}{
		{core.ActionHammer, match3.BoosterHammer},
		{core.ActionShuffle, match3.BoosterShuffle},
		{core.ActionExtraMoves, match3.BoosterExtraMoves},
		{core.ActionHint, match3.BoosterHint},
	}
	for _, bb := range boosters {
		if in.Has(bb.action) && g.sess.Summary() == nil {
			g.useBooster(ctx, bb.b)
		}
	}

	if in.Has(core.ActionForfeit) && g.sess.Summary() == nil {
		g.sess.Quit(ctx)
		g.afterFinish()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) stepFinished(in core.InputFrame) {
	if g.tick%creditRefreshTicks == 0 {
		g.refreshCredits()
	}
	if in.Has(core.ActionNext) && g.CanAdvance() {
		g.level++
		g.startLevel()
	}
}

// CanAdvance reports whether the finished level unlocks the next one.
func (g *Game) CanAdvance() bool {
	if g.sess == nil || g.sess.Summary() == nil {
		return false
	}
	return g.sess.Summary().Status == match3.StatusLevelComplete && g.cfg.Levels.Progression
}

func (g *Game) moveCursor(in core.InputFrame) {
	b := g.board()
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row--
	case in.Has(core.ActionDown):
		g.cursor.Row++
	}
	switch {
	case in.Has(core.ActionLeft):
		g.cursor.Col--
	case in.Has(core.ActionRight):
		g.cursor.Col++
	}
	g.cursor.Row = core.Clamp(g.cursor.Row, 0, b.Rows-1)
	g.cursor.Col = core.Clamp(g.cursor.Col, 0, b.Cols-1)
}

func (g *Game) click(ctx context.Context, p match3.Position) {
	res, err := g.sess.Click(ctx, p)
	if err != nil {
		return
	}
	if res.Move == nil {
		return
	}
	g.hint = nil
	g.readEvents()
	if !res.Move.Accepted {
		g.flash("No match, swap undone", core.ColorRed)
		return
	}
	if res.Move.Truncated {
		g.flash("Chain reaction capped", core.ColorOrange)
	}
	if g.sess.Summary() != nil {
		g.afterFinish()
	}
}

func (g *Game) useBooster(ctx context.Context, b match3.Booster) {
	var target *match3.Position
	if b.NeedsTarget() {
		t := g.cursor
		target = &t
	}
	res, err := g.sess.UseBooster(ctx, b, target)
	switch {
	case errors.Is(err, session.ErrInsufficientFunds):
		g.flash(fmt.Sprintf("Not enough credits for %s (%d)", boosterLabel(b), g.sess.Economy().BoosterCost(b)), core.ColorBrightRed)
		return
	case errors.Is(err, match3.ErrBoosterTarget):
		g.flash("Move the cursor onto a tile to smash", core.ColorYellow)
		return
	case errors.Is(err, match3.ErrNoHint):
		g.flash("No moves left to hint", core.ColorYellow)
		return
	case err != nil:
		g.flash(err.Error(), core.ColorRed)
		return
	}

	g.readEvents()
	switch b {
	case match3.BoosterHint:
		g.hint = res.Hint
		g.flash("Try swapping the highlighted tiles", core.ColorBrightYellow)
	case match3.BoosterExtraMoves:
		g.flash(fmt.Sprintf("+%d moves", res.MovesAdded), core.ColorBrightGreen)
	case match3.BoosterShuffle:
		g.hint = nil
		g.flash("Board shuffled", core.ColorBrightCyan)
	case match3.BoosterHammer:
		g.hint = nil
		g.flash("Smash!", core.ColorOrange)
	}
	g.refreshCredits()
	if g.sess.Summary() != nil {
		g.afterFinish()
	}
}

// readEvents turns the engine's animation records into a status line.
func (g *Game) readEvents() {
	for _, ev := range g.sess.Engine().DrainEvents() {
		switch ev := ev.(type) {
		case match3.CascadeEvent:
			if ev.Wave >= 2 {
				g.flash(fmt.Sprintf("Combo x%.1f!", ev.Multiplier), core.ColorBrightMagenta)
			}
		case match3.SpecialCreatedEvent:
			g.flash(fmt.Sprintf("%s created!", tileLabel(ev.Tile)), core.ColorBrightCyan)
		case match3.ShuffleEvent:
			if ev.Reason != "booster" {
				g.flash("No moves left, board reshuffled", core.ColorBrightCyan)
			}
		}
	}
}

func (g *Game) afterFinish() {
	g.hint = nil
	g.refreshCredits()
}

func (g *Game) refreshCredits() {
	br, ok := g.svc.Credits.(BalanceReader)
	if !ok {
		g.creditsKnown = false
		return
	}
	n, err := br.Balance(context.Background(), g.player)
	g.credits, g.creditsKnown = n, err == nil
}

func (g *Game) flash(msg string, c core.Color) {
	g.message, g.messageColor, g.messageLeft = msg, c, messageTicks
}

// Suspend parks an unfinished level so the player can resume it later.
func (g *Game) Suspend() {
	if g.sess != nil {
		g.sess.Suspend(context.Background())
	}
}

// Resize adapts to a new screen size without restarting the level.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{Level: g.level, Paused: g.paused}
	if g.sess == nil {
		st.GameOver = true
		return st
	}
	st.Score = g.sess.Engine().Progress().Score
	st.GameOver = g.sess.Summary() != nil
	return st
}

func (g *Game) board() match3.Board {
	if g.sess == nil {
		return match3.Board{}
	}
	return g.sess.Engine().Board()
}

var (
	_ registry.Game      = (*Game)(nil)
	_ registry.Suspender = (*Game)(nil)
	_ registry.Resizer   = (*Game)(nil)
)
