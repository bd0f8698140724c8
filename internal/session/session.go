package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tradenly/poopee-crush/internal/games/crush/match3"
)

// ErrFinished is returned when input reaches a session whose level ended.
var ErrFinished = errors.New("session: game already finished")

// Config describes the game a session plays.
type Config struct {
	GameType   string
	Options    match3.Options
	Difficulty match3.Difficulty
	Scaling    match3.LevelScaling
	Economy    Economy
}

// Services are the session's collaborators. Every field may be nil: a nil
// CreditService means free play, nil Saves disables resume-later, and a nil
// Reporter settles finished games inline.
type Services struct {
	Credits  CreditService
	Recorder SessionRecorder
	Saves    Persistence
	Scores   ScoreKeeper
	Reporter *Reporter
	Logger   *log.Logger
}

// Summary is what the player sees when a level ends. Reward is the tier
// payout; a high-score bonus is added when the report is settled.
type Summary struct {
	SessionID string
	Level     int
	Score     int
	MovesUsed int
	Status    match3.Status
	Stars     int
	Reward    int
	// CreditsSpent is the entry fee plus booster purchases.
	CreditsSpent int
}

// Session owns one engine for one user.
type Session struct {
	id        string
	user      string
	cfg       Config
	svc       Services
	logger    *log.Logger
	engine    *match3.Engine
	startedAt time.Time
	resumed   bool
	spent     int
	summary   *Summary
}

// Start resumes the user's saved level for cfg.GameType if one exists and
// otherwise charges the entry fee and deals the requested level. When the
// fee cannot be paid no engine is created and the error wraps
// ErrInsufficientFunds.
func Start(ctx context.Context, cfg Config, svc Services, user string, level int, rng match3.Rand) (*Session, error) {
	logger := svc.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.With("user", user, "game", cfg.GameType)

	s := &Session{
		user:   user,
		cfg:    cfg,
		svc:    svc,
		logger: logger,
	}

	if saved := s.loadSave(ctx); saved != nil {
		eng, err := match3.Restore(cfg.Options, saved.State, rng)
		if err == nil && eng.Status() == match3.StatusInProgress {
			s.id = saved.SessionID
			s.engine = eng
			s.startedAt = saved.StartedAt
			s.resumed = true
			s.spent = saved.CreditsSpent
			s.logger = logger.With("session", s.id)
			s.logger.Info("resumed saved game", "level", eng.Level().Number, "score", eng.Progress().Score)
			return s, nil
		}
		if err != nil {
			logger.Warn("discarding unusable save", "error", err)
		} else {
			logger.Info("discarding finished save", "status", eng.Status())
		}
		s.clearSave(ctx)
	}

	lvl := match3.ForLevel(level, cfg.Difficulty, cfg.Scaling, cfg.Options.Rows, cfg.Options.Cols, cfg.Options.SpecialTiles)
	eng, err := match3.NewEngine(cfg.Options, lvl, rng)
	if err != nil {
		return nil, fmt.Errorf("session: cannot start level %d: %w", level, err)
	}

	if svc.Credits != nil && cfg.Economy.EntryFee > 0 {
		if err := svc.Credits.Spend(ctx, user, cfg.Economy.EntryFee, "entry fee: "+cfg.GameType); err != nil {
			return nil, fmt.Errorf("session: entry fee: %w", err)
		}
		s.spent = cfg.Economy.EntryFee
	}

	s.id = uuid.NewString()
	s.engine = eng
	s.startedAt = time.Now()
	s.logger = logger.With("session", s.id)
	s.logger.Info("level started", "level", lvl.Number, "moves", lvl.Moves, "required", lvl.RequiredScore)
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// User returns the player name.
func (s *Session) User() string { return s.user }

// GameType returns the registry id of the game being played.
func (s *Session) GameType() string { return s.cfg.GameType }

// Resumed reports whether the session was restored from a save.
func (s *Session) Resumed() bool { return s.resumed }

// Engine exposes the engine for read-only queries (board, progress, status).
func (s *Session) Engine() *match3.Engine { return s.engine }

// Summary returns the end-of-level summary, nil while the level is running.
func (s *Session) Summary() *Summary { return s.summary }

// CreditsSpent is what the player has paid for this level so far.
func (s *Session) CreditsSpent() int { return s.spent }

// Economy returns the prices in effect.
func (s *Session) Economy() Economy { return s.cfg.Economy }

// Click forwards a cell click. Completed moves are saved; a move that ends
// the level finalises the session.
func (s *Session) Click(ctx context.Context, p match3.Position) (match3.ClickResult, error) {
	if s.summary != nil {
		return match3.ClickResult{Outcome: match3.ClickIgnored}, ErrFinished
	}
	res := s.engine.HandleCellClick(p)
	if res.Move != nil && res.Move.Accepted {
		s.afterChange(ctx)
	}
	return res, nil
}

// UseBooster checks the booster, debits its price, then applies it. If the
// debit fails the board is untouched.
func (s *Session) UseBooster(ctx context.Context, b match3.Booster, target *match3.Position) (match3.BoosterResult, error) {
	if s.summary != nil {
		return match3.BoosterResult{}, ErrFinished
	}
	if err := s.engine.CanApplyBooster(b, target); err != nil {
		return match3.BoosterResult{}, fmt.Errorf("session: %s: %w", b, err)
	}
	if cost := s.cfg.Economy.BoosterCost(b); cost > 0 && s.svc.Credits != nil {
		if err := s.svc.Credits.Spend(ctx, s.user, cost, "booster: "+string(b)); err != nil {
			return match3.BoosterResult{}, fmt.Errorf("session: %s: %w", b, err)
		}
		s.spent += cost
	}
	res, err := s.engine.ApplyBooster(b, target)
	if err != nil {
		// CanApplyBooster passed on the same state, so this is a defect.
		return res, fmt.Errorf("session: %s: %w", b, err)
	}
	s.logger.Info("booster used", "booster", b, "cost", s.cfg.Economy.BoosterCost(b))
	s.afterChange(ctx)
	return res, nil
}

// Quit ends the level where it stands and finalises it.
func (s *Session) Quit(ctx context.Context) Summary {
	if s.summary != nil {
		return *s.summary
	}
	s.engine.Quit()
	s.finish(ctx)
	return *s.summary
}

// Suspend parks a running level for resume-later. It is a no-op once the
// level has ended.
func (s *Session) Suspend(ctx context.Context) {
	if s.summary == nil {
		s.save(ctx)
	}
}

func (s *Session) afterChange(ctx context.Context) {
	if s.engine.Status().Terminal() {
		s.finish(ctx)
		return
	}
	s.save(ctx)
}

func (s *Session) finish(ctx context.Context) {
	p := s.engine.Progress()
	sum := Summary{
		SessionID: s.id,
		Level:     s.engine.Level().Number,
		Score:     p.Score,
		MovesUsed: p.MovesUsed,
		Status:    s.engine.Status(),
		Stars:     s.engine.Stars(),
		Reward:    s.cfg.Economy.Reward(p.Score),

		CreditsSpent: s.spent,
	}
	s.summary = &sum
	s.clearSave(ctx)
	s.logger.Info("level finished", "status", sum.Status, "score", sum.Score, "moves_used", sum.MovesUsed, "stars", sum.Stars)

	rep := Report{
		Record: SessionRecord{
			ID:        s.id,
			User:      s.user,
			GameType:  s.cfg.GameType,
			Level:     sum.Level,
			Score:     sum.Score,
			MovesUsed: sum.MovesUsed,
			Status:    string(sum.Status),
			Stars:     sum.Stars,
			StartedAt: s.startedAt,

			CreditsSpent: s.spent,
			EndedAt:      time.Now(),
		},
		Economy: s.cfg.Economy,
	}
	if s.svc.Reporter != nil {
		s.svc.Reporter.Submit(rep)
		return
	}
	inline := NewReporter(DefaultReporterConfig(), s.svc.Credits, s.svc.Recorder, s.svc.Scores, s.logger)
	inline.settle(rep)
}

// Persistence failures are treated as "no save" and never reach gameplay.

func (s *Session) save(ctx context.Context) {
	if s.svc.Saves == nil {
		return
	}
	g := SavedGame{
		SessionID: s.id,
		GameType:  s.cfg.GameType,
		User:      s.user,
		State:     s.engine.State(),
		StartedAt: s.startedAt,
		SavedAt:   time.Now(),

		CreditsSpent: s.spent,
	}
	if err := s.svc.Saves.Save(ctx, SaveKey(s.cfg.GameType, s.user), g); err != nil {
		s.logger.Warn("could not save game", "error", err)
	}
}

func (s *Session) loadSave(ctx context.Context) *SavedGame {
	if s.svc.Saves == nil {
		return nil
	}
	g, err := s.svc.Saves.Load(ctx, SaveKey(s.cfg.GameType, s.user))
	if err != nil {
		s.logger.Warn("could not load saved game", "error", err)
		return nil
	}
	return g
}

func (s *Session) clearSave(ctx context.Context) {
	if s.svc.Saves == nil {
		return
	}
	if err := s.svc.Saves.Clear(ctx, SaveKey(s.cfg.GameType, s.user)); err != nil {
		s.logger.Warn("could not clear saved game", "error", err)
	}
}
