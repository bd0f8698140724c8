package session

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Report is a finished level waiting to be paid out and recorded.
type Report struct {
	Record  SessionRecord
	Economy Economy
}

// ReporterConfig holds the reporter's queue size and per-report timeout.
type ReporterConfig struct {
	QueueSize int
	Timeout   time.Duration
}

// DefaultReporterConfig returns sensible defaults.
func DefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		QueueSize: 64,
		Timeout:   10 * time.Second,
	}
}

// Reporter settles finished levels off the gameplay path: it saves the
// score, pays the reward and records the session. Failures are logged and
// never reach the player; the final score they saw stands.
type Reporter struct {
	config   ReporterConfig
	credits  CreditService
	recorder SessionRecorder
	scores   ScoreKeeper
	logger   *log.Logger

	// serialises the high-score check with the score insert
	scoreMu sync.Mutex

	mu      sync.RWMutex
	started bool
	closed  bool
	queue   chan Report
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewReporter creates a reporter. Any collaborator may be nil.
func NewReporter(cfg ReporterConfig, credits CreditService, recorder SessionRecorder, scores ScoreKeeper, logger *log.Logger) *Reporter {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultReporterConfig().QueueSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultReporterConfig().Timeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Reporter{
		config:   cfg,
		credits:  credits,
		recorder: recorder,
		scores:   scores,
		logger:   logger,
		queue:    make(chan Report, cfg.QueueSize),
		done:     make(chan struct{}),
	}
}

// Start begins background processing.
func (r *Reporter) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started || r.closed {
		return
	}
	r.started = true
	r.wg.Add(1)
	go r.loop()
}

// Submit queues a report and never waits for it. When the loop is not
// running or the queue is full the report is settled on its own goroutine;
// after Close it is settled inline so no finished game is dropped.
func (r *Reporter) Submit(rep Report) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.settle(rep)
		return
	}
	if r.started {
		select {
		case r.queue <- rep:
			return
		default:
			r.logger.Warn("report queue full", "session", rep.Record.ID)
		}
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.settle(rep)
	}()
}

// Close stops accepting work, drains the queue and waits for every
// pending report.
func (r *Reporter) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.done)
	}
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *Reporter) loop() {
	defer r.wg.Done()
	for {
		select {
		case rep := <-r.queue:
			r.settle(rep)
		case <-r.done:
			for {
				select {
				case rep := <-r.queue:
					r.settle(rep)
				default:
					return
				}
			}
		}
	}
}

// settle pays and records one report. It returns the reward actually granted.
func (r *Reporter) settle(rep Report) int {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	rec := rep.Record
	logger := r.logger.With("session", rec.ID, "user", rec.User, "game", rec.GameType)

	reward := rep.Economy.Reward(rec.Score)
	if r.scores != nil && rec.Score > 0 {
		r.scoreMu.Lock()
		prev, err := r.scores.HighScore(rec.GameType)
		if err != nil {
			logger.Warn("could not read high score", "error", err)
		} else if rec.Score > prev {
			reward += rep.Economy.HighScoreBonus
			logger.Info("new high score", "score", rec.Score, "previous", prev)
		}
		if _, err := r.scores.SaveScore(rec.GameType, rec.Score); err != nil {
			logger.Warn("could not save score", "error", err)
		}
		r.scoreMu.Unlock()
	}

	if r.credits != nil && reward > 0 && rec.User != "" {
		if err := r.credits.Earn(ctx, rec.User, reward, "game reward", rec.ID); err != nil {
			logger.Error("could not pay reward", "reward", reward, "error", err)
			reward = 0
		}
	}
	rec.Reward = reward

	if r.recorder != nil {
		if _, err := r.recorder.RecordSession(ctx, rec); err != nil {
			logger.Error("could not record session", "error", err)
		}
	}
	logger.Debug("session settled", "score", rec.Score, "status", rec.Status, "reward", reward)
	return reward
}
