package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nats-io/nats.go"

	"github.com/tradenly/poopee-crush/internal/config"
	"github.com/tradenly/poopee-crush/internal/games/crush"
	"github.com/tradenly/poopee-crush/internal/notify"
	"github.com/tradenly/poopee-crush/internal/savestate"
	"github.com/tradenly/poopee-crush/internal/session"
	"github.com/tradenly/poopee-crush/internal/storage"
)

// services is everything a running game talks to besides the terminal.
type services struct {
	cfg      config.CrushConfig
	store    *storage.Store
	reporter *session.Reporter
	nc       *nats.Conn
	redis    *savestate.Redis
	logger   *log.Logger
	logClose io.Closer
}

// newLogger writes to path, or to stderr when path is empty.
func newLogger(path, prefix string) (*log.Logger, io.Closer, error) {
	var w io.Writer = os.Stderr
	var closer io.Closer
	if path != "" {
		if strings.HasPrefix(path, "~") {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, nil, fmt.Errorf("cannot expand home directory: %w", err)
			}
			path = filepath.Join(home, path[1:])
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer, nil
}

// openServices loads the game config, opens the database and the
// configured save and notification backends, and hands them to the crush
// games. Optional backends that fail to open are logged and skipped. Logs
// go to logPath, or stderr when it is empty.
func openServices(logPath, prefix string) (*services, error) {
	logger, logClose, err := newLogger(logPath, prefix)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadCrush(flagConfig)
	if err != nil {
		if logClose != nil {
			logClose.Close()
		}
		return nil, err
	}
	crush.SetConfigPath(flagConfig)

	s := &services{cfg: cfg, logger: logger, logClose: logClose}

	s.store, err = storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, playing without credits or scores", "error", err)
		s.store = nil
	} else {
		s.store.SetStartingCredits(cfg.Economy.StartingCredits)
	}

	svc := session.Services{Logger: logger}
	svc.Saves = s.openSaves()

	if s.store != nil {
		svc.Credits = s.store
		svc.Scores = s.store
		svc.Recorder = s.store
		if cfg.Notify.Enabled {
			nc, err := notify.Connect(cfg.Notify.NATS, logger)
			if err != nil {
				logger.Warn("could not connect to NATS, sessions will not be announced", "error", err)
			} else {
				s.nc = nc
				svc.Recorder = notify.NewPublisher(s.store, nc, logger)
			}
		}
	}

	s.reporter = session.NewReporter(session.DefaultReporterConfig(), svc.Credits, svc.Recorder, svc.Scores, logger)
	s.reporter.Start()
	svc.Reporter = s.reporter

	crush.SetServices(svc)
	return s, nil
}

func (s *services) openSaves() session.Persistence {
	switch s.cfg.Saves.Backend {
	case config.SavesMemory:
		return savestate.NewMemory()
	case config.SavesFile:
		f, err := savestate.NewFile(s.cfg.Saves.Dir)
		if err != nil {
			s.logger.Warn("could not open save directory", "error", err)
			return nil
		}
		return f
	case config.SavesRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		r, err := savestate.NewRedis(ctx, s.cfg.Saves.Redis)
		if err != nil {
			s.logger.Warn("could not connect to redis for saves", "error", err)
			return nil
		}
		s.redis = r
		return r
	case config.SavesSQLite:
		if s.store != nil {
			return s.store
		}
	}
	return nil
}

// Close settles pending sessions, then closes every backend.
func (s *services) Close() {
	s.reporter.Close()
	crush.SetServices(session.Services{})
	if s.nc != nil {
		if err := s.nc.Drain(); err != nil {
			s.logger.Warn("could not drain NATS connection", "error", err)
		}
	}
	if s.redis != nil {
		s.redis.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
	if s.logClose != nil {
		s.logClose.Close()
	}
}
