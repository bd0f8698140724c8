// Package notify fans finished sessions out over NATS.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nats-io/nats.go"

	"github.com/tradenly/poopee-crush/internal/session"
)

// Subject layout: arcade.<game>.session
const (
	SubjectPrefix = "arcade."
	SubjectSuffix = ".session"
)

// SessionSubject builds the subject finished sessions of a game go to.
func SessionSubject(gameType string) string {
	return SubjectPrefix + gameType + SubjectSuffix
}

// Config holds the NATS connection settings.
type Config struct {
	URL           string        `yaml:"url"`
	MaxReconnects int           `yaml:"max_reconnects"`
	ReconnectWait time.Duration `yaml:"reconnect_wait"`
}

// DefaultConfig returns a config for a local server.
func DefaultConfig() Config {
	return Config{
		URL:           nats.DefaultURL,
		MaxReconnects: 10,
		ReconnectWait: 2 * time.Second,
	}
}

// Connect dials NATS, logging connection changes.
func Connect(cfg Config, logger *log.Logger) (*nats.Conn, error) {
	if logger == nil {
		logger = log.Default()
	}
	opts := []nats.Option{
		nats.Name("poopee-crush"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("disconnected from nats", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("reconnected to nats", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logger.Info("nats connection closed")
		}),
		nats.Timeout(10 * time.Second),
	}
	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("notify: cannot connect to %s: %w", cfg.URL, err)
	}
	return nc, nil
}

// Conn is the part of *nats.Conn the publisher uses.
type Conn interface {
	Publish(subject string, data []byte) error
}

// Publisher records a session with the wrapped recorder and then announces
// it. Announcing is best-effort: a publish failure is logged and the stored
// id is still returned.
type Publisher struct {
	next   session.SessionRecorder
	conn   Conn
	logger *log.Logger
}

// NewPublisher wraps next, which may be nil when sessions are only announced.
func NewPublisher(next session.SessionRecorder, conn Conn, logger *log.Logger) *Publisher {
	if logger == nil {
		logger = log.Default()
	}
	return &Publisher{next: next, conn: conn, logger: logger}
}

// RecordSession implements session.SessionRecorder.
func (p *Publisher) RecordSession(ctx context.Context, rec session.SessionRecord) (string, error) {
	id := rec.ID
	if p.next != nil {
		stored, err := p.next.RecordSession(ctx, rec)
		if err != nil {
			return "", err
		}
		id = stored
	}

	data, err := json.Marshal(rec)
	if err != nil {
		p.logger.Error("could not encode session", "session", rec.ID, "error", err)
		return id, nil
	}
	subject := SessionSubject(rec.GameType)
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Error("could not publish session", "subject", subject, "session", rec.ID, "error", err)
		return id, nil
	}
	p.logger.Debug("published session", "subject", subject, "session", rec.ID)
	return id, nil
}

var _ session.SessionRecorder = (*Publisher)(nil)
