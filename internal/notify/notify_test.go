package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tradenly/poopee-crush/internal/session"
)

type published struct {
	subject string
	data    []byte
}

type fakeConn struct {
	sent []published
	err  error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{subject, data})
	return nil
}

type fakeRecorder struct {
	id  string
	err error
}

func (f fakeRecorder) RecordSession(context.Context, session.SessionRecord) (string, error) {
	return f.id, f.err
}

func quiet() *log.Logger { return log.New(io.Discard) }

func TestSessionSubject(t *testing.T) {
	tests := map[string]string{
		"crush":         "arcade.crush.session",
		"crush_classic": "arcade.crush_classic.session",
	}
	for game, want := range tests {
		if got := SessionSubject(game); got != want {
			t.Errorf("SessionSubject(%q) = %q, want %q", game, got, want)
		}
	}
}

func TestPublishAfterRecord(t *testing.T) {
	conn := &fakeConn{}
	p := NewPublisher(fakeRecorder{id: "42"}, conn, quiet())
	rec := session.SessionRecord{ID: "abc", User: "bob", GameType: "crush", Score: 1234, Status: "game_over"}

	id, err := p.RecordSession(context.Background(), rec)
	if err != nil {
		t.Fatalf("RecordSession: %v", err)
	}
	if id != "42" {
		t.Errorf("id = %q, want the stored id", id)
	}
	if len(conn.sent) != 1 {
		t.Fatalf("published %d messages, want 1", len(conn.sent))
	}
	if conn.sent[0].subject != "arcade.crush.session" {
		t.Errorf("subject = %q", conn.sent[0].subject)
	}
	var got session.SessionRecord
	if err := json.Unmarshal(conn.sent[0].data, &got); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if got.User != "bob" || got.Score != 1234 {
		t.Errorf("payload = %+v", got)
	}
}

func TestRecordFailureIsNotAnnounced(t *testing.T) {
	conn := &fakeConn{}
	boom := errors.New("disk full")
	p := NewPublisher(fakeRecorder{err: boom}, conn, quiet())

	if _, err := p.RecordSession(context.Background(), session.SessionRecord{GameType: "crush"}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
	if len(conn.sent) != 0 {
		t.Error("a session that was not stored was published")
	}
}

func TestPublishFailureKeepsId(t *testing.T) {
	conn := &fakeConn{err: errors.New("no responders")}
	p := NewPublisher(fakeRecorder{id: "7"}, conn, quiet())

	id, err := p.RecordSession(context.Background(), session.SessionRecord{GameType: "crush"})
	if err != nil || id != "7" {
		t.Errorf("RecordSession = %q, %v; want 7, nil", id, err)
	}
}

func TestWithoutInnerRecorder(t *testing.T) {
	conn := &fakeConn{}
	p := NewPublisher(nil, conn, quiet())

	id, err := p.RecordSession(context.Background(), session.SessionRecord{ID: "s1", GameType: "crush_classic"})
	if err != nil || id != "s1" {
		t.Errorf("RecordSession = %q, %v; want s1, nil", id, err)
	}
	if len(conn.sent) != 1 || conn.sent[0].subject != "arcade.crush_classic.session" {
		t.Errorf("sent = %+v", conn.sent)
	}
}
