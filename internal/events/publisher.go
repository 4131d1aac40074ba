// Package events publishes build lifecycle notifications to NATS so deploy
// hooks and dashboards can react to site rebuilds without polling.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/blogforge/internal/config"
	"git.home.luguber.info/inful/blogforge/internal/logfields"
)

// BuildEvent is the wire payload published per build lifecycle transition.
type BuildEvent struct {
	BuildID    string    `json:"build_id"`
	Type       string    `json:"type"` // started|completed|failed
	Timestamp  time.Time `json:"timestamp"`
	Pages      int       `json:"pages,omitempty"`
	Success    bool      `json:"success"`
	DurationMS int64     `json:"duration_ms,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Publisher manages the NATS connection for build event publication.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to NATS using the events configuration.
func NewPublisher(cfg *config.EventsConfig) (*Publisher, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, fmt.Errorf("build events are disabled")
	}

	conn, err := nats.Connect(cfg.NATSURL,
		nats.Name("blogforge"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	slog.Info("NATS publisher initialized", logfields.URL(cfg.NATSURL), slog.String("subject", cfg.Subject))
	return &Publisher{conn: conn, subject: cfg.Subject}, nil
}

// Publish sends one build event. Failures are logged, not fatal: a missing
// event bus must never fail a build that already succeeded.
func (p *Publisher) Publish(evt BuildEvent) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	data, err := json.Marshal(evt)
	if err != nil {
		slog.Error("Failed to marshal build event", logfields.Error(err))
		return
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		slog.Warn("Failed to publish build event",
			logfields.BuildID(evt.BuildID),
			slog.String("type", evt.Type),
			logfields.Error(err))
	}
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
