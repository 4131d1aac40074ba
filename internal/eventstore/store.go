package eventstore

import (
	"context"
	"time"
)

// Event types recorded for each build.
const (
	EventBuildStarted   = "build_started"
	EventBuildCompleted = "build_completed"
	EventBuildFailed    = "build_failed"
)

// Event is one recorded build lifecycle event.
type Event struct {
	ID        int64             `json:"id"`
	BuildID   string            `json:"build_id"`
	EventType string            `json:"event_type"`
	Timestamp time.Time         `json:"timestamp"`
	Payload   []byte            `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Store persists build history so the daemon's status endpoint and post-hoc
// debugging can see past builds, not just the current one.
type Store interface {
	Append(ctx context.Context, buildID, eventType string, payload []byte, metadata map[string]string) error
	GetByBuildID(ctx context.Context, buildID string) ([]Event, error)
	GetRecent(ctx context.Context, limit int) ([]Event, error)
	Close() error
}
