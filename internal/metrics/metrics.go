// Package metrics provides build observability through a Recorder interface.
//
// Components receive a Recorder by dependency injection and default to
// NoopRecorder, so metrics impose no overhead and no nil checks outside
// daemon mode. The prometheus implementation is activated when the daemon's
// metrics endpoint is enabled.
package metrics

import "time"

// Recorder receives build lifecycle measurements.
type Recorder interface {
	BuildStarted()
	BuildCompleted(success bool, duration time.Duration)
	PagesRendered(n int)
	StageDuration(stage string, d time.Duration)
}

// NoopRecorder is the default Recorder; every method is a no-op.
type NoopRecorder struct{}

func (NoopRecorder) BuildStarted()                       {}
func (NoopRecorder) BuildCompleted(bool, time.Duration)  {}
func (NoopRecorder) PagesRendered(int)                   {}
func (NoopRecorder) StageDuration(string, time.Duration) {}
