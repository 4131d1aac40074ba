package daemon

import (
	"time"

	"github.com/go-co-op/gocron/v2"

	bferrors "git.home.luguber.info/inful/blogforge/internal/errors"
)

// scheduler wraps gocron for the daemon's periodic rebuild job.
type scheduler struct {
	s gocron.Scheduler
}

func newScheduler() (*scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, bferrors.NewDaemonError("create scheduler", err)
	}
	return &scheduler{s: s}, nil
}

// schedulePeriodicRebuild registers a rebuild trigger at the given interval
// and returns the job ID.
func (sc *scheduler) schedulePeriodicRebuild(interval time.Duration, trigger func()) (string, error) {
	job, err := sc.s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(trigger),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		return "", bferrors.NewDaemonError("schedule periodic rebuild", err)
	}
	return job.ID().String(), nil
}

func (sc *scheduler) start() { sc.s.Start() }

func (sc *scheduler) stop() error { return sc.s.Shutdown() }
