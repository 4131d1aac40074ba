// Package daemon runs blogforge in long-lived mode: it serves the generated
// site, watches the content tree for changes, rebuilds on a schedule, and
// records build history.
package daemon

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/blogforge/internal/config"
	bferrors "git.home.luguber.info/inful/blogforge/internal/errors"
	"git.home.luguber.info/inful/blogforge/internal/events"
	"git.home.luguber.info/inful/blogforge/internal/eventstore"
	"git.home.luguber.info/inful/blogforge/internal/logfields"
	"git.home.luguber.info/inful/blogforge/internal/metrics"
	"git.home.luguber.info/inful/blogforge/internal/server"
	"git.home.luguber.info/inful/blogforge/internal/site"
)

const shutdownGrace = 5 * time.Second

// Daemon wires the generator, preview server, watcher, scheduler, build
// history and event publication together.
type Daemon struct {
	cfg        *config.Config
	configPath string // reloaded before each rebuild when set
	env        string
	addr       string

	generator *site.Generator
	registry  *prometheus.Registry
	recorder  metrics.Recorder
	store     eventstore.Store
	publisher *events.Publisher
	srv       *server.Server

	rebuildReq chan struct{}
	startTime  time.Time

	mu         sync.RWMutex
	lastReport *site.BuildReport
	builds     int
	failures   int
}

// New assembles a daemon from the loaded configuration. configPath may be
// empty; when set the file is watched and re-read before each rebuild so
// config edits take effect without a restart.
func New(cfg *config.Config, env, configPath, addr string) (*Daemon, error) {
	d := &Daemon{
		cfg:        cfg,
		configPath: configPath,
		env:        env,
		addr:       addr,
		recorder:   metrics.NoopRecorder{},
		rebuildReq: make(chan struct{}, 1),
		startTime:  time.Now(),
	}

	if cfg.Monitoring != nil && cfg.Monitoring.Metrics.Enabled {
		d.registry = prometheus.NewRegistry()
		d.recorder = metrics.NewPrometheusRecorder(d.registry)
	}
	if cfg.Build.History != "" {
		store, err := eventstore.NewSQLiteStore(cfg.Build.History)
		if err != nil {
			return nil, bferrors.NewDaemonError("open build history store", err)
		}
		d.store = store
	}
	if cfg.Events != nil && cfg.Events.Enabled {
		pub, err := events.NewPublisher(cfg.Events)
		if err != nil {
			// A missing event bus degrades to local-only operation.
			slog.Warn("Build event publication unavailable", logfields.Error(err))
		} else {
			d.publisher = pub
		}
	}

	gen, err := site.NewGenerator(cfg, env, cfg.Build.Output)
	if err != nil {
		return nil, err
	}
	d.generator = gen.WithRecorder(d.recorder)
	return d, nil
}

// Run blocks until ctx is canceled. The initial build runs before the server
// starts; an initial build failure is logged but keeps the daemon alive so a
// content fix can trigger a recovery rebuild.
func (d *Daemon) Run(ctx context.Context) error {
	d.runBuild(ctx)

	srvOpts := []server.Option{server.WithStatusProvider(d)}
	if d.registry != nil {
		path := "/metrics"
		if d.cfg.Monitoring != nil && d.cfg.Monitoring.Metrics.Path != "" {
			path = d.cfg.Monitoring.Metrics.Path
		}
		srvOpts = append(srvOpts, server.WithMetrics(d.registry, path))
	}
	d.srv = server.New(d.addr, d.generator.OutputDir(), d.generator.Site(), srvOpts...)
	if err := d.srv.Start(ctx); err != nil {
		return err
	}

	roots := []string{d.cfg.Content.Dir}
	if d.cfg.Content.StaticDir != "" {
		roots = append(roots, d.cfg.Content.StaticDir)
	}
	var files []string
	if d.configPath != "" {
		files = append(files, d.configPath)
	}
	w, err := newWatcher(roots, files, d.TriggerRebuild)
	if err != nil {
		return err
	}
	go w.run(ctx)

	sched, err := newScheduler()
	if err != nil {
		return err
	}
	if iv := d.cfg.Build.RebuildInterval; iv != "" {
		interval, err := time.ParseDuration(iv)
		if err != nil {
			return bferrors.NewConfigError("parse rebuild_interval", err)
		}
		jobID, err := sched.schedulePeriodicRebuild(interval, d.TriggerRebuild)
		if err != nil {
			return err
		}
		slog.Info("Periodic rebuild scheduled",
			logfields.ScheduleName("periodic-rebuild"),
			slog.String("job_id", jobID),
			slog.Duration("interval", interval))
	}
	sched.start()

	go d.rebuildWorker(ctx)

	slog.Info("Daemon running", logfields.Env(d.env), slog.String("addr", d.srv.Addr()))
	<-ctx.Done()
	return d.shutdown(sched)
}

// TriggerRebuild requests a rebuild. Coalesces: at most one request is
// pending while a build runs.
func (d *Daemon) TriggerRebuild() {
	select {
	case d.rebuildReq <- struct{}{}:
	default:
	}
}

func (d *Daemon) rebuildWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.rebuildReq:
			slog.Info("Change detected, rebuilding site")
			d.reloadConfig()
			d.runBuild(ctx)
		}
	}
}

// reloadConfig re-reads the config file and swaps in a fresh generator so
// config edits (new theme, different tags, toggled drafts) apply without a
// daemon restart. A broken config keeps the previous one.
func (d *Daemon) reloadConfig() {
	if d.configPath == "" {
		return
	}
	cfg, err := config.Load(d.configPath)
	if err != nil {
		slog.Warn("Config reload failed, keeping previous configuration", logfields.Error(err))
		return
	}
	gen, err := site.NewGenerator(cfg, d.env, cfg.Build.Output)
	if err != nil {
		slog.Warn("Config reload failed, keeping previous configuration", logfields.Error(err))
		return
	}
	// Status() reads these fields from HTTP handler goroutines.
	d.mu.Lock()
	d.cfg = cfg
	d.generator = gen.WithRecorder(d.recorder)
	d.mu.Unlock()
}

func (d *Daemon) runBuild(ctx context.Context) {
	d.mu.RLock()
	gen := d.generator
	d.mu.RUnlock()

	buildID := ""
	report, err := gen.Build(ctx)
	if report != nil {
		buildID = report.BuildID
	}

	d.mu.Lock()
	d.builds++
	if err != nil {
		d.failures++
	}
	if report != nil {
		d.lastReport = report
	}
	d.mu.Unlock()

	d.recordHistory(ctx, buildID, report, err)
	d.publishEvents(buildID, report, err)

	if err != nil {
		slog.Error("Rebuild failed, continuing to serve previous output", logfields.Error(err))
	}
}

func (d *Daemon) recordHistory(ctx context.Context, buildID string, report *site.BuildReport, buildErr error) {
	if d.store == nil || buildID == "" {
		return
	}
	meta := map[string]string{"environment": d.env}
	payload, err := json.Marshal(report)
	if err != nil {
		slog.Warn("Failed to encode build report for history", logfields.Error(err))
		payload = nil
	}
	eventType := eventstore.EventBuildCompleted
	if buildErr != nil {
		eventType = eventstore.EventBuildFailed
	}
	if err := d.store.Append(ctx, buildID, eventType, payload, meta); err != nil {
		slog.Warn("Failed to record build history", logfields.BuildID(buildID), logfields.Error(err))
	}
}

func (d *Daemon) publishEvents(buildID string, report *site.BuildReport, buildErr error) {
	if d.publisher == nil || buildID == "" {
		return
	}
	evt := events.BuildEvent{
		BuildID: buildID,
		Type:    "completed",
		Success: buildErr == nil,
	}
	if report != nil {
		evt.Pages = report.Pages
		evt.DurationMS = report.Duration.Milliseconds()
	}
	if buildErr != nil {
		evt.Type = "failed"
		evt.Error = buildErr.Error()
	}
	d.publisher.Publish(evt)
}

// statusPayload is the /status endpoint document.
type statusPayload struct {
	Status        string            `json:"status"`
	Environment   string            `json:"environment"`
	BasePath      string            `json:"base_path"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	Builds        int               `json:"builds"`
	Failures      int               `json:"failures"`
	LastBuild     *site.BuildReport `json:"last_build,omitempty"`
}

// Status implements server.StatusProvider.
func (d *Daemon) Status() any {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return statusPayload{
		Status:        "running",
		Environment:   d.env,
		BasePath:      d.generator.Site().BasePath,
		UptimeSeconds: int64(time.Since(d.startTime).Seconds()),
		Builds:        d.builds,
		Failures:      d.failures,
		LastBuild:     d.lastReport,
	}
}

func (d *Daemon) shutdown(sched *scheduler) error {
	slog.Info("Shutting down daemon")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := d.srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("Server shutdown error", logfields.Error(err))
	}
	if err := sched.stop(); err != nil {
		slog.Warn("Scheduler shutdown error", logfields.Error(err))
	}
	if d.publisher != nil {
		d.publisher.Close()
	}
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			slog.Warn("History store close error", logfields.Error(err))
		}
	}
	return nil
}
