package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder on top of a prometheus registry.
type PrometheusRecorder struct {
	builds        *prom.CounterVec
	buildDuration prom.Histogram
	pagesRendered prom.Counter
	stageDuration *prom.HistogramVec
}

// NewPrometheusRecorder registers the blogforge collectors on reg.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		builds: prom.NewCounterVec(prom.CounterOpts{
			Name: "blogforge_builds_total",
			Help: "Completed builds by outcome.",
		}, []string{"outcome"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Name:    "blogforge_build_duration_seconds",
			Help:    "Wall time of full site builds.",
			Buckets: prom.DefBuckets,
		}),
		pagesRendered: prom.NewCounter(prom.CounterOpts{
			Name: "blogforge_pages_rendered_total",
			Help: "HTML pages rendered across all builds.",
		}),
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "blogforge_stage_duration_seconds",
			Help:    "Wall time per build stage.",
			Buckets: prom.DefBuckets,
		}, []string{"stage"}),
	}
	reg.MustRegister(r.builds, r.buildDuration, r.pagesRendered, r.stageDuration)
	return r
}

func (r *PrometheusRecorder) BuildStarted() {
	// Builds are counted on completion; nothing to record at start.
}

func (r *PrometheusRecorder) BuildCompleted(success bool, duration time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	r.builds.WithLabelValues(outcome).Inc()
	r.buildDuration.Observe(duration.Seconds())
}

func (r *PrometheusRecorder) PagesRendered(n int) {
	r.pagesRendered.Add(float64(n))
}

func (r *PrometheusRecorder) StageDuration(stage string, d time.Duration) {
	r.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}
