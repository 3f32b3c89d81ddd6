// Package metrics exposes run progress as Prometheus metrics. A Recorder is
// an executor progress sink; its registry can be written to a node-exporter
// textfile after the run or served over HTTP while it is going.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/specialistvlad/rigup/internal/executor"
)

const namespace = "rigup"

// Recorder counts transitions and results of one process.
type Recorder struct {
	registry    *prometheus.Registry
	transitions *prometheus.CounterVec
	results     *prometheus.CounterVec
	attempts    prometheus.Counter
	duration    prometheus.Histogram
	progress    prometheus.Gauge
	lastRun     prometheus.Gauge
	lastSuccess prometheus.Gauge
	now         func() time.Time
}

var (
	_ executor.ProgressSink = (*Recorder)(nil)
	_ executor.ResultSink   = (*Recorder)(nil)
)

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "component_transitions_total",
			Help:      "Component state transitions by target state.",
		}, []string{"state"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "component_results_total",
			Help:      "Terminal component results by state and origin.",
		}, []string{"state", "origin"}),
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_attempts_total",
			Help:      "Task attempts made, including retries.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_duration_seconds",
			Help:      "Wall time per component, all attempts included.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		}),
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_progress_ratio",
			Help:      "Fraction of the plan that reached a terminal state.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "1 if every component of the last run succeeded, else 0.",
		}),
		now: time.Now,
	}
	r.registry.MustRegister(r.transitions, r.results, r.attempts, r.duration, r.progress, r.lastRun, r.lastSuccess)
	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Report implements executor.ProgressSink.
func (r *Recorder) Report(index, total int, id string, state executor.State) {
	r.transitions.WithLabelValues(state.String()).Inc()
	if state.Terminal() && total > 0 {
		r.progress.Set(float64(index) / float64(total))
	}
}

// ReportResult implements executor.ResultSink.
func (r *Recorder) ReportResult(index, total int, res executor.TaskResult) {
	r.results.WithLabelValues(res.State.String(), origin(res)).Inc()
	if res.Attempts > 0 {
		r.attempts.Add(float64(res.Attempts))
		r.duration.Observe(res.Duration.Seconds())
	}
}

// FinishRun records the end of a run.
func (r *Recorder) FinishRun(s *executor.Summary) {
	r.lastRun.Set(float64(r.now().Unix()))
	if s != nil && s.OK() {
		r.lastSuccess.Set(1)
	} else {
		r.lastSuccess.Set(0)
	}
}

// WriteTextfile writes the registry in the text exposition format, replacing
// path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// Handler serves the registry over HTTP.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func origin(res executor.TaskResult) string {
	switch {
	case res.AlreadyDone:
		return "resumed"
	case res.DryRun:
		return "dry_run"
	default:
		return "run"
	}
}
