// Package metrics records per-item and per-stage pipeline activity as
// Prometheus metrics, wired into a pipeline through spp.Hooks so that
// internal/stage itself never imports this package.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/devkvlr/spp"
)

//go:generate mockgen -package mocks -destination ../internal/mocks/metrics_recorder.go github.com/devkvlr/spp/metrics Recorder

// Recorder is the interface a pipeline reports activity through. It exists
// separately from *Prometheus so callers can substitute a mock in tests
// without depending on a registry.
type Recorder interface {
	WorkerStarted(stageName string)
	WorkerStopped(stageName string)
	ItemProcessed(stageName string, d time.Duration)
	ItemDropped(stageName string)
}

// Prometheus is the default Recorder, registering four series on
// construction: a processed counter, a dropped counter, a worker gauge
// and a per-stage duration histogram.
type Prometheus struct {
	workersActive *prometheus.GaugeVec
	processed     *prometheus.CounterVec
	dropped       *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// NewPrometheus registers its collectors against reg. Passing
// prometheus.DefaultRegisterer matches promauto's usual default.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)
	return &Prometheus{
		workersActive: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "spp_stage_workers_active",
			Help: "Number of currently running worker goroutines, by stage.",
		}, []string{"stage"}),
		processed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "spp_items_processed_total",
			Help: "Total number of items a stage finished handling.",
		}, []string{"stage"}),
		dropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "spp_items_dropped_total",
			Help: "Total number of items a stage dropped without producing output.",
		}, []string{"stage"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "spp_stage_process_duration_seconds",
			Help:    "Time spent inside a single transform/consume invocation.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
	}
}

func (p *Prometheus) WorkerStarted(stageName string) { p.workersActive.WithLabelValues(stageName).Inc() }
func (p *Prometheus) WorkerStopped(stageName string) { p.workersActive.WithLabelValues(stageName).Dec() }

func (p *Prometheus) ItemProcessed(stageName string, d time.Duration) {
	p.processed.WithLabelValues(stageName).Inc()
	p.duration.WithLabelValues(stageName).Observe(d.Seconds())
}

func (p *Prometheus) ItemDropped(stageName string) {
	p.dropped.WithLabelValues(stageName).Inc()
}

// Hooks adapts rec into the spp.Hooks function-field struct. StartSpan is
// populated here too (rather than left to the tracing package) because
// duration measurement and span lifetime both bracket the same call --
// ComposeHooks merges this with tracing.Hooks when a pipeline wants both.
func Hooks(rec Recorder) *spp.Hooks {
	return &spp.Hooks{
		OnWorkerStart: rec.WorkerStarted,
		OnWorkerStop:  rec.WorkerStopped,
		OnDropped:     func(stageName string, _ uint64) { rec.ItemDropped(stageName) },
		StartSpan: func(stageName string, _ uint64) func() {
			start := time.Now()
			return func() { rec.ItemProcessed(stageName, time.Since(start)) }
		},
	}
}
