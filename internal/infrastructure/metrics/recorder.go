// Package metrics records pipeline outcomes as Prometheus collectors.
//
// A CLI run is too short-lived to be scraped, so the collectors live on a
// private registry that can be flushed to a node_exporter textfile.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/doeshing/sqai-go/internal/ports"
)

// Recorder implements ports.Metrics.
type Recorder struct {
	registry          *prometheus.Registry
	generationsTotal  *prometheus.CounterVec
	generationSeconds *prometheus.HistogramVec
	extractionsTotal  *prometheus.CounterVec
	executionsTotal   *prometheus.CounterVec
	rowsReturned      prometheus.Counter
}

// NewRecorder builds a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		generationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sqai_generations_total",
				Help: "Total number of generation calls by backend and outcome.",
			},
			[]string{"backend", "outcome"},
		),
		generationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sqai_generation_duration_seconds",
				Help:    "Generation call latency in seconds.",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"backend"},
		),
		extractionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sqai_extractions_total",
				Help: "Total number of SQL extractions by fence layout.",
			},
			[]string{"layout"},
		),
		executionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sqai_executions_total",
				Help: "Total number of executed queries by outcome.",
			},
			[]string{"outcome"},
		),
		rowsReturned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sqai_rows_returned_total",
				Help: "Total number of result rows returned by executed queries.",
			},
		),
	}
	r.registry.MustRegister(
		r.generationsTotal,
		r.generationSeconds,
		r.extractionsTotal,
		r.executionsTotal,
		r.rowsReturned,
	)
	return r
}

// ObserveGeneration records one generation call.
func (r *Recorder) ObserveGeneration(backend string, ok bool, elapsed time.Duration) {
	r.generationsTotal.WithLabelValues(backend, outcome(ok)).Inc()
	r.generationSeconds.WithLabelValues(backend).Observe(elapsed.Seconds())
}

// ObserveExtraction records which fence layout SQL was extracted from.
func (r *Recorder) ObserveExtraction(layout string) {
	r.extractionsTotal.WithLabelValues(layout).Inc()
}

// ObserveExecution records one query execution.
func (r *Recorder) ObserveExecution(ok bool, rows int) {
	r.executionsTotal.WithLabelValues(outcome(ok)).Inc()
	if ok {
		r.rowsReturned.Add(float64(rows))
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all collected metrics in the text exposition format.
// An empty path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}

var _ ports.Metrics = (*Recorder)(nil)
