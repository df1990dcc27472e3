// Package metrics records comparison counts, latencies and scores with Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const namespace = "docsim"

// Recorder owns a private registry so several recorders can coexist in tests.
type Recorder struct {
	registry    *prometheus.Registry
	comparisons *prometheus.CounterVec
	failures    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	scores      *prometheus.HistogramVec
}

// NewRecorder creates a recorder with Go runtime and process collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparisons_total",
			Help:      "Completed similarity computations by metric and algorithm.",
		}, []string{"metric", "algorithm"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparison_failures_total",
			Help:      "Rejected or failed similarity computations by metric.",
		}, []string{"metric"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "comparison_duration_seconds",
			Help:      "Wall time of similarity computations.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"metric"}),
		scores: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "similarity_score_percent",
			Help:      "Distribution of similarity scores.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}, []string{"metric"}),
	}
	r.registry.MustRegister(
		r.comparisons,
		r.failures,
		r.duration,
		r.scores,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveComparison records a successful computation.
func (r *Recorder) ObserveComparison(metric, algorithm string, score float64, elapsed time.Duration) {
	r.comparisons.WithLabelValues(metric, algorithm).Inc()
	r.duration.WithLabelValues(metric).Observe(elapsed.Seconds())
	r.scores.WithLabelValues(metric).Observe(score)
}

// ObserveFailure records a rejected or failed computation.
func (r *Recorder) ObserveFailure(metric string) {
	r.failures.WithLabelValues(metric).Inc()
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() fasthttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
}
