package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal  *prometheus.CounterVec
	rowsFetched   *prometheus.CounterVec
	rowsDropped   *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "etfalpha_fetches_total",
				Help: "Total number of snapshot fetches against the upstream source",
			},
			[]string{"source"},
		),
		rowsFetched: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "etfalpha_rows_fetched_total",
				Help: "Total number of raw rows returned by the upstream source",
			},
			[]string{"source"},
		),
		rowsDropped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "etfalpha_rows_dropped_total",
				Help: "Total number of rows dropped during sanitization",
			},
			[]string{"reason"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "etfalpha_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		cacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "etfalpha_cache_lookups_total",
				Help: "Snapshot cache lookups by outcome",
			},
			[]string{"outcome"},
		),
		stageDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "etfalpha_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
	}
}

// RecordFetch records a completed fetch and its raw row count.
func (r *Recorder) RecordFetch(source string, rows int) {
	r.fetchesTotal.WithLabelValues(source).Inc()
	r.rowsFetched.WithLabelValues(source).Add(float64(rows))
}

// RecordRowsDropped records rows removed by the sanitizer.
func (r *Recorder) RecordRowsDropped(reason string, n int) {
	if n > 0 {
		r.rowsDropped.WithLabelValues(reason).Add(float64(n))
	}
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordCacheLookup records a cache hit or miss.
func (r *Recorder) RecordCacheLookup(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.cacheLookups.WithLabelValues(outcome).Inc()
}

// RecordStageDuration records a pipeline stage latency in seconds.
func (r *Recorder) RecordStageDuration(stage string, seconds float64) {
	r.stageDuration.WithLabelValues(stage).Observe(seconds)
}
