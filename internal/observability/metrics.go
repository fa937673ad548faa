// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application. Each
// Metrics instance owns its registry so tests can create them freely.
type Metrics struct {
	registry *prometheus.Registry

	// Fetch metrics
	FetchesTotal *prometheus.CounterVec // by source
	FetchErrors  *prometheus.CounterVec // by source

	// Refresh metrics
	RefreshesTotal  *prometheus.CounterVec // by resource class, outcome
	RefreshesSkipped *prometheus.CounterVec // by resource class
	RefreshDuration *prometheus.HistogramVec

	// News pipeline metrics
	NewsRecordsIn     prometheus.Counter
	NewsRecordsMerged prometheus.Counter // duplicates collapsed away
	NewsRecordsOut    prometheus.Gauge

	// Series metrics
	SeriesGenerated prometheus.Counter
}

// Refresh outcome label values.
const (
	OutcomeOK      = "ok"
	OutcomePartial = "partial"
	OutcomeFailed  = "failed"
)

// NewMetrics creates a Metrics instance with all metrics registered on
// a fresh registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "finance_tracker"
	}

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		FetchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Total fetch attempts per source.",
		}, []string{"source"}),
		FetchErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_errors_total",
			Help:      "Total failed fetches per source.",
		}, []string{"source"}),

		RefreshesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Total refresh passes per resource class and outcome.",
		}, []string{"class", "outcome"}),
		RefreshesSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_skipped_total",
			Help:      "Refresh requests skipped because one was already running.",
		}, []string{"class"}),
		RefreshDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Duration of refresh passes.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"class"}),

		NewsRecordsIn: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "news_records_in_total",
			Help:      "Raw news records received from all feeds.",
		}),
		NewsRecordsMerged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "news_records_merged_total",
			Help:      "News records collapsed into an existing representative.",
		}),
		NewsRecordsOut: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "news_records_out",
			Help:      "Deduplicated records produced by the last news refresh.",
		}),

		SeriesGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "series_generated_total",
			Help:      "Synthetic chart series generated.",
		}),
	}
}

// Handler returns an HTTP handler exposing this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
