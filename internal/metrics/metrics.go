package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the estimator. Every metric
// is registered on Registry rather than the global default registerer.
type MetricsRegistry struct {
	Registry *prometheus.Registry

	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Provider Metrics
	ProviderCallsTotal     *prometheus.CounterVec
	ProviderCallDuration   *prometheus.HistogramVec
	ProviderFallbacksTotal *prometheus.CounterVec

	// Business Metrics
	SearchesTotal       *prometheus.CounterVec
	ResolutionsTotal    *prometheus.CounterVec
	FareSamplesRecorded prometheus.Counter
	EventsPublished     *prometheus.CounterVec
}

// NewMetricsRegistry creates a fresh registry with Go and process collectors
// plus all estimator metrics.
func NewMetricsRegistry() *MetricsRegistry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &MetricsRegistry{
		Registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "estimator_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "estimator_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "estimator_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "estimator_cache_hits_total",
				Help: "Total cache hits by cache key prefix",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "estimator_cache_misses_total",
				Help: "Total cache misses by cache key prefix",
			},
			[]string{"cache_key_pattern"},
		),

		ProviderCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "estimator_provider_calls_total",
				Help: "Calls to external fare providers by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		ProviderCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "estimator_provider_call_duration_seconds",
				Help:    "External fare provider latency in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"provider"},
		),
		ProviderFallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "estimator_provider_fallbacks_total",
				Help: "Provider failures absorbed by falling back to estimated data",
			},
			[]string{"provider"},
		),

		SearchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "estimator_searches_total",
				Help: "Flight searches by the source of the returned candidates",
			},
			[]string{"source"},
		),
		ResolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "estimator_location_resolutions_total",
				Help: "Free-text location resolutions by outcome (exact, nearest, miss)",
			},
			[]string{"outcome"},
		),
		FareSamplesRecorded: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "estimator_fare_samples_recorded_total",
				Help: "Live offers written to fare history",
			},
		),
		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "estimator_events_published_total",
				Help: "Search events handed to the event stream by outcome",
			},
			[]string{"outcome"},
		),
	}
}
