// Package metrics holds the Prometheus collectors of the negotiation daemon.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Negotiation outcomes.
const (
	OutcomeSelected = "selected"
	OutcomeNoMatch  = "no_match"
	OutcomeError    = "error"
)

// Metrics holds all Prometheus metrics, registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// A2DP metrics
	A2DPNegotiations *prometheus.CounterVec
	A2DPParses       *prometheus.CounterVec

	// LE audio metrics
	LEAudioMatches       *prometheus.CounterVec
	LEAudioMatchedConfig prometheus.Histogram

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		A2DPNegotiations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "btaudio_a2dp_negotiations_total",
				Help: "Total number of A2DP configuration negotiations",
			},
			[]string{"codec", "outcome"}, // codec is empty when nothing was selected
		),
		A2DPParses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "btaudio_a2dp_parses_total",
				Help: "Total number of A2DP configuration records validated",
			},
			[]string{"codec", "status"},
		),

		LEAudioMatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "btaudio_leaudio_matches_total",
				Help: "Total number of LE audio matching requests",
			},
			[]string{"kind", "outcome"}, // kind: ase, qos or broadcast
		),
		LEAudioMatchedConfig: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "btaudio_leaudio_matched_settings",
			Help:    "Number of templates returned by an ASE configuration request",
			Buckets: prometheus.LinearBuckets(0, 2, 8),
		}),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "btaudio_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "btaudio_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the HTTP handler exposing the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Negotiation records an A2DP negotiation.
func (m *Metrics) Negotiation(codec string, selected bool) {
	outcome := OutcomeNoMatch
	if selected {
		outcome = OutcomeSelected
	}
	m.A2DPNegotiations.WithLabelValues(codec, outcome).Inc()
}

// Parse records the status of an A2DP configuration validation.
func (m *Metrics) Parse(codec, status string) {
	m.A2DPParses.WithLabelValues(codec, status).Inc()
}

// Match records an LE audio matching request.
func (m *Metrics) Match(kind, outcome string) {
	m.LEAudioMatches.WithLabelValues(kind, outcome).Inc()
}
