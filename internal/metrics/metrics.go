// Package metrics defines the Prometheus instruments of the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for renders_total.
const (
	OutcomeOK               = "ok"
	OutcomeUnknownSelection = "unknown_selection"
	OutcomeLoadError        = "load_error"
	OutcomeRuntimeError     = "runtime_error"
)

// UnknownTopic is the topic label used when a selection did not resolve.
const UnknownTopic = "unknown"

// Metrics groups the instruments. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// renders counts render passes.
	// Labels: topic (locator or "unknown"), outcome
	renders *prometheus.CounterVec

	// renderDuration measures render pass latency.
	// Labels: topic
	renderDuration *prometheus.HistogramVec

	// liveConnections tracks open live-channel connections.
	liveConnections prometheus.Gauge

	// liveEvents counts live-channel render requests.
	// Labels: outcome
	liveEvents *prometheus.CounterVec
}

// New registers the instruments with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aplab",
			Subsystem: "dispatch",
			Name:      "renders_total",
			Help:      "Total render passes by topic and outcome",
		}, []string{"topic", "outcome"}),
		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "aplab",
			Subsystem: "dispatch",
			Name:      "render_duration_seconds",
			Help:      "Render pass latency in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),
		liveConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "aplab",
			Subsystem: "live",
			Name:      "connections",
			Help:      "Open live-channel connections",
		}),
		liveEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aplab",
			Subsystem: "live",
			Name:      "events_total",
			Help:      "Live-channel render requests by outcome",
		}, []string{"outcome"}),
	}
}

// RegisterSessionGauge exposes the live session count, read on scrape.
func RegisterSessionGauge(reg prometheus.Registerer, count func() int) {
	promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "aplab",
		Subsystem: "session",
		Name:      "active",
		Help:      "Sessions currently held in memory",
	}, func() float64 { return float64(count()) })
}

// ObserveRender records one render pass.
func (m *Metrics) ObserveRender(topic, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	if topic == "" {
		topic = UnknownTopic
	}
	m.renders.WithLabelValues(topic, outcome).Inc()
	m.renderDuration.WithLabelValues(topic).Observe(d.Seconds())
}

// LiveConnected and LiveDisconnected track live-channel connections.
func (m *Metrics) LiveConnected() {
	if m != nil {
		m.liveConnections.Inc()
	}
}

func (m *Metrics) LiveDisconnected() {
	if m != nil {
		m.liveConnections.Dec()
	}
}

// ObserveLiveEvent records one live-channel render request.
func (m *Metrics) ObserveLiveEvent(outcome string) {
	if m != nil {
		m.liveEvents.WithLabelValues(outcome).Inc()
	}
}

// RenderCounter returns the renders_total series for topic and outcome.
func (m *Metrics) RenderCounter(topic, outcome string) prometheus.Counter {
	return m.renders.WithLabelValues(topic, outcome)
}

// LiveEventCounter returns the live events_total series for outcome.
func (m *Metrics) LiveEventCounter(outcome string) prometheus.Counter {
	return m.liveEvents.WithLabelValues(outcome)
}
