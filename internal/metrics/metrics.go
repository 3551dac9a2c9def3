package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Webhook metrics
	WebhookRequestsTotal   *prometheus.CounterVec
	WebhookDurationSeconds *prometheus.HistogramVec

	// Upstream catalog metrics
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamDurationSeconds *prometheus.HistogramVec

	// Telegram delivery metrics
	TelegramSendsTotal *prometheus.CounterVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		WebhookRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "cinegram_webhook_requests_total",
				Help: "Total number of webhook events by intent and status",
			},
			[]string{"intent", "status"}, // status: success, error, ignored
		),

		WebhookDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cinegram_webhook_duration_seconds",
				Help:    "Webhook event processing duration in seconds by intent",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"intent"}, // intent: start, page, play
		),

		UpstreamRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "cinegram_upstream_requests_total",
				Help: "Total number of upstream catalog requests by endpoint and status",
			},
			[]string{"endpoint", "status"}, // endpoint: episodes, token, playback
		),

		UpstreamDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cinegram_upstream_duration_seconds",
				Help:    "Upstream catalog request duration in seconds by endpoint",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"endpoint"},
		),

		TelegramSendsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "cinegram_telegram_sends_total",
				Help: "Total number of outbound Telegram messages by status",
			},
			[]string{"status"}, // status: success, error
		),

		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "cinegram_http_errors_total",
				Help: "Total HTTP-layer errors by type",
			},
			[]string{"error_type"}, // error_type: bad_payload, bad_secret, etc.
		),
	}

	return m
}

// RecordWebhook records a processed webhook event with status
func (m *Metrics) RecordWebhook(intent, status string, duration float64) {
	m.WebhookRequestsTotal.WithLabelValues(intent, status).Inc()
	m.WebhookDurationSeconds.WithLabelValues(intent).Observe(duration)
}

// RecordUpstream records an upstream catalog request
func (m *Metrics) RecordUpstream(endpoint, status string, duration float64) {
	m.UpstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.UpstreamDurationSeconds.WithLabelValues(endpoint).Observe(duration)
}

// RecordTelegramSend records an outbound Telegram message delivery
func (m *Metrics) RecordTelegramSend(status string) {
	m.TelegramSendsTotal.WithLabelValues(status).Inc()
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType).Inc()
}
