// Package config provides centralized timeout constants for the application.
//
// These values are tuned around two external parties:
//   - Telegram webhook delivery: Telegram expects a fast 200 acknowledgment
//     and retries deliveries that time out, so the HTTP surface stays short
//     while actual event processing happens after the acknowledgment.
//   - The video catalog backend: token exchange and playback requests are
//     usually sub-second but can stall; requests carry a defensive timeout
//     even though no timeout is part of the upstream contract.
package config

import "time"

// Webhook timeouts
const (
	// WebhookProcessing bounds the handling of a single webhook event after
	// the delivery has been acknowledged. Covers up to two sequential
	// upstream calls (token + playback) plus the outbound Telegram send.
	WebhookProcessing = 30 * time.Second

	// WebhookHTTPRead is the HTTP server read timeout for webhook requests.
	// Telegram sends small JSON payloads, so this stays short.
	WebhookHTTPRead = 10 * time.Second

	// WebhookHTTPWrite is the HTTP server write timeout. Responses are empty
	// acknowledgments, so this only needs headroom for slow clients.
	WebhookHTTPWrite = 15 * time.Second

	// WebhookHTTPIdle is the HTTP server idle timeout for keep-alive
	// connections from the Telegram platform.
	WebhookHTTPIdle = 120 * time.Second
)

// Upstream timeouts
const (
	// UpstreamRequest is the defensive timeout for a single HTTP request to
	// the catalog backend (episode listing, token exchange, playback).
	UpstreamRequest = 30 * time.Second

	// ReadinessCheckTimeout bounds the upstream reachability probes run by
	// the readiness endpoint.
	ReadinessCheckTimeout = 5 * time.Second

	// WebhookRegisterTimeout bounds the startup call registering the webhook
	// path with the Telegram platform.
	WebhookRegisterTimeout = 30 * time.Second
)

// Graceful shutdown
const (
	// GracefulShutdown is the timeout for graceful server shutdown.
	// Allows in-flight requests and async event processing to complete.
	GracefulShutdown = 30 * time.Second
)
