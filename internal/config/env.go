// Package config defines environment variable keys for configuration.
package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Core (Required)
	EnvTelegramBotToken = "CINEGRAM_TELEGRAM_BOT_TOKEN"

	// Server
	EnvPort            = "CINEGRAM_PORT"
	EnvLogLevel        = "CINEGRAM_LOG_LEVEL"
	EnvShutdownTimeout = "CINEGRAM_SHUTDOWN_TIMEOUT"
	EnvPublicBaseURL   = "CINEGRAM_PUBLIC_BASE_URL"
	EnvWebhookSecret   = "CINEGRAM_WEBHOOK_SECRET"

	// Upstream catalog
	EnvCatalogEpisodesURL = "CINEGRAM_CATALOG_EPISODES_URL"
	EnvCatalogTokenURL    = "CINEGRAM_CATALOG_TOKEN_URL"
	EnvCatalogPlaybackURL = "CINEGRAM_CATALOG_PLAYBACK_URL"
	EnvCatalogSeriesID    = "CINEGRAM_CATALOG_SERIES_ID"
	EnvPreviewToolURL     = "CINEGRAM_PREVIEW_TOOL_URL"
	EnvUpstreamTimeout    = "CINEGRAM_UPSTREAM_TIMEOUT"

	// Device identity sent on token exchange
	EnvDeviceID = "CINEGRAM_DEVICE_ID"
	EnvAdID     = "CINEGRAM_AD_ID"

	// Webhook
	EnvWebhookTimeout = "CINEGRAM_WEBHOOK_TIMEOUT"

	// Sentry Feature
	EnvSentryDSN         = "CINEGRAM_SENTRY_DSN"
	EnvSentryEnvironment = "CINEGRAM_SENTRY_ENVIRONMENT"
	EnvSentryRelease     = "CINEGRAM_SENTRY_RELEASE"
	EnvSentrySampleRate  = "CINEGRAM_SENTRY_SAMPLE_RATE"

	// Better Stack Feature
	EnvBetterStackToken    = "CINEGRAM_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "CINEGRAM_BETTERSTACK_ENDPOINT"

	// Metrics Auth Feature
	EnvMetricsAuthEnabled = "CINEGRAM_METRICS_AUTH_ENABLED"
	EnvMetricsUsername    = "CINEGRAM_METRICS_USERNAME"
	EnvMetricsPassword    = "CINEGRAM_METRICS_PASSWORD"
)
