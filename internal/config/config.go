// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// server mode, upstream endpoints, device identity, and timeouts.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Telegram Bot Configuration
	TelegramBotToken string
	PublicBaseURL    string // Base URL the webhook path is registered under (empty = skip registration)
	WebhookSecret    string // Secret path segment for the webhook endpoint (default: bot token)

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Upstream Catalog Configuration
	CatalogEpisodesURL string // Series-wise episode listing endpoint
	CatalogTokenURL    string // Guest token exchange endpoint
	CatalogPlaybackURL string // Playback endpoint base; item id is appended as a path segment
	CatalogSeriesID    int64  // Fixed series whose episodes are browsed
	PreviewToolURL     string // Stream preview tool the shareable link points at
	UpstreamTimeout    time.Duration

	// Device identity declared on the token exchange
	Device DeviceIdentity

	// Webhook Configuration
	WebhookTimeout time.Duration

	// Sentry Configuration
	SentryDSN         string
	SentryEnvironment string
	SentryRelease     string
	SentrySampleRate  float64

	// Better Stack Configuration
	BetterStackToken    string
	BetterStackEndpoint string

	// Metrics Authentication
	MetricsAuthEnabled bool
	MetricsUsername    string
	MetricsPassword    string
}

// DeviceIdentity is the fixed device/app identity the upstream token
// exchange expects. The values mimic a handset client; they are not
// per-user and carry no conversation state.
type DeviceIdentity struct {
	DeviceID   string
	AdID       string
	AppName    string
	DeviceType string
	OS         string
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then reads from env vars.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	botToken := getEnv(EnvTelegramBotToken, "")

	cfg := &Config{
		TelegramBotToken: botToken,
		PublicBaseURL:    getEnv(EnvPublicBaseURL, ""),
		// The original deployment used the bot token itself as the secret
		// path segment; keep that as the default.
		WebhookSecret: getEnv(EnvWebhookSecret, botToken),

		Port:            getEnv(EnvPort, "5000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, GracefulShutdown),

		CatalogEpisodesURL: getEnv(EnvCatalogEpisodesURL, ""),
		CatalogTokenURL:    getEnv(EnvCatalogTokenURL, ""),
		CatalogPlaybackURL: getEnv(EnvCatalogPlaybackURL, ""),
		CatalogSeriesID:    getInt64Env(EnvCatalogSeriesID, 3762357),
		PreviewToolURL:     getEnv(EnvPreviewToolURL, "https://bitmovin.com/demos/stream-test"),
		UpstreamTimeout:    getDurationEnv(EnvUpstreamTimeout, UpstreamRequest),

		Device: DeviceIdentity{
			DeviceID:   getEnv(EnvDeviceID, "c48824b349f8f463"),
			AdID:       getEnv(EnvAdID, uuid.NewString()),
			AppName:    "RJIL_JioCinema",
			DeviceType: "phone",
			OS:         "android",
		},

		WebhookTimeout: getDurationEnv(EnvWebhookTimeout, WebhookProcessing),

		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentryRelease:     getEnv(EnvSentryRelease, ""),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),

		MetricsAuthEnabled: getBoolEnv(EnvMetricsAuthEnabled, false),
		MetricsUsername:    getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword:    getEnv(EnvMetricsPassword, ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set.
func (c *Config) Validate() error {
	var errs []error

	if c.TelegramBotToken == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvTelegramBotToken))
	}
	if c.WebhookSecret == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvWebhookSecret))
	}
	if c.Port == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvPort))
	}
	if c.CatalogEpisodesURL == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvCatalogEpisodesURL))
	}
	if c.CatalogTokenURL == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvCatalogTokenURL))
	}
	if c.CatalogPlaybackURL == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvCatalogPlaybackURL))
	}
	if c.CatalogSeriesID <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvCatalogSeriesID, c.CatalogSeriesID))
	}
	if c.UpstreamTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvUpstreamTimeout, c.UpstreamTimeout))
	}
	if c.WebhookTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvWebhookTimeout, c.WebhookTimeout))
	}
	if c.MetricsAuthEnabled && c.MetricsPassword == "" {
		errs = append(errs, fmt.Errorf("%s is required when metrics auth is enabled", EnvMetricsPassword))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getInt64Env retrieves integer environment variable with fallback to default value
func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getBoolEnv retrieves boolean environment variable with fallback to default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
