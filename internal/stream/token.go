// Package stream resolves playable stream links for catalog items.
// Resolution is two steps: a guest token exchange, then a playback
// request authorized with that token.
package stream

import (
	"context"
	"time"

	"github.com/cinegram/cinegram/internal/config"
	apperrors "github.com/cinegram/cinegram/internal/errors"
	"github.com/cinegram/cinegram/internal/logger"
	"github.com/cinegram/cinegram/internal/metrics"
	"github.com/cinegram/cinegram/internal/upstream"
)

type tokenRequest struct {
	AdID        string `json:"adId"`
	AppName     string `json:"appName"`
	DeviceID    string `json:"deviceId"`
	DeviceType  string `json:"deviceType"`
	FreshLaunch bool   `json:"freshLaunch"`
	OS          string `json:"os"`
}

type tokenResponse struct {
	AuthToken string `json:"authToken"`
}

// TokenProvider exchanges a fixed device identity for a guest auth token.
// A fresh token is fetched on every call; tokens are never cached.
type TokenProvider struct {
	client   *upstream.Client
	tokenURL string
	device   config.DeviceIdentity
	metrics  *metrics.Metrics
	log      *logger.Logger
}

// NewTokenProvider creates a guest token provider
func NewTokenProvider(client *upstream.Client, tokenURL string, device config.DeviceIdentity, m *metrics.Metrics, log *logger.Logger) *TokenProvider {
	return &TokenProvider{
		client:   client,
		tokenURL: tokenURL,
		device:   device,
		metrics:  m,
		log:      log.WithModule("stream"),
	}
}

// GuestToken fetches a guest auth token from the upstream token endpoint
func (p *TokenProvider) GuestToken(ctx context.Context) (string, error) {
	body := tokenRequest{
		AdID:        p.device.AdID,
		AppName:     p.device.AppName,
		DeviceID:    p.device.DeviceID,
		DeviceType:  p.device.DeviceType,
		FreshLaunch: false,
		OS:          p.device.OS,
	}

	start := time.Now()
	var resp tokenResponse
	err := p.client.PostJSON(ctx, p.tokenURL, nil, body, &resp)
	duration := time.Since(start).Seconds()

	if err != nil {
		p.metrics.RecordUpstream("token", "error", duration)
		p.log.WithError(err).ErrorContext(ctx, "Guest token exchange failed")
		return "", err
	}

	if resp.AuthToken == "" {
		p.metrics.RecordUpstream("token", "error", duration)
		return "", apperrors.NewUpstreamError(p.tokenURL, 0, apperrors.ErrMissingAuthToken)
	}

	p.metrics.RecordUpstream("token", "success", duration)
	return resp.AuthToken, nil
}
