package stream

import (
	"context"
	"fmt"
	"strconv"
	"time"

	apperrors "github.com/cinegram/cinegram/internal/errors"
	"github.com/cinegram/cinegram/internal/logger"
	"github.com/cinegram/cinegram/internal/metrics"
	"github.com/cinegram/cinegram/internal/upstream"
)

// playbackUserAgent is pinned; the playback endpoint rejects handset
// user agents when x-platform claims androidweb.
const playbackUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"

type drmCapability struct {
	AESSupport          string `json:"aesSupport"`
	FairPlayDrmSupport  string `json:"fairPlayDrmSupport"`
	PlayreadyDrmSupport string `json:"playreadyDrmSupport"`
	WidevineDRMSupport  string `json:"widevineDRMSupport"`
}

type frameRateCapability struct {
	FrameRateSupport string `json:"frameRateSupport"`
	VideoQuality     string `json:"videoQuality"`
}

type capability struct {
	DrmCapability       drmCapability         `json:"drmCapability"`
	FrameRateCapability []frameRateCapability `json:"frameRateCapability"`
}

type playbackRequest struct {
	FourK                    bool       `json:"4k"`
	AgeGroup                 string     `json:"ageGroup"`
	AppVersion               string     `json:"appVersion"`
	BitrateProfile           string     `json:"bitrateProfile"`
	Capability               capability `json:"capability"`
	ContinueWatchingRequired bool       `json:"continueWatchingRequired"`
	Dolby                    bool       `json:"dolby"`
	DownloadRequest          bool       `json:"downloadRequest"`
	Hevc                     bool       `json:"hevc"`
	KidsSafe                 bool       `json:"kidsSafe"`
	Manufacturer             string     `json:"manufacturer"`
	Model                    string     `json:"model"`
	MultiAudioRequired       bool       `json:"multiAudioRequired"`
	OSVersion                string     `json:"osVersion"`
	ParentalPinValid         bool       `json:"parentalPinValid"`
}

type playbackResponse struct {
	Data struct {
		PlaybackUrls []struct {
			URL        string `json:"url"`
			LicenseURL string `json:"licenseurl"`
		} `json:"playbackUrls"`
	} `json:"data"`
}

// Playback is a resolved stream for a single catalog item
type Playback struct {
	ManifestURL string
	LicenseURL  string
	PreviewLink string
}

// Resolver resolves playable stream links.
// Every resolution fetches a fresh guest token first.
type Resolver struct {
	tokens      *TokenProvider
	client      *upstream.Client
	playbackURL string
	previewURL  string
	metrics     *metrics.Metrics
	log         *logger.Logger
	wrapper     *apperrors.ErrorWrapper
}

// NewResolver creates a stream resolver
func NewResolver(tokens *TokenProvider, client *upstream.Client, playbackURL, previewURL string, m *metrics.Metrics, log *logger.Logger) *Resolver {
	return &Resolver{
		tokens:      tokens,
		client:      client,
		playbackURL: playbackURL,
		previewURL:  previewURL,
		metrics:     m,
		log:         log.WithModule("stream"),
		wrapper:     apperrors.NewWrapper("stream", "resolve_stream"),
	}
}

// Resolve turns a catalog item id into a shareable preview link.
// Only the first playback variant the upstream offers is used.
func (r *Resolver) Resolve(ctx context.Context, itemID int64) (*Playback, error) {
	token, err := r.tokens.GuestToken(ctx)
	if err != nil {
		return nil, r.wrapper.Wrap(err, "Stream authorization failed")
	}

	reqURL := r.playbackURL + "/" + strconv.FormatInt(itemID, 10)
	headers := map[string]string{
		"accesstoken": token,
		"referer":     "https://www.jiocinema.com/",
		"user-agent":  playbackUserAgent,
		"x-platform":  "androidweb",
	}
	body := playbackRequest{
		FourK:          false,
		AgeGroup:       "18+",
		AppVersion:     "3.4.0",
		BitrateProfile: "xhdpi",
		Capability: capability{
			DrmCapability: drmCapability{
				AESSupport:          "yes",
				FairPlayDrmSupport:  "yes",
				PlayreadyDrmSupport: "none",
				WidevineDRMSupport:  "yes",
			},
			FrameRateCapability: []frameRateCapability{
				{FrameRateSupport: "30fps", VideoQuality: "1440p"},
			},
		},
		ContinueWatchingRequired: true,
		Dolby:                    false,
		DownloadRequest:          false,
		Hevc:                     false,
		KidsSafe:                 false,
		Manufacturer:             "Windows",
		Model:                    "Windows",
		MultiAudioRequired:       true,
		OSVersion:                "10",
		ParentalPinValid:         true,
	}

	start := time.Now()
	var resp playbackResponse
	err = r.client.PostJSON(ctx, reqURL, headers, body, &resp)
	duration := time.Since(start).Seconds()

	if err != nil {
		r.metrics.RecordUpstream("playback", "error", duration)
		r.log.WithError(err).WithField("item_id", itemID).ErrorContext(ctx, "Playback request failed")
		return nil, r.wrapper.Wrap(err, "Stream is unavailable")
	}

	if len(resp.Data.PlaybackUrls) == 0 {
		r.metrics.RecordUpstream("playback", "error", duration)
		err := apperrors.NewUpstreamError(reqURL, 0, fmt.Errorf("%w for item %d", apperrors.ErrNoPlaybackURLs, itemID))
		return nil, r.wrapper.Wrap(err, "Stream is unavailable")
	}
	r.metrics.RecordUpstream("playback", "success", duration)

	first := resp.Data.PlaybackUrls[0]
	playback := &Playback{
		ManifestURL: first.URL,
		LicenseURL:  first.LicenseURL,
		PreviewLink: BuildPreviewLink(r.previewURL, first.URL, first.LicenseURL),
	}

	r.log.WithField("item_id", itemID).DebugContext(ctx, "Resolved stream")
	return playback, nil
}
