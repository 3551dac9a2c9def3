// Package catalog lists episodes of a fixed series from the upstream
// video catalog, one page at a time.
package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	apperrors "github.com/cinegram/cinegram/internal/errors"
	"github.com/cinegram/cinegram/internal/logger"
	"github.com/cinegram/cinegram/internal/metrics"
	"github.com/cinegram/cinegram/internal/upstream"
)

// PageSize is the number of episodes per page. The upstream listing
// endpoint serves exactly this many per request.
const PageSize = 10

// Entry is a single episode in the catalog
type Entry struct {
	ID      int64
	Episode int
	Title   string
}

// Label returns the display label for an entry, episode number first
func (e Entry) Label() string {
	return fmt.Sprintf("%d :: %s", e.Episode, e.Title)
}

// Page is one page of catalog entries with pagination bounds
type Page struct {
	Entries    []Entry
	Number     int
	TotalPages int
}

// HasPrevious reports whether a page exists before this one
func (p *Page) HasPrevious() bool {
	return p.Number > 1
}

// HasNext reports whether a page exists after this one
func (p *Page) HasNext() bool {
	return p.Number < p.TotalPages
}

type episodesResponse struct {
	Result []struct {
		ID         int64  `json:"id"`
		Episode    int    `json:"episode"`
		ShortTitle string `json:"shortTitle"`
	} `json:"result"`
	TotalAsset int64 `json:"totalAsset"`
}

// Browser fetches episode pages for a fixed series
type Browser struct {
	client      *upstream.Client
	episodesURL string
	seriesID    int64
	metrics     *metrics.Metrics
	log         *logger.Logger
	wrapper     *apperrors.ErrorWrapper
}

// NewBrowser creates a catalog browser for the given series
func NewBrowser(client *upstream.Client, episodesURL string, seriesID int64, m *metrics.Metrics, log *logger.Logger) *Browser {
	return &Browser{
		client:      client,
		episodesURL: episodesURL,
		seriesID:    seriesID,
		metrics:     m,
		log:         log.WithModule("catalog"),
		wrapper:     apperrors.NewWrapper("catalog", "list_page"),
	}
}

// ListPage fetches one page of episodes, newest first.
// Pages are 1-based; page numbers below 1 are rejected.
func (b *Browser) ListPage(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: %d", apperrors.ErrInvalidPage, page)
	}

	query := url.Values{}
	query.Set("sort", "episode:desc")
	query.Set("id", strconv.FormatInt(b.seriesID, 10))
	query.Set("responseType", "common")
	query.Set("devicePlatformType", "android")
	query.Set("page", strconv.Itoa(page))

	start := time.Now()
	var resp episodesResponse
	err := b.client.GetJSON(ctx, b.episodesURL, query, &resp)
	duration := time.Since(start).Seconds()

	if err != nil {
		b.metrics.RecordUpstream("episodes", "error", duration)
		b.log.WithError(err).WithField("page", page).ErrorContext(ctx, "Failed to list episodes")
		return nil, b.wrapper.Wrap(err, "Episode listing is unavailable")
	}
	b.metrics.RecordUpstream("episodes", "success", duration)

	entries := make([]Entry, 0, len(resp.Result))
	for _, item := range resp.Result {
		entries = append(entries, Entry{
			ID:      item.ID,
			Episode: item.Episode,
			Title:   item.ShortTitle,
		})
	}

	totalPages := int((resp.TotalAsset + PageSize - 1) / PageSize)

	b.log.WithFields(map[string]any{
		"page":        page,
		"entries":     len(entries),
		"total_pages": totalPages,
	}).DebugContext(ctx, "Listed episode page")

	return &Page{
		Entries:    entries,
		Number:     page,
		TotalPages: totalPages,
	}, nil
}
