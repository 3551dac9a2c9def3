package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cinegram/cinegram/internal/catalog"
	"github.com/cinegram/cinegram/internal/ctxutil"
	apperrors "github.com/cinegram/cinegram/internal/errors"
	"github.com/cinegram/cinegram/internal/logger"
	"github.com/cinegram/cinegram/internal/metrics"
	"github.com/cinegram/cinegram/internal/stream"
)

const retryMessage = "Try after few seconds"

// Processor turns classified events into replies
type Processor struct {
	browser  *catalog.Browser
	resolver *stream.Resolver
	metrics  *metrics.Metrics
	log      *logger.Logger
	timeout  time.Duration
}

// ProcessorConfig holds processor dependencies
type ProcessorConfig struct {
	Browser  *catalog.Browser
	Resolver *stream.Resolver
	Metrics  *metrics.Metrics
	Logger   *logger.Logger
	Timeout  time.Duration
}

// NewProcessor creates an event processor
func NewProcessor(cfg ProcessorConfig) *Processor {
	return &Processor{
		browser:  cfg.Browser,
		resolver: cfg.Resolver,
		metrics:  cfg.Metrics,
		log:      cfg.Logger.WithModule("bot"),
		timeout:  cfg.Timeout,
	}
}

// Handle processes one event end to end and returns the reply to send.
// Unknown events return a nil reply and no error. Upstream failures
// return both a retry reply for the user and the underlying error.
func (p *Processor) Handle(ctx context.Context, ev Event) (*Reply, error) {
	intent := Classify(ev)
	if intent.Kind == IntentUnknown {
		p.metrics.RecordWebhook(intent.Kind.String(), "ignored", 0)
		return nil, nil
	}

	ctx = ctxutil.WithChatID(ctx, ev.ChatID)
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	reply, err := p.handleIntent(ctx, intent, ev)
	duration := time.Since(start).Seconds()

	status := "success"
	if err != nil {
		status = "error"
	}
	p.metrics.RecordWebhook(intent.Kind.String(), status, duration)

	return reply, err
}

func (p *Processor) handleIntent(ctx context.Context, intent Intent, ev Event) (*Reply, error) {
	switch intent.Kind {
	case IntentStart:
		return p.episodePage(ctx, ev, 1)
	case IntentPage:
		return p.episodePage(ctx, ev, intent.Page)
	case IntentPlay:
		return p.playItem(ctx, ev, intent.ItemID)
	default:
		return nil, nil
	}
}

// episodePage replies with a greeting and the episode keyboard for the
// requested page. The greeting repeats on every page turn.
func (p *Processor) episodePage(ctx context.Context, ev Event, pageNum int) (*Reply, error) {
	page, err := p.browser.ListPage(ctx, pageNum)
	if err != nil {
		p.log.WithError(err).WithField("page", pageNum).ErrorContext(ctx, "Failed to browse episodes")
		return p.retryReply(ev.ChatID, err), err
	}

	return &Reply{
		ChatID:   ev.ChatID,
		Text:     greeting(ev),
		Keyboard: EpisodeKeyboard(page),
	}, nil
}

// playItem replies with the shareable preview link for one item
func (p *Processor) playItem(ctx context.Context, ev Event, itemID int64) (*Reply, error) {
	playback, err := p.resolver.Resolve(ctx, itemID)
	if err != nil {
		p.log.WithError(err).WithField("item_id", itemID).ErrorContext(ctx, "Failed to resolve stream")
		return p.retryReply(ev.ChatID, err), err
	}

	return &Reply{
		ChatID: ev.ChatID,
		Text:   playback.PreviewLink,
	}, nil
}

func (p *Processor) retryReply(chatID int64, err error) *Reply {
	detail := apperrors.GetUserMessage(err)
	return &Reply{
		ChatID: chatID,
		Text:   fmt.Sprintf("%s[Error] %s", retryMessage, detail),
	}
}

func greeting(ev Event) string {
	name := strings.TrimSpace(ev.FirstName + " " + ev.LastName)
	return "Welcome " + name
}
