// Package webhook receives Telegram webhook callbacks, acknowledges
// them immediately and processes each update in the background.
package webhook

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cinegram/cinegram/internal/bot"
	"github.com/cinegram/cinegram/internal/ctxutil"
	"github.com/cinegram/cinegram/internal/logger"
	"github.com/cinegram/cinegram/internal/metrics"
	"github.com/cinegram/cinegram/internal/sentry"
	"github.com/cinegram/cinegram/internal/telegram"
)

// ReplySender delivers bot replies to the messenger
type ReplySender interface {
	Send(ctx context.Context, reply *bot.Reply) error
}

// Handler handles incoming webhook requests
type Handler struct {
	secret    string
	processor *bot.Processor
	sender    ReplySender
	metrics   *metrics.Metrics
	log       *logger.Logger
	timeout   time.Duration
	wg        sync.WaitGroup
}

// NewHandler creates a webhook handler
func NewHandler(secret string, processor *bot.Processor, sender ReplySender, m *metrics.Metrics, log *logger.Logger, timeout time.Duration) *Handler {
	return &Handler{
		secret:    secret,
		processor: processor,
		sender:    sender,
		metrics:   m,
		log:       log.WithModule("webhook"),
		timeout:   timeout,
	}
}

// Handle processes an incoming webhook POST. The update is acknowledged
// with 200 before any upstream work happens; a wrong secret path gets a
// bare 404. Malformed payloads are still acknowledged so the messenger
// does not redeliver them.
func (h *Handler) Handle(c *gin.Context) {
	if subtle.ConstantTimeCompare([]byte(c.Param("secret")), []byte(h.secret)) != 1 {
		h.metrics.RecordHTTPError("bad_secret")
		c.Status(http.StatusNotFound)
		return
	}

	var update telegram.Update
	if err := json.NewDecoder(c.Request.Body).Decode(&update); err != nil {
		h.metrics.RecordHTTPError("bad_payload")
		h.log.WithError(err).WarnContext(c.Request.Context(), "Malformed webhook payload")
		c.Status(http.StatusOK)
		return
	}

	c.Status(http.StatusOK)

	ev, ok := update.Event()
	if !ok {
		h.log.WithField("update_id", update.UpdateID).DebugContext(c.Request.Context(), "Update carries no actionable event")
		return
	}

	ctx := ctxutil.PreserveTracing(c.Request.Context())
	ctx = ctxutil.WithUpdateID(ctx, update.UpdateID)
	ctx = ctxutil.WithRequestID(ctx, uuid.NewString())

	h.wg.Go(func() {
		h.process(ctx, ev)
	})
}

// process runs one update end to end, detached from the HTTP request
func (h *Handler) process(ctx context.Context, ev bot.Event) {
	defer func() {
		if r := recover(); r != nil {
			h.log.WithField("panic", r).ErrorContext(ctx, "Panic while processing update")
			h.metrics.RecordHTTPError("panic")
		}
	}()

	reply, err := h.processor.Handle(ctx, ev)
	if err != nil && sentry.IsEnabled() {
		sentry.CaptureExceptionWithContext(ctx, err)
	}
	if reply == nil {
		return
	}

	sendCtx, cancel := context.WithTimeout(ctxutil.PreserveTracing(ctx), h.timeout)
	defer cancel()

	if err := h.sender.Send(sendCtx, reply); err != nil {
		h.log.WithError(err).ErrorContext(ctx, "Failed to deliver reply")
	}
}

// Shutdown waits for in-flight updates to finish or the context to end
func (h *Handler) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
