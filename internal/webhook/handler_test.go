package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cinegram/cinegram/internal/bot"
	"github.com/cinegram/cinegram/internal/catalog"
	"github.com/cinegram/cinegram/internal/config"
	"github.com/cinegram/cinegram/internal/logger"
	"github.com/cinegram/cinegram/internal/metrics"
	"github.com/cinegram/cinegram/internal/stream"
	"github.com/cinegram/cinegram/internal/upstream"
)

const testSecret = "test-secret"

type fakeSender struct {
	mu      sync.Mutex
	replies []*bot.Reply
}

func (f *fakeSender) Send(ctx context.Context, reply *bot.Reply) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies = append(f.replies, reply)
	return nil
}

func (f *fakeSender) sent() []*bot.Reply {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*bot.Reply, len(f.replies))
	copy(out, f.replies)
	return out
}

// setupTestHandler wires a handler against a fake upstream and a fake sender
func setupTestHandler(t *testing.T) (*Handler, *fakeSender, *gin.Engine) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/episodes", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": []map[string]any{
				{"id": 101, "episode": 20, "shortTitle": "Finale"},
			},
			"totalAsset": 25,
		})
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"authToken": "guest-token"})
	})
	mux.HandleFunc("/playback/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"playbackUrls": []map[string]any{
					{"url": "https://cdn.example.com/manifest.mpd", "licenseurl": "https://license.example.com/wv"},
				},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	log := logger.New("error")
	client := upstream.NewClient(5 * time.Second)

	browser := catalog.NewBrowser(client, srv.URL+"/episodes", 3762357, m, log)
	tokens := stream.NewTokenProvider(client, srv.URL+"/token", config.DeviceIdentity{
		DeviceID: "test-device", AdID: "test-ad", AppName: "RJIL_JioCinema", DeviceType: "phone", OS: "android",
	}, m, log)
	resolver := stream.NewResolver(tokens, client, srv.URL+"/playback", "https://preview.example.com", m, log)

	processor := bot.NewProcessor(bot.ProcessorConfig{
		Browser:  browser,
		Resolver: resolver,
		Metrics:  m,
		Logger:   log,
		Timeout:  10 * time.Second,
	})

	sender := &fakeSender{}
	handler := NewHandler(testSecret, processor, sender, m, log, 10*time.Second)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/webhook/:secret", handler.Handle)

	return handler, sender, router
}

func postUpdate(router *gin.Engine, secret string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/"+secret, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func startUpdate(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"update_id": 1,
		"message": map[string]any{
			"message_id": 10,
			"chat":       map[string]any{"id": 42, "type": "private", "first_name": "A", "last_name": "B"},
			"text":       "/start",
		},
	})
	if err != nil {
		t.Fatalf("failed to marshal update: %v", err)
	}
	return body
}

func TestHandleSecretMismatch(t *testing.T) {
	_, sender, router := setupTestHandler(t)

	w := postUpdate(router, "wrong-secret", startUpdate(t))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if len(sender.sent()) != 0 {
		t.Error("no reply should be sent on secret mismatch")
	}
}

func TestHandleMalformedPayload(t *testing.T) {
	handler, sender, router := setupTestHandler(t)

	w := postUpdate(router, testSecret, []byte("{not json"))
	if w.Code != http.StatusOK {
		t.Errorf("malformed payload should still be acknowledged, got %d", w.Code)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := handler.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if len(sender.sent()) != 0 {
		t.Error("no reply should be sent for a malformed payload")
	}
}

func TestHandleStartUpdate(t *testing.T) {
	handler, sender, router := setupTestHandler(t)

	w := postUpdate(router, testSecret, startUpdate(t))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := handler.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	replies := sender.sent()
	if len(replies) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(replies))
	}
	if replies[0].ChatID != 42 {
		t.Errorf("expected chat id 42, got %d", replies[0].ChatID)
	}
	if replies[0].Text != "Welcome A B" {
		t.Errorf("unexpected reply text: %q", replies[0].Text)
	}
	if len(replies[0].Keyboard) == 0 {
		t.Error("expected an inline keyboard")
	}
}

func TestHandlePlayUpdate(t *testing.T) {
	handler, sender, router := setupTestHandler(t)

	body, err := json.Marshal(map[string]any{
		"update_id": 2,
		"callback_query": map[string]any{
			"id": "cbq-1",
			"message": map[string]any{
				"message_id": 10,
				"chat":       map[string]any{"id": 42, "type": "private"},
			},
			"data": "PLAY::101",
		},
	})
	if err != nil {
		t.Fatalf("failed to marshal update: %v", err)
	}

	w := postUpdate(router, testSecret, body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := handler.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	replies := sender.sent()
	if len(replies) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(replies))
	}
	if replies[0].Text == "" || replies[0].Keyboard != nil {
		t.Errorf("unexpected reply: %+v", replies[0])
	}
}

func TestHandleUnactionableUpdate(t *testing.T) {
	handler, sender, router := setupTestHandler(t)

	body, err := json.Marshal(map[string]any{"update_id": 3})
	if err != nil {
		t.Fatalf("failed to marshal update: %v", err)
	}

	w := postUpdate(router, testSecret, body)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := handler.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if len(sender.sent()) != 0 {
		t.Error("no reply should be sent for an unactionable update")
	}
}
