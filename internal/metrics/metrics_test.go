package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNew(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	if m == nil {
		t.Fatal("New() returned nil")
	}

	// Verify all metric fields are initialized
	if m.WebhookRequestsTotal == nil {
		t.Error("WebhookRequestsTotal is nil")
	}
	if m.WebhookDurationSeconds == nil {
		t.Error("WebhookDurationSeconds is nil")
	}
	if m.UpstreamRequestsTotal == nil {
		t.Error("UpstreamRequestsTotal is nil")
	}
	if m.UpstreamDurationSeconds == nil {
		t.Error("UpstreamDurationSeconds is nil")
	}
	if m.TelegramSendsTotal == nil {
		t.Error("TelegramSendsTotal is nil")
	}
	if m.HTTPErrorsTotal == nil {
		t.Error("HTTPErrorsTotal is nil")
	}
}

func TestRecordWebhook(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordWebhook("start", "success", 0.5)
	m.RecordWebhook("page", "error", 1.0)
	m.RecordWebhook("play", "success", 0.1)
	m.RecordWebhook("unknown", "ignored", 0)
}

func TestRecordUpstream(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordUpstream("episodes", "success", 1.5)
	m.RecordUpstream("token", "error", 2.0)
	m.RecordUpstream("playback", "success", 0.3)
}

func TestRecordTelegramSend(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordTelegramSend("success")
	m.RecordTelegramSend("error")
}

func TestRecordHTTPError(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordHTTPError("bad_secret")
	m.RecordHTTPError("bad_payload")
	m.RecordHTTPError("panic")
}
