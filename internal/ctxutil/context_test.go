package ctxutil

import (
	"context"
	"testing"
	"time"
)

func TestContextValues(t *testing.T) {
	ctx := context.Background()

	t.Run("chat id", func(t *testing.T) {
		if _, ok := GetChatID(ctx); ok {
			t.Error("expected no chat id on empty context")
		}
		withID := WithChatID(ctx, 42)
		id, ok := GetChatID(withID)
		if !ok || id != 42 {
			t.Errorf("expected chat id 42, got %d (ok=%v)", id, ok)
		}
	})

	t.Run("update id", func(t *testing.T) {
		withID := WithUpdateID(ctx, 7)
		id, ok := GetUpdateID(withID)
		if !ok || id != 7 {
			t.Errorf("expected update id 7, got %d (ok=%v)", id, ok)
		}
	})

	t.Run("request id", func(t *testing.T) {
		withID := WithRequestID(ctx, "req-1")
		id, ok := GetRequestID(withID)
		if !ok || id != "req-1" {
			t.Errorf("expected request id req-1, got %s (ok=%v)", id, ok)
		}
	})
}

func TestPreserveTracing(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	parent = WithChatID(parent, 42)
	parent = WithRequestID(parent, "req-1")

	detached := PreserveTracing(parent)
	cancel()

	select {
	case <-detached.Done():
		t.Fatal("detached context should not be canceled with its parent")
	case <-time.After(10 * time.Millisecond):
	}

	if id, ok := GetChatID(detached); !ok || id != 42 {
		t.Errorf("expected chat id to survive detachment, got %d (ok=%v)", id, ok)
	}
	if id, ok := GetRequestID(detached); !ok || id != "req-1" {
		t.Errorf("expected request id to survive detachment, got %s (ok=%v)", id, ok)
	}
}
