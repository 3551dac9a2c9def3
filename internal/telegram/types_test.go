package telegram

import (
	"encoding/json"
	"testing"
)

func TestUpdateEvent(t *testing.T) {
	t.Run("message update", func(t *testing.T) {
		u := Update{
			UpdateID: 7,
			Message: &Message{
				Chat: &Chat{ID: 42, Type: "private", FirstName: "A", LastName: "B"},
				Text: "/start",
			},
		}
		ev, ok := u.Event()
		if !ok {
			t.Fatal("expected an event")
		}
		if ev.ChatID != 42 || ev.Text != "/start" || ev.IsCallback {
			t.Errorf("unexpected event: %+v", ev)
		}
		if ev.FirstName != "A" || ev.LastName != "B" {
			t.Errorf("unexpected names: %+v", ev)
		}
	})

	t.Run("callback update wins over message", func(t *testing.T) {
		u := Update{
			Message: &Message{Chat: &Chat{ID: 1}, Text: "/start"},
			CallbackQuery: &CallbackQuery{
				Data:    "PLAY::101",
				Message: &Message{Chat: &Chat{ID: 42, FirstName: "A"}},
			},
		}
		ev, ok := u.Event()
		if !ok {
			t.Fatal("expected an event")
		}
		if !ev.IsCallback || ev.CallbackData != "PLAY::101" {
			t.Errorf("unexpected event: %+v", ev)
		}
		if ev.ChatID != 42 {
			t.Errorf("expected callback chat id, got %d", ev.ChatID)
		}
	})

	t.Run("callback without message has no event", func(t *testing.T) {
		u := Update{CallbackQuery: &CallbackQuery{Data: "PLAY::101"}}
		if _, ok := u.Event(); ok {
			t.Error("expected no event")
		}
	})

	t.Run("message without chat has no event", func(t *testing.T) {
		u := Update{Message: &Message{Text: "/start"}}
		if _, ok := u.Event(); ok {
			t.Error("expected no event")
		}
	})

	t.Run("empty update has no event", func(t *testing.T) {
		if _, ok := (&Update{UpdateID: 1}).Event(); ok {
			t.Error("expected no event")
		}
	})
}

func TestUpdateDecoding(t *testing.T) {
	raw := `{
		"update_id": 123,
		"callback_query": {
			"id": "cbq-1",
			"from": {"id": 9, "first_name": "A"},
			"message": {
				"message_id": 55,
				"chat": {"id": 42, "type": "private", "first_name": "A", "last_name": "B"},
				"date": 1700000000,
				"text": "Welcome A B"
			},
			"data": "PAGE::2"
		}
	}`

	var u Update
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if u.UpdateID != 123 {
		t.Errorf("expected update id 123, got %d", u.UpdateID)
	}
	ev, ok := u.Event()
	if !ok {
		t.Fatal("expected an event")
	}
	if ev.ChatID != 42 || ev.CallbackData != "PAGE::2" || !ev.IsCallback {
		t.Errorf("unexpected event: %+v", ev)
	}
}
