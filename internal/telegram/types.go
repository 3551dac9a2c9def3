// Package telegram adapts Telegram webhook updates and outbound sends
// to the bot's messenger-neutral event and reply types.
package telegram

import (
	"github.com/cinegram/cinegram/internal/bot"
)

// Update is an incoming Telegram webhook update, trimmed to the fields
// the bot reads
type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

// Message is a Telegram chat message
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      *Chat  `json:"chat,omitempty"`
	Date      int64  `json:"date"`
	Text      string `json:"text,omitempty"`
}

// User is a Telegram user
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// Chat is a Telegram chat. Private chats carry the peer's name.
type Chat struct {
	ID        int64  `json:"id"`
	Type      string `json:"type,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// CallbackQuery is an inline keyboard button press
type CallbackQuery struct {
	ID      string   `json:"id"`
	From    *User    `json:"from,omitempty"`
	Message *Message `json:"message,omitempty"`
	Data    string   `json:"data,omitempty"`
}

// Event converts the update into a bot event. A callback query wins
// over a plain message. Returns false when the update carries nothing
// the bot can act on, e.g. no chat to reply to.
func (u *Update) Event() (bot.Event, bool) {
	if u.CallbackQuery != nil {
		msg := u.CallbackQuery.Message
		if msg == nil || msg.Chat == nil {
			return bot.Event{}, false
		}
		return bot.Event{
			ChatID:       msg.Chat.ID,
			FirstName:    msg.Chat.FirstName,
			LastName:     msg.Chat.LastName,
			CallbackData: u.CallbackQuery.Data,
			IsCallback:   true,
		}, true
	}

	if u.Message != nil {
		if u.Message.Chat == nil {
			return bot.Event{}, false
		}
		return bot.Event{
			ChatID:    u.Message.Chat.ID,
			FirstName: u.Message.Chat.FirstName,
			LastName:  u.Message.Chat.LastName,
			Text:      u.Message.Text,
		}, true
	}

	return bot.Event{}, false
}
