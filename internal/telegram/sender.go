package telegram

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	"github.com/mymmrac/telego/telegoutil"

	"github.com/cinegram/cinegram/internal/bot"
	"github.com/cinegram/cinegram/internal/logger"
	"github.com/cinegram/cinegram/internal/metrics"
)

// Sender sends bot replies through the Telegram Bot API
type Sender struct {
	bot     *telego.Bot
	metrics *metrics.Metrics
	log     *logger.Logger
}

// NewSender creates a Telegram sender for the given bot token
func NewSender(token string, m *metrics.Metrics, log *logger.Logger) (*Sender, error) {
	tgBot, err := telego.NewBot(token, telego.WithDefaultLogger(false, false))
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Sender{
		bot:     tgBot,
		metrics: m,
		log:     log.WithModule("telegram"),
	}, nil
}

// Send delivers one reply, attaching the inline keyboard when present
func (s *Sender) Send(ctx context.Context, reply *bot.Reply) error {
	params := telegoutil.Message(telegoutil.ID(reply.ChatID), reply.Text)

	if len(reply.Keyboard) > 0 {
		rows := make([][]telego.InlineKeyboardButton, 0, len(reply.Keyboard))
		for _, row := range reply.Keyboard {
			buttons := make([]telego.InlineKeyboardButton, 0, len(row))
			for _, b := range row {
				buttons = append(buttons, telegoutil.InlineKeyboardButton(b.Label).WithCallbackData(b.Callback))
			}
			rows = append(rows, buttons)
		}
		params = params.WithReplyMarkup(telegoutil.InlineKeyboard(rows...))
	}

	if _, err := s.bot.SendMessage(ctx, params); err != nil {
		s.metrics.RecordTelegramSend("error")
		s.log.WithError(err).WithField("chat_id", reply.ChatID).ErrorContext(ctx, "Failed to send message")
		return fmt.Errorf("failed to send message: %w", err)
	}

	s.metrics.RecordTelegramSend("success")
	return nil
}

// RegisterWebhook points the bot's webhook at the given URL
func (s *Sender) RegisterWebhook(ctx context.Context, url string) error {
	if err := s.bot.SetWebhook(ctx, &telego.SetWebhookParams{URL: url}); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	s.log.WithField("url", url).InfoContext(ctx, "Webhook registered")
	return nil
}
