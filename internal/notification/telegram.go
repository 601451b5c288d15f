package notification

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nugraharzk/room-booking-solution/internal/domain"
	"github.com/wb-go/wbf/logger"
)

const timeLayout = "02.01.2006 15:04"

// TelegramNotifier pushes booking activity to a single ops chat. With an
// empty token it degrades to a no-op and only logs.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger logger.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger logger.Logger) (*TelegramNotifier, error) {
	if token == "" {
		logger.Warn("telegram bot token is empty, notifications disabled")
		return &TelegramNotifier{bot: nil, chatID: chatID, logger: logger}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: bot, chatID: chatID, logger: logger}, nil
}

func (n *TelegramNotifier) NotifyBookingCreated(ctx context.Context, b *domain.Booking, roomName string) {
	n.send(ctx, fmt.Sprintf(
		"*New booking*\n\nRoom: %s\nWindow (UTC): %s - %s\nAwaiting confirmation.",
		roomName,
		b.TimeRange().Start().Format(timeLayout),
		b.TimeRange().End().Format(timeLayout),
	))
}

func (n *TelegramNotifier) NotifyBookingConfirmed(ctx context.Context, b *domain.Booking, roomName string) {
	n.send(ctx, fmt.Sprintf(
		"*Booking confirmed*\n\nRoom: %s\nWindow (UTC): %s - %s",
		roomName,
		b.TimeRange().Start().Format(timeLayout),
		b.TimeRange().End().Format(timeLayout),
	))
}

func (n *TelegramNotifier) NotifyBookingCancelled(ctx context.Context, b *domain.Booking, roomName string) {
	n.send(ctx, fmt.Sprintf(
		"*Booking cancelled*\n\nRoom: %s\nWindow (UTC): %s - %s",
		roomName,
		b.TimeRange().Start().Format(timeLayout),
		b.TimeRange().End().Format(timeLayout),
	))
}

func (n *TelegramNotifier) send(ctx context.Context, text string) {
	if n.bot == nil {
		n.logger.Debug("notification skipped (bot disabled)", logger.String("text", text))
		return
	}

	if n.chatID == 0 {
		n.logger.Debug("notification skipped (no chat_id)", logger.String("text", text))
		return
	}

	if err := ctx.Err(); err != nil {
		n.logger.Debug("notification skipped (context cancelled)",
			logger.Int64("chat_id", n.chatID),
		)
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "Markdown"

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("failed to send telegram notification",
			logger.Int64("chat_id", n.chatID),
			logger.String("error", err.Error()),
		)
	}
}
