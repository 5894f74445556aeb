// share — «share intent»: передача текста поста во внешний канал.
// Результат для вызывающего не наблюдаем: ошибки только логируются.
package share

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SonGokuFan1996/NeuroNet/internal/models"
	"github.com/SonGokuFan1996/NeuroNet/internal/pkg/log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sharer передаёт свободный текст во внешний механизм шаринга.
type Sharer interface {
	Share(ctx context.Context, text string) error
}

// PostText — текст, который уходит при шаринге поста.
func PostText(p models.Post) string {
	return "Check out this post on NeuroNet:\n\n" + p.Content
}

// Log — шарер без внешнего канала: пишет текст в лог.
type Log struct{}

func (Log) Share(ctx context.Context, text string) error {
	log.Op(ctx, "share.Log").Info("post_shared", slog.Int("len", len(text)))
	return nil
}

// messageSender — часть tgbotapi.BotAPI, нужная шареру.
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram отправляет текст в чат через Bot API.
type Telegram struct {
	bot    messageSender
	chatID int64
}

// NewTelegram создаёт клиента Bot API (проверяет токен вызовом getMe).
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("share.NewTelegram: %w", err)
	}

	return &Telegram{bot: bot, chatID: chatID}, nil
}

// NewTelegramWithEndpoint — то же с нестандартным адресом API (self-hosted Bot API, тесты).
// endpoint — формат вида "https://host/bot%s/%s".
func NewTelegramWithEndpoint(token, endpoint string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("share.NewTelegram: %w", err)
	}

	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) Share(ctx context.Context, text string) error {
	const op = "share.Telegram"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.DisableWebPagePreview = true

	sent, err := t.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Op(ctx, op).Info("post_shared", slog.Int64("chat_id", t.chatID), slog.Int("message_id", sent.MessageID))

	return nil
}

var (
	_ Sharer = Log{}
	_ Sharer = (*Telegram)(nil)
)
