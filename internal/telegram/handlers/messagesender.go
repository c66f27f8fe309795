package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/futig/question-generator/internal/entity"
	pkgRetry "github.com/futig/question-generator/internal/pkg/retry"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// messageNotModified is what Telegram answers when an edit changes nothing
const messageNotModified = "Bad Request: message is not modified"

// Telegram is the subset of the bot API used for sending
type Telegram interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// MessageSender provides centralized message sending with retries
type MessageSender struct {
	bot   Telegram
	retry *pkgRetry.RetryConfig
}

// NewMessageSender creates a new MessageSender
func NewMessageSender(bot Telegram, retryCfg *pkgRetry.RetryConfig) *MessageSender {
	if retryCfg == nil {
		retryCfg = pkgRetry.DefaultRetryConfig()
	}
	return &MessageSender{
		bot:   bot,
		retry: retryCfg,
	}
}

// Send sends a message to the specified chat
func (s *MessageSender) Send(ctx context.Context, chatID int64, text string, markup interface{}) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	sent, err := s.send(ctx, msg)
	if err != nil {
		ctxzap.Error(ctx, "failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		return tgbotapi.Message{}, err
	}

	return sent, nil
}

// Edit replaces the text and keyboard of an existing message
func (s *MessageSender) Edit(
	ctx context.Context,
	chatID int64,
	messageID int,
	text string,
	markup tgbotapi.InlineKeyboardMarkup,
) error {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup)

	if _, err := s.send(ctx, edit); err != nil {
		if isNotModified(err) {
			return nil
		}
		ctxzap.Error(ctx, "failed to edit message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
		)
		return err
	}

	return nil
}

// SendDocument sends a rendered export as a file
func (s *MessageSender) SendDocument(ctx context.Context, chatID int64, file *entity.ExportFile) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  file.Name,
		Bytes: file.Data,
	})

	if _, err := s.send(ctx, doc); err != nil {
		return fmt.Errorf("send document %s: %w", file.Name, err)
	}

	return nil
}

// send retries transient failures. Telegram rejections (4xx) are final.
func (s *MessageSender) send(ctx context.Context, c tgbotapi.Chattable) (tgbotapi.Message, error) {
	var sent tgbotapi.Message

	err := s.retry.Do(ctx, func() error {
		msg, err := s.bot.Send(c)
		if err != nil {
			var apiErr *tgbotapi.Error
			if errors.As(err, &apiErr) && apiErr.Code >= 400 && apiErr.Code < 500 && apiErr.Code != 429 {
				return retry.Unrecoverable(err)
			}
			return err
		}
		sent = msg
		return nil
	}, func(attempt uint, err error) {
		ctxzap.Warn(ctx, "telegram send failed, retrying",
			zap.Uint("attempt", attempt+1),
			zap.Error(err),
		)
	})

	return sent, err
}

func isNotModified(err error) bool {
	var apiErr *tgbotapi.Error
	return errors.As(err, &apiErr) && apiErr.Message == messageNotModified
}
