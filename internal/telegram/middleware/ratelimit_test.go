package middleware

import (
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	sent []tgbotapi.Chattable
}

func (s *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.sent = append(s.sent, c)
	return tgbotapi.Message{}, nil
}

func messageUpdate(userID int64) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: userID * 10},
		Text: "hi",
	}}
}

func TestRateLimiter_BurstThenRefill(t *testing.T) {
	sender := &recordingSender{}
	rl := NewRateLimiterMiddleware(60, 2, zap.NewNop(), sender)

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	passed := 0
	next := func(tgbotapi.Update) { passed++ }

	for i := 0; i < 4; i++ {
		rl.Handle(messageUpdate(1), next)
	}
	assert.Equal(t, 2, passed)
	require.Len(t, sender.sent, 1, "one warning per interval")

	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(10), msg.ChatID)

	// 60 per minute refills one token per second.
	clock = clock.Add(time.Second)
	rl.Handle(messageUpdate(1), next)
	assert.Equal(t, 3, passed)

	// Other users have their own bucket.
	rl.Handle(messageUpdate(2), next)
	assert.Equal(t, 4, passed)
}

func TestRateLimiter_WarningEscalates(t *testing.T) {
	sender := &recordingSender{}
	rl := NewRateLimiterMiddleware(1, 1, zap.NewNop(), sender)

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }
	next := func(tgbotapi.Update) {}

	rl.Handle(messageUpdate(1), next)
	for i := 0; i < 3; i++ {
		rl.Handle(messageUpdate(1), next)
		clock = clock.Add(31 * time.Second)
	}

	require.Len(t, sender.sent, 2)
	second := sender.sent[1].(tgbotapi.MessageConfig)
	assert.Contains(t, second.Text, "30 seconds")
}

func TestRateLimiter_UnknownUpdatePasses(t *testing.T) {
	rl := NewRateLimiterMiddleware(1, 1, zap.NewNop(), nil)
	passed := 0
	for i := 0; i < 3; i++ {
		rl.Handle(tgbotapi.Update{UpdateID: i}, func(tgbotapi.Update) { passed++ })
	}
	assert.Equal(t, 3, passed)
}
