package handlers

import (
	"context"
	"slices"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Handler routes. Button presses go to CALLBACK; text goes to RESULTS while
// the results view is open and to SELECT otherwise.
const (
	HandlerStateCallback = "CALLBACK"
	HandlerStateSelect   = "SELECT"
	HandlerStateResults  = "RESULTS"
)

var handlerStates = []string{HandlerStateCallback, HandlerStateSelect, HandlerStateResults}

// Message is a text message or button press reduced to what handlers read
type Message struct {
	ChatID       int64
	UserID       int64
	MessageID    int
	Text         string
	CallbackData string
	CallbackID   string
}

// TextMessage normalizes an incoming text message
func TextMessage(m *tgbotapi.Message) *Message {
	msg := &Message{
		ChatID:    m.Chat.ID,
		MessageID: m.MessageID,
		Text:      m.Text,
	}
	if m.From != nil {
		msg.UserID = m.From.ID
	}
	return msg
}

// CallbackMessage normalizes a button press. MessageID is the message that
// carries the pressed keyboard.
func CallbackMessage(q *tgbotapi.CallbackQuery) *Message {
	return &Message{
		ChatID:       q.Message.Chat.ID,
		UserID:       q.From.ID,
		MessageID:    q.Message.MessageID,
		CallbackData: q.Data,
		CallbackID:   q.ID,
	}
}

type Handler interface {
	Handle(ctx context.Context, msg *Message) error
	GetState() string
}

// BaseHandler carries the route name and the sender shared by handlers
type BaseHandler struct {
	stateName     string
	messageSender *MessageSender
}

func (h *BaseHandler) GetState() string {
	return h.stateName
}

// sendMessage sends text and logs failures inside the sender
func (h *BaseHandler) sendMessage(ctx context.Context, chatID int64, text string, markup interface{}) {
	if h.messageSender == nil {
		return
	}
	_, _ = h.messageSender.Send(ctx, chatID, text, markup)
}

func IsValidState(state string) bool {
	return slices.Contains(handlerStates, state)
}
