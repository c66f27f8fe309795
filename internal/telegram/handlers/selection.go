package handlers

import (
	"context"

	"github.com/futig/question-generator/internal/telegram/render"
)

// SelectHandler answers free text during the selection steps, which are
// driven by buttons only
type SelectHandler struct {
	BaseHandler
}

// NewSelectHandler creates a new selection step handler
func NewSelectHandler(messageSender *MessageSender) *SelectHandler {
	return &SelectHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateSelect,
			messageSender: messageSender,
		},
	}
}

// Handle implements Handler
func (h *SelectHandler) Handle(ctx context.Context, msg *Message) error {
	h.sendMessage(ctx, msg.ChatID, render.MsgSelectHint, nil)
	return nil
}
