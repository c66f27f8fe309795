package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/futig/question-generator/internal/entity"
	"github.com/futig/question-generator/internal/pkg/logger"
	"github.com/futig/question-generator/internal/telegram/render"
	"github.com/futig/question-generator/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ResultsHandler handles text messages while the results view is open.
// In edit mode a "<row> <text>" message overrides one generated question.
type ResultsHandler struct {
	BaseHandler
	sessionUC    SessionUsecase
	stateManager *state.Manager
	screen       *Screen
}

// NewResultsHandler creates a new results handler
func NewResultsHandler(
	messageSender *MessageSender,
	stateManager *state.Manager,
	sessionUC SessionUsecase,
	screen *Screen,
) *ResultsHandler {
	return &ResultsHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateResults,
			messageSender: messageSender,
		},
		sessionUC:    sessionUC,
		stateManager: stateManager,
		screen:       screen,
	}
}

// Handle implements Handler
func (h *ResultsHandler) Handle(ctx context.Context, msg *Message) error {
	tgSession, err := h.stateManager.GetSession(ctx, msg.UserID)
	if err != nil {
		return err
	}

	if !tgSession.StateData.EditMode {
		h.sendMessage(ctx, msg.ChatID, render.MsgSelectHint, nil)
		return nil
	}

	ctx = logger.WithAction(logger.WithSession(ctx, tgSession.SessionID), "override_row")

	req, err := ParseOverride(msg.Text)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	if _, err := h.sessionUC.SetOverride(ctx, tgSession.SessionID, req); err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	tgSession, err = h.stateManager.UpdateStateData(ctx, msg.UserID, func(d *state.StateData) {
		d.EditMode = false
	})
	if err != nil {
		return err
	}

	ctxzap.Info(ctx, "row overridden", zap.Int("row", *req.Row))
	h.sendMessage(ctx, msg.ChatID, fmt.Sprintf(render.MsgEditSaved, *req.Row), nil)

	st, err := h.sessionUC.GetSession(ctx, tgSession.SessionID)
	if err != nil {
		return err
	}
	return h.screen.Show(ctx, tgSession, msg.ChatID, 0, st, state.ViewResults)
}

// ParseOverride reads a "<row> <question text>" message
func ParseOverride(text string) (*entity.OverrideRequest, error) {
	fields := strings.SplitN(strings.TrimSpace(text), " ", 2)
	if len(fields) != 2 || strings.TrimSpace(fields[1]) == "" {
		return nil, fmt.Errorf("%w: expected \"<row> <text>\"", entity.ErrInvalidParameter)
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: row %q is not a number", entity.ErrInvalidParameter, fields[0])
	}

	return &entity.OverrideRequest{
		Row:      &row,
		Question: strings.TrimSpace(fields[1]),
	}, nil
}
