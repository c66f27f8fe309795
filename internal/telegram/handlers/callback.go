package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/futig/question-generator/internal/entity"
	"github.com/futig/question-generator/internal/pkg/logger"
	"github.com/futig/question-generator/internal/telegram/keyboard"
	"github.com/futig/question-generator/internal/telegram/render"
	"github.com/futig/question-generator/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CallbackHandler handles all inline button clicks
type CallbackHandler struct {
	BaseHandler
	sessionUC    SessionUsecase
	stateManager *state.Manager
	keyboard     *keyboard.Builder
	screen       *Screen
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(
	messageSender *MessageSender,
	stateManager *state.Manager,
	sessionUC SessionUsecase,
	kb *keyboard.Builder,
	screen *Screen,
) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateCallback,
			messageSender: messageSender,
		},
		sessionUC:    sessionUC,
		stateManager: stateManager,
		keyboard:     kb,
		screen:       screen,
	}
}

// Handle implements Handler
func (h *CallbackHandler) Handle(ctx context.Context, msg *Message) error {
	data, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		return fmt.Errorf("parse callback: %w", err)
	}

	ctx = logger.AddFields(ctx,
		zap.String("callback_action", data.Action),
		zap.String("callback_value", data.Value),
	)

	if data.Action == keyboard.ActionAction && data.Value == "start" {
		return h.handleStart(ctx, msg)
	}

	tgSession, err := h.stateManager.GetSession(ctx, msg.UserID)
	if err != nil || tgSession.SessionID == "" {
		h.sendMessage(ctx, msg.ChatID, render.ErrNoSession, nil)
		return nil
	}
	ctx = logger.WithSession(ctx, tgSession.SessionID)

	switch data.Action {
	case keyboard.ActionOption:
		err = h.handleOption(ctx, msg, tgSession, data.Value)
	case keyboard.ActionTimeline:
		err = h.handleTimeline(ctx, msg, tgSession, data.Value)
	case keyboard.ActionNav:
		err = h.handleNav(ctx, msg, tgSession, data.Value == "next")
	case keyboard.ActionExports:
		err = h.handleExports(ctx, msg, tgSession, entity.ExportKind(data.Value))
	case keyboard.ActionDownload:
		err = h.handleDownload(ctx, msg, tgSession, data.Value)
	case keyboard.ActionConfirm:
		err = h.handleConfirm(ctx, msg, tgSession, data.Value)
	case keyboard.ActionAction:
		err = h.handleAction(ctx, msg, tgSession, data.Value)
	default:
		ctxzap.Warn(ctx, "unknown callback action")
		h.sendMessage(ctx, msg.ChatID, render.ErrInvalidState, nil)
		return nil
	}

	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
	}
	return nil
}

// handleStart opens a new generation session, replacing any previous one
func (h *CallbackHandler) handleStart(ctx context.Context, msg *Message) error {
	ctx = logger.WithAction(ctx, "start_session")

	st, err := h.sessionUC.StartSession(ctx)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	previous, err := h.stateManager.StartSession(ctx, msg.UserID, st.ID)
	if err != nil {
		return err
	}
	if previous != "" && previous != st.ID {
		if err := h.sessionUC.CancelSession(ctx, previous); err != nil {
			ctxzap.Debug(ctx, "previous session already gone",
				zap.String("previous_session_id", previous),
				zap.Error(err),
			)
		}
	}

	tgSession, err := h.stateManager.GetSession(ctx, msg.UserID)
	if err != nil {
		return err
	}

	ctxzap.Info(ctx, "generation session started",
		zap.String("session_id", st.ID),
		zap.Int64("user_id", msg.UserID),
	)

	return h.screen.Show(ctx, tgSession, msg.ChatID, 0, st, state.ViewDomains)
}

// handleOption toggles one candidate of the step encoded in the callback
func (h *CallbackHandler) handleOption(ctx context.Context, msg *Message, tgSession *state.TelegramSession, value string) error {
	ref, err := keyboard.ParseOption(value)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}
	cat := ref.Category

	st, err := h.sessionUC.GetSession(ctx, tgSession.SessionID)
	if err != nil {
		return err
	}

	candidate, err := ref.Resolve(st.Step(cat))
	if err != nil {
		return err
	}

	st, err = h.sessionUC.ToggleOption(ctx, tgSession.SessionID, cat, candidate)
	if err != nil {
		return err
	}

	return h.screen.Show(ctx, tgSession, msg.ChatID, msg.MessageID, st, viewOf(cat))
}

// handleTimeline shifts the timeline, clamped to its bounds
func (h *CallbackHandler) handleTimeline(ctx context.Context, msg *Message, tgSession *state.TelegramSession, value string) error {
	delta, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%w: timeline delta %q", entity.ErrInvalidParameter, value)
	}

	st, err := h.sessionUC.GetSession(ctx, tgSession.SessionID)
	if err != nil {
		return err
	}

	months := min(max(st.Timeline.Months+delta, st.Timeline.Min), st.Timeline.Max)
	if months != st.Timeline.Months {
		st, err = h.sessionUC.SetTimeline(ctx, tgSession.SessionID, months)
		if err != nil {
			return err
		}
	}

	return h.screen.Show(ctx, tgSession, msg.ChatID, msg.MessageID, st, state.ViewTimeline)
}

// handleNav moves one view forward or back
func (h *CallbackHandler) handleNav(ctx context.Context, msg *Message, tgSession *state.TelegramSession, forward bool) error {
	view, err := h.screen.Move(ctx, tgSession.SessionID, tgSession.StateData.View, forward)
	if err != nil {
		return err
	}

	if view != state.ViewResults {
		if _, err := h.stateManager.UpdateStateData(ctx, msg.UserID, func(d *state.StateData) {
			d.EditMode = false
		}); err != nil {
			return err
		}
	}

	st, err := h.sessionUC.GetSession(ctx, tgSession.SessionID)
	if err != nil {
		return err
	}

	return h.screen.Show(ctx, tgSession, msg.ChatID, msg.MessageID, st, view)
}

// handleExports offers the formats of one export kind
func (h *CallbackHandler) handleExports(ctx context.Context, msg *Message, tgSession *state.TelegramSession, kind entity.ExportKind) error {
	st, err := h.sessionUC.GetSession(ctx, tgSession.SessionID)
	if err != nil {
		return err
	}

	h.sendMessage(ctx, msg.ChatID,
		fmt.Sprintf(render.MsgChooseFormat, render.ExportLabel(kind)),
		h.keyboard.FormatKeyboard(kind, st.Exports),
	)
	return nil
}

// handleDownload renders an export and sends it as a document
func (h *CallbackHandler) handleDownload(ctx context.Context, msg *Message, tgSession *state.TelegramSession, name string) error {
	ctx = logger.WithAction(ctx, "download")

	file, err := h.sessionUC.Export(ctx, tgSession.SessionID, name)
	if err != nil {
		return err
	}

	if err := h.messageSender.SendDocument(ctx, msg.ChatID, file); err != nil {
		return err
	}

	ctxzap.Info(ctx, "export sent",
		zap.String("file", file.Name),
		zap.Int("size", len(file.Data)),
	)
	return nil
}

// handleConfirm completes or aborts a pending destructive action
func (h *CallbackHandler) handleConfirm(ctx context.Context, msg *Message, tgSession *state.TelegramSession, value string) error {
	if value == "cancel" && tgSession.StateData.PendingConfirmation == "cancel" {
		h.screen.Finish(ctx, msg.UserID, msg.ChatID, tgSession.SessionID)
		return nil
	}

	if _, err := h.stateManager.UpdateStateData(ctx, msg.UserID, func(d *state.StateData) {
		d.PendingConfirmation = ""
	}); err != nil {
		return err
	}

	st, err := h.sessionUC.GetSession(ctx, tgSession.SessionID)
	if err != nil {
		return err
	}

	return h.screen.Show(ctx, tgSession, msg.ChatID, 0, st, tgSession.StateData.View)
}

// handleAction handles the results view buttons
func (h *CallbackHandler) handleAction(ctx context.Context, msg *Message, tgSession *state.TelegramSession, value string) error {
	switch value {
	case "edit":
		if _, err := h.stateManager.UpdateStateData(ctx, msg.UserID, func(d *state.StateData) {
			d.EditMode = true
		}); err != nil {
			return err
		}
		h.sendMessage(ctx, msg.ChatID, render.MsgEditPrompt, nil)
		return nil

	case "reset_edit":
		if _, err := h.sessionUC.ClearOverride(ctx, tgSession.SessionID); err != nil {
			return err
		}
		h.sendMessage(ctx, msg.ChatID, render.MsgEditCleared, nil)
		return h.refreshResults(ctx, msg, tgSession)

	case "personal":
		st, err := h.sessionUC.GetSession(ctx, tgSession.SessionID)
		if err != nil {
			return err
		}
		if _, err := h.sessionUC.SetIncludePersonal(ctx, tgSession.SessionID, !st.IncludePersonal); err != nil {
			return err
		}
		return h.refreshResults(ctx, msg, tgSession)

	case "finish":
		if _, err := h.stateManager.UpdateStateData(ctx, msg.UserID, func(d *state.StateData) {
			d.PendingConfirmation = "cancel"
		}); err != nil {
			return err
		}
		h.sendMessage(ctx, msg.ChatID, render.MsgConfirmCancel, h.keyboard.ConfirmCancelKeyboard())
		return nil

	default:
		ctxzap.Warn(ctx, "unknown button action")
		h.sendMessage(ctx, msg.ChatID, render.ErrInvalidState, nil)
		return nil
	}
}

func (h *CallbackHandler) refreshResults(ctx context.Context, msg *Message, tgSession *state.TelegramSession) error {
	st, err := h.sessionUC.GetSession(ctx, tgSession.SessionID)
	if err != nil {
		return err
	}
	return h.screen.Show(ctx, tgSession, msg.ChatID, msg.MessageID, st, state.ViewResults)
}
