package handlers

import (
	"context"
	"fmt"
	"slices"

	"github.com/futig/question-generator/internal/entity"
	"github.com/futig/question-generator/internal/telegram/keyboard"
	"github.com/futig/question-generator/internal/telegram/render"
	"github.com/futig/question-generator/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// viewCategories maps the selection views to their step
var viewCategories = map[state.View]entity.Category{
	state.ViewDomains:       entity.CategoryDomain,
	state.ViewStakeholders:  entity.CategoryStakeholder,
	state.ViewMetrics:       entity.CategoryMetric,
	state.ViewQuestionTypes: entity.CategoryQuestionType,
}

// viewOf returns the selection view of a step
func viewOf(cat entity.Category) state.View {
	for view, c := range viewCategories {
		if c == cat {
			return view
		}
	}
	return state.ViewDomains
}

// Screen draws the current view of a user and moves between views
type Screen struct {
	sessionUC     SessionUsecase
	stateManager  *state.Manager
	keyboard      *keyboard.Builder
	messageSender *MessageSender
}

// NewScreen creates a Screen
func NewScreen(
	sessionUC SessionUsecase,
	stateManager *state.Manager,
	kb *keyboard.Builder,
	messageSender *MessageSender,
) *Screen {
	return &Screen{
		sessionUC:     sessionUC,
		stateManager:  stateManager,
		keyboard:      kb,
		messageSender: messageSender,
	}
}

// Render builds the text and keyboard of a view
func (s *Screen) Render(
	ctx context.Context,
	st *entity.SessionState,
	view state.View,
) (string, tgbotapi.InlineKeyboardMarkup, error) {
	switch view {
	case state.ViewTimeline:
		return render.RenderTimeline(st.Timeline), s.keyboard.TimelineKeyboard(st.Timeline), nil

	case state.ViewResults:
		questions, err := s.sessionUC.GetQuestions(ctx, st.ID)
		if err != nil {
			return "", tgbotapi.InlineKeyboardMarkup{}, fmt.Errorf("get questions: %w", err)
		}
		return render.RenderResults(questions, st.IncludePersonal), s.keyboard.ResultsKeyboard(st), nil
	}

	cat, ok := viewCategories[view]
	if !ok {
		return "", tgbotapi.InlineKeyboardMarkup{}, fmt.Errorf("unknown view %q", view)
	}

	step := st.Step(cat)
	if step == nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, fmt.Errorf("session has no %s step", cat)
	}
	return render.RenderStep(step), s.keyboard.StepKeyboard(step), nil
}

// Show draws a view. It edits messageID in place when set and sends a new
// message otherwise, remembering it for later edits.
func (s *Screen) Show(
	ctx context.Context,
	tgSession *state.TelegramSession,
	chatID int64,
	messageID int,
	st *entity.SessionState,
	view state.View,
) error {
	text, markup, err := s.Render(ctx, st, view)
	if err != nil {
		return err
	}

	if messageID != 0 {
		if err := s.messageSender.Edit(ctx, chatID, messageID, text, markup); err != nil {
			return fmt.Errorf("edit view message: %w", err)
		}
	} else {
		sent, err := s.messageSender.Send(ctx, chatID, text, markup)
		if err != nil {
			return fmt.Errorf("send view message: %w", err)
		}
		messageID = sent.MessageID
	}

	_, err = s.stateManager.UpdateStateData(ctx, tgSession.UserID, func(d *state.StateData) {
		d.View = view
		d.LastMessageID = messageID
	})
	return err
}

// Move returns the view next to current in the given direction. Entering
// the results view generates the questions.
func (s *Screen) Move(ctx context.Context, sessionID string, current state.View, forward bool) (state.View, error) {
	idx := slices.Index(state.Views, current)
	if idx < 0 {
		return "", fmt.Errorf("unknown view %q", current)
	}

	if forward {
		idx++
	} else {
		idx--
	}
	if idx < 0 || idx >= len(state.Views) {
		return current, nil
	}

	next := state.Views[idx]
	if next == state.ViewResults {
		if _, err := s.sessionUC.Generate(ctx, sessionID); err != nil {
			return "", fmt.Errorf("generate questions: %w", err)
		}
	}

	return next, nil
}

// Finish cancels the generation session and forgets the user
func (s *Screen) Finish(ctx context.Context, userID, chatID int64, sessionID string) {
	if sessionID != "" {
		if err := s.sessionUC.CancelSession(ctx, sessionID); err != nil {
			ctxzap.Warn(ctx, "failed to cancel session",
				zap.Error(err),
				zap.String("session_id", sessionID),
			)
		}
	}

	if err := s.stateManager.DeleteSession(ctx, userID); err != nil {
		ctxzap.Error(ctx, "failed to delete telegram session",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
	}

	s.messageSender.Send(ctx, chatID, render.MsgSessionFinished, nil)
}
