package handlers

import (
	"context"
	"errors"

	"github.com/futig/question-generator/internal/entity"
	"github.com/futig/question-generator/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity int

const (
	SeverityWarning ErrorSeverity = iota
	SeverityError
)

// String returns string representation of error severity
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// HandlerError represents a structured error with user message and logging info
type HandlerError struct {
	Err         error
	UserMessage string
	LogMessage  string
	Severity    ErrorSeverity
}

// userErrors are mistakes the user can fix; everything else is ours
var userErrors = []struct {
	err error
	log string
}{
	{entity.ErrSessionNotFound, "session not found"},
	{entity.ErrTooManyDomains, "too many domains"},
	{entity.ErrTimelineOutOfRange, "timeline out of range"},
	{entity.ErrRowOutOfRange, "row out of range"},
	{entity.ErrNotGenerated, "questions not generated"},
	{entity.ErrPersonalExcluded, "personal questions excluded"},
	{entity.ErrUnknownOption, "stale option"},
	{entity.ErrInvalidParameter, "invalid parameter"},
	{entity.ErrMissingField, "missing field"},
}

// classifyHandlerError analyzes an error and returns a HandlerError with appropriate severity and messages
func classifyHandlerError(err error) *HandlerError {
	if err == nil {
		return &HandlerError{
			UserMessage: render.ErrGeneric,
			LogMessage:  "unknown error",
			Severity:    SeverityWarning,
		}
	}

	for _, ue := range userErrors {
		if errors.Is(err, ue.err) {
			return &HandlerError{
				Err:         err,
				UserMessage: render.ClassifyError(err),
				LogMessage:  ue.log,
				Severity:    SeverityWarning,
			}
		}
	}

	return &HandlerError{
		Err:         err,
		UserMessage: render.ClassifyError(err),
		LogMessage:  "handler error",
		Severity:    SeverityError,
	}
}

// HandleError logs the error with its severity and tells the user what happened
func (h *BaseHandler) HandleError(ctx context.Context, chatID int64, err error) {
	if err == nil {
		return
	}

	handlerErr := classifyHandlerError(err)

	switch handlerErr.Severity {
	case SeverityError:
		ctxzap.Error(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	case SeverityWarning:
		ctxzap.Warn(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	}

	h.sendMessage(ctx, chatID, handlerErr.UserMessage, nil)
}
