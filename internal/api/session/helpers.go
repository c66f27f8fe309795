package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/futig/question-generator/internal/entity"
	"github.com/futig/question-generator/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	response.JSON(w, status, data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Error(err))
	}
	response.Error(w, status, message, err)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "session not found", err)
	case errors.Is(err, entity.ErrUnknownExport):
		h.respondError(ctx, w, http.StatusNotFound, "unknown export", err)
	case errors.Is(err, entity.ErrTooManyDomains),
		errors.Is(err, entity.ErrTimelineOutOfRange),
		errors.Is(err, entity.ErrRowOutOfRange),
		errors.Is(err, entity.ErrUnknownOption),
		errors.Is(err, entity.ErrUnknownCategory):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid selection", err)
	case errors.Is(err, entity.ErrInvalidParameter), errors.Is(err, entity.ErrMissingField):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	case errors.Is(err, entity.ErrNotGenerated), errors.Is(err, entity.ErrPersonalExcluded):
		h.respondError(ctx, w, http.StatusConflict, "invalid session state", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
