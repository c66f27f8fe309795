package session

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/futig/question-generator/internal/entity"
	"github.com/futig/question-generator/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase SessionUsecase
}

func NewHandler(usecase SessionUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// StartSession handles POST /sessions - Start new session
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartSession")

	state, err := h.usecase.StartSession(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "session started successfully", zap.String("session_id", state.ID))
	h.respondJSON(w, http.StatusCreated, state)
}

// GetSession handles GET /sessions/{id} - Get session state
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "GetSession"),
	)

	ctxzap.Debug(ctx, "fetching session")

	state, err := h.usecase.GetSession(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, state)
}

// SetSelection handles PUT /sessions/{id}/{step} for the multi-select steps
func (h *Handler) SetSelection(cat entity.Category) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "id")
		ctx := logger.AddFields(r.Context(),
			zap.String("session_id", sessionID),
			zap.String("action", "SetSelection"),
			zap.String("category", string(cat)),
		)

		var req entity.SelectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
			return
		}
		if req.Values == nil {
			h.respondError(ctx, w, http.StatusBadRequest, "validation failed",
				fmt.Errorf("%w: values", entity.ErrMissingField))
			return
		}

		state, err := h.usecase.SetSelection(ctx, sessionID, cat, req.Values)
		if err != nil {
			h.handleUsecaseError(ctx, w, err)
			return
		}

		h.respondJSON(w, http.StatusOK, state)
	}
}

// SetTimeline handles PUT /sessions/{id}/timeline
func (h *Handler) SetTimeline(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "SetTimeline"),
	)

	var req entity.TimelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Months == nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed",
			fmt.Errorf("%w: months", entity.ErrMissingField))
		return
	}

	state, err := h.usecase.SetTimeline(ctx, sessionID, *req.Months)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, state)
}

// SetIncludePersonal handles PUT /sessions/{id}/personal
func (h *Handler) SetIncludePersonal(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "SetIncludePersonal"),
	)

	var req entity.PersonalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Include == nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed",
			fmt.Errorf("%w: include", entity.ErrMissingField))
		return
	}

	state, err := h.usecase.SetIncludePersonal(ctx, sessionID, *req.Include)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, state)
}

// GetPersonalQuestions handles GET /sessions/{id}/personal
func (h *Handler) GetPersonalQuestions(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "GetPersonalQuestions"),
	)

	table, err := h.usecase.PersonalQuestions(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, table)
}

// Export handles GET /sessions/{id}/export/{name} - Download an export file
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	name := chi.URLParam(r, "name")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "Export"),
		zap.String("file", name),
	)

	file, err := h.usecase.Export(ctx, sessionID, name)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Data)
}

// CancelSession handles DELETE /sessions/{id} - End session
func (h *Handler) CancelSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "CancelSession"),
	)

	ctxzap.Info(ctx, "cancelling session")

	if err := h.usecase.CancelSession(ctx, sessionID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "session cancelled successfully",
	})
}
