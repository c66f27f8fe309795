package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/futig/question-generator/internal/entity"
	"github.com/futig/question-generator/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Generate handles POST /sessions/{id}/generate
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "Generate"),
	)

	resp, err := h.usecase.Generate(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "questions generated successfully", zap.Int("rows", len(resp.Rows)))
	h.respondJSON(w, http.StatusOK, resp)
}

// GetQuestions handles GET /sessions/{id}/questions
func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "GetQuestions"),
	)

	resp, err := h.usecase.GetQuestions(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// SetRelevant handles PATCH /sessions/{id}/questions/{row}/relevant
func (h *Handler) SetRelevant(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "SetRelevant"),
	)

	row, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid row number",
			fmt.Errorf("%w: row: %v", entity.ErrInvalidParameter, err))
		return
	}

	var req entity.RelevantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Relevant == nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed",
			fmt.Errorf("%w: relevant", entity.ErrMissingField))
		return
	}

	resp, err := h.usecase.SetRelevant(ctx, sessionID, row, *req.Relevant)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// SetOverride handles PUT /sessions/{id}/override
func (h *Handler) SetOverride(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "SetOverride"),
	)

	var req entity.OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resp, err := h.usecase.SetOverride(ctx, sessionID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// ClearOverride handles DELETE /sessions/{id}/override
func (h *Handler) ClearOverride(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "ClearOverride"),
	)

	resp, err := h.usecase.ClearOverride(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}
