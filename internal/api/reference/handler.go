package reference

import (
	"errors"
	"net/http"

	"github.com/futig/question-generator/internal/entity"
	"github.com/futig/question-generator/internal/pkg/logger"
	"github.com/futig/question-generator/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	catalog Catalog
}

func NewHandler(catalog Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// ListCategories handles GET /reference - every description mapping
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListCategories")

	all := make(map[entity.Category]map[string]string, len(entity.Categories))
	for _, cat := range entity.Categories {
		m, err := h.catalog.Mapping(cat)
		if err != nil {
			ctxzap.Error(ctx, "failed to read reference mapping", zap.Error(err))
			response.Error(w, http.StatusInternalServerError, "internal server error", err)
			return
		}
		all[cat] = m
	}

	response.JSON(w, http.StatusOK, all)
}

// GetCategory handles GET /reference/{category} - one description mapping
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	cat := entity.Category(chi.URLParam(r, "category"))
	ctx := logger.AddFields(r.Context(),
		zap.String("action", "GetCategory"),
		zap.String("category", string(cat)),
	)

	m, err := h.catalog.Mapping(cat)
	if err != nil {
		if errors.Is(err, entity.ErrUnknownCategory) {
			ctxzap.Warn(ctx, "unknown reference category", zap.Error(err))
			response.Error(w, http.StatusNotFound, "unknown category", err)
			return
		}
		ctxzap.Error(ctx, "failed to read reference mapping", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "internal server error", err)
		return
	}

	response.JSON(w, http.StatusOK, m)
}
