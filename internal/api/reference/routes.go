package reference

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers reference data routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/reference", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Get("/{category}", h.GetCategory)
	})
}
