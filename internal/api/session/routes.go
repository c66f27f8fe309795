package session

import (
	"github.com/futig/question-generator/internal/entity"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.StartSession)
		r.Get("/{id}", h.GetSession)
		r.Delete("/{id}", h.CancelSession)

		r.Put("/{id}/domains", h.SetSelection(entity.CategoryDomain))
		r.Put("/{id}/timeline", h.SetTimeline)
		r.Put("/{id}/stakeholders", h.SetSelection(entity.CategoryStakeholder))
		r.Put("/{id}/metrics", h.SetSelection(entity.CategoryMetric))
		r.Put("/{id}/question-types", h.SetSelection(entity.CategoryQuestionType))

		r.Post("/{id}/generate", h.Generate)
		r.Get("/{id}/questions", h.GetQuestions)
		r.Patch("/{id}/questions/{row}/relevant", h.SetRelevant)
		r.Put("/{id}/override", h.SetOverride)
		r.Delete("/{id}/override", h.ClearOverride)

		r.Put("/{id}/personal", h.SetIncludePersonal)
		r.Get("/{id}/personal", h.GetPersonalQuestions)
		r.Get("/{id}/export/{name}", h.Export)
	})
}
