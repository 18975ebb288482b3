package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the page and session API routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.LandingPage)
	r.Get("/health", Health)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Put("/prompt", h.SetPrompt)
			r.Post("/examples/{label}", h.ApplyExample)
			r.Post("/generate", h.Generate)
			r.Post("/restart", h.Restart)
			r.Get("/events", h.Events)
		})
	})
}
