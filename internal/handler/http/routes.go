package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/ping", h.ping)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/users/{userID}/document", h.getDocument)
		r.Patch("/api/users/{userID}/document", h.patchDocument)
	})

	return router
}
