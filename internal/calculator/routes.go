package calculator

import (
	"github.com/go-chi/chi/v5"

	"calcpad/internal/session"
)

// RegisterRoutes mounts the stateless arithmetic endpoints under
// /calculator and the keypad session endpoints under /sessions.
func RegisterRoutes(r chi.Router, sessions *session.Manager) {
	r.Route("/calculator", func(r chi.Router) {
		r.Post("/add", Add)
		r.Post("/subtract", Subtract)
		r.Post("/multiply", Multiply)
		r.Post("/divide", Divide)
		r.Post("/chain", Chain)
	})

	h := &SessionHandler{sessions: sessions}
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Delete("/", h.Delete)
			r.Post("/events", h.Events)
			r.Post("/clear", h.Clear)
		})
	})
}
