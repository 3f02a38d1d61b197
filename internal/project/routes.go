package project

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes builds the projects router; extra registers routes owned by other
// packages under the same prefix.
func Routes(h *Handler, extra ...func(chi.Router)) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Post("/{id}/nodes", h.AddNode)
	r.Patch("/{id}/nodes/title", h.RenameNode)
	r.Patch("/{id}/nodes/done", h.ToggleNode)
	r.Post("/{id}/deletions", h.RequestDeletion)

	for _, register := range extra {
		register(r)
	}

	return r
}

func DeletionRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/{token}/confirm", h.ConfirmDeletion)
	r.Delete("/{token}", h.CancelDeletion)

	return r
}
