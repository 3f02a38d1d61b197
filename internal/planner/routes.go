package planner

import "github.com/go-chi/chi/v5"

// Register adds the suggestion endpoint to the projects router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/{id}/suggestions", h.Suggest)
}
