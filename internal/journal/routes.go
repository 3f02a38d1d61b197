package journal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{date}", h.Get)
	r.Put("/{date}", h.Save)
	r.Get("/{date}/summary", h.Summary)

	return r
}
