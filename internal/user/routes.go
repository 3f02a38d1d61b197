package user

import (
	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/organon/internal/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.GetUser)
	r.Put("/me", h.UpdateUser)
	r.Put("/me/google-tokens", h.StoreGoogleTokens)
	return r
}

// AuthRoutes are served without the auth middleware.
func AuthRoutes(h *Handler, sessions *auth.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/sign-up", h.SignUp)
	r.Post("/sign-in", h.SignIn)
	r.Post("/logout", sessions.Logout)
	return r
}
