package auth

import (
	"net/http"

	"github.com/saulo-duarte/organon/internal/config"
)

// SessionEndFunc is called with the session id of a token being logged out.
type SessionEndFunc func(sessionID string)

type Handler struct {
	cookieDomain string
	onLogout     []SessionEndFunc
}

func NewHandler(cookieDomain string, onLogout ...SessionEndFunc) *Handler {
	return &Handler{cookieDomain: cookieDomain, onLogout: onLogout}
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if tokenStr := TokenFromRequest(r); tokenStr != "" {
		if claims, err := ValidateJWT(tokenStr); err == nil {
			for _, fn := range h.onLogout {
				fn(claims.SessionID())
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "logout successful",
	})
}

// SetSessionCookie stores a freshly issued token in the jwt cookie.
func (h *Handler) SetSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
