package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/saulo-duarte/organon/internal/auth"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service  UserService
	sessions *auth.Handler
	tokenTTL time.Duration
}

func NewHandler(service UserService, sessions *auth.Handler, tokenTTL time.Duration) *Handler {
	return &Handler{service: service, sessions: sessions, tokenTTL: tokenTTL}
}

func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error, action string) {
	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrEmailTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.WithError(err).Errorf("Failed to %s", action)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto SignUpDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.SignUp(r.Context(), dto)
	if err != nil {
		writeError(w, log, err, "sign up")
		return
	}

	h.sessions.SetSessionCookie(w, resp.Token, int(h.tokenTTL.Seconds()))
	config.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto SignInDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.SignIn(r.Context(), dto)
	if err != nil {
		writeError(w, log, err, "sign in")
		return
	}

	h.sessions.SetSessionCookie(w, resp.Token, int(h.tokenTTL.Seconds()))
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u, err := h.service.GetMe(r.Context())
	if err != nil {
		writeError(w, log, err, "get user")
		return
	}
	config.JSON(w, http.StatusOK, u)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.service.UpdateMe(r.Context(), dto)
	if err != nil {
		writeError(w, log, err, "update user")
		return
	}
	config.JSON(w, http.StatusOK, u)
}

func (h *Handler) StoreGoogleTokens(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto GoogleTokensDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.StoreGoogleTokens(r.Context(), dto); err != nil {
		writeError(w, log, err, "store google tokens")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
