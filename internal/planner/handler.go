package planner

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/project"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())
	var req SuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Suggest(r.Context(), chi.URLParam(r, "id"), req)
	switch {
	case err == nil:
	case errors.Is(err, ErrNoProvider):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	case errors.Is(err, project.ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	case errors.Is(err, project.ErrInvalidID):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrGoalNotFound), errors.Is(err, project.ErrProjectNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	default:
		log.WithError(err).Error("Failed to suggest checkpoints")
		http.Error(w, "failed to suggest checkpoints", http.StatusBadGateway)
		return
	}

	status := http.StatusOK
	if resp.Applied {
		status = http.StatusCreated
	}
	config.JSON(w, status, resp)
}
