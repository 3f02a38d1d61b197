package habit

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/organon/internal/auth"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func userIDFrom(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger) (uuid.UUID, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return userID, true
}

func habitIDFrom(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error, action string) {
	switch {
	case errors.Is(err, ErrInvalidName),
		errors.Is(err, ErrInvalidType),
		errors.Is(err, ErrInvalidGoal),
		errors.Is(err, ErrInvalidDuration):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrHabitNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.WithError(err).Errorf("Failed to %s", action)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())
	userID, ok := userIDFrom(w, r, log)
	if !ok {
		return
	}

	var dto CreateHabitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.service.Create(r.Context(), userID, dto)
	if err != nil {
		writeError(w, log, err, "create habit")
		return
	}
	config.JSON(w, http.StatusCreated, response)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())
	userID, ok := userIDFrom(w, r, log)
	if !ok {
		return
	}

	responses, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, log, err, "list habits")
		return
	}
	config.JSON(w, http.StatusOK, responses)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())
	userID, ok := userIDFrom(w, r, log)
	if !ok {
		return
	}
	id, ok := habitIDFrom(w, r)
	if !ok {
		return
	}

	response, err := h.service.Get(r.Context(), id, userID)
	if err != nil {
		writeError(w, log, err, "get habit")
		return
	}
	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())
	userID, ok := userIDFrom(w, r, log)
	if !ok {
		return
	}
	id, ok := habitIDFrom(w, r)
	if !ok {
		return
	}

	var dto UpdateHabitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.service.Update(r.Context(), id, userID, dto)
	if err != nil {
		writeError(w, log, err, "update habit")
		return
	}
	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())
	userID, ok := userIDFrom(w, r, log)
	if !ok {
		return
	}
	id, ok := habitIDFrom(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		writeError(w, log, err, "delete habit")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetProgress godoc
// @Summary      Record a day's progress for a habit
// @Tags         habits
// @Accept       json
// @Produce      json
// @Param        id        path      string          true  "Habit ID"
// @Param        progress  body      SetProgressDTO  true  "Day and value"
// @Success      200       {object}  HabitResponse
// @Router       /habits/{id}/progress [put]
func (h *Handler) SetProgress(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())
	userID, ok := userIDFrom(w, r, log)
	if !ok {
		return
	}
	id, ok := habitIDFrom(w, r)
	if !ok {
		return
	}

	var dto SetProgressDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.service.SetProgress(r.Context(), id, userID, dto.Date, dto.Value)
	if err != nil {
		writeError(w, log, err, "set habit progress")
		return
	}
	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) AdjustProgress(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())
	userID, ok := userIDFrom(w, r, log)
	if !ok {
		return
	}
	id, ok := habitIDFrom(w, r)
	if !ok {
		return
	}

	var dto AdjustProgressDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.service.AdjustProgress(r.Context(), id, userID, dto.Delta)
	if err != nil {
		writeError(w, log, err, "adjust habit progress")
		return
	}
	config.JSON(w, http.StatusOK, response)
}
