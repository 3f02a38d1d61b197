package event

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/organon/internal/config"
	util "github.com/saulo-duarte/organon/internal/utils"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service EventService
}

func NewHandler(service EventService) *Handler {
	return &Handler{service: service}
}

func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error, action string) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidName),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidTimeRange),
		errors.Is(err, ErrInvalidRecurrence),
		errors.Is(err, util.ErrInvalidClock):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrEventNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.WithError(err).Errorf("Failed to %s", action)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// CreateEvent godoc
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        event  body      CreateEventDTO  true  "Event"
// @Success      201    {object}  Event
// @Failure      400    {string}  string
// @Router       /events [post]
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateEventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	e, err := h.service.CreateEvent(r.Context(), dto)
	if err != nil {
		writeError(w, log, err, "create event")
		return
	}
	config.JSON(w, http.StatusCreated, e)
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	events, err := h.service.ListEvents(r.Context())
	if err != nil {
		writeError(w, log, err, "list events")
		return
	}
	config.JSON(w, http.StatusOK, events)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	e, err := h.service.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, log, err, "get event")
		return
	}
	config.JSON(w, http.StatusOK, e)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateEventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	e, err := h.service.UpdateEvent(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		writeError(w, log, err, "update event")
		return
	}
	config.JSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := h.service.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, log, err, "delete event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EventsOnDay godoc
// @Summary      Events occurring on a day, recurring series expanded
// @Tags         events
// @Produce      json
// @Param        date  path      string  true  "Day as YYYY-MM-DD"
// @Success      200   {array}   Event
// @Failure      400   {string}  string
// @Router       /events/day/{date} [get]
func (h *Handler) EventsOnDay(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	day, err := util.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		log.WithError(err).Warn("Invalid day")
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	events, err := h.service.EventsOn(r.Context(), day)
	if err != nil {
		writeError(w, log, err, "list events by day")
		return
	}
	config.JSON(w, http.StatusOK, events)
}
