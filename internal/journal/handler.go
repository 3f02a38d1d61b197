package journal

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
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error, action string) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.WithError(err).Errorf("Failed to %s", action)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func dayFrom(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger) (util.Date, bool) {
	day, err := util.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		log.WithError(err).Warn("Invalid journal date")
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return util.Date{}, false
	}
	return day, true
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	entries, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, log, err, "list journal entries")
		return
	}
	config.JSON(w, http.StatusOK, entries)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())
	day, ok := dayFrom(w, r, log)
	if !ok {
		return
	}

	entry, err := h.service.Get(r.Context(), day)
	if err != nil {
		writeError(w, log, err, "get journal entry")
		return
	}
	config.JSON(w, http.StatusOK, entry)
}

// Save godoc
// @Summary      Merge fields into a day's journal entry
// @Tags         journal
// @Accept       json
// @Produce      json
// @Param        date   path      string        true  "Day as YYYY-MM-DD"
// @Param        entry  body      SaveEntryDTO  true  "Fields to change"
// @Success      200    {object}  Entry
// @Router       /journal/{date} [put]
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())
	day, ok := dayFrom(w, r, log)
	if !ok {
		return
	}

	var dto SaveEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.service.Save(r.Context(), day, dto)
	if err != nil {
		writeError(w, log, err, "save journal entry")
		return
	}
	config.JSON(w, http.StatusOK, entry)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())
	day, ok := dayFrom(w, r, log)
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), day)
	if err != nil {
		writeError(w, log, err, "build journal summary")
		return
	}
	config.JSON(w, http.StatusOK, summary)
}
