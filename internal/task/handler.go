package task

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
	service TaskService
}

func NewHandler(service TaskService) *Handler {
	return &Handler{service: service}
}

func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error, action string) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidName),
		errors.Is(err, ErrInvalidPriority),
		errors.Is(err, ErrInvalidView),
		errors.Is(err, ErrTimeWithoutDay),
		errors.Is(err, util.ErrInvalidClock):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrTaskNotFound), errors.Is(err, ErrAreaNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.WithError(err).Errorf("Failed to %s", action)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.service.CreateTask(r.Context(), dto)
	if err != nil {
		writeError(w, log, err, "create task")
		return
	}
	config.JSON(w, http.StatusCreated, t)
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	tasks, err := h.service.FindAllByUser(r.Context())
	if err != nil {
		writeError(w, log, err, "list tasks")
		return
	}
	config.JSON(w, http.StatusOK, tasks)
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	t, err := h.service.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, log, err, "get task")
		return
	}
	config.JSON(w, http.StatusOK, t)
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.service.UpdateTask(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		writeError(w, log, err, "update task")
		return
	}
	config.JSON(w, http.StatusOK, t)
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := h.service.DeleteByID(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, log, err, "delete task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MoveToArea(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto MoveToAreaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.service.MoveToArea(r.Context(), chi.URLParam(r, "id"), dto.AreaID)
	if err != nil {
		writeError(w, log, err, "move task")
		return
	}
	config.JSON(w, http.StatusOK, t)
}

func (h *Handler) SetPriority(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto SetPriorityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.service.SetPriority(r.Context(), chi.URLParam(r, "id"), dto.Priority)
	if err != nil {
		writeError(w, log, err, "set task priority")
		return
	}
	config.JSON(w, http.StatusOK, t)
}

func (h *Handler) Board(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	view := BoardView(r.URL.Query().Get("view"))
	if view == "" {
		view = ViewKanban
	}

	board, err := h.service.Board(r.Context(), view)
	if err != nil {
		writeError(w, log, err, "build task board")
		return
	}
	config.JSON(w, http.StatusOK, board)
}
