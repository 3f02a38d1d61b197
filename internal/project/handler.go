package project

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service ProjectService
}

func NewHandler(service ProjectService) *Handler {
	return &Handler{service: service}
}

func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error, action string) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidNodeKind),
		errors.Is(err, ErrInvalidPath),
		errors.Is(err, ErrEmptyTitle):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrProjectNotFound), errors.Is(err, ErrDeletionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.WithError(err).Errorf("Failed to %s", action)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func decode(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// List godoc
// @Summary  List the user's projects with their progress
// @Tags     projects
// @Produce  json
// @Success  200 {array} ProjectSummary
// @Router   /projects [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	projects, err := h.service.ListProjects(r.Context())
	if err != nil {
		writeError(w, log, err, "list projects")
		return
	}

	summaries := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, ToSummary(p))
	}
	config.JSON(w, http.StatusOK, summaries)
}

// Create godoc
// @Summary  Create a project
// @Tags     projects
// @Accept   json
// @Produce  json
// @Param    body body CreateProjectDTO true "project"
// @Success  201 {object} ProjectResponse
// @Router   /projects [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateProjectDTO
	if !decode(w, r, log, &dto) {
		return
	}

	p, err := h.service.CreateProject(r.Context(), dto)
	if err != nil {
		writeError(w, log, err, "create project")
		return
	}
	config.JSON(w, http.StatusCreated, ToResponse(*p))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	p, err := h.service.GetProjectByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, log, err, "get project")
		return
	}
	config.JSON(w, http.StatusOK, ToResponse(*p))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateProjectDTO
	if !decode(w, r, log, &dto) {
		return
	}

	p, err := h.service.UpdateProject(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		writeError(w, log, err, "update project")
		return
	}
	config.JSON(w, http.StatusOK, ToResponse(*p))
}

// AddNode godoc
// @Summary  Append an objective, goal, checkpoint or sub-checkpoint
// @Tags     projects
// @Accept   json
// @Produce  json
// @Param    id   path string     true "project id"
// @Param    body body AddNodeDTO true "node"
// @Success  201 {object} AddNodeResponse
// @Router   /projects/{id}/nodes [post]
func (h *Handler) AddNode(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto AddNodeDTO
	if !decode(w, r, log, &dto) {
		return
	}

	p, nodeID, err := h.service.AddNode(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		writeError(w, log, err, "add node")
		return
	}

	status := http.StatusCreated
	if nodeID == "" {
		status = http.StatusOK
	}
	config.JSON(w, status, AddNodeResponse{ProjectResponse: *ToResponse(*p), NodeID: nodeID})
}

func (h *Handler) RenameNode(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto RenameNodeDTO
	if !decode(w, r, log, &dto) {
		return
	}

	p, err := h.service.RenameNode(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		writeError(w, log, err, "rename node")
		return
	}
	config.JSON(w, http.StatusOK, ToResponse(*p))
}

func (h *Handler) ToggleNode(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto ToggleNodeDTO
	if !decode(w, r, log, &dto) {
		return
	}

	p, err := h.service.ToggleNode(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		writeError(w, log, err, "toggle node")
		return
	}
	config.JSON(w, http.StatusOK, ToResponse(*p))
}

// RequestDeletion godoc
// @Summary  Ask to delete a node or the whole project; nothing is removed until confirmed
// @Tags     projects
// @Accept   json
// @Produce  json
// @Param    id   path string        true "project id"
// @Param    body body DeleteNodeDTO true "target"
// @Success  202 {object} PendingDeletion
// @Router   /projects/{id}/deletions [post]
func (h *Handler) RequestDeletion(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto DeleteNodeDTO
	if !decode(w, r, log, &dto) {
		return
	}

	pending, err := h.service.RequestDeletion(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		writeError(w, log, err, "request deletion")
		return
	}
	config.JSON(w, http.StatusAccepted, pending)
}

// ConfirmDeletion godoc
// @Summary  Commit a pending deletion
// @Tags     projects
// @Produce  json
// @Param    token path string true "deletion token"
// @Success  200 {object} DeletionResult
// @Failure  404 {string} string "unknown or expired token"
// @Router   /deletions/{token}/confirm [post]
func (h *Handler) ConfirmDeletion(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	result, err := h.service.ConfirmDeletion(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, log, err, "confirm deletion")
		return
	}
	config.JSON(w, http.StatusOK, result)
}

func (h *Handler) CancelDeletion(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := h.service.CancelDeletion(r.Context(), chi.URLParam(r, "token")); err != nil {
		writeError(w, log, err, "cancel deletion")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// History godoc
// @Summary  Destructive actions taken in the current session, most recent first
// @Tags     projects
// @Produce  json
// @Success  200 {array} HistoryEntry
// @Router   /history [get]
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	entries, err := h.service.History(r.Context())
	if err != nil {
		writeError(w, log, err, "read history")
		return
	}
	config.JSON(w, http.StatusOK, entries)
}
