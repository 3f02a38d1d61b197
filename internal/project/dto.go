package project

import (
	"time"

	"github.com/google/uuid"
)

type CreateProjectDTO struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	FullDescription string `json:"fullDescription"`
}

type UpdateProjectDTO struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	FullDescription *string `json:"fullDescription"`
}

// AddNodeDTO.Path addresses the container the new node is appended to.
type AddNodeDTO struct {
	Kind  NodeKind `json:"kind"`
	Path  NodePath `json:"path"`
	Title string   `json:"title"`
}

type RenameNodeDTO struct {
	Kind  NodeKind `json:"kind"`
	Path  NodePath `json:"path"`
	Title string   `json:"title"`
}

type ToggleNodeDTO struct {
	Kind NodeKind `json:"kind"`
	Path NodePath `json:"path"`
	Done bool     `json:"done"`
}

type DeleteNodeDTO struct {
	Kind NodeKind `json:"kind"`
	Path NodePath `json:"path"`
}

type ProjectResponse struct {
	Project
	Progress     float64            `json:"progress"`
	GoalProgress map[string]float64 `json:"goalProgress"`
}

type ProjectSummary struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"createdAt"`
	Progress       float64   `json:"progress"`
	ObjectiveCount int       `json:"objectiveCount"`
	GoalCount      int       `json:"goalCount"`
}

// AddNodeResponse carries the id of the node that was appended. NodeID is empty
// when the parent could not be resolved and nothing changed.
type AddNodeResponse struct {
	ProjectResponse
	NodeID string `json:"nodeId,omitempty"`
}

type DeletionResult struct {
	Kind    NodeKind         `json:"kind"`
	Project *ProjectResponse `json:"project,omitempty"`
	Entry   *HistoryEntry    `json:"entry,omitempty"`
}

func ToResponse(p Project) *ProjectResponse {
	return &ProjectResponse{
		Project:      p,
		Progress:     ProjectProgress(p),
		GoalProgress: GoalProgress(p),
	}
}

func ToSummary(p Project) ProjectSummary {
	goals := 0
	for _, o := range p.Objectives {
		goals += len(o.Goals)
	}
	return ProjectSummary{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		CreatedAt:      p.CreatedAt,
		Progress:       ProjectProgress(p),
		ObjectiveCount: len(p.Objectives),
		GoalCount:      goals,
	}
}
