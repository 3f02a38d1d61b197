package project

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubCheckpoint struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

type Checkpoint struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Done           bool            `json:"done"`
	SubCheckpoints []SubCheckpoint `json:"subCheckpoints"`
}

type Goal struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Checkpoints []Checkpoint `json:"checkpoints"`
}

type Objective struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Goals []Goal `json:"goals"`
}

// Project is the root of the progress tree. It is read and written as one
// document; there are no per-node rows.
type Project struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	FullDescription string      `json:"fullDescription"`
	CreatedAt       time.Time   `json:"createdAt"`
	Objectives      []Objective `json:"objectives"`
}

// Document is the persisted shape of a project.
type Document struct {
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	FullDescription string      `json:"fullDescription"`
	CreatedAt       time.Time   `json:"createdAt"`
	Objectives      []Objective `json:"objectives"`
}

type ProjectRecord struct {
	ID        uuid.UUID                    `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID                    `gorm:"type:uuid;not null;index"`
	Document  datatypes.JSONType[Document] `gorm:"not null"`
	CreatedAt time.Time                    `gorm:"not null;index"`
	UpdatedAt time.Time
}

func (ProjectRecord) TableName() string { return "projects" }

func (p Project) Document() Document {
	n := p.Normalize()
	return Document{
		Name:            n.Name,
		Description:     n.Description,
		FullDescription: n.FullDescription,
		CreatedAt:       n.CreatedAt,
		Objectives:      n.Objectives,
	}
}

func fromRecord(r *ProjectRecord) Project {
	doc := r.Document.Data()
	return Project{
		ID:              r.ID,
		Name:            doc.Name,
		Description:     doc.Description,
		FullDescription: doc.FullDescription,
		CreatedAt:       doc.CreatedAt,
		Objectives:      doc.Objectives,
	}.Normalize()
}

// Normalize replaces nil child lists with empty ones so the stored document
// always carries [] rather than null. Lists that are already non-nil are reused.
func (p Project) Normalize() Project {
	if p.Objectives == nil {
		p.Objectives = []Objective{}
	}
	if !needsNormalize(p.Objectives) {
		return p
	}

	objectives := make([]Objective, len(p.Objectives))
	for i, o := range p.Objectives {
		if o.Goals == nil {
			o.Goals = []Goal{}
		}
		goals := make([]Goal, len(o.Goals))
		for j, g := range o.Goals {
			if g.Checkpoints == nil {
				g.Checkpoints = []Checkpoint{}
			}
			checkpoints := make([]Checkpoint, len(g.Checkpoints))
			for k, cp := range g.Checkpoints {
				if cp.SubCheckpoints == nil {
					cp.SubCheckpoints = []SubCheckpoint{}
				}
				checkpoints[k] = cp
			}
			g.Checkpoints = checkpoints
			goals[j] = g
		}
		o.Goals = goals
		objectives[i] = o
	}
	p.Objectives = objectives
	return p
}

func needsNormalize(objectives []Objective) bool {
	for _, o := range objectives {
		if o.Goals == nil {
			return true
		}
		for _, g := range o.Goals {
			if g.Checkpoints == nil {
				return true
			}
			for _, cp := range g.Checkpoints {
				if cp.SubCheckpoints == nil {
					return true
				}
			}
		}
	}
	return false
}
