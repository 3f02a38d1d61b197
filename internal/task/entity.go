package task

import (
	"time"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/organon/internal/utils"
	"gorm.io/datatypes"
)

type SubTask struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

type Task struct {
	ID          uuid.UUID                             `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID                             `gorm:"type:uuid;not null;index" json:"-"`
	Name        string                                `gorm:"not null" json:"name"`
	Description string                                `json:"description,omitempty"`
	Date        *util.Date                            `gorm:"type:date;index" json:"date,omitempty"`
	Time        string                                `gorm:"column:time_of_day;type:varchar(5)" json:"time,omitempty"`
	Priority    Priority                              `gorm:"type:varchar(10);not null" json:"priority"`
	Completed   bool                                  `gorm:"not null" json:"completed"`
	CompletedAt *time.Time                            `json:"completedAt,omitempty"`
	Subtasks    datatypes.JSONType[[]SubTask]         `json:"subtasks"`
	AreaID      *uuid.UUID                            `gorm:"type:uuid;index" json:"areaId,omitempty"`
	Color       string                                `gorm:"not null" json:"color"`
	Attachments datatypes.JSONType[[]util.Attachment] `json:"attachments"`
	CreatedAt   time.Time                             `json:"createdAt"`
	UpdatedAt   time.Time                             `json:"updatedAt"`
}

func (t *Task) SubtaskList() []SubTask {
	return t.Subtasks.Data()
}

func normalizeSubtasks(in []SubTask) []SubTask {
	out := make([]SubTask, 0, len(in))
	for _, s := range in {
		if s.ID == "" {
			s.ID = "subtask-" + uuid.NewString()
		}
		out = append(out, s)
	}
	return out
}

func (t *Task) setCompleted(done bool, now time.Time) {
	t.Completed = done
	if done {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
}
