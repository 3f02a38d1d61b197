package task

import (
	"github.com/google/uuid"
	util "github.com/saulo-duarte/organon/internal/utils"
)

type CreateTaskDTO struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Date        *util.Date        `json:"date"`
	Time        string            `json:"time"`
	Priority    string            `json:"priority"`
	AreaID      *uuid.UUID        `json:"areaId"`
	Subtasks    []SubTask         `json:"subtasks"`
	Attachments []util.Attachment `json:"attachments"`
}

// UpdateTaskDTO leaves fields that are absent untouched. ClearDate removes the
// date and time.
type UpdateTaskDTO struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Date        *util.Date         `json:"date"`
	ClearDate   bool               `json:"clearDate"`
	Time        *string            `json:"time"`
	Priority    *string            `json:"priority"`
	Completed   *bool              `json:"completed"`
	Subtasks    *[]SubTask         `json:"subtasks"`
	Attachments *[]util.Attachment `json:"attachments"`
}

type MoveToAreaDTO struct {
	AreaID *uuid.UUID `json:"areaId"`
}

type SetPriorityDTO struct {
	Priority string `json:"priority"`
}

type Column struct {
	Key      string     `json:"key"`
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle,omitempty"`
	AreaID   *uuid.UUID `json:"areaId,omitempty"`
	Color    string     `json:"color,omitempty"`
	Priority Priority   `json:"priority,omitempty"`
	Tasks    []*Task    `json:"tasks"`
}

type Board struct {
	View    BoardView `json:"view"`
	Columns []Column  `json:"columns"`
}
