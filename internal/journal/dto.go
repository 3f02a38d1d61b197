package journal

import (
	"github.com/saulo-duarte/organon/internal/event"
	"github.com/saulo-duarte/organon/internal/habit"
	"github.com/saulo-duarte/organon/internal/task"
	util "github.com/saulo-duarte/organon/internal/utils"
)

// SaveEntryDTO merges into the stored entry; nil fields are left as they are.
type SaveEntryDTO struct {
	Gratitude   *string            `json:"gratitude"`
	Memory      *string            `json:"memory"`
	Attachments *[]util.Attachment `json:"attachments"`
}

type DaySummary struct {
	Date   util.Date             `json:"date"`
	Entry  *Entry                `json:"entry"`
	Tasks  []*task.Task          `json:"tasks"`
	Events []*event.Event        `json:"events"`
	Habits []habit.HabitResponse `json:"habits"`
}
