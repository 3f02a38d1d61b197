package habit

import (
	"time"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/organon/internal/utils"
	"gorm.io/datatypes"
)

const DefaultColor = "bg-green-500"

// Progress maps YYYY-MM-DD to the amount logged that day. Days without
// progress are absent.
type Progress map[string]int

type Habit struct {
	ID            uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID                    `gorm:"type:uuid;not null;index" json:"-"`
	Name          string                       `gorm:"not null" json:"name"`
	Type          HabitType                    `gorm:"type:varchar(16);not null" json:"type"`
	Goal          int                          `gorm:"not null" json:"goal"`
	Color         string                       `gorm:"not null" json:"color"`
	DailyProgress datatypes.JSONType[Progress] `json:"dailyProgress"`
	Duration      *int                         `json:"duration,omitempty"`
	CreatedAt     time.Time                    `json:"createdAt"`
	UpdatedAt     time.Time                    `json:"updatedAt"`
}

func (h *Habit) ProgressOn(day util.Date) int {
	return h.DailyProgress.Data()[day.String()]
}

func (h *Habit) MetGoalOn(day util.Date) bool {
	return h.ProgressOn(day) >= h.Goal
}

// clampValue keeps logged amounts non-negative; binary habits log 0 or 1.
func (h *Habit) clampValue(v int) int {
	if v < 0 {
		v = 0
	}
	if h.Type == HabitTypeBinary && v > 1 {
		v = 1
	}
	return v
}

func (h *Habit) setProgress(day util.Date, value int) int {
	next := make(Progress, len(h.DailyProgress.Data())+1)
	for k, v := range h.DailyProgress.Data() {
		next[k] = v
	}
	value = h.clampValue(value)
	if value == 0 {
		delete(next, day.String())
	} else {
		next[day.String()] = value
	}
	h.DailyProgress = datatypes.NewJSONType(next)
	return value
}
