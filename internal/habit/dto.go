package habit

import (
	"time"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/organon/internal/utils"
)

type CreateHabitDTO struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Goal     int    `json:"goal"`
	Color    string `json:"color"`
	Duration *int   `json:"duration"`
}

type UpdateHabitDTO struct {
	Name          *string `json:"name"`
	Type          *string `json:"type"`
	Goal          *int    `json:"goal"`
	Color         *string `json:"color"`
	Duration      *int    `json:"duration"`
	ClearDuration bool    `json:"clearDuration"`
}

// SetProgressDTO logs value on Date, or today when Date is absent.
type SetProgressDTO struct {
	Date  util.Date `json:"date"`
	Value int       `json:"value"`
}

type AdjustProgressDTO struct {
	Delta int `json:"delta"`
}

type HabitResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Type          HabitType `json:"type"`
	Goal          int       `json:"goal"`
	Color         string    `json:"color"`
	DailyProgress Progress  `json:"dailyProgress"`
	Duration      *int      `json:"duration,omitempty"`
	Streak        int       `json:"streak"`
	TodayProgress int       `json:"todayProgress"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func ToResponse(h *Habit, today util.Date) *HabitResponse {
	progress := h.DailyProgress.Data()
	if progress == nil {
		progress = Progress{}
	}
	return &HabitResponse{
		ID:            h.ID,
		Name:          h.Name,
		Type:          h.Type,
		Goal:          h.Goal,
		Color:         h.Color,
		DailyProgress: progress,
		Duration:      h.Duration,
		Streak:        h.Streak(today),
		TodayProgress: h.ProgressOn(today),
		Active:        h.Active(today),
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
}
