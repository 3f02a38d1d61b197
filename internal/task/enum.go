package task

import (
	"errors"
	"strings"
)

var ErrInvalidPriority = errors.New("invalid priority")

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

var AllPriorities = []Priority{
	PriorityUrgent,
	PriorityHigh,
	PriorityMedium,
	PriorityLow,
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ParsePriority is case-insensitive; an empty string yields PriorityMedium.
func ParsePriority(s string) (Priority, error) {
	if strings.TrimSpace(s) == "" {
		return PriorityMedium, nil
	}
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

type Quadrant struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// Quadrant places a priority on the urgent/important matrix.
func (p Priority) Quadrant() Quadrant {
	switch p {
	case PriorityUrgent:
		return Quadrant{Key: "do", Title: "Do", Subtitle: "Urgent and important"}
	case PriorityHigh:
		return Quadrant{Key: "decide", Title: "Decide", Subtitle: "Important, not urgent"}
	case PriorityMedium:
		return Quadrant{Key: "delegate", Title: "Delegate", Subtitle: "Urgent, not important"}
	case PriorityLow:
		return Quadrant{Key: "eliminate", Title: "Eliminate", Subtitle: "Neither urgent nor important"}
	default:
		panic("task: unhandled priority " + string(p))
	}
}

type BoardView string

const (
	ViewKanban BoardView = "kanban"
	ViewMatrix BoardView = "matrix"
	ViewList   BoardView = "list"
)

func (v BoardView) IsValid() bool {
	return v == ViewKanban || v == ViewMatrix || v == ViewList
}
