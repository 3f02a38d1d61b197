package habit_test

import (
	"testing"

	"github.com/saulo-duarte/organon/internal/habit"
	util "github.com/saulo-duarte/organon/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestStreak(t *testing.T) {
	today := util.NewDate(2024, 8, 20)
	day := func(n int) string { return today.AddDays(-n).String() }

	tests := []struct {
		name     string
		progress habit.Progress
		goal     int
		want     int
	}{
		{name: "empty", progress: habit.Progress{}, goal: 1, want: 0},
		{name: "today only", progress: habit.Progress{day(0): 1}, goal: 1, want: 1},
		{name: "unmet today keeps run", progress: habit.Progress{day(1): 1, day(2): 1}, goal: 1, want: 2},
		{name: "gap breaks run", progress: habit.Progress{day(0): 1, day(1): 1, day(3): 1}, goal: 1, want: 2},
		{name: "below goal breaks run", progress: habit.Progress{day(0): 8, day(1): 3, day(2): 8}, goal: 8, want: 1},
		{name: "two missed days", progress: habit.Progress{day(2): 1}, goal: 1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, habit.Streak(tt.progress, tt.goal, today))
		})
	}
}

func TestStreakLookback(t *testing.T) {
	today := util.NewDate(2024, 8, 20)
	progress := habit.Progress{}
	for i := 0; i < 500; i++ {
		progress[today.AddDays(-i).String()] = 1
	}
	assert.Equal(t, habit.StreakLookback, habit.Streak(progress, 1, today))
}
