package habit

import util "github.com/saulo-duarte/organon/internal/utils"

// StreakLookback bounds how far back a streak is counted.
const StreakLookback = 365

// Streak counts consecutive days with progress at or above goal, walking
// back from today. Today not being met yet does not break the run.
func Streak(progress Progress, goal int, today util.Date) int {
	streak := 0
	for i := 0; i < StreakLookback; i++ {
		day := today.AddDays(-i)
		if progress[day.String()] >= goal {
			streak++
			continue
		}
		if i == 0 {
			continue
		}
		break
	}
	return streak
}

func (h *Habit) Streak(today util.Date) int {
	return Streak(h.DailyProgress.Data(), h.Goal, today)
}

// Active reports whether a habit with a duration still has days to go.
func (h *Habit) Active(today util.Date) bool {
	return h.Duration == nil || h.Streak(today) < *h.Duration
}
