package planner

import "github.com/saulo-duarte/organon/internal/project"

const (
	defaultSuggestionCount = 3
	maxSuggestionCount     = 10
)

type SuggestionRequest struct {
	ObjectiveID string `json:"objectiveId"`
	GoalID      string `json:"goalId"`
	Count       int    `json:"count"`
	Apply       bool   `json:"apply"`
}

type Suggestion struct {
	Title string `json:"title"`
}

type SuggestionResponse struct {
	Suggestions []Suggestion             `json:"suggestions"`
	Applied     bool                     `json:"applied"`
	Project     *project.ProjectResponse `json:"project,omitempty"`
}

func clampCount(n int) int {
	if n <= 0 {
		return defaultSuggestionCount
	}
	if n > maxSuggestionCount {
		return maxSuggestionCount
	}
	return n
}
