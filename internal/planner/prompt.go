package planner

import (
	"fmt"
	"strings"

	"github.com/saulo-duarte/organon/internal/project"
)

const systemPrompt = `
You help people break long-term goals into concrete checkpoints.

Rules:
1. Each checkpoint is a short, actionable step that can be marked done.
2. Titles are at most 80 characters and start with a verb.
3. Do not repeat checkpoints the goal already has.
4. Order the checkpoints in the sequence they should be done.

Answer with pure, valid JSON and nothing else:

[
  {"title": "<checkpoint title>"}
]
`

func BuildUserPrompt(p project.Project, objectiveTitle string, goal project.Goal, count int) string {
	var existing strings.Builder
	for _, cp := range goal.Checkpoints {
		existing.WriteString("- ")
		existing.WriteString(cp.Title)
		existing.WriteString("\n")
	}
	if existing.Len() == 0 {
		existing.WriteString("(none yet)\n")
	}

	return fmt.Sprintf(
		"Project: %q. %s\nObjective: %q.\nGoal: %q.\nExisting checkpoints:\n%s\nSuggest %d new checkpoints for this goal.",
		p.Name, p.Description, objectiveTitle, goal.Title, existing.String(), count,
	)
}
