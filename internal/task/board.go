package task

import (
	"sort"

	"github.com/google/uuid"
	"github.com/saulo-duarte/organon/internal/area"
)

const unassignedColumn = "unassigned"

// BuildKanban gives every area a column in area order and collects tasks whose
// area is unset or unknown in a trailing "No area" column.
func BuildKanban(areas []area.Area, tasks []*Task) Board {
	columns := make([]Column, 0, len(areas)+1)
	index := make(map[uuid.UUID]int, len(areas))
	for _, a := range areas {
		id := a.ID
		index[id] = len(columns)
		columns = append(columns, Column{
			Key:    id.String(),
			Title:  a.Name,
			AreaID: &id,
			Color:  a.Color,
			Tasks:  []*Task{},
		})
	}
	columns = append(columns, Column{
		Key:   unassignedColumn,
		Title: "No area",
		Color: area.DefaultColor,
		Tasks: []*Task{},
	})
	unassigned := len(columns) - 1

	for _, t := range tasks {
		i := unassigned
		if t.AreaID != nil {
			if j, ok := index[*t.AreaID]; ok {
				i = j
			}
		}
		columns[i].Tasks = append(columns[i].Tasks, t)
	}
	return Board{View: ViewKanban, Columns: columns}
}

// BuildMatrix files tasks into the four urgent/important quadrants.
func BuildMatrix(tasks []*Task) Board {
	columns := make([]Column, 0, len(AllPriorities))
	index := make(map[Priority]int, len(AllPriorities))
	for _, p := range AllPriorities {
		q := p.Quadrant()
		index[p] = len(columns)
		columns = append(columns, Column{
			Key:      q.Key,
			Title:    q.Title,
			Subtitle: q.Subtitle,
			Priority: p,
			Tasks:    []*Task{},
		})
	}

	for _, t := range tasks {
		i, ok := index[t.Priority]
		if !ok {
			i = index[PriorityMedium]
		}
		columns[i].Tasks = append(columns[i].Tasks, t)
	}
	return Board{View: ViewMatrix, Columns: columns}
}

// BuildList orders tasks by date then time; undated tasks go last.
func BuildList(tasks []*Task) Board {
	sorted := make([]*Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch {
		case a.Date == nil && b.Date == nil:
			return a.CreatedAt.Before(b.CreatedAt)
		case a.Date == nil:
			return false
		case b.Date == nil:
			return true
		case !a.Date.Equal(*b.Date):
			return a.Date.Before(*b.Date)
		case a.Time != b.Time:
			// an empty time sorts before any HH:MM
			return a.Time < b.Time
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})

	return Board{View: ViewList, Columns: []Column{{Key: "all", Title: "All tasks", Tasks: sorted}}}
}
